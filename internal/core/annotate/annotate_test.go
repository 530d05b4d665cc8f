package annotate

import (
	"reflect"
	"testing"
)

func TestFlattenAndPersisted_UseDifferentSeparators(t *testing.T) {
	p := Paragraph{"1: hi", "2: there"}
	if got := Flatten(p); got != "1: hi\n2: there" {
		t.Fatalf("Flatten = %q", got)
	}
	if got := Persisted(p); got != "1: hi/2: there" {
		t.Fatalf("Persisted = %q", got)
	}
}

func TestFingerprint_KnownDigest(t *testing.T) {
	// md5("") and md5("abc") are fixed test vectors
	if got := Fingerprint(""); got != "d41d8cd98f00b204e9800998ecf8427e" {
		t.Fatalf("Fingerprint(\"\") = %s", got)
	}
	if got := Fingerprint("abc"); got != "900150983cd24fb0d6963f7d28e17f72" {
		t.Fatalf("Fingerprint(abc) = %s", got)
	}
}

func TestSelection_OrderAndFilter(t *testing.T) {
	labels := LabelSet{"A", "B", "C"}
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, nil},
		{"label set order", []string{"C", "A"}, []string{"A", "C"}},
		{"unknown dropped", []string{"Z", "B"}, []string{"B"}},
		{"duplicates collapsed", []string{"B", "B"}, []string{"B"}},
		{"only unknown", []string{"Z"}, []string{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Selection(c.in, labels)
			if len(got) == 0 && len(c.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, c.want) {
				t.Fatalf("Selection(%v) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestNew_HashesPersistedContent(t *testing.T) {
	p := Paragraph{"1: hello"}
	a := New(p, []string{"A"}, LabelSet{"A", "B"})
	if a.Content != "1: hello" {
		t.Fatalf("content = %q", a.Content)
	}
	if a.Fingerprint != Fingerprint("1: hello") {
		t.Fatalf("fingerprint = %s", a.Fingerprint)
	}
	if a.Target != "A" {
		t.Fatalf("target = %q", a.Target)
	}

	multi := New(Paragraph{"a", "b"}, []string{"B", "A"}, LabelSet{"A", "B"})
	if multi.Fingerprint != Fingerprint("a/b") {
		t.Fatalf("multi-line fingerprint should hash slash-joined content")
	}
	if multi.Target != "A,B" {
		t.Fatalf("target = %q, want A,B", multi.Target)
	}
}

func TestNew_EmptySelectionIsValid(t *testing.T) {
	a := New(Paragraph{"2: world"}, nil, LabelSet{"A", "B"})
	if a.Target != "" {
		t.Fatalf("target = %q, want empty", a.Target)
	}
}

func TestLabelSet_Has(t *testing.T) {
	ls := LabelSet{"A", "B"}
	if !ls.Has("A") || ls.Has("C") {
		t.Fatalf("Has mismatch")
	}
}
