package strings

import (
	"reflect"
	"testing"

	"labelit/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	t.Parallel()

	def := []string{"GET"}
	if got := IfEmpty(nil, def); !reflect.DeepEqual(got, def) {
		t.Fatalf("nil = %v", got)
	}
	if got := IfEmpty([]string{"POST"}, def); got[0] != "POST" {
		t.Fatalf("set = %v", got)
	}
}

func TestMustString(t *testing.T) {
	t.Parallel()

	if MustString("labeling", "name") != "labeling" {
		t.Fatalf("value changed")
	}
	testkit.MustPanic(t, func() { MustString(" \t", "name") })
}

func TestMustPrefix(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"meta":        "/meta",
		"/labeling/":  "/labeling",
		" //api/v1/ ": "/api/v1",
	}
	for in, want := range cases {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q want %q", in, got, want)
		}
	}
	for _, bad := range []string{"", "/", " / "} {
		testkit.MustPanic(t, func() { MustPrefix(bad) })
	}
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	got := SplitList(" http://a.test, ,http://b.test,")
	want := []string{"http://a.test", "http://b.test"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitList = %q", got)
	}
	if SplitList("") != nil {
		t.Fatalf("empty input should give nil")
	}
}
