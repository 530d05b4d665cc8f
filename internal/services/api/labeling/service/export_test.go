package service

import (
	"testing"

	"labelit/internal/core/annotate"
)

func TestEncodeCSV_QuotesSeparatorsAndBreaks(t *testing.T) {
	t.Parallel()

	rows := []annotate.Annotation{
		{Fingerprint: "f1", Content: "1: a/2: b", Target: "A,B"},
		{Fingerprint: "f2", Content: "say \"hi\"\nthere", Target: ""},
	}
	got, err := EncodeCSV(rows)
	if err != nil {
		t.Fatalf("EncodeCSV: %v", err)
	}
	want := "fingerprint,content,target\n" +
		"f1,1: a/2: b,\"A,B\"\n" +
		"f2,\"say \"\"hi\"\"\nthere\",\n"
	if string(got) != want {
		t.Fatalf("csv =\n%q\nwant\n%q", got, want)
	}
}

func TestArtifacts_Get(t *testing.T) {
	t.Parallel()

	a := &Artifacts{CSV: []byte("c"), DB: []byte("d")}
	if got, ok := a.Get(CSVName); !ok || string(got.Data) != "c" || got.ContentType != downloadType {
		t.Fatalf("csv artifact = %+v %v", got, ok)
	}
	if got, ok := a.Get(DBName); !ok || string(got.Data) != "d" {
		t.Fatalf("db artifact = %+v %v", got, ok)
	}
	if _, ok := a.Get("x"); ok {
		t.Fatalf("unknown artifact resolved")
	}
	if n := a.Names(); len(n) != 2 || n[0] != CSVName || n[1] != DBName {
		t.Fatalf("names = %v", n)
	}
}

func TestNewExporter_NilRepoPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	_ = NewExporter(nil, "")
}
