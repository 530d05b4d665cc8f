package module

import (
	"testing"
)

type phaser interface{ Phase() string }

type fixedPhase string

func (f fixedPhase) Phase() string { return string(f) }

type provider struct {
	name  string
	ports any
}

func (p provider) Name() string { return p.name }
func (p provider) Ports() any   { return p.ports }

func TestPortsOf(t *testing.T) {
	t.Parallel()

	type bundle struct {
		Count  int
		Phaser phaser
		hidden phaser
	}
	var nilBundle *bundle

	cases := []struct {
		name  string
		ports any
		want  string
		ok    bool
	}{
		{"nil", nil, "", false},
		{"direct", fixedPhase("ACTIVE"), "ACTIVE", true},
		{"struct field", bundle{Count: 1, Phaser: fixedPhase("COMPLETE")}, "COMPLETE", true},
		{"pointer to struct", &bundle{Phaser: fixedPhase("FAILED")}, "FAILED", true},
		{"nil pointer", nilBundle, "", false},
		{"unexported only", bundle{hidden: fixedPhase("x")}, "", false},
		{"scalar", 42, "", false},
	}
	for _, tc := range cases {
		got, ok := PortsOf[phaser](provider{name: tc.name, ports: tc.ports})
		if ok != tc.ok {
			t.Fatalf("%s: ok = %v", tc.name, ok)
		}
		if ok && got.Phase() != tc.want {
			t.Fatalf("%s: phase = %q", tc.name, got.Phase())
		}
	}
}

func TestRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := PortsAs[phaser]("labeling"); ok {
		t.Fatalf("empty registry should miss")
	}

	Register("labeling", fixedPhase("ACTIVE"))
	got, ok := PortsAs[phaser]("labeling")
	if !ok || got.Phase() != "ACTIVE" {
		t.Fatalf("PortsAs = %v %v", got, ok)
	}
	if _, ok := PortsAs[int]("labeling"); ok {
		t.Fatalf("wrong type should miss")
	}

	Register("labeling", fixedPhase("COMPLETE"))
	if got, _ := PortsAs[phaser]("labeling"); got.Phase() != "COMPLETE" {
		t.Fatalf("re-register should replace")
	}
}
