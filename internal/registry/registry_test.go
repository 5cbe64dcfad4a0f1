package registry

import (
	"testing"

	"github.com/technicalpickles/envsense/internal/report"
)

func TestLookup_KnownLeafAndContext(t *testing.T) {
	if _, ok := Lookup("ci.branch"); !ok {
		t.Fatal("expected ci.branch to be registered")
	}
	if _, ok := Lookup("agent"); !ok {
		t.Fatal("expected bare context name 'agent' to be registered")
	}
	if _, ok := Lookup("no.such.field"); ok {
		t.Fatal("expected unknown path to be absent")
	}
}

func TestAll_SortedByPath(t *testing.T) {
	all := All()
	for i := 1; i < len(all); i++ {
		if all[i-1].Path > all[i].Path {
			t.Fatalf("registry not sorted: %q before %q", all[i-1].Path, all[i].Path)
		}
	}
}

func TestEveryLeafHasAReader(t *testing.T) {
	for _, f := range All() {
		if f.Type == TypeObject {
			continue
		}
		if f.Read == nil {
			t.Fatalf("field %q has no reader", f.Path)
		}
	}
}

func TestHasContext(t *testing.T) {
	r := report.New()
	r.AddContext("ci")
	if !HasContext(r, "ci") {
		t.Fatal("expected ci to be present")
	}
	if HasContext(r, "agent") {
		t.Fatal("expected agent to be absent")
	}
}

func TestReader_AgentIDNullableWhenEmpty(t *testing.T) {
	r := report.New()
	f, _ := Lookup("agent.id")
	if _, present := f.Read(r); present {
		t.Fatal("expected agent.id absent on a fresh report")
	}
	r.Traits.Agent.ID = "cursor"
	if v, present := f.Read(r); !present || v != "cursor" {
		t.Fatalf("expected (cursor, true), got (%v, %v)", v, present)
	}
}
