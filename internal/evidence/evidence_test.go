package evidence

import (
	"testing"

	"github.com/technicalpickles/envsense/internal/confidence"
)

func TestNew_DefensiveCopyOfSupports(t *testing.T) {
	supports := []string{"agent"}
	e := New(SignalEnv, "CURSOR_TRACE_ID", "abc", supports, confidence.High)
	supports[0] = "mutated"
	if e.Supports[0] != "agent" {
		t.Fatalf("Evidence.Supports was not defensively copied: %v", e.Supports)
	}
}

func TestLess_OrdersBySignalThenKey(t *testing.T) {
	a := New(SignalEnv, "ALPHA", "", nil, confidence.High)
	b := New(SignalEnv, "ZEBRA", "", nil, confidence.High)
	c := New(SignalTty, "stdin", "", nil, confidence.Terminal)

	if !Less(a, b) {
		t.Fatal("ALPHA should sort before ZEBRA within the same signal")
	}
	if Less(b, a) {
		t.Fatal("ZEBRA should not sort before ALPHA")
	}
	if !Less(a, c) {
		t.Fatal("env signal should sort before tty signal")
	}
}

func TestSortKey_MatchesSignalAndKey(t *testing.T) {
	e := New(SignalProc, "pid", "1", nil, confidence.Low)
	k := e.SortKey()
	if k.Signal != SignalProc || k.Key != "pid" {
		t.Fatalf("SortKey = %+v, want {Proc pid}", k)
	}
}
