package detect

import (
	"testing"

	"github.com/technicalpickles/envsense/internal/snapshot"
)

func TestGate_Pass_WhenNothingSet(t *testing.T) {
	snap := snapshot.With(nil, false, false, false)
	if ov := Gate(snap, "agent"); ov.Outcome != OverridePass {
		t.Fatalf("expected Pass, got %v", ov.Outcome)
	}
}

func TestGate_ForceWhenDirectOverrideSet(t *testing.T) {
	snap := snapshot.With([]string{"ENVSENSE_AGENT=custom"}, false, false, false)
	ov := Gate(snap, "agent")
	if ov.Outcome != OverrideForce || ov.Value != "custom" {
		t.Fatalf("expected Force(custom), got %+v", ov)
	}
}

func TestGate_DisableWhenNone(t *testing.T) {
	snap := snapshot.With([]string{"ENVSENSE_CI=none"}, false, false, false)
	ov := Gate(snap, "ci")
	if ov.Outcome != OverrideDisable {
		t.Fatalf("expected Disable, got %v", ov.Outcome)
	}
}

func TestGate_DisableWhenAssumeSet(t *testing.T) {
	snap := snapshot.With([]string{"ENVSENSE_ASSUME_HUMAN=1"}, false, false, false)
	ov := Gate(snap, "agent")
	if ov.Outcome != OverrideDisable {
		t.Fatalf("expected Disable from assume var, got %v", ov.Outcome)
	}
}

func TestGate_DisableWinsOverForceWhenBothPresent(t *testing.T) {
	snap := snapshot.With([]string{
		"ENVSENSE_ASSUME_HUMAN=1",
		"ENVSENSE_AGENT=custom",
	}, false, false, false)
	ov := Gate(snap, "agent")
	if ov.Outcome != OverrideDisable {
		t.Fatalf("Disable should win when both assume-disable and direct override present, got %+v", ov)
	}
}

func TestGatedTableDetect_ForceSkipsAllIndicators(t *testing.T) {
	snap := snapshot.With([]string{
		"ENVSENSE_AGENT=custom",
		"CURSOR_TRACE_ID=abc", // would otherwise win as cursor
	}, false, false, false)
	d := Agent(snap)
	if d.TraitsPatch["agent.id"] != "custom" {
		t.Fatalf("forced id should win regardless of other indicators: %+v", d)
	}
	if len(d.Evidence) != 1 {
		t.Fatalf("forced override must emit exactly one evidence record, got %d: %+v", len(d.Evidence), d.Evidence)
	}
}

func TestGatedTableDetect_DisableSuppressesDetection(t *testing.T) {
	snap := snapshot.With([]string{
		"ENVSENSE_CI=none",
		"CI=true",
		"GITHUB_ACTIONS=true",
	}, false, false, false)
	d := CI(snap)
	if len(d.ContextsAdd) != 0 || d.TraitsPatch["ci.id"] != nil {
		t.Fatalf("disabled category should contribute no contexts/traits: %+v", d)
	}
}
