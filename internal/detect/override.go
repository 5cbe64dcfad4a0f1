package detect

import (
	"github.com/technicalpickles/envsense/internal/confidence"
	"github.com/technicalpickles/envsense/internal/evidence"
	"github.com/technicalpickles/envsense/internal/snapshot"
)

// OverrideOutcome is the Override Gate's verdict for one category.
type OverrideOutcome int

const (
	// OverridePass means no override applies; the detector should run
	// its normal mapping-table logic.
	OverridePass OverrideOutcome = iota
	// OverrideDisable means detection for this category is skipped
	// entirely.
	OverrideDisable
	// OverrideForce means the category's id is forced to a fixed value
	// without consulting any other indicator.
	OverrideForce
)

// Override is the resolved result of consulting the gate for one
// category.
type Override struct {
	Outcome    OverrideOutcome
	Value      string // set when Outcome == OverrideForce
	TriggerKey string // the env var name that produced this outcome, for evidence
}

// assumeVar maps a category to its ENVSENSE_ASSUME_<MODE> disable switch.
var assumeVar = map[string]string{
	"agent": "ENVSENSE_ASSUME_HUMAN",
	"ide":   "ENVSENSE_ASSUME_TERMINAL",
	"ci":    "ENVSENSE_ASSUME_LOCAL",
}

// Gate evaluates the Override Gate for category against snap.
//
// Precedence: Disable wins over Force only when BOTH an assume-disable
// and a direct override are present; otherwise whichever of the two is
// actually present wins (a lone Force applies, a lone Disable applies,
// and neither present means Pass).
func Gate(snap snapshot.Snapshot, category string) Override {
	directKey := "ENVSENSE_" + upperCategory(category)
	directVal, directPresent := snap.Get(directKey)

	assumeKey := assumeVar[category]
	assumeVal, assumePresent := snap.Get(assumeKey)
	assumeDisable := assumePresent && assumeVal == "1"

	directDisable := directPresent && directVal == "none"
	directForce := directPresent && !directDisable && directVal != ""

	switch {
	case assumeDisable && directPresent:
		// Both present: Disable wins regardless of what the direct
		// override actually said.
		return Override{Outcome: OverrideDisable, TriggerKey: assumeKey}
	case directDisable:
		return Override{Outcome: OverrideDisable, TriggerKey: directKey}
	case directForce:
		return Override{Outcome: OverrideForce, Value: directVal, TriggerKey: directKey}
	case assumeDisable:
		return Override{Outcome: OverrideDisable, TriggerKey: assumeKey}
	default:
		return Override{Outcome: OverridePass}
	}
}

func upperCategory(category string) string {
	switch category {
	case "agent":
		return "AGENT"
	case "ide":
		return "IDE"
	case "ci":
		return "CI"
	default:
		return category
	}
}

// ApplyForce builds the Detection for a forced category: exactly one
// evidence record naming the triggering var at High confidence — no
// other indicator is consulted.
func ApplyForce(category string, ov Override) Detection {
	d := newDetection()
	d.ContextsAdd = append(d.ContextsAdd, category)
	d.FacetsPatch[category+"_id"] = ov.Value
	d.TraitsPatch[category+".id"] = ov.Value
	d.Evidence = append(d.Evidence, evidence.New(
		evidence.SignalEnv, ov.TriggerKey, ov.Value, []string{category}, confidence.High,
	))
	return d
}

// ApplyDisable builds the (empty, but evidenced) Detection for a
// disabled category: one evidence record naming the triggering var, no
// contexts/traits/facets.
func ApplyDisable(category string, ov Override) Detection {
	d := newDetection()
	d.Evidence = append(d.Evidence, evidence.New(
		evidence.SignalEnv, ov.TriggerKey, "", []string{}, confidence.High,
	))
	return d
}
