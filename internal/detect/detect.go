// Package detect implements the declarative detectors: one per category
// (agent, ide, ci, terminal). Each consumes a Snapshot (plus, for the
// table-driven three, a mapping table) and yields a Detection — its
// proposed, still-unmerged contribution to the Report.
package detect

import (
	"sort"

	"github.com/technicalpickles/envsense/internal/confidence"
	"github.com/technicalpickles/envsense/internal/evidence"
	"github.com/technicalpickles/envsense/internal/mapping"
	"github.com/technicalpickles/envsense/internal/snapshot"
)

// Detection is one detector's proposed, unmerged contribution to the
// Report: the contexts it wants to add, the trait/facet values it wants
// to set (as dotted paths), and the evidence that backs them.
type Detection struct {
	ContextsAdd []string
	TraitsPatch map[string]any
	FacetsPatch map[string]any
	Evidence    []evidence.Evidence
}

func newDetection() Detection {
	return Detection{
		TraitsPatch: map[string]any{},
		FacetsPatch: map[string]any{},
	}
}

// tableDetect runs the shared table-driven algorithm for agent/ide/ci:
// evaluate every mapping, pick a winner by confidence then lexicographic
// ID, emit its facets/traits/contexts, and emit evidence for the
// winner's matched indicators plus near-match evidence for any loser
// that matched all its required indicators.
func tableDetect(snap snapshot.Snapshot, table []mapping.EnvMapping, category string) Detection {
	d := newDetection()

	type scored struct {
		result mapping.MatchResult
	}
	var winners []scored
	var nearMisses []mapping.MatchResult

	for _, m := range table {
		res := m.Evaluate(snap)
		if res.Matched {
			winners = append(winners, scored{result: res})
			continue
		}
		if res.AllRequired {
			nearMisses = append(nearMisses, res)
		}
	}

	if len(winners) == 0 {
		for _, nm := range nearMisses {
			d.Evidence = append(d.Evidence, nearMissEvidence(nm, category)...)
		}
		return d
	}

	sort.Slice(winners, func(i, j int) bool {
		a, b := winners[i].result.Mapping, winners[j].result.Mapping
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		return a.ID < b.ID
	})
	winner := winners[0].result

	d.ContextsAdd = append(d.ContextsAdd, category)
	facetKey := category + "_id"
	d.FacetsPatch[facetKey] = winner.Mapping.ID
	d.TraitsPatch[category+".id"] = winner.Mapping.ID
	for k, v := range winner.Mapping.Traits {
		d.TraitsPatch[category+"."+k] = v
	}

	for _, ind := range winner.Mapping.Indicators {
		value, ok := winner.MatchedKeys[ind.Key]
		if !ok {
			continue
		}
		d.Evidence = append(d.Evidence, evidence.New(
			evidence.SignalEnv, ind.Key, value, []string{category, winner.Mapping.ID}, winner.Mapping.Confidence,
		))
	}

	for _, vm := range winner.Mapping.ValueMappings {
		value, ok, warn := vm.Apply(snap)
		if warn != "" {
			reportTransformWarning(category, winner.Mapping.ID, vm, warn)
			continue
		}
		if !ok {
			continue
		}
		d.TraitsPatch[category+"."+vm.TargetKey] = value
	}

	// Runner-up losers that matched all required indicators still
	// contribute near-match evidence of their own.
	for i := 1; i < len(winners); i++ {
		d.Evidence = append(d.Evidence, nearMissEvidence(winners[i].result, category)...)
	}
	for _, nm := range nearMisses {
		d.Evidence = append(d.Evidence, nearMissEvidence(nm, category)...)
	}

	return d
}

// gatedTableDetect is the entry point shared by the agent/ide/ci
// detectors: consult the Override Gate first; only fall through to the
// mapping-table algorithm when the gate says Pass.
func gatedTableDetect(snap snapshot.Snapshot, table []mapping.EnvMapping, category string) Detection {
	switch ov := Gate(snap, category); ov.Outcome {
	case OverrideDisable:
		return ApplyDisable(category, ov)
	case OverrideForce:
		return ApplyForce(category, ov)
	default:
		return tableDetect(snap, table, category)
	}
}

// nearMissEvidence builds evidence for a losing mapping (runner-up or
// near-miss). Its vendor ID never appears anywhere in the Report, so
// supports[] names only the category itself — the one identifier a
// losing mapping's evidence can truthfully back — consistent with how
// the winner's own evidence supports []string{category, winner.Mapping.ID}
// using identifiers that do exist in the Report.
func nearMissEvidence(res mapping.MatchResult, category string) []evidence.Evidence {
	var out []evidence.Evidence
	for k, v := range res.MatchedKeys {
		out = append(out, evidence.New(
			evidence.SignalEnv, k, v, []string{category}, confidence.Low,
		))
	}
	return out
}

// warnFunc is overridable by tests; production wiring is set by the
// engine package via SetWarnFunc so this package doesn't import logging
// directly (it has no opinion on the log sink).
var warnFunc func(category, vendorID string, vm mapping.ValueMapping, reason string)

// SetWarnFunc installs the sink used to report a non-fatal
// ValueTransformWarning: logged, detection proceeds.
func SetWarnFunc(f func(category, vendorID string, vm mapping.ValueMapping, reason string)) {
	warnFunc = f
}

func reportTransformWarning(category, vendorID string, vm mapping.ValueMapping, reason string) {
	if warnFunc != nil {
		warnFunc(category, vendorID, vm, reason)
	}
}
