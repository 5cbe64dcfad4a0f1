// Package engine runs the declarative detectors against a Snapshot and
// merges their Detections into a single, invariant-respecting Report.
package engine

import (
	"log/slog"

	"github.com/technicalpickles/envsense/internal/detect"
	"github.com/technicalpickles/envsense/internal/mapping"
	"github.com/technicalpickles/envsense/internal/report"
	"github.com/technicalpickles/envsense/internal/snapshot"
)

func init() {
	detect.SetWarnFunc(func(category, vendorID string, vm mapping.ValueMapping, reason string) {
		slog.Warn("value transform failed",
			"category", category,
			"vendor", vendorID,
			"target", vm.TargetKey,
			"source", vm.SourceKey,
			"reason", reason,
		)
	})
}

// detectorFunc is the shape shared by all four detectors.
type detectorFunc func(snapshot.Snapshot) detect.Detection

// order is fixed: terminal, agent, ci, ide.
var order = []struct {
	name string
	fn   detectorFunc
}{
	{"terminal", detect.Terminal},
	{"agent", detect.Agent},
	{"ci", detect.CI},
	{"ide", detect.IDE},
}

// Detect runs every detector against snap and merges their Detections
// into a frozen Report.
func Detect(snap snapshot.Snapshot) *report.Report {
	return run(snap, order)
}

// Tables lets a caller override one or more of the table-driven
// detectors' mapping tables. A nil field falls back to the built-in
// table. This is how the Config Layer's vendor overlay (§ config.Config)
// reaches detection without the engine depending on the config package.
type Tables struct {
	Agents []mapping.EnvMapping
	IDEs   []mapping.EnvMapping
	CI     []mapping.EnvMapping
}

// DetectWithTables runs Detect using caller-supplied mapping tables in
// place of the built-in ones wherever Tables sets them.
func DetectWithTables(snap snapshot.Snapshot, t Tables) *report.Report {
	custom := []struct {
		name string
		fn   detectorFunc
	}{
		{"terminal", detect.Terminal},
		{"agent", func(s snapshot.Snapshot) detect.Detection { return detect.AgentFromTable(s, orDefault(t.Agents, mapping.Agents)) }},
		{"ci", func(s snapshot.Snapshot) detect.Detection { return detect.CIFromTable(s, orDefault(t.CI, mapping.CI)) }},
		{"ide", func(s snapshot.Snapshot) detect.Detection { return detect.IDEFromTable(s, orDefault(t.IDEs, mapping.IDEs)) }},
	}
	return run(snap, custom)
}

func orDefault(custom, builtin []mapping.EnvMapping) []mapping.EnvMapping {
	if custom == nil {
		return builtin
	}
	return custom
}

func run(snap snapshot.Snapshot, detectors []struct {
	name string
	fn   detectorFunc
}) *report.Report {
	r := report.New()

	for _, d := range detectors {
		detection := runRecovered(d.name, d.fn, snap)
		applyDetection(r, detection)
	}

	r.EnforceInvariants()
	r.SortEvidence()
	return r
}

// runRecovered calls a detector and converts a panic into a synthetic
// empty Detection (a DetectorPanic: logged, not fatal).
func runRecovered(name string, fn detectorFunc, snap snapshot.Snapshot) (result detect.Detection) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Warn("detector panicked, continuing with empty detection",
				"detector", name, "panic", rec)
			result = detect.Detection{
				TraitsPatch: map[string]any{},
				FacetsPatch: map[string]any{},
			}
		}
	}()
	return fn(snap)
}

// applyDetection overlays one Detection onto the Report, in declaration
// order.
func applyDetection(r *report.Report, d detect.Detection) {
	for _, ctx := range d.ContextsAdd {
		r.AddContext(ctx)
	}
	for path, value := range d.TraitsPatch {
		r.ApplyTrait(path, value)
	}
	r.Evidence = append(r.Evidence, d.Evidence...)
}
