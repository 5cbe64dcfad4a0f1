package cliapp

import (
	"github.com/technicalpickles/envsense/internal/config"
	"github.com/technicalpickles/envsense/internal/engine"
	"github.com/technicalpickles/envsense/internal/report"
	"github.com/technicalpickles/envsense/internal/snapshot"
)

// detectReport captures the live process and runs it through the
// engine, folding in any project config vendor overlay found at
// config.DefaultConfigPath. A missing or unreadable config file is not
// an error here: detection proceeds on the built-in tables alone.
func detectReport() *report.Report {
	snap := snapshot.Capture()
	cfg, err := config.Load(config.DefaultConfigPath)
	if err != nil {
		return engine.Detect(snap)
	}
	agents, ides, ci := config.ApplyOverlay(cfg.VendorOverlay)
	return engine.DetectWithTables(snap, engine.Tables{Agents: agents, IDEs: ides, CI: ci})
}
