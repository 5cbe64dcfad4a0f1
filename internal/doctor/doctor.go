// Package doctor runs a short, self-contained checklist over the
// detection core's own static data: the Field Registry, the mapping
// tables, and any optional project config file. It is ambient tooling,
// not a detection feature.
package doctor

import (
	"fmt"
	"os"

	"github.com/technicalpickles/envsense/internal/config"
	"github.com/technicalpickles/envsense/internal/mapping"
	"github.com/technicalpickles/envsense/internal/registry"
)

// Check is one named pass/fail result.
type Check struct {
	ID      string `json:"id"`
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// Result is the overall outcome: OK iff every Check passed.
type Result struct {
	OK     bool    `json:"ok"`
	Checks []Check `json:"checks"`
}

// Run executes every check and returns the aggregate Result. A failing
// check is recorded as a Check with OK=false, not a Go error, matching
// the detection core's "never fails fatally" posture.
func Run(configPath string) Result {
	res := Result{OK: true}

	res.addCheck(checkRegistryConsistency())
	res.addCheck(checkNoDuplicateVendorIDs("agent", mapping.Agents))
	res.addCheck(checkNoDuplicateVendorIDs("ide", mapping.IDEs))
	res.addCheck(checkNoDuplicateVendorIDs("ci", mapping.CI))
	res.addCheck(checkConfigFile(configPath))

	return res
}

func (r *Result) addCheck(c Check) {
	r.Checks = append(r.Checks, c)
	if !c.OK {
		r.OK = false
	}
}

// checkRegistryConsistency verifies every non-object field declares a
// reader. It does not check the reader's output type.
func checkRegistryConsistency() Check {
	for _, f := range registry.All() {
		if f.Type == registry.TypeObject {
			continue
		}
		if f.Read == nil {
			return Check{ID: "registry_consistency", OK: false,
				Message: fmt.Sprintf("field %q has no reader", f.Path)}
		}
	}
	return Check{ID: "registry_consistency", OK: true}
}

// checkNoDuplicateVendorIDs guards against two mapping table entries
// sharing an ID, which would make the engine's tie-break silently
// nondeterministic between them.
func checkNoDuplicateVendorIDs(category string, table []mapping.EnvMapping) Check {
	seen := map[string]bool{}
	for _, m := range table {
		if seen[m.ID] {
			return Check{ID: "mapping_table_" + category, OK: false,
				Message: fmt.Sprintf("duplicate vendor id %q in %s table", m.ID, category)}
		}
		seen[m.ID] = true
	}
	return Check{ID: "mapping_table_" + category, OK: true}
}

// checkConfigFile verifies that, if a config file exists at configPath,
// it parses and its defaults.fields entries all name real registry
// paths. (`info` also rejects unknown configured fields when it runs.)
func checkConfigFile(configPath string) Check {
	if configPath == "" {
		configPath = config.DefaultConfigPath
	}
	if _, err := os.Stat(configPath); err != nil {
		if os.IsNotExist(err) {
			return Check{ID: "project_config", OK: true, Message: "missing (ok)"}
		}
		return Check{ID: "project_config", OK: false, Message: err.Error()}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return Check{ID: "project_config", OK: false, Message: err.Error()}
	}
	for _, p := range cfg.Defaults.Fields {
		if _, ok := registry.Lookup(p); !ok {
			return Check{ID: "project_config", OK: false,
				Message: fmt.Sprintf("defaults.fields references unknown path %q", p)}
		}
	}
	return Check{ID: "project_config", OK: true}
}
