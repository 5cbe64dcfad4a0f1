package cliapp

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/technicalpickles/envsense/internal/config"
	"github.com/technicalpickles/envsense/internal/doctor"
)

// runMigrate is a thin compatibility shim: it rewrites a v0.2-style
// predicate string or JSON report to the current schema, or (with
// --guide) prints the doctor checklist annotated with remediation text.
// It does not reimplement schema versioning in full; it applies the
// one translation the current schema needs.
func (r Runner) runMigrate(args []string) int {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	predicate := fs.String("predicate", "", "rewrite a legacy v0.2 predicate string")
	jsonPath := fs.String("json", "", "rewrite a legacy v0.2 JSON report file")
	guide := fs.Bool("guide", false, "print the doctor checklist with remediation guidance")
	help := fs.Bool("help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return r.failUsage("migrate: invalid flags")
	}
	if *help {
		fmt.Fprintln(r.Stdout, "envsense migrate --predicate P | --json FILE | --guide")
		return 0
	}

	set := 0
	if *predicate != "" {
		set++
	}
	if *jsonPath != "" {
		set++
	}
	if *guide {
		set++
	}
	if set != 1 {
		return r.failUsage("migrate: exactly one of --predicate, --json, --guide is required")
	}

	switch {
	case *predicate != "":
		rewritten, err := migratePredicate(*predicate)
		if err != nil {
			fmt.Fprintf(r.Stderr, "%s: %v\n", CodeUsage, err)
			return 2
		}
		fmt.Fprintln(r.Stdout, rewritten)
		return 0
	case *jsonPath != "":
		raw, err := os.ReadFile(*jsonPath)
		if err != nil {
			fmt.Fprintf(r.Stderr, "%s: %v\n", CodeUsage, err)
			return 2
		}
		rewritten, err := migrateReportJSON(raw)
		if err != nil {
			fmt.Fprintf(r.Stderr, "%s: %v\n", CodeUsage, err)
			return 2
		}
		fmt.Fprintln(r.Stdout, string(rewritten))
		return 0
	default:
		return r.runGuide()
	}
}

func (r Runner) runGuide() int {
	res := doctor.Run(config.DefaultConfigPath)
	for _, c := range res.Checks {
		if c.OK {
			fmt.Fprintf(r.Stdout, "[ok] %s\n", c.ID)
			continue
		}
		fmt.Fprintf(r.Stdout, "[FAIL] %s: %s\n", c.ID, c.Message)
		fmt.Fprintf(r.Stdout, "       %s\n", remediation(c.ID))
	}
	if res.OK {
		return 0
	}
	return 1
}

func remediation(checkID string) string {
	switch {
	case checkID == "registry_consistency":
		return "every non-object Field Registry entry must declare a Read function; check internal/registry/registry.go"
	case strings.HasPrefix(checkID, "mapping_table_"):
		return "remove or rename the duplicate vendor id so every entry in the table is unique"
	case checkID == "project_config":
		return "fix .envsense.yml: it must parse as YAML and its defaults.fields entries must name real field paths"
	default:
		return "see envsense doctor output for details"
	}
}

// legacyPredicateReplacements maps v0.2 bare field names (no category
// prefix) to their current dotted paths. v0.2 predicates could omit the
// leading context since it only exposed one field per category.
var legacyPredicateReplacements = map[string]string{
	"is_ci":       "ci",
	"is_agent":    "agent",
	"is_ide":      "ide",
	"interactive": "terminal.interactive",
	"color":       "terminal.color_level",
}

func migratePredicate(p string) (string, error) {
	negate := strings.HasPrefix(p, "!")
	body := strings.TrimPrefix(p, "!")
	if body == "" {
		return "", fmt.Errorf("empty predicate")
	}

	path := body
	suffix := ""
	if eq := strings.IndexByte(body, '='); eq >= 0 {
		path = body[:eq]
		suffix = body[eq:]
	}

	if rewritten, ok := legacyPredicateReplacements[path]; ok {
		path = rewritten
	}

	out := path + suffix
	if negate {
		out = "!" + out
	}
	return out, nil
}

// legacyReport is the v0.2 schema shape: same leaves, no nested
// traits/contexts split, schemaVersion omitted (implied "0.2.0").
type legacyReport struct {
	Agent       string `json:"agent,omitempty"`
	IDE         string `json:"ide,omitempty"`
	CI          string `json:"ci,omitempty"`
	Interactive bool   `json:"interactive"`
	ColorLevel  string `json:"color_level"`
}

func migrateReportJSON(raw []byte) ([]byte, error) {
	var legacy legacyReport
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return nil, fmt.Errorf("parse legacy report: %w", err)
	}

	var contexts []string
	if legacy.Agent != "" {
		contexts = append(contexts, "agent")
	}
	if legacy.IDE != "" {
		contexts = append(contexts, "ide")
	}
	if legacy.CI != "" {
		contexts = append(contexts, "ci")
	}
	contexts = append(contexts, "terminal")

	out := map[string]any{
		"version":  "0.3.0",
		"contexts": contexts,
		"traits": map[string]any{
			"agent": map[string]any{"id": emptyToNil(legacy.Agent)},
			"ide":   map[string]any{"id": emptyToNil(legacy.IDE)},
			"ci":    map[string]any{"id": emptyToNil(legacy.CI)},
			"terminal": map[string]any{
				"interactive": legacy.Interactive,
				"color_level": orDefault(legacy.ColorLevel, "none"),
			},
		},
		"evidence": []any{},
	}
	return json.Marshal(out)
}

func emptyToNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
