package cliapp

import (
	"fmt"
	"io"
	"strings"

	"github.com/technicalpickles/envsense/internal/predicate"
	"github.com/technicalpickles/envsense/internal/registry"
	"github.com/technicalpickles/envsense/internal/report"
)

// renderHuman writes the hierarchical, human-readable form of r to w:
// one leaf per line, indented by depth. When fields is non-empty,
// output is restricted to those dotted paths (flat form, one
// "path: value" per line) rather than the full tree.
func renderHuman(w io.Writer, r *report.Report, fields []string) {
	if len(fields) > 0 {
		renderFields(w, r, fields)
		return
	}

	fmt.Fprintf(w, "version: %s\n", r.Version)
	fmt.Fprintf(w, "contexts: [%s]\n", strings.Join(r.Contexts, ", "))
	fmt.Fprintln(w, "traits:")

	fmt.Fprintln(w, "  agent:")
	fmt.Fprintf(w, "    id: %s\n", optional(r.Traits.Agent.ID))

	fmt.Fprintln(w, "  ide:")
	fmt.Fprintf(w, "    id: %s\n", optional(r.Traits.IDE.ID))

	fmt.Fprintln(w, "  ci:")
	fmt.Fprintf(w, "    id: %s\n", optional(r.Traits.CI.ID))
	fmt.Fprintf(w, "    vendor: %s\n", optional(r.Traits.CI.Vendor))
	fmt.Fprintf(w, "    name: %s\n", optional(r.Traits.CI.Name))
	fmt.Fprintf(w, "    branch: %s\n", optional(r.Traits.CI.Branch))
	fmt.Fprintf(w, "    is_pr: %s\n", optionalBool(r.Traits.CI.IsPR))

	fmt.Fprintln(w, "  terminal:")
	fmt.Fprintf(w, "    interactive: %v\n", r.Traits.Terminal.Interactive)
	fmt.Fprintf(w, "    color_level: %s\n", r.Traits.Terminal.ColorLevel)
	fmt.Fprintln(w, "    stdin:")
	fmt.Fprintf(w, "      tty: %v\n", r.Traits.Terminal.Stdin.TTY)
	fmt.Fprintf(w, "      piped: %v\n", r.Traits.Terminal.Stdin.Piped)
	fmt.Fprintln(w, "    stdout:")
	fmt.Fprintf(w, "      tty: %v\n", r.Traits.Terminal.Stdout.TTY)
	fmt.Fprintf(w, "      piped: %v\n", r.Traits.Terminal.Stdout.Piped)
	fmt.Fprintln(w, "    stderr:")
	fmt.Fprintf(w, "      tty: %v\n", r.Traits.Terminal.Stderr.TTY)
	fmt.Fprintf(w, "      piped: %v\n", r.Traits.Terminal.Stderr.Piped)
	fmt.Fprintf(w, "    supports_hyperlinks: %v\n", r.Traits.Terminal.SupportsHyperlinks)
}

func renderFields(w io.Writer, r *report.Report, fields []string) {
	for _, p := range fields {
		f, ok := registry.Lookup(p)
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", p, stringifyField(f, r))
	}
}

func stringifyField(f registry.Field, r *report.Report) string {
	if f.Type == registry.TypeObject {
		if registry.HasContext(r, f.Path) {
			return "true"
		}
		return "false"
	}
	v, present := f.Read(r)
	if !present {
		return ""
	}
	switch val := v.(type) {
	case bool:
		if val {
			return "true"
		}
		return "false"
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}

func optional(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func optionalBool(b *bool) string {
	if b == nil {
		return "-"
	}
	if *b {
		return "true"
	}
	return "false"
}

// validateFields checks every requested path against the Field
// Registry, returning the first unknown path's error (with the top-3
// suggestion list), or nil if all are known.
func validateFields(fields []string) error {
	for _, p := range fields {
		if _, ok := registry.Lookup(p); !ok {
			return fmt.Errorf("%s: unknown field %q (%s)", CodeInvalidField, p, suggestMessage(p))
		}
	}
	return nil
}

func suggestMessage(path string) string {
	names := predicate.Suggest(path, registry.Paths())
	return "did you mean: " + strings.Join(names, ", ") + "?"
}
