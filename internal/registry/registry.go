// Package registry is the Field Registry: the declarative index from
// dotted report paths to their type, a reader function, a description,
// and whether the field is nullable. It drives both JSON field
// filtering (`info --fields`) and predicate evaluation (`check`).
package registry

import (
	"sort"

	"github.com/technicalpickles/envsense/internal/report"
)

// Type is the declared type of a registry field.
type Type string

const (
	TypeBool   Type = "bool"
	TypeString Type = "string"
	TypeEnum   Type = "enum"
	TypeObject Type = "object"
)

// Reader projects a field's value out of a Report. TypeObject fields
// have no Reader (Read is nil); object truthiness is handled specially
// by the predicate evaluator (presence of the matching context name).
type Reader func(r *report.Report) (value any, present bool)

// Field is one entry in the registry.
type Field struct {
	Path        string
	Type        Type
	Description string
	Nullable    bool
	Read        Reader
}

// fields is the static, process-scope table. Every leaf the JSON
// projection emits has an entry here.
var fields = []Field{
	{
		Path: "agent.id", Type: TypeString, Nullable: true,
		Description: "identifier of the detected AI coding agent, if any",
		Read: func(r *report.Report) (any, bool) {
			return presentString(r.Traits.Agent.ID)
		},
	},
	{
		Path: "ide.id", Type: TypeString, Nullable: true,
		Description: "identifier of the detected IDE-hosted shell, if any",
		Read: func(r *report.Report) (any, bool) {
			return presentString(r.Traits.IDE.ID)
		},
	},
	{
		Path: "ci.id", Type: TypeString, Nullable: true,
		Description: "identifier of the detected CI vendor, if any",
		Read: func(r *report.Report) (any, bool) {
			return presentString(r.Traits.CI.ID)
		},
	},
	{
		Path: "ci.vendor", Type: TypeString, Nullable: true,
		Description: "alias of ci.id kept for readability in predicates",
		Read: func(r *report.Report) (any, bool) {
			return presentString(r.Traits.CI.Vendor)
		},
	},
	{
		Path: "ci.name", Type: TypeString, Nullable: true,
		Description: "CI job or workflow name, when the vendor exposes one",
		Read: func(r *report.Report) (any, bool) {
			return presentString(r.Traits.CI.Name)
		},
	},
	{
		Path: "ci.branch", Type: TypeString, Nullable: true,
		Description: "branch name extracted from the CI vendor's own env vars",
		Read: func(r *report.Report) (any, bool) {
			return presentString(r.Traits.CI.Branch)
		},
	},
	{
		Path: "ci.is_pr", Type: TypeBool, Nullable: true,
		Description: "whether the current CI run is building a pull/merge request",
		Read: func(r *report.Report) (any, bool) {
			if r.Traits.CI.IsPR == nil {
				return nil, false
			}
			return *r.Traits.CI.IsPR, true
		},
	},
	{
		Path: "terminal.interactive", Type: TypeBool,
		Description: "true when both stdin and stdout are attached to a TTY",
		Read: func(r *report.Report) (any, bool) {
			return r.Traits.Terminal.Interactive, true
		},
	},
	{
		Path: "terminal.color_level", Type: TypeEnum,
		Description: "terminal color support: none, ansi16, ansi256, truecolor",
		Read: func(r *report.Report) (any, bool) {
			return r.Traits.Terminal.ColorLevel, true
		},
	},
	{
		Path: "terminal.stdin.tty", Type: TypeBool,
		Description: "stdin is attached to a TTY",
		Read: func(r *report.Report) (any, bool) {
			return r.Traits.Terminal.Stdin.TTY, true
		},
	},
	{
		Path: "terminal.stdin.piped", Type: TypeBool,
		Description: "stdin is not attached to a TTY",
		Read: func(r *report.Report) (any, bool) {
			return r.Traits.Terminal.Stdin.Piped, true
		},
	},
	{
		Path: "terminal.stdout.tty", Type: TypeBool,
		Description: "stdout is attached to a TTY",
		Read: func(r *report.Report) (any, bool) {
			return r.Traits.Terminal.Stdout.TTY, true
		},
	},
	{
		Path: "terminal.stdout.piped", Type: TypeBool,
		Description: "stdout is not attached to a TTY",
		Read: func(r *report.Report) (any, bool) {
			return r.Traits.Terminal.Stdout.Piped, true
		},
	},
	{
		Path: "terminal.stderr.tty", Type: TypeBool,
		Description: "stderr is attached to a TTY",
		Read: func(r *report.Report) (any, bool) {
			return r.Traits.Terminal.Stderr.TTY, true
		},
	},
	{
		Path: "terminal.stderr.piped", Type: TypeBool,
		Description: "stderr is not attached to a TTY",
		Read: func(r *report.Report) (any, bool) {
			return r.Traits.Terminal.Stderr.Piped, true
		},
	},
	{
		Path: "terminal.supports_hyperlinks", Type: TypeBool,
		Description: "the terminal is known to render OSC-8 hyperlinks",
		Read: func(r *report.Report) (any, bool) {
			return r.Traits.Terminal.SupportsHyperlinks, true
		},
	},
}

// contextPaths are the bare category names (`agent`, `ide`, `ci`,
// `terminal`) which the predicate evaluator treats as object-typed
// membership tests against report.Contexts.
var contextPaths = []string{"agent", "ide", "ci", "terminal"}

func presentString(s string) (any, bool) {
	if s == "" {
		return nil, false
	}
	return s, true
}

// Lookup finds a field by its exact dotted path, including the bare
// context names.
func Lookup(path string) (Field, bool) {
	for _, f := range fields {
		if f.Path == path {
			return f, true
		}
	}
	for _, c := range contextPaths {
		if c == path {
			return Field{Path: c, Type: TypeObject, Description: "presence of the " + c + " context"}, true
		}
	}
	return Field{}, false
}

// All returns every registered field (contexts plus leaves), sorted by
// path. --list enumerates this.
func All() []Field {
	out := make([]Field, 0, len(fields)+len(contextPaths))
	for _, c := range contextPaths {
		out = append(out, Field{Path: c, Type: TypeObject, Description: "presence of the " + c + " context"})
	}
	out = append(out, fields...)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Paths returns every known path, for suggestion/edit-distance lookups.
func Paths() []string {
	all := All()
	out := make([]string, len(all))
	for i, f := range all {
		out[i] = f.Path
	}
	return out
}

// HasContext reports whether ctx is present in r.Contexts.
func HasContext(r *report.Report, ctx string) bool {
	for _, c := range r.Contexts {
		if c == ctx {
			return true
		}
	}
	return false
}
