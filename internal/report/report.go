// Package report defines the typed output tree the detection engine
// produces and its deterministic JSON projection.
package report

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/technicalpickles/envsense/internal/evidence"
)

// SchemaVersion is the literal version string embedded in every Report.
const SchemaVersion = "0.3.0"

// Report is the typed output of the detection engine. Field declaration
// order here is the JSON key order: the projection must not reorder
// alphabetically.
type Report struct {
	Version  string              `json:"version"`
	Contexts []string            `json:"contexts"`
	Traits   Traits              `json:"traits"`
	Evidence []evidence.Evidence `json:"evidence"`
}

// Traits holds the per-category trait subtrees.
type Traits struct {
	Agent    AgentTraits    `json:"agent"`
	IDE      IDETraits      `json:"ide"`
	CI       CITraits       `json:"ci"`
	Terminal TerminalTraits `json:"terminal"`
}

type AgentTraits struct {
	ID string `json:"id,omitempty"`
}

type IDETraits struct {
	ID string `json:"id,omitempty"`
}

type CITraits struct {
	ID     string `json:"id,omitempty"`
	Vendor string `json:"vendor,omitempty"`
	Name   string `json:"name,omitempty"`
	IsPR   *bool  `json:"is_pr,omitempty"`
	Branch string `json:"branch,omitempty"`
}

type StreamTraits struct {
	TTY   bool `json:"tty"`
	Piped bool `json:"piped"`
}

type TerminalTraits struct {
	Interactive        bool         `json:"interactive"`
	ColorLevel         string       `json:"color_level"`
	Stdin              StreamTraits `json:"stdin"`
	Stdout             StreamTraits `json:"stdout"`
	Stderr             StreamTraits `json:"stderr"`
	SupportsHyperlinks bool         `json:"supports_hyperlinks"`
}

// New constructs an empty Report with all optionals absent, all
// booleans false.
func New() *Report {
	return &Report{
		Version:  SchemaVersion,
		Contexts: []string{},
		Evidence: []evidence.Evidence{},
		Traits:   Traits{Terminal: TerminalTraits{ColorLevel: "none"}},
	}
}

// colorRank orders color_level for the "never regressed" merge rule.
var colorRank = map[string]int{
	"none":      0,
	"ansi16":    1,
	"ansi256":   2,
	"truecolor": 3,
}

// AddContext unions a single context name into the set, keeping it
// sorted and deduplicated.
func (r *Report) AddContext(ctx string) {
	for _, existing := range r.Contexts {
		if existing == ctx {
			return
		}
	}
	r.Contexts = append(r.Contexts, ctx)
	sort.Strings(r.Contexts)
}

// ApplyTrait overlays a single dotted-path trait value using the merge
// rules: last-writer-wins except color_level (max of the ordered enum)
// and the two terminal booleans (supports_hyperlinks is OR'd;
// interactive is recomputed afterward by EnforceInvariants rather than
// merged here).
func (r *Report) ApplyTrait(path string, value any) {
	switch path {
	case "agent.id":
		r.Traits.Agent.ID = asString(value)
	case "ide.id":
		r.Traits.IDE.ID = asString(value)
	case "ci.id":
		r.Traits.CI.ID = asString(value)
	case "ci.vendor":
		r.Traits.CI.Vendor = asString(value)
	case "ci.name":
		r.Traits.CI.Name = asString(value)
	case "ci.branch":
		r.Traits.CI.Branch = asString(value)
	case "ci.is_pr":
		b := asBool(value)
		r.Traits.CI.IsPR = &b
	case "terminal.interactive":
		r.Traits.Terminal.Interactive = asBool(value)
	case "terminal.color_level":
		lvl := asString(value)
		if colorRank[lvl] > colorRank[r.Traits.Terminal.ColorLevel] {
			r.Traits.Terminal.ColorLevel = lvl
		}
	case "terminal.stdin.tty":
		r.Traits.Terminal.Stdin.TTY = asBool(value)
	case "terminal.stdin.piped":
		r.Traits.Terminal.Stdin.Piped = asBool(value)
	case "terminal.stdout.tty":
		r.Traits.Terminal.Stdout.TTY = asBool(value)
	case "terminal.stdout.piped":
		r.Traits.Terminal.Stdout.Piped = asBool(value)
	case "terminal.stderr.tty":
		r.Traits.Terminal.Stderr.TTY = asBool(value)
	case "terminal.stderr.piped":
		r.Traits.Terminal.Stderr.Piped = asBool(value)
	case "terminal.supports_hyperlinks":
		r.Traits.Terminal.SupportsHyperlinks = r.Traits.Terminal.SupportsHyperlinks || asBool(value)
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

// EnforceInvariants restores invariants a detector might otherwise
// leave inconsistent: a trait id implies its context is present, stream
// piped is always the complement of tty, and terminal.interactive
// always recomputes from the two stream flags rather than trusting
// whatever a detector patched in independently.
func (r *Report) EnforceInvariants() {
	if r.Traits.Agent.ID != "" {
		r.AddContext("agent")
	}
	if r.Traits.IDE.ID != "" {
		r.AddContext("ide")
	}
	if r.Traits.CI.ID != "" {
		r.AddContext("ci")
	}
	r.Traits.Terminal.Stdin.Piped = !r.Traits.Terminal.Stdin.TTY
	r.Traits.Terminal.Stdout.Piped = !r.Traits.Terminal.Stdout.TTY
	r.Traits.Terminal.Stderr.Piped = !r.Traits.Terminal.Stderr.TTY
	r.Traits.Terminal.Interactive = r.Traits.Terminal.Stdin.TTY && r.Traits.Terminal.Stdout.TTY
	if r.Traits.Terminal.ColorLevel == "" {
		r.Traits.Terminal.ColorLevel = "none"
	}
}

// SortEvidence orders evidence stably by (signal, key).
func (r *Report) SortEvidence() {
	sort.SliceStable(r.Evidence, func(i, j int) bool {
		return evidence.Less(r.Evidence[i], r.Evidence[j])
	})
}

// MarshalCanonical encodes v with HTML escaping disabled and a trailing
// newline, so repeated calls against the same value are byte-identical.
func MarshalCanonical(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
