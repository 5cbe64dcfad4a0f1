// Package mapping declares the static, declarative rule tables the
// table-driven detectors (agent, ide, ci) evaluate against a Snapshot, and
// the matching semantics those rules share.
package mapping

import (
	"strconv"
	"strings"

	"github.com/technicalpickles/envsense/internal/confidence"
)

// MatchKind names the shape of an EnvIndicator's value clause.
type MatchKind int

const (
	// MatchNonEmpty is the default clause: the var exists and is nonempty.
	MatchNonEmpty MatchKind = iota
	// MatchExact requires the var to equal a specific string.
	MatchExact
	// MatchOneOf requires the var's value to belong to a fixed set.
	MatchOneOf
)

// Match describes the value clause of an EnvIndicator.
type Match struct {
	Kind MatchKind
	// Exact is used when Kind == MatchExact.
	Exact string
	// OneOf is used when Kind == MatchOneOf.
	OneOf []string
}

// Exact builds a Match that requires the variable to equal s exactly.
func Exact(s string) Match { return Match{Kind: MatchExact, Exact: s} }

// OneOf builds a Match that requires the variable's value to be a member
// of set.
func OneOf(set ...string) Match { return Match{Kind: MatchOneOf, OneOf: set} }

// NonEmpty is the Match used when an indicator declares no value clause.
var NonEmpty = Match{Kind: MatchNonEmpty}

// matches reports whether a captured value satisfies this clause.
func (m Match) matches(value string) bool {
	switch m.Kind {
	case MatchExact:
		return value == m.Exact
	case MatchOneOf:
		for _, v := range m.OneOf {
			if value == v {
				return true
			}
		}
		return false
	default: // MatchNonEmpty
		return value != ""
	}
}

// EnvIndicator is one predicate over one env var used as evidence that a
// mapping applies.
type EnvIndicator struct {
	Key      string
	Value    Match
	Required bool
}

// Env is the minimal interface EnvIndicator/EnvMapping need from a
// Snapshot, kept narrow so this package doesn't import snapshot (and so
// tests can pass a bare map).
type Env interface {
	Get(key string) (string, bool)
}

// evaluate reports whether this indicator is satisfied against env, and
// (if so) the value that satisfied it — used both for match evaluation and
// for building Evidence entries.
func (ind EnvIndicator) evaluate(env Env) (ok bool, value string) {
	v, present := env.Get(ind.Key)
	if !present {
		return false, ""
	}
	if !ind.Value.matches(v) {
		return false, ""
	}
	return true, v
}

// TransformKind names the normalization applied to a ValueMapping's
// extracted value.
type TransformKind int

const (
	TransformNone TransformKind = iota
	TransformToBool
	TransformToLowercase
	TransformEquals
	TransformContains
	TransformToInt
	// TransformPresenceBool treats a nonempty value other than the
	// literal string "false" as true. Several CI vendors signal "this is
	// a PR build" by merely setting a PR-number var (rather than a
	// proper boolean), so a plain ToBool transform would fail on e.g.
	// CIRCLE_PULL_REQUEST=https://github.com/...
	TransformPresenceBool
)

// Transform describes how a ValueMapping's extracted raw string is turned
// into the typed value stored in the Report's traits tree.
type Transform struct {
	Kind TransformKind
	// Arg is used by TransformEquals/TransformContains.
	Arg string
}

// ValueMapping extracts a contextual value (branch name, PR flag, etc.)
// for a winning mapping from the env var named by SourceKey, which need
// not be one of the mapping's indicators.
type ValueMapping struct {
	TargetKey string
	SourceKey string
	Required  bool
	Transform *Transform
}

// Apply resolves this ValueMapping against env. ok is false when the
// source var is absent (or, for Required mappings, when absent — callers
// treat that as "nothing to contribute", never fatal). warn is non-empty
// when a transform failed to apply: a ValueTransformWarning, logged but
// not fatal; the mapping is skipped and detection proceeds.
func (vm ValueMapping) Apply(env Env) (value any, ok bool, warn string) {
	raw, present := env.Get(vm.SourceKey)
	if !present {
		return nil, false, ""
	}
	if vm.Transform == nil {
		return raw, true, ""
	}
	switch vm.Transform.Kind {
	case TransformToBool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, false, "cannot convert " + vm.SourceKey + "=" + raw + " to bool"
		}
		return b, true, ""
	case TransformToLowercase:
		return strings.ToLower(raw), true, ""
	case TransformEquals:
		return raw == vm.Transform.Arg, true, ""
	case TransformContains:
		return strings.Contains(raw, vm.Transform.Arg), true, ""
	case TransformToInt:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, false, "cannot convert " + vm.SourceKey + "=" + raw + " to int"
		}
		return n, true, ""
	case TransformPresenceBool:
		return raw != "" && raw != "false", true, ""
	default:
		return raw, true, ""
	}
}

// EnvMapping is one vendor/variant's declarative detection rule.
type EnvMapping struct {
	ID            string
	Indicators    []EnvIndicator
	Facets        map[string]string
	Contexts      []string
	Traits        map[string]any
	ValueMappings []ValueMapping
	Confidence    confidence.Level
}

// MatchResult is the outcome of evaluating one EnvMapping against a
// Snapshot: whether it matched, and the indicators (with captured values)
// that contributed — used both to build Evidence and to feed
// ValueMappings.
type MatchResult struct {
	Mapping     EnvMapping
	Matched     bool
	AllRequired bool // true iff the mapping declares at least one Required indicator and every one matched (used for near-match evidence on losers)
	MatchedKeys map[string]string
}

// Evaluate applies the mapping's matching semantics: a mapping
// matches iff all Required indicators match AND at least one indicator
// (required or optional) matches. A mapping with zero Required
// indicators needs at least one optional match; a mapping with N
// Required indicators and zero declared optionals needs all N required
// to match (no extra optional needed).
func (m EnvMapping) Evaluate(env Env) MatchResult {
	matchedKeys := map[string]string{}
	requiredCount := 0
	requiredMatched := 0
	anyMatched := false

	for _, ind := range m.Indicators {
		if ind.Required {
			requiredCount++
		}
		ok, value := ind.evaluate(env)
		if !ok {
			continue
		}
		anyMatched = true
		matchedKeys[ind.Key] = value
		if ind.Required {
			requiredMatched++
		}
	}

	allRequired := requiredMatched == requiredCount
	matched := allRequired && anyMatched

	return MatchResult{
		Mapping:     m,
		Matched:     matched,
		AllRequired: allRequired && requiredCount > 0,
		MatchedKeys: matchedKeys,
	}
}
