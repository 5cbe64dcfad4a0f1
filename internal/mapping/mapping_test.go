package mapping

import (
	"testing"

	"github.com/technicalpickles/envsense/internal/confidence"
)

type fakeEnv map[string]string

func (f fakeEnv) Get(key string) (string, bool) {
	v, ok := f[key]
	return v, ok
}

func TestEvaluate_RequiredIndicatorAloneSuffices(t *testing.T) {
	m := EnvMapping{
		ID: "cursor",
		Indicators: []EnvIndicator{
			{Key: "CURSOR_TRACE_ID", Value: NonEmpty, Required: true},
			{Key: "TERM_PROGRAM", Value: Exact("vscode")},
		},
	}

	// Required matches but no optional: mapping needs at least one
	// indicator to match overall, and the required one counts as that.
	res := m.Evaluate(fakeEnv{"CURSOR_TRACE_ID": "abc"})
	if !res.Matched {
		t.Fatalf("expected match when required indicator alone matches: %+v", res)
	}

	// Required missing entirely: no match, and AllRequired is false.
	res = m.Evaluate(fakeEnv{"TERM_PROGRAM": "vscode"})
	if res.Matched {
		t.Fatalf("should not match without the required indicator: %+v", res)
	}
	if res.AllRequired {
		t.Fatalf("AllRequired should be false when the required indicator is missing: %+v", res)
	}
}

func TestEvaluate_ZeroRequiredNeedsOneOptional(t *testing.T) {
	m := EnvMapping{
		ID: "generic",
		Indicators: []EnvIndicator{
			{Key: "CI", Value: NonEmpty},
		},
	}
	if m.Evaluate(fakeEnv{}).Matched {
		t.Fatal("empty env should not match a NonEmpty optional indicator")
	}
	if !m.Evaluate(fakeEnv{"CI": "true"}).Matched {
		t.Fatal("CI=true should match the generic fallback mapping")
	}
}

func TestEvaluate_OneOfMatch(t *testing.T) {
	m := EnvMapping{
		ID: "x",
		Indicators: []EnvIndicator{
			{Key: "MODE", Value: OneOf("a", "b"), Required: true},
		},
	}
	if !m.Evaluate(fakeEnv{"MODE": "b"}).Matched {
		t.Fatal("MODE=b should satisfy OneOf(a,b)")
	}
	if m.Evaluate(fakeEnv{"MODE": "c"}).Matched {
		t.Fatal("MODE=c should not satisfy OneOf(a,b)")
	}
}

func TestValueMapping_ToBoolTransformWarnsOnBadInput(t *testing.T) {
	vm := ValueMapping{TargetKey: "is_pr", SourceKey: "PR_ID", Transform: &Transform{Kind: TransformToBool}}
	_, ok, warn := vm.Apply(fakeEnv{"PR_ID": "not-a-bool"})
	if ok {
		t.Fatal("expected ok=false on unparseable bool")
	}
	if warn == "" {
		t.Fatal("expected a non-fatal warning message")
	}
}

func TestValueMapping_PresenceBoolTreatsNonemptyAsTrue(t *testing.T) {
	vm := ValueMapping{TargetKey: "is_pr", SourceKey: "CIRCLE_PULL_REQUEST", Transform: &Transform{Kind: TransformPresenceBool}}
	v, ok, warn := vm.Apply(fakeEnv{"CIRCLE_PULL_REQUEST": "https://github.com/x/y/pull/1"})
	if !ok || warn != "" || v != true {
		t.Fatalf("expected true,true,'' got %v,%v,%q", v, ok, warn)
	}
	v, ok, warn = vm.Apply(fakeEnv{"CIRCLE_PULL_REQUEST": "false"})
	if !ok || warn != "" || v != false {
		t.Fatalf("expected false,true,'' got %v,%v,%q", v, ok, warn)
	}
}

func TestValueMapping_MissingSourceIsNotOkButNotAnError(t *testing.T) {
	vm := ValueMapping{TargetKey: "branch", SourceKey: "MISSING"}
	v, ok, warn := vm.Apply(fakeEnv{})
	if ok || v != nil || warn != "" {
		t.Fatalf("expected (nil,false,''), got (%v,%v,%q)", v, ok, warn)
	}
}

func TestEnvMapping_ConfidenceOrdering(t *testing.T) {
	if !(confidence.High > confidence.Medium && confidence.Medium > confidence.Low) {
		t.Fatal("confidence tiers must be strictly ordered High > Medium > Low")
	}
}
