package predicate

import (
	"testing"

	"github.com/technicalpickles/envsense/internal/report"
)

func buildReport() *report.Report {
	r := report.New()
	r.ApplyTrait("agent.id", "claude-code")
	r.ApplyTrait("terminal.stdin.tty", true)
	r.ApplyTrait("terminal.stdout.tty", true)
	r.ApplyTrait("terminal.color_level", "truecolor")
	r.EnforceInvariants()
	return r
}

func TestParse_BareAndNegated(t *testing.T) {
	p, err := Parse("agent")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Negate || p.HasEq || p.Path != "agent" {
		t.Fatalf("unexpected parse: %+v", p)
	}

	neg, err := Parse("!agent")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !neg.Negate || neg.Path != "agent" {
		t.Fatalf("unexpected parse: %+v", neg)
	}
}

func TestParse_WithLiteral(t *testing.T) {
	p, err := Parse(`ci.id="github_actions"`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !p.HasEq || p.Literal != "github_actions" || p.Path != "ci.id" {
		t.Fatalf("unexpected parse: %+v", p)
	}
}

func TestParse_EmptyPredicateIsInvalidSyntax(t *testing.T) {
	_, err := Parse("")
	assertSyntaxError(t, err)
}

func TestParse_BadCharacterIsInvalidSyntax(t *testing.T) {
	_, err := Parse("agent.id$")
	assertSyntaxError(t, err)
}

func assertSyntaxError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	perr, ok := err.(*Error)
	if !ok || perr.Kind != KindInvalidSyntax {
		t.Fatalf("expected InvalidSyntax, got %v", err)
	}
}

func TestEvaluate_BarePathTruthiness(t *testing.T) {
	r := buildReport()

	p, _ := Parse("agent")
	ok, err := Evaluate(p, r)
	if err != nil || !ok {
		t.Fatalf("agent should be truthy: ok=%v err=%v", ok, err)
	}

	p, _ = Parse("ide")
	ok, err = Evaluate(p, r)
	if err != nil || ok {
		t.Fatalf("ide should be falsy: ok=%v err=%v", ok, err)
	}
}

func TestEvaluate_Negation(t *testing.T) {
	r := buildReport()
	p, _ := Parse("!ide")
	ok, err := Evaluate(p, r)
	if err != nil || !ok {
		t.Fatalf("!ide should be true: ok=%v err=%v", ok, err)
	}
}

func TestEvaluate_EqualityComparison(t *testing.T) {
	r := buildReport()
	p, _ := Parse("agent.id=claude-code")
	ok, err := Evaluate(p, r)
	if err != nil || !ok {
		t.Fatalf("expected match: ok=%v err=%v", ok, err)
	}

	p, _ = Parse("agent.id=cursor")
	ok, err = Evaluate(p, r)
	if err != nil || ok {
		t.Fatalf("expected no match: ok=%v err=%v", ok, err)
	}
}

func TestParse_RoundTripsThroughString(t *testing.T) {
	for _, src := range []string{"agent", "!agent", "ci.id=github_actions", "!terminal.interactive", `ci.branch="main"`} {
		p, err := Parse(src)
		if err != nil {
			t.Fatalf("Parse(%q): %v", src, err)
		}
		again, err := Parse(p.String())
		if err != nil {
			t.Fatalf("Parse(%q): %v", p.String(), err)
		}
		if again.Negate != p.Negate || again.Path != p.Path || again.HasEq != p.HasEq || again.Literal != p.Literal {
			t.Fatalf("round trip changed %q: %+v vs %+v", src, p, again)
		}
	}
}

func TestEvaluate_EqualityOnContextPath(t *testing.T) {
	r := buildReport()

	p, _ := Parse("agent=agent")
	ok, err := Evaluate(p, r)
	if err != nil || !ok {
		t.Fatalf("agent=agent should be true when the agent context is present: ok=%v err=%v", ok, err)
	}

	p, _ = Parse("ide=ide")
	ok, err = Evaluate(p, r)
	if err != nil || ok {
		t.Fatalf("ide=ide should be false when the ide context is absent: ok=%v err=%v", ok, err)
	}
}

func TestEvaluate_UnknownFieldSuggestsAlternatives(t *testing.T) {
	r := buildReport()
	p, _ := Parse("agent.ids")
	_, err := Evaluate(p, r)
	perr, ok := err.(*Error)
	if !ok || perr.Kind != KindInvalidField {
		t.Fatalf("expected InvalidField, got %v", err)
	}
	if len(perr.Suggestions) == 0 {
		t.Fatal("expected at least one suggestion")
	}
	found := false
	for _, s := range perr.Suggestions {
		if s == "agent.id" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected agent.id among suggestions, got %v", perr.Suggestions)
	}
}

func TestEvaluate_NegationInvertsResult(t *testing.T) {
	r := buildReport()
	for _, path := range []string{"agent", "ide", "terminal.interactive", "ci.id=foo"} {
		p, err := Parse(path)
		if err != nil {
			t.Fatalf("Parse(%q): %v", path, err)
		}
		negP, err := Parse("!" + path)
		if err != nil {
			t.Fatalf("Parse(!%q): %v", path, err)
		}
		got, err := Evaluate(p, r)
		if err != nil {
			t.Fatalf("Evaluate(%q): %v", path, err)
		}
		negGot, err := Evaluate(negP, r)
		if err != nil {
			t.Fatalf("Evaluate(!%q): %v", path, err)
		}
		if got == negGot {
			t.Fatalf("negation did not invert the result for %q: got=%v negGot=%v", path, got, negGot)
		}
	}
}
