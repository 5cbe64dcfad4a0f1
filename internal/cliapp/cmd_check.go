package cliapp

import (
	"flag"
	"fmt"
	"io"

	"github.com/technicalpickles/envsense/internal/predicate"
	"github.com/technicalpickles/envsense/internal/registry"
	"github.com/technicalpickles/envsense/internal/report"
)

func (r Runner) runCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	any_ := fs.Bool("any", false, "combine predicates with logical OR instead of AND")
	all := fs.Bool("all", false, "combine predicates with logical AND (default)")
	quiet := fs.Bool("quiet", false, "suppress stdout, rely on exit code only")
	jsonOut := fs.Bool("json", false, "print a JSON result object")
	list := fs.Bool("list", false, "list every known field path and exit")
	explain := fs.Bool("explain", false, "show the evaluated path, value, and backing evidence per predicate")
	help := fs.Bool("help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return r.failUsage("check: invalid flags")
	}
	if *help {
		fmt.Fprintln(r.Stdout, `envsense check [--any|--all] [--quiet] [--json] [--list] [--explain] PREDICATE...`)
		return 0
	}

	predicates := fs.Args()

	if *list {
		if *any_ || *all || *quiet || len(predicates) > 0 {
			return r.failUsage("check: --list is mutually exclusive with --any/--all, --quiet, and predicates")
		}
		r.printFieldList()
		return 0
	}
	if *any_ && *all {
		return r.failUsage("check: --any and --all are mutually exclusive")
	}
	if *quiet && *jsonOut {
		return r.failUsage("check: --quiet and --json are mutually exclusive")
	}
	if len(predicates) == 0 {
		return r.failUsage("check: at least one predicate is required")
	}

	rep := detectReport()

	results := make([]bool, len(predicates))
	for i, raw := range predicates {
		p, err := predicate.Parse(raw)
		if err != nil {
			r.reportPredicateError(raw, err)
			return 2
		}
		ok, err := predicate.Evaluate(p, rep)
		if err != nil {
			r.reportPredicateError(raw, err)
			return 2
		}
		results[i] = ok
		if *explain {
			r.explainPredicate(p, rep, ok)
		}
	}

	combined := results[0]
	for _, ok := range results[1:] {
		if *any_ {
			combined = combined || ok
		} else {
			combined = combined && ok
		}
	}

	if !*quiet {
		if *jsonOut {
			fmt.Fprintf(r.Stdout, "{\"result\":%v}\n", combined)
		} else {
			fmt.Fprintf(r.Stdout, "%v\n", combined)
		}
	}
	if combined {
		return 0
	}
	return 1
}

// reportPredicateError emits a single stderr line naming the failing
// predicate and stops evaluating remaining predicates (the caller
// returns 2 immediately after this).
func (r Runner) reportPredicateError(raw string, err error) {
	if perr, ok := err.(*predicate.Error); ok {
		fmt.Fprintf(r.Stderr, "%s: %q: %s\n", predicateErrorCode(perr.Kind), raw, perr.Error())
		return
	}
	fmt.Fprintf(r.Stderr, "%s: %s: %v\n", CodeUsage, raw, err)
}

func predicateErrorCode(kind predicate.Kind) string {
	switch kind {
	case predicate.KindInvalidSyntax:
		return CodeInvalidSyntax
	case predicate.KindInvalidField:
		return CodeInvalidField
	default:
		return CodeUsage
	}
}

func (r Runner) printFieldList() {
	for _, f := range registry.All() {
		fmt.Fprintf(r.Stdout, "%-28s %-8s %s\n", f.Path, f.Type, f.Description)
	}
}

func (r Runner) explainPredicate(p *predicate.Predicate, rep *report.Report, result bool) {
	value := "-"
	if f, ok := registry.Lookup(p.Path); ok {
		value = stringifyField(f, rep)
	}
	var backers []string
	for _, ev := range rep.Evidence {
		for _, s := range ev.Supports {
			if s == p.Path || s == firstSegment(p.Path) {
				backers = append(backers, ev.Key)
			}
		}
	}
	fmt.Fprintf(r.Stdout, "%s: path=%s value=%s result=%v evidence=%v\n", p.Raw, p.Path, value, result, backers)
}

func firstSegment(path string) string {
	for i, r := range path {
		if r == '.' {
			return path[:i]
		}
	}
	return path
}
