package cliapp

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/technicalpickles/envsense/internal/config"
	"github.com/technicalpickles/envsense/internal/report"
)

func (r Runner) runInfo(args []string) int {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	jsonOut := fs.Bool("json", false, "print JSON output")
	fieldsCSV := fs.String("fields", "", "comma-separated list of field paths to include")
	help := fs.Bool("help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return r.failUsage("info: invalid flags")
	}
	if *help {
		fmt.Fprintln(r.Stdout, "envsense info [--json] [--fields p1,p2,...]")
		return 0
	}

	// Project config supplies defaults for flags the caller left unset;
	// explicit flags always win.
	explicit := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
	if cfg, err := config.Load(config.DefaultConfigPath); err == nil {
		if cfg.Defaults.JSON && !explicit["json"] {
			*jsonOut = true
		}
		if len(cfg.Defaults.Fields) > 0 && !explicit["fields"] {
			*fieldsCSV = strings.Join(cfg.Defaults.Fields, ",")
		}
	}

	var fields []string
	if strings.TrimSpace(*fieldsCSV) != "" {
		for _, p := range strings.Split(*fieldsCSV, ",") {
			fields = append(fields, strings.TrimSpace(p))
		}
		if err := validateFields(fields); err != nil {
			fmt.Fprintln(r.Stderr, err.Error())
			return 2
		}
	}

	rep := detectReport()

	if *jsonOut {
		return r.writeJSON(rep, fields)
	}
	renderHuman(r.Stdout, rep, fields)
	return 0
}

func (r Runner) writeJSON(rep *report.Report, fields []string) int {
	if len(fields) == 0 {
		b, err := report.MarshalCanonical(rep)
		if err != nil {
			fmt.Fprintf(r.Stderr, "internal error marshaling report: %v\n", err)
			return 2
		}
		fmt.Fprint(r.Stdout, string(b))
		return 0
	}

	// --fields under --json projects a flat ordered object keyed by the
	// requested dotted paths, since the full nested Report shape isn't
	// addressable by an arbitrary field subset.
	ordered := make([]fieldValue, 0, len(fields))
	for _, p := range fields {
		ordered = append(ordered, fieldValue{Path: p, Value: fieldJSONValue(rep, p)})
	}
	b, err := report.MarshalCanonical(orderedFields(ordered))
	if err != nil {
		fmt.Fprintf(r.Stderr, "internal error marshaling fields: %v\n", err)
		return 2
	}
	fmt.Fprint(r.Stdout, string(b))
	return 0
}
