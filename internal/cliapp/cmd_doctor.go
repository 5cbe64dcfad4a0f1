package cliapp

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/technicalpickles/envsense/internal/config"
	"github.com/technicalpickles/envsense/internal/doctor"
)

// doctorReport adds a per-invocation correlation id to the doctor
// checklist for --json output only; it never touches the detection
// Report or its determinism guarantees.
type doctorReport struct {
	DiagnosticID string         `json:"diagnosticId"`
	OK           bool           `json:"ok"`
	Checks       []doctor.Check `json:"checks"`
}

func (r Runner) runDoctor(args []string) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	jsonOut := fs.Bool("json", false, "print the checklist as a JSON object")
	help := fs.Bool("help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return r.failUsage("doctor: invalid flags")
	}
	if *help {
		fmt.Fprintln(r.Stdout, "envsense doctor [--json]")
		return 0
	}

	res := doctor.Run(config.DefaultConfigPath)

	if *jsonOut {
		out := doctorReport{DiagnosticID: uuid.NewString(), OK: res.OK, Checks: res.Checks}
		b, err := json.Marshal(out)
		if err != nil {
			fmt.Fprintf(r.Stderr, "internal error marshaling doctor result: %v\n", err)
			return 2
		}
		fmt.Fprintln(r.Stdout, string(b))
	} else {
		for _, c := range res.Checks {
			status := "ok"
			if !c.OK {
				status = "FAIL"
			}
			if c.Message != "" {
				fmt.Fprintf(r.Stdout, "[%s] %s: %s\n", status, c.ID, c.Message)
			} else {
				fmt.Fprintf(r.Stdout, "[%s] %s\n", status, c.ID)
			}
		}
	}

	if res.OK {
		return 0
	}
	return 1
}
