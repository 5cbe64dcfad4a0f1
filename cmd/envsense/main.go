package main

import (
	"os"

	"github.com/technicalpickles/envsense/internal/cliapp"
)

var version = "0.0.0-dev"

func main() {
	r := cliapp.Runner{
		Version: version,
	}
	os.Exit(r.Run(os.Args[1:]))
}
