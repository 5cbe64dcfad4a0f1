// Package cliapp is the outermost caller of the detection core: a flat
// flag.FlagSet dispatcher returning process exit codes, with a
// Runner/Run(args) int shape for testability.
package cliapp

// Error code constants use the ENVSENSE_E_<KIND> family. They are
// printed to stderr alongside the human-readable message, never to
// stdout.
const (
	CodeUsage         = "ENVSENSE_E_USAGE"
	CodeInvalidSyntax = "ENVSENSE_E_SYNTAX"
	CodeInvalidField  = "ENVSENSE_E_FIELD"
)
