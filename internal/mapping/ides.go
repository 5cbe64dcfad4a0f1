package mapping

import "github.com/technicalpickles/envsense/internal/confidence"

// IDEs is the static table of known IDE-hosted shell integrations.
var IDEs = []EnvMapping{
	{
		ID: "cursor",
		Indicators: []EnvIndicator{
			{Key: "CURSOR_TRACE_ID", Value: NonEmpty, Required: true},
			{Key: "TERM_PROGRAM", Value: Exact("vscode")},
		},
		Contexts:   []string{"ide"},
		Confidence: confidence.High,
	},
	{
		ID: "jetbrains",
		Indicators: []EnvIndicator{
			{Key: "TERMINAL_EMULATOR", Value: Exact("JetBrains-JediTerm"), Required: true},
		},
		Contexts:   []string{"ide"},
		Confidence: confidence.High,
	},
	{
		ID: "sublime",
		Indicators: []EnvIndicator{
			{Key: "SUBLIME_TEXT_ENV", Value: NonEmpty},
		},
		Contexts:   []string{"ide"},
		Confidence: confidence.Medium,
	},
	{
		ID: "vscode",
		Indicators: []EnvIndicator{
			{Key: "TERM_PROGRAM", Value: Exact("vscode"), Required: true},
		},
		Contexts:   []string{"ide"},
		Confidence: confidence.Medium,
	},
	{
		ID: "zed",
		Indicators: []EnvIndicator{
			{Key: "TERM_PROGRAM", Value: Exact("zed"), Required: true},
		},
		Contexts:   []string{"ide"},
		Confidence: confidence.Medium,
	},
}
