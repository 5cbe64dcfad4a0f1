package mapping

import "github.com/technicalpickles/envsense/internal/confidence"

// Agents is the static table of known AI coding agent vendors. Order is
// irrelevant to detection (the engine tie-breaks by confidence then
// lexicographic ID), but is kept alphabetical here for readability.
var Agents = []EnvMapping{
	{
		ID: "aider",
		Indicators: []EnvIndicator{
			{Key: "AIDER_MODEL", Value: NonEmpty},
		},
		Contexts:   []string{"agent"},
		Confidence: confidence.Medium,
	},
	{
		ID: "amp",
		Indicators: []EnvIndicator{
			{Key: "AMP_SESSION_ID", Value: NonEmpty},
		},
		Contexts:   []string{"agent"},
		Confidence: confidence.Medium,
	},
	{
		ID: "claude-code",
		Indicators: []EnvIndicator{
			{Key: "CLAUDECODE", Value: Exact("1"), Required: true},
			{Key: "CLAUDE_CODE_ENTRYPOINT", Value: NonEmpty},
		},
		Contexts:   []string{"agent"},
		Confidence: confidence.High,
	},
	{
		ID: "cline",
		Indicators: []EnvIndicator{
			{Key: "CLINE_ACTIVE", Value: NonEmpty},
		},
		Contexts:   []string{"agent"},
		Confidence: confidence.Medium,
	},
	{
		ID: "codebuddy",
		Indicators: []EnvIndicator{
			{Key: "CODEBUDDY_SESSION_ID", Value: NonEmpty},
		},
		Contexts:   []string{"agent"},
		Confidence: confidence.Medium,
	},
	{
		ID: "codex-cli",
		Indicators: []EnvIndicator{
			{Key: "CODEX_SANDBOX", Value: NonEmpty},
		},
		Contexts:   []string{"agent"},
		Confidence: confidence.Medium,
	},
	{
		ID: "copilot-cli",
		Indicators: []EnvIndicator{
			{Key: "COPILOT_AGENT_ID", Value: NonEmpty},
		},
		Contexts:   []string{"agent"},
		Confidence: confidence.Medium,
	},
	{
		ID: "cursor",
		Indicators: []EnvIndicator{
			{Key: "CURSOR_TRACE_ID", Value: NonEmpty, Required: true},
		},
		Contexts:   []string{"agent"},
		Confidence: confidence.High,
	},
	{
		ID: "gemini-cli",
		Indicators: []EnvIndicator{
			{Key: "GEMINI_CLI_SESSION_ID", Value: NonEmpty},
		},
		Contexts:   []string{"agent"},
		Confidence: confidence.Medium,
	},
	{
		ID: "openhands",
		Indicators: []EnvIndicator{
			{Key: "OPENHANDS_WORKSPACE", Value: NonEmpty},
		},
		Contexts:   []string{"agent"},
		Confidence: confidence.Medium,
	},
	{
		ID: "replit",
		Indicators: []EnvIndicator{
			{Key: "REPL_ID", Value: NonEmpty, Required: true},
			{Key: "REPLIT_AGENT", Value: NonEmpty, Required: true},
		},
		Contexts:   []string{"agent"},
		Confidence: confidence.High,
	},
	{
		ID: "windsurf",
		Indicators: []EnvIndicator{
			{Key: "WINDSURF_SESSION_ID", Value: NonEmpty},
		},
		Contexts:   []string{"agent"},
		Confidence: confidence.Medium,
	},
	{
		ID: "zed-agent",
		Indicators: []EnvIndicator{
			{Key: "ZED_AGENT_SESSION", Value: NonEmpty},
		},
		Contexts:   []string{"agent"},
		Confidence: confidence.Medium,
	},
}
