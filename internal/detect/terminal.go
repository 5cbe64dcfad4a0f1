package detect

import (
	"strings"

	"github.com/technicalpickles/envsense/internal/confidence"
	"github.com/technicalpickles/envsense/internal/evidence"
	"github.com/technicalpickles/envsense/internal/snapshot"
)

// ColorLevel enumerates the terminal color support tiers.
type ColorLevel int

const (
	ColorNone ColorLevel = iota
	ColorAnsi16
	ColorAnsi256
	ColorTruecolor
)

// String renders the lowercase wire/CLI name of the level.
func (c ColorLevel) String() string {
	switch c {
	case ColorTruecolor:
		return "truecolor"
	case ColorAnsi256:
		return "ansi256"
	case ColorAnsi16:
		return "ansi16"
	default:
		return "none"
	}
}

// hyperlinkAllowlist names TERM_PROGRAM values known to render OSC-8
// hyperlinks.
var hyperlinkAllowlist = map[string]bool{
	"iterm.app": true,
	"vscode":    true,
	"wezterm":   true,
	"ghostty":   true,
	"kitty":     true,
	"hyper":     true,
	"tabby":     true,
	"rio":       true,
}

var ansi16Terms = map[string]bool{
	"xterm":  true,
	"screen": true,
	"vt100":  true,
	"vt220":  true,
	"linux":  true,
	"rxvt":   true,
	"tmux":   true,
	"ansi":   true,
	"cygwin": true,
}

// Terminal is the terminal detector: it reads TTY flags directly from
// the Snapshot (not table-driven) and derives color_level and
// supports_hyperlinks from a small set of well-known env vars.
func Terminal(snap snapshot.Snapshot) Detection {
	d := newDetection()

	ttyIn, ttyOut, ttyErr := snap.TTYStdin(), snap.TTYStdout(), snap.TTYStderr()
	interactive := ttyIn && ttyOut

	// The terminal context only applies when at least one standard stream
	// is actually attached to a TTY; a fully redirected/non-interactive
	// process (the common CI shape) reports no terminal context at all.
	if ttyIn || ttyOut || ttyErr {
		d.ContextsAdd = append(d.ContextsAdd, "terminal")
	}
	d.TraitsPatch["terminal.interactive"] = interactive
	d.TraitsPatch["terminal.stdin.tty"] = ttyIn
	d.TraitsPatch["terminal.stdin.piped"] = !ttyIn
	d.TraitsPatch["terminal.stdout.tty"] = ttyOut
	d.TraitsPatch["terminal.stdout.piped"] = !ttyOut
	d.TraitsPatch["terminal.stderr.tty"] = ttyErr
	d.TraitsPatch["terminal.stderr.piped"] = !ttyErr

	level, levelEvidence := colorLevel(snap, ttyOut)
	d.TraitsPatch["terminal.color_level"] = level.String()
	d.Evidence = append(d.Evidence, levelEvidence...)

	hyperlinks, hyperlinkEv := supportsHyperlinks(snap, ttyOut)
	d.TraitsPatch["terminal.supports_hyperlinks"] = hyperlinks
	if hyperlinkEv != nil {
		d.Evidence = append(d.Evidence, *hyperlinkEv)
	}

	d.Evidence = append(d.Evidence, evidence.New(
		evidence.SignalTty, "stdin", boolStr(ttyIn), []string{"terminal"}, confidence.Terminal,
	))
	d.Evidence = append(d.Evidence, evidence.New(
		evidence.SignalTty, "stdout", boolStr(ttyOut), []string{"terminal"}, confidence.Terminal,
	))
	d.Evidence = append(d.Evidence, evidence.New(
		evidence.SignalTty, "stderr", boolStr(ttyErr), []string{"terminal"}, confidence.Terminal,
	))

	return d
}

// colorLevel ranks the color-support signals by precedence: NO_COLOR
// first, then FORCE_COLOR/COLORTERM truecolor, then 256-color and
// 16-color TERM matches, falling back to none.
func colorLevel(snap snapshot.Snapshot, ttyOut bool) (ColorLevel, []evidence.Evidence) {
	if _, noColor := snap.Get("NO_COLOR"); noColor {
		return ColorNone, []evidence.Evidence{evidence.New(
			evidence.SignalEnv, "NO_COLOR", snap.Getenv("NO_COLOR"), []string{"terminal"}, confidence.Terminal,
		)}
	}
	if !ttyOut {
		return ColorNone, nil
	}

	forceColor := snap.Getenv("FORCE_COLOR")
	colorterm := strings.ToLower(snap.Getenv("COLORTERM"))
	term := snap.Getenv("TERM")

	if forceColor == "3" || colorterm == "truecolor" || colorterm == "24bit" {
		key, val := evidenceForColorWinner(forceColor, "FORCE_COLOR", colorterm, "COLORTERM")
		return ColorTruecolor, []evidence.Evidence{evidence.New(evidence.SignalEnv, key, val, []string{"terminal"}, confidence.Terminal)}
	}
	if forceColor == "2" || strings.HasSuffix(term, "-256color") {
		if forceColor == "2" {
			return ColorAnsi256, []evidence.Evidence{evidence.New(evidence.SignalEnv, "FORCE_COLOR", forceColor, []string{"terminal"}, confidence.Terminal)}
		}
		return ColorAnsi256, []evidence.Evidence{evidence.New(evidence.SignalEnv, "TERM", term, []string{"terminal"}, confidence.Terminal)}
	}
	if ansi16Terms[term] {
		return ColorAnsi16, []evidence.Evidence{evidence.New(evidence.SignalEnv, "TERM", term, []string{"terminal"}, confidence.Terminal)}
	}
	return ColorNone, nil
}

func evidenceForColorWinner(forceColor, forceKey, colorterm, colortermKey string) (key, val string) {
	if forceColor == "3" {
		return forceKey, forceColor
	}
	return colortermKey, colorterm
}

func supportsHyperlinks(snap snapshot.Snapshot, ttyOut bool) (bool, *evidence.Evidence) {
	if !ttyOut {
		return false, nil
	}
	prog := strings.ToLower(snap.Getenv("TERM_PROGRAM"))
	if prog == "" || !hyperlinkAllowlist[prog] {
		return false, nil
	}
	ev := evidence.New(evidence.SignalEnv, "TERM_PROGRAM", snap.Getenv("TERM_PROGRAM"), []string{"terminal"}, confidence.Terminal)
	return true, &ev
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
