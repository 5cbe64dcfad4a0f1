// Package snapshot captures the immutable bundle of environment variables
// and per-stream TTY flags that is the sole input to the detection core.
package snapshot

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// Snapshot is an immutable, point-in-time capture of process inputs. It is
// created once at program start (or once per test case) and never mutated.
type Snapshot struct {
	env       map[string]string
	ttyStdin  bool
	ttyStdout bool
	ttyStderr bool
}

// Capture builds a Snapshot from the running process: os.Environ() and a
// real TTY probe of the three standard streams.
func Capture() Snapshot {
	return With(os.Environ(), isTerminal(os.Stdin.Fd()), isTerminal(os.Stdout.Fd()), isTerminal(os.Stderr.Fd()))
}

// With builds a Snapshot from an explicit "K=V" slice (the os.Environ()
// shape) and explicit TTY flags. Tests use this to inject synthetic
// environments without touching the real process state.
func With(environ []string, ttyStdin, ttyStdout, ttyStderr bool) Snapshot {
	return FromMap(envSliceToMap(environ), ttyStdin, ttyStdout, ttyStderr)
}

// FromMap builds a Snapshot directly from a pre-built env map. The map is
// defensively copied so later mutation by the caller can't leak into the
// Snapshot.
func FromMap(env map[string]string, ttyStdin, ttyStdout, ttyStderr bool) Snapshot {
	cp := make(map[string]string, len(env))
	for k, v := range env {
		cp[k] = v
	}
	return Snapshot{env: cp, ttyStdin: ttyStdin, ttyStdout: ttyStdout, ttyStderr: ttyStderr}
}

func envSliceToMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		// Last write wins on duplicate keys, matching os.Getenv semantics.
		m[k] = v
	}
	return m
}

// isTerminal probes a file descriptor for TTY-ness. A failed platform
// probe (closed fd, redirected to /dev/null on an OS without ioctl
// support, etc.) yields false; it is never treated as an error.
func isTerminal(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// Get returns the value of an env var and whether it was present.
// Lookups are case-sensitive, matching os.Getenv semantics.
func (s Snapshot) Get(key string) (string, bool) {
	v, ok := s.env[key]
	return v, ok
}

// Getenv returns the value of an env var, or "" if absent (mirrors
// os.Getenv's ergonomics for callers that don't need presence).
func (s Snapshot) Getenv(key string) string {
	return s.env[key]
}

// HasPrefix returns all env var names (unordered) that start with prefix.
func (s Snapshot) HasPrefix(prefix string) []string {
	var out []string
	for k := range s.env {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out
}

// TTYStdin reports whether stdin is attached to a terminal.
func (s Snapshot) TTYStdin() bool { return s.ttyStdin }

// TTYStdout reports whether stdout is attached to a terminal.
func (s Snapshot) TTYStdout() bool { return s.ttyStdout }

// TTYStderr reports whether stderr is attached to a terminal.
func (s Snapshot) TTYStderr() bool { return s.ttyStderr }

// Env returns a defensive copy of the captured environment. Detectors
// should prefer Get/HasPrefix.
func (s Snapshot) Env() map[string]string {
	cp := make(map[string]string, len(s.env))
	for k, v := range s.env {
		cp[k] = v
	}
	return cp
}
