// Package evidence defines the provenance record each detector emits for
// every atomic observation it makes against a Snapshot.
package evidence

import "github.com/technicalpickles/envsense/internal/confidence"

// Signal names the class of observation an Evidence entry is derived from.
type Signal string

const (
	SignalEnv  Signal = "env"
	SignalTty  Signal = "tty"
	SignalProc Signal = "proc"
	SignalFs   Signal = "fs"
)

// Evidence is an immutable record of one observation that backed part of a
// Report. Entries accumulate append-only over the course of a single
// detect() call; they are never mutated after construction.
type Evidence struct {
	Signal     Signal           `json:"signal"`
	Key        string           `json:"key"`
	Value      string           `json:"value,omitempty"`
	Supports   []string         `json:"supports,omitempty"`
	Confidence confidence.Level `json:"confidence"`
}

// New builds an Evidence entry, defensively copying the supports slice so
// callers can't mutate it out from under the engine after the fact.
func New(signal Signal, key string, value string, supports []string, conf confidence.Level) Evidence {
	var s []string
	if len(supports) > 0 {
		s = append(s, supports...)
	}
	return Evidence{
		Signal:     signal,
		Key:        key,
		Value:      value,
		Supports:   s,
		Confidence: conf,
	}
}

// SortKey is the stable sort key used to order evidence: (signal, key)
// ascending.
type SortKey struct {
	Signal Signal
	Key    string
}

func (e Evidence) SortKey() SortKey {
	return SortKey{Signal: e.Signal, Key: e.Key}
}

// Less implements the comparator used by report.Report.SortEvidence's
// stable sort.
func Less(a, b Evidence) bool {
	if a.Signal != b.Signal {
		return a.Signal < b.Signal
	}
	return a.Key < b.Key
}
