package detect

import (
	"github.com/technicalpickles/envsense/internal/mapping"
	"github.com/technicalpickles/envsense/internal/snapshot"
)

// CI is the CI detector: the shared table-driven algorithm plus
// the winning vendor's ValueMappings extracting branch/is_pr/name from
// the snapshot's env vars (handled inside tableDetect).
func CI(snap snapshot.Snapshot) Detection {
	return CIFromTable(snap, mapping.CI)
}

// CIFromTable runs the CI detector against a caller-supplied table
// instead of the built-in mapping.CI.
func CIFromTable(snap snapshot.Snapshot, table []mapping.EnvMapping) Detection {
	return gatedTableDetect(snap, table, "ci")
}
