package detect

import (
	"github.com/technicalpickles/envsense/internal/mapping"
	"github.com/technicalpickles/envsense/internal/snapshot"
)

// IDE is the IDE detector. It is not mutually exclusive with the agent
// detector (an AI agent can itself run inside an IDE's integrated
// terminal).
func IDE(snap snapshot.Snapshot) Detection {
	return IDEFromTable(snap, mapping.IDEs)
}

// IDEFromTable runs the IDE detector against a caller-supplied table
// instead of the built-in mapping.IDEs.
func IDEFromTable(snap snapshot.Snapshot, table []mapping.EnvMapping) Detection {
	return gatedTableDetect(snap, table, "ide")
}
