package detect

import (
	"github.com/technicalpickles/envsense/internal/mapping"
	"github.com/technicalpickles/envsense/internal/snapshot"
)

// Agent is the agent detector: Override Gate first, then the
// table-driven matching algorithm shared by agent/ide/ci.
func Agent(snap snapshot.Snapshot) Detection {
	return AgentFromTable(snap, mapping.Agents)
}

// AgentFromTable runs the agent detector against a caller-supplied
// table instead of the built-in mapping.Agents, letting the Config
// Layer's vendor overlay extend detection without forking the engine.
func AgentFromTable(snap snapshot.Snapshot, table []mapping.EnvMapping) Detection {
	return gatedTableDetect(snap, table, "agent")
}
