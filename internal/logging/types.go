package logging

import "time"

// #region evaluation-entry
// EvaluationEntry is a single row in the evaluation_log table.
type EvaluationEntry struct {
	VersionID   string // editor version evaluated, empty for stateless requests
	TriggerType string // "cli" | "edit" | "grpc" | "mcp" | "replay"
	Wire        string
	Result      string // exact form, e.g. "10/3" or "undefined"
	StepsJSON   string
	CreatedAt   time.Time
}
// #endregion evaluation-entry

// Trigger types recorded by the solver's entry points.
const (
	TriggerCLI    = "cli"
	TriggerEdit   = "edit"
	TriggerGRPC   = "grpc"
	TriggerMCP    = "mcp"
	TriggerReplay = "replay"
)
