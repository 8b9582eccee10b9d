package tools

import (
	"context"
)

// ToolContext brings metadata of the call to the tool
type ToolContext struct {
	ConversationID string
	RequestID      string
}

// Tool represents a capability the orchestrator can invoke.
// input/output is a generic map to maintain flexibility; every tool puts a
// human-readable "summary" string in its output.
type Tool interface {
	Name() string
	Description() string
	Call(ctx context.Context, tctx ToolContext, input map[string]any) (map[string]any, error)
}

// Summary extracts the "summary" field from a tool output.
func Summary(output map[string]any) string {
	s, _ := output["summary"].(string)
	return s
}
