package agent

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnknownTool is returned when the completion service requests a tool
// name that is not registered. This is a protocol-contract violation and
// aborts the turn.
var ErrUnknownTool = errors.New("unknown tool")

// Tool is a capability the assistant can invoke during a turn.
//
// Execute receives the decoded argument object and returns a single
// human-readable result string. Handlers are required to fold their own
// failures (bad arguments, remote API errors) into that string; the error
// return is reserved for failures that must abort the turn, such as a
// corrupt agenda file.
type Tool interface {
	// Name returns the tool's identifier.
	Name() string

	// Description returns a human-readable description for the LLM.
	Description() string

	// InputSchema returns the JSON Schema for the tool's arguments.
	InputSchema() string

	// Execute runs the tool and returns its textual result.
	Execute(ctx context.Context, args map[string]any) (string, error)
}

// ToolDef is a serializable tool definition for advertising to the LLM.
type ToolDef struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema string `json:"inputSchema"`
}

// ToolRegistry holds available tools in registration order.
type ToolRegistry struct {
	tools map[string]Tool
	order []string
}

// NewToolRegistry creates an empty tool registry.
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{tools: make(map[string]Tool)}
}

// Register adds a tool. Registering a duplicate name replaces the earlier
// entry but keeps its catalog position.
func (r *ToolRegistry) Register(t Tool) {
	if _, exists := r.tools[t.Name()]; !exists {
		r.order = append(r.order, t.Name())
	}
	r.tools[t.Name()] = t
}

// Get returns a tool by name.
func (r *ToolRegistry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Invoke resolves and executes the named tool.
func (r *ToolRegistry) Invoke(ctx context.Context, name string, args map[string]any) (string, error) {
	t, ok := r.tools[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return t.Execute(ctx, args)
}

// Definitions returns LLM-ready tool definitions in registration order.
func (r *ToolRegistry) Definitions() []ToolDef {
	defs := make([]ToolDef, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		defs = append(defs, ToolDef{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: t.InputSchema(),
		})
	}
	return defs
}
