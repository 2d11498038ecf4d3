// Package llm provides the chat clients and tool-calling loop behind the
// inventory agent.
package llm

import (
	"context"
)

// ChatRequest is one agent conversation turn: a user message plus the tool
// surface the model may call.
type ChatRequest struct {
	SystemPrompt string
	UserMessage  string
	Tools        []ToolDefinition
	Temperature  float64
}

// ToolExecutor defines the interface for executing tools.
type ToolExecutor interface {
	ExecuteTool(ctx context.Context, name string, arguments string) (string, error)
}

// ChatClient runs a tool-calling conversation to completion: tool calls are
// dispatched through the executor and their results fed back until the model
// produces a final text answer.
// Use this interface for dependency injection to enable mocking in tests.
type ChatClient interface {
	GenerateWithTools(ctx context.Context, req *ChatRequest, executor ToolExecutor) (string, error)

	// GetModel returns the configured model name.
	GetModel() string
}

// Ensure both providers implement ChatClient at compile time.
var (
	_ ChatClient = (*Client)(nil)
	_ ChatClient = (*AnthropicClient)(nil)
)
