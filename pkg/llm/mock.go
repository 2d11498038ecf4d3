package llm

import (
	"context"
)

// MockChatClient is a configurable mock for testing agent functionality.
// Set the function field to control behavior in tests.
type MockChatClient struct {
	// GenerateWithToolsFunc is called when GenerateWithTools is invoked.
	// If nil, returns an empty answer and nil error.
	GenerateWithToolsFunc func(ctx context.Context, req *ChatRequest, executor ToolExecutor) (string, error)

	// Model is returned by GetModel. Defaults to "mock-model".
	Model string

	// Call tracking for verification
	GenerateWithToolsCalls int
}

// GenerateWithTools implements ChatClient.
func (m *MockChatClient) GenerateWithTools(ctx context.Context, req *ChatRequest, executor ToolExecutor) (string, error) {
	m.GenerateWithToolsCalls++
	if m.GenerateWithToolsFunc != nil {
		return m.GenerateWithToolsFunc(ctx, req, executor)
	}
	return "", nil
}

// GetModel implements ChatClient.
func (m *MockChatClient) GetModel() string {
	if m.Model == "" {
		return "mock-model"
	}
	return m.Model
}

// MockToolCall records one ExecuteTool invocation.
type MockToolCall struct {
	Name      string
	Arguments string
}

// MockToolExecutor is a configurable mock for testing tool-calling loops.
type MockToolExecutor struct {
	// ExecuteToolFunc is called when ExecuteTool is invoked.
	// If nil, returns "{}" and nil error.
	ExecuteToolFunc func(ctx context.Context, name string, arguments string) (string, error)

	// ExecuteToolCalls records every invocation.
	ExecuteToolCalls []MockToolCall
}

// ExecuteTool implements ToolExecutor.
func (m *MockToolExecutor) ExecuteTool(ctx context.Context, name string, arguments string) (string, error) {
	m.ExecuteToolCalls = append(m.ExecuteToolCalls, MockToolCall{Name: name, Arguments: arguments})
	if m.ExecuteToolFunc != nil {
		return m.ExecuteToolFunc(ctx, name, arguments)
	}
	return "{}", nil
}
