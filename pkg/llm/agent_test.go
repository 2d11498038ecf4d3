package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAgentRun(t *testing.T) {
	// The mock client plays a model that analyzes stock, looks up the
	// vendor, sends the order, then answers.
	client := &MockChatClient{
		GenerateWithToolsFunc: func(ctx context.Context, req *ChatRequest, executor ToolExecutor) (string, error) {
			if _, err := executor.ExecuteTool(ctx, "analyze_stock", `{"product_name": "Widget", "category": "Tools", "demand": 10}`); err != nil {
				return "", err
			}
			if _, err := executor.ExecuteTool(ctx, "lookup_vendor", `{"vendor_id": "V1"}`); err != nil {
				return "", err
			}
			if _, err := executor.ExecuteTool(ctx, "send_purchase_order", `{"vendor_email": "sales@acme.test", "vendor_name": "Acme", "product_name": "Widget", "quantity": 7}`); err != nil {
				return "", err
			}
			return "Ordered 7 units of Widget from Acme.", nil
		},
	}
	executor := &MockToolExecutor{}
	agent := NewAgent(client, executor, zap.NewNop())

	answer, err := agent.Run(context.Background(), "We need 10 Widgets in Tools")
	require.NoError(t, err)

	assert.Equal(t, "Ordered 7 units of Widget from Acme.", answer)
	assert.Equal(t, 1, client.GenerateWithToolsCalls)
	require.Len(t, executor.ExecuteToolCalls, 3)
	assert.Equal(t, "analyze_stock", executor.ExecuteToolCalls[0].Name)
	assert.Equal(t, "lookup_vendor", executor.ExecuteToolCalls[1].Name)
	assert.Equal(t, "send_purchase_order", executor.ExecuteToolCalls[2].Name)
}

func TestAgentRun_PassesToolDefinitions(t *testing.T) {
	var captured *ChatRequest
	client := &MockChatClient{
		GenerateWithToolsFunc: func(ctx context.Context, req *ChatRequest, executor ToolExecutor) (string, error) {
			captured = req
			return "ok", nil
		},
	}
	agent := NewAgent(client, &MockToolExecutor{}, zap.NewNop())

	_, err := agent.Run(context.Background(), "check stock of gizmos")
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.NotEmpty(t, captured.SystemPrompt)
	assert.Len(t, captured.Tools, 3)
	assert.Equal(t, "check stock of gizmos", captured.UserMessage)
}

func TestAgentRun_EmptyQuery(t *testing.T) {
	agent := NewAgent(&MockChatClient{}, &MockToolExecutor{}, zap.NewNop())

	_, err := agent.Run(context.Background(), "   ")
	assert.Error(t, err)
}
