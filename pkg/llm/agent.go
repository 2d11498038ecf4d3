package llm

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// agentSystemPrompt constrains tool order so the agent never guesses vendor
// details or quantities.
const agentSystemPrompt = `You are an inventory reordering assistant for a retail warehouse.

You have three tools:
1. analyze_stock - compare demanded quantity against current stock for a product.
2. lookup_vendor - resolve a vendor id to the vendor's name and email.
3. send_purchase_order - email a purchase order to a vendor.

Rules:
- Always call analyze_stock first. Never assume stock levels.
- If the analysis reports reorder_needed, call lookup_vendor with the vendor id from the analysis before sending anything.
- Only call send_purchase_order with an email address returned by lookup_vendor and a quantity equal to the required stock from the analysis, unless the user asked for a different quantity.
- If a tool reports an error or a product or vendor cannot be found, tell the user plainly. Never invent products, vendors or email addresses.
- When stock is sufficient, say so and do not order anything.

Answer concisely once the work is done.`

// Agent interprets a natural-language request and drives the inventory tools
// through a chat client.
type Agent struct {
	client   ChatClient
	executor ToolExecutor
	logger   *zap.Logger
}

// NewAgent creates a new inventory agent.
func NewAgent(client ChatClient, executor ToolExecutor, logger *zap.Logger) *Agent {
	return &Agent{
		client:   client,
		executor: executor,
		logger:   logger.Named("agent"),
	}
}

// Run handles one user request and returns the agent's final answer.
func (a *Agent) Run(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("query is required")
	}

	a.logger.Info("Agent run started",
		zap.String("model", a.client.GetModel()),
		zap.Int("query_len", len(query)))

	answer, err := a.client.GenerateWithTools(ctx, &ChatRequest{
		SystemPrompt: agentSystemPrompt,
		UserMessage:  query,
		Tools:        GetInventoryAgentTools(),
	}, a.executor)
	if err != nil {
		return "", fmt.Errorf("agent run failed: %w", err)
	}

	return answer, nil
}
