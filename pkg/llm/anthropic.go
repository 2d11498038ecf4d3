package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"

	"github.com/restockhq/reorder-engine/pkg/retry"
)

const anthropicMaxTokens = 4096

// AnthropicClient provides the same tool-calling loop against the Anthropic
// Messages API.
type AnthropicClient struct {
	client *anthropic.Client
	model  string
	logger *zap.Logger
}

// NewAnthropicClient creates a new Anthropic-backed chat client. An empty
// baseURL uses the public API endpoint.
func NewAnthropicClient(cfg *Config, logger *zap.Logger) (*AnthropicClient, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}

	var opts []anthropic.ClientOption
	if cfg.Endpoint != "" {
		opts = append(opts, anthropic.WithBaseURL(cfg.Endpoint))
	}

	return &AnthropicClient{
		client: anthropic.NewClient(cfg.APIKey, opts...),
		model:  cfg.Model,
		logger: logger.Named("llm"),
	}, nil
}

// GenerateWithTools implements ChatClient.
func (c *AnthropicClient) GenerateWithTools(ctx context.Context, req *ChatRequest, executor ToolExecutor) (string, error) {
	messages := []anthropic.Message{
		anthropic.NewUserTextMessage(req.UserMessage),
	}
	tools := c.buildAnthropicTools(req.Tools)

	temperature := float32(req.Temperature)
	if temperature == 0 {
		temperature = 0.3
	}

	start := time.Now()

	for iteration := 0; iteration < maxToolIterations; iteration++ {
		c.logger.Debug("Tool-loop iteration",
			zap.Int("iteration", iteration),
			zap.Int("message_count", len(messages)))

		resp, err := retry.DoWithResultIfRetryable(ctx, retry.LLMConfig(), func() (anthropic.MessagesResponse, error) {
			resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
				Model:       anthropic.Model(c.model),
				System:      req.SystemPrompt,
				Messages:    messages,
				MaxTokens:   anthropicMaxTokens,
				Temperature: &temperature,
				Tools:       tools,
			})
			if err != nil {
				return resp, ClassifyError(err)
			}
			return resp, nil
		})
		if err != nil {
			c.logger.Error("LLM request failed",
				zap.Duration("elapsed", time.Since(start)),
				zap.Error(err))
			return "", err
		}

		if resp.StopReason != anthropic.MessagesStopReasonToolUse {
			c.logger.Info("Agent conversation completed",
				zap.Int("iterations", iteration+1),
				zap.Duration("elapsed", time.Since(start)))
			return resp.GetFirstContentText(), nil
		}

		// Echo the assistant turn, then answer every tool_use block in a
		// single user message.
		messages = append(messages, anthropic.Message{
			Role:    anthropic.RoleAssistant,
			Content: resp.Content,
		})

		var results []anthropic.MessageContent
		for _, content := range resp.Content {
			if content.Type != anthropic.MessagesContentTypeToolUse || content.MessageContentToolUse == nil {
				continue
			}
			toolUse := content.MessageContentToolUse

			result, execErr := executor.ExecuteTool(ctx, toolUse.Name, string(toolUse.Input))
			isError := false
			if execErr != nil {
				result = fmt.Sprintf("Error executing tool: %s", execErr.Error())
				isError = true
			}

			results = append(results, anthropic.NewToolResultMessageContent(toolUse.ID, result, isError))
		}

		if len(results) == 0 {
			return "", fmt.Errorf("tool_use stop reason without tool_use content")
		}

		messages = append(messages, anthropic.Message{
			Role:    anthropic.RoleUser,
			Content: results,
		})
	}

	return "", fmt.Errorf("exceeded maximum tool iterations (%d)", maxToolIterations)
}

// GetModel returns the configured model name.
func (c *AnthropicClient) GetModel() string {
	return c.model
}

func (c *AnthropicClient) buildAnthropicTools(defs []ToolDefinition) []anthropic.ToolDefinition {
	tools := make([]anthropic.ToolDefinition, 0, len(defs))
	for _, def := range defs {
		tools = append(tools, anthropic.ToolDefinition{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.Parameters,
		})
	}
	return tools
}
