package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/restockhq/reorder-engine/pkg/retry"
)

// maxToolIterations bounds the tool-calling loop so a confused model cannot
// spin forever.
const maxToolIterations = 8

// Client provides access to OpenAI-compatible LLM endpoints.
type Client struct {
	client   *openai.Client
	endpoint string
	model    string
	logger   *zap.Logger
}

// Config holds configuration for creating an LLM client.
type Config struct {
	Endpoint string // Base URL, e.g., "https://api.openai.com/v1"
	Model    string // Model name, e.g., "gpt-4o-mini"
	APIKey   string // Optional for local endpoints
}

// NewClient creates a new OpenAI-compatible LLM client.
func NewClient(cfg *Config, logger *zap.Logger) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = strings.TrimSuffix(cfg.Endpoint, "/")

	return &Client{
		client:   openai.NewClientWithConfig(clientConfig),
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		logger:   logger.Named("llm"),
	}, nil
}

// GenerateWithTools performs a non-streaming chat completion with tool
// support. Tool calls are executed through the executor and their results are
// fed back as tool messages until the model answers in plain text.
func (c *Client) GenerateWithTools(ctx context.Context, req *ChatRequest, executor ToolExecutor) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: req.UserMessage},
	}
	tools := c.buildOpenAITools(req.Tools)

	temperature := float32(req.Temperature)
	if temperature == 0 {
		temperature = 0.3 // Lower temp for deterministic tool use
	}

	start := time.Now()

	for iteration := 0; iteration < maxToolIterations; iteration++ {
		c.logger.Debug("Tool-loop iteration",
			zap.Int("iteration", iteration),
			zap.Int("message_count", len(messages)))

		// Transient endpoint failures are retried; classified auth and
		// model errors fail immediately.
		resp, err := retry.DoWithResultIfRetryable(ctx, retry.LLMConfig(), func() (openai.ChatCompletionResponse, error) {
			resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
				Model:       c.model,
				Messages:    messages,
				Tools:       tools,
				Temperature: temperature,
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

		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("no choices in response")
		}

		choice := resp.Choices[0]

		// No tool calls means we're done
		if len(choice.Message.ToolCalls) == 0 {
			c.logger.Info("Agent conversation completed",
				zap.Int("iterations", iteration+1),
				zap.Duration("elapsed", time.Since(start)))
			return choice.Message.Content, nil
		}

		messages = append(messages, choice.Message)

		for _, tc := range choice.Message.ToolCalls {
			result, execErr := executor.ExecuteTool(ctx, tc.Function.Name, tc.Function.Arguments)
			if execErr != nil {
				result = fmt.Sprintf("Error executing tool: %s", execErr.Error())
			}

			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    result,
				ToolCallID: tc.ID,
			})
		}
	}

	return "", fmt.Errorf("exceeded maximum tool iterations (%d)", maxToolIterations)
}

// GetModel returns the configured model name.
func (c *Client) GetModel() string {
	return c.model
}

// GetEndpoint returns the configured endpoint.
func (c *Client) GetEndpoint() string {
	return c.endpoint
}

func (c *Client) buildOpenAITools(defs []ToolDefinition) []openai.Tool {
	tools := make([]openai.Tool, 0, len(defs))
	for _, def := range defs {
		tools = append(tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        def.Name,
				Description: def.Description,
				Parameters:  def.Parameters,
			},
		})
	}
	return tools
}
