package llm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/restockhq/reorder-engine/pkg/config"
)

// NewChatClient creates a ChatClient for the configured provider.
func NewChatClient(cfg *config.AIConfig, logger *zap.Logger) (ChatClient, error) {
	clientCfg := &Config{
		Endpoint: cfg.BaseURL,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey,
	}

	switch cfg.Provider {
	case "", "openai":
		return NewClient(clientCfg, logger)
	case "anthropic":
		return NewAnthropicClient(clientCfg, logger)
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
	}
}
