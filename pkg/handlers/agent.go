package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// AgentRequest for POST /api/agent
type AgentRequest struct {
	Query string `json:"query"`
}

// AgentResponse carries the agent's final answer.
type AgentResponse struct {
	Answer string `json:"answer"`
}

// AgentRunner drives the inventory tools from a natural-language request.
type AgentRunner interface {
	Run(ctx context.Context, query string) (string, error)
}

// AgentHandler handles the natural-language agent endpoint. A nil runner
// means no AI endpoint is configured; requests then get a 503.
type AgentHandler struct {
	agent  AgentRunner
	logger *zap.Logger
}

// NewAgentHandler creates a new agent handler.
func NewAgentHandler(agent AgentRunner, logger *zap.Logger) *AgentHandler {
	return &AgentHandler{agent: agent, logger: logger}
}

// RegisterRoutes registers the agent handler's routes on the given mux.
func (h *AgentHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/agent", h.Run)
}

// Run handles POST /api/agent
func (h *AgentHandler) Run(w http.ResponseWriter, r *http.Request) {
	if h.agent == nil {
		if err := ErrorResponse(w, http.StatusServiceUnavailable, "agent_not_configured", "no AI endpoint is configured"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var req AgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "query is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	answer, err := h.agent.Run(r.Context(), req.Query)
	if err != nil {
		h.logger.Error("Agent run failed", zap.Error(err))
		if err := ErrorResponse(w, http.StatusBadGateway, "agent_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: AgentResponse{Answer: answer}}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
