package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"go.uber.org/zap"
)

func TestNewServer(t *testing.T) {
	s := NewServer("reorder-engine", "1.0.0", zap.NewNop())

	if s.MCP() == nil {
		t.Fatal("expected non-nil MCPServer")
	}
	if s.NewStreamableHTTPServer() == nil {
		t.Fatal("expected non-nil streamable HTTP server")
	}
}

func TestServer_Initialize(t *testing.T) {
	s := NewServer("reorder-engine", "1.0.0", zap.NewNop())

	request := `{"jsonrpc":"2.0","method":"initialize","id":1,"params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"0.0.1"}}}`
	result := s.MCP().HandleMessage(context.Background(), []byte(request))

	resultBytes, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("failed to marshal result: %v", err)
	}

	var response struct {
		Result struct {
			ServerInfo struct {
				Name    string `json:"name"`
				Version string `json:"version"`
			} `json:"serverInfo"`
		} `json:"result"`
	}
	if err := json.Unmarshal(resultBytes, &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if response.Result.ServerInfo.Name != "reorder-engine" {
		t.Errorf("expected server name 'reorder-engine', got '%s'", response.Result.ServerInfo.Name)
	}
	if response.Result.ServerInfo.Version != "1.0.0" {
		t.Errorf("expected version '1.0.0', got '%s'", response.Result.ServerInfo.Version)
	}
}
