package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/server"

	"github.com/restockhq/reorder-engine/pkg/apperrors"
	"github.com/restockhq/reorder-engine/pkg/mailer"
	"github.com/restockhq/reorder-engine/pkg/models"
	"github.com/restockhq/reorder-engine/pkg/services"
)

// ============================================================================
// Mock Implementations and Helpers for Tool Tests
// ============================================================================

type stubInventoryService struct {
	analysis *services.StockAnalysis
	vendor   *models.Vendor
	sendErr  error

	sentOrders []mailer.PurchaseOrder
}

func (s *stubInventoryService) AnalyzeStock(ctx context.Context, name, category string, demand int, productID string) (*services.StockAnalysis, error) {
	if s.analysis == nil {
		return &services.StockAnalysis{Status: services.StatusNotFound, Name: name, Category: category, Demand: demand}, nil
	}
	return s.analysis, nil
}

func (s *stubInventoryService) LookupVendor(ctx context.Context, vendorID string) (*models.Vendor, error) {
	if s.vendor == nil || s.vendor.ID != vendorID {
		return nil, apperrors.ErrNotFound
	}
	return s.vendor, nil
}

func (s *stubInventoryService) SendOrder(ctx context.Context, po mailer.PurchaseOrder) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.sentOrders = append(s.sentOrders, po)
	return nil
}

func (s *stubInventoryService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return nil, nil
}

func (s *stubInventoryService) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	return nil, nil
}

func (s *stubInventoryService) Dashboard(ctx context.Context) (*services.DashboardData, error) {
	return &services.DashboardData{}, nil
}

// callTool drives a registered tool through the JSON-RPC surface and returns
// the text content of the first result block plus the isError flag.
func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) (string, bool) {
	t.Helper()

	request := map[string]any{
		"jsonrpc": "2.0",
		"method":  "tools/call",
		"id":      1,
		"params": map[string]any{
			"name":      name,
			"arguments": args,
		},
	}
	requestBytes, err := json.Marshal(request)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}

	result := s.HandleMessage(context.Background(), requestBytes)
	resultBytes, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("failed to marshal result: %v", err)
	}

	var response struct {
		Result struct {
			IsError bool `json:"isError"`
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"result"`
	}
	if err := json.Unmarshal(resultBytes, &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(response.Result.Content) == 0 {
		t.Fatalf("expected content in response, got %s", string(resultBytes))
	}

	return response.Result.Content[0].Text, response.Result.IsError
}
