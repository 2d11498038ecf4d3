package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/restockhq/reorder-engine/pkg/apperrors"
	"github.com/restockhq/reorder-engine/pkg/mailer"
	"github.com/restockhq/reorder-engine/pkg/services"
)

// InventoryToolExecutor implements ToolExecutor over the inventory service.
// Domain misses (unknown product or vendor, failed send) are reported as JSON
// payloads so the model can react; only malformed arguments are hard errors.
type InventoryToolExecutor struct {
	inventoryService services.InventoryService
	logger           *zap.Logger
}

// NewInventoryToolExecutor creates a new tool executor for inventory operations.
func NewInventoryToolExecutor(inventoryService services.InventoryService, logger *zap.Logger) *InventoryToolExecutor {
	return &InventoryToolExecutor{
		inventoryService: inventoryService,
		logger:           logger.Named("tool-executor"),
	}
}

// Ensure InventoryToolExecutor implements ToolExecutor.
var _ ToolExecutor = (*InventoryToolExecutor)(nil)

// ExecuteTool dispatches to the appropriate tool handler based on name.
func (e *InventoryToolExecutor) ExecuteTool(ctx context.Context, name string, arguments string) (string, error) {
	e.logger.Debug("Executing tool",
		zap.String("tool", name),
		zap.String("arguments", arguments))

	switch name {
	case "analyze_stock":
		return e.analyzeStock(ctx, arguments)
	case "lookup_vendor":
		return e.lookupVendor(ctx, arguments)
	case "send_purchase_order":
		return e.sendPurchaseOrder(ctx, arguments)
	default:
		return "", fmt.Errorf("unknown tool: %s", name)
	}
}

// ============================================================================
// Tool: analyze_stock
// ============================================================================

type analyzeStockArgs struct {
	ProductName string `json:"product_name"`
	Category    string `json:"category"`
	Demand      int    `json:"demand"`
	ProductID   string `json:"product_id"`
}

func (e *InventoryToolExecutor) analyzeStock(ctx context.Context, arguments string) (string, error) {
	var args analyzeStockArgs
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if strings.TrimSpace(args.ProductName) == "" && strings.TrimSpace(args.ProductID) == "" {
		return "", fmt.Errorf("product_name or product_id is required")
	}

	analysis, err := e.inventoryService.AnalyzeStock(ctx, args.ProductName, args.Category, args.Demand, args.ProductID)
	if err != nil {
		e.logger.Error("Stock analysis failed",
			zap.String("product_name", args.ProductName),
			zap.Error(err))
		return fmt.Sprintf(`{"error": "stock analysis failed: %s"}`, err.Error()), nil
	}

	return marshalResult(analysis)
}

// ============================================================================
// Tool: lookup_vendor
// ============================================================================

type lookupVendorArgs struct {
	VendorID string `json:"vendor_id"`
}

func (e *InventoryToolExecutor) lookupVendor(ctx context.Context, arguments string) (string, error) {
	var args lookupVendorArgs
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if strings.TrimSpace(args.VendorID) == "" {
		return "", fmt.Errorf("vendor_id is required")
	}

	vendor, err := e.inventoryService.LookupVendor(ctx, strings.TrimSpace(args.VendorID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Sprintf(`{"error": "no vendor found for vendor id %s"}`, args.VendorID), nil
		}
		e.logger.Error("Vendor lookup failed",
			zap.String("vendor_id", args.VendorID),
			zap.Error(err))
		return fmt.Sprintf(`{"error": "vendor lookup failed: %s"}`, err.Error()), nil
	}

	return marshalResult(vendor)
}

// ============================================================================
// Tool: send_purchase_order
// ============================================================================

type sendPurchaseOrderArgs struct {
	VendorEmail string `json:"vendor_email"`
	VendorName  string `json:"vendor_name"`
	ProductName string `json:"product_name"`
	ProductID   string `json:"product_id"`
	Quantity    int    `json:"quantity"`
}

func (e *InventoryToolExecutor) sendPurchaseOrder(ctx context.Context, arguments string) (string, error) {
	var args sendPurchaseOrderArgs
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if strings.TrimSpace(args.VendorEmail) == "" {
		return "", fmt.Errorf("vendor_email is required")
	}
	if args.Quantity <= 0 {
		return "", fmt.Errorf("quantity must be positive")
	}

	err := e.inventoryService.SendOrder(ctx, mailer.PurchaseOrder{
		VendorEmail: args.VendorEmail,
		VendorName:  args.VendorName,
		ProductName: args.ProductName,
		ProductID:   args.ProductID,
		Quantity:    args.Quantity,
	})
	if err != nil {
		e.logger.Error("Purchase order send failed",
			zap.String("vendor_email", args.VendorEmail),
			zap.Error(err))
		return fmt.Sprintf(`{"error": "failed to send purchase order: %s"}`, err.Error()), nil
	}

	return marshalResult(map[string]any{
		"status":       "sent",
		"vendor_email": args.VendorEmail,
		"product_name": args.ProductName,
		"quantity":     args.Quantity,
	})
}

func marshalResult(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal tool result: %w", err)
	}
	return string(data), nil
}
