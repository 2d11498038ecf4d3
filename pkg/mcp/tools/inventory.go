// Package tools provides the MCP tool implementations for the reorder engine.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/restockhq/reorder-engine/pkg/apperrors"
	"github.com/restockhq/reorder-engine/pkg/mailer"
	"github.com/restockhq/reorder-engine/pkg/services"
)

// InventoryToolDeps contains dependencies for the inventory tools.
type InventoryToolDeps struct {
	InventoryService services.InventoryService
	Logger           *zap.Logger
}

// RegisterInventoryTools registers the stock-analysis, vendor-lookup and
// purchase-order tools.
func RegisterInventoryTools(s *server.MCPServer, deps *InventoryToolDeps) {
	registerAnalyzeStockTool(s, deps)
	registerLookupVendorTool(s, deps)
	registerSendPurchaseOrderTool(s, deps)
}

// registerAnalyzeStockTool adds the analyze_stock tool. Matching follows the
// reconciliation pipeline's precedence: product name and category first, the
// product id only as a fallback.
func registerAnalyzeStockTool(s *server.MCPServer, deps *InventoryToolDeps) {
	tool := mcp.NewTool(
		"analyze_stock",
		mcp.WithDescription(
			"Compare a demanded quantity against current stock for one product. "+
				"Matches by product name and category first; a product id is only used "+
				"when the name match misses. Returns the stock level, the required "+
				"reorder quantity and the vendor id to order from.",
		),
		mcp.WithString(
			"product_name",
			mcp.Required(),
			mcp.Description("The product name, e.g. 'AA Batteries'"),
		),
		mcp.WithString(
			"category",
			mcp.Required(),
			mcp.Description("The product category, e.g. 'Electronics'"),
		),
		mcp.WithNumber(
			"demand",
			mcp.Required(),
			mcp.Description("The demanded quantity in units"),
		),
		mcp.WithString(
			"product_id",
			mcp.Description("Optional product identifier, used only as a fallback"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		productName, err := req.RequireString("product_name")
		if err != nil {
			return nil, err
		}
		category, err := req.RequireString("category")
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(productName) == "" {
			return NewErrorResult("invalid_parameters", "product_name cannot be empty"), nil
		}

		demand := 0
		if demandVal, ok := req.Params.Arguments.(map[string]any)["demand"]; ok {
			if demandFloat, ok := demandVal.(float64); ok {
				demand = int(demandFloat)
			}
		}
		if demand < 0 {
			return NewErrorResult("invalid_parameters", "demand cannot be negative"), nil
		}

		productID := ""
		if idVal, ok := req.Params.Arguments.(map[string]any)["product_id"]; ok {
			if idStr, ok := idVal.(string); ok {
				productID = idStr
			}
		}

		analysis, err := deps.InventoryService.AnalyzeStock(ctx, productName, category, demand, productID)
		if err != nil {
			deps.Logger.Error("Stock analysis failed",
				zap.String("product_name", productName),
				zap.Error(err))
			return nil, fmt.Errorf("stock analysis failed: %w", err)
		}

		jsonResult, err := json.Marshal(analysis)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal result: %w", err)
		}

		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

// registerLookupVendorTool adds the lookup_vendor tool.
func registerLookupVendorTool(s *server.MCPServer, deps *InventoryToolDeps) {
	tool := mcp.NewTool(
		"lookup_vendor",
		mcp.WithDescription(
			"Look up a vendor by vendor id. Returns the vendor's name, email, "+
				"location and contact. Use the vendor id returned by analyze_stock.",
		),
		mcp.WithString(
			"vendor_id",
			mcp.Required(),
			mcp.Description("The vendor identifier, e.g. 'V001'"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		vendorID, err := req.RequireString("vendor_id")
		if err != nil {
			return nil, err
		}
		vendorID = strings.TrimSpace(vendorID)
		if vendorID == "" {
			return NewErrorResult("invalid_parameters", "vendor_id cannot be empty"), nil
		}

		vendor, err := deps.InventoryService.LookupVendor(ctx, vendorID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return NewErrorResult("vendor_not_found",
					fmt.Sprintf("no vendor found for vendor id %s", vendorID)), nil
			}
			deps.Logger.Error("Vendor lookup failed",
				zap.String("vendor_id", vendorID),
				zap.Error(err))
			return nil, fmt.Errorf("vendor lookup failed: %w", err)
		}

		jsonResult, err := json.Marshal(vendor)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal result: %w", err)
		}

		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

// registerSendPurchaseOrderTool adds the send_purchase_order tool. This is
// the only tool with a side effect, so it carries the destructive hint.
func registerSendPurchaseOrderTool(s *server.MCPServer, deps *InventoryToolDeps) {
	tool := mcp.NewTool(
		"send_purchase_order",
		mcp.WithDescription(
			"Email a purchase order to a vendor for a given product and quantity. "+
				"Use the vendor email from lookup_vendor and the required quantity "+
				"from analyze_stock.",
		),
		mcp.WithString(
			"vendor_email",
			mcp.Required(),
			mcp.Description("The vendor's email address"),
		),
		mcp.WithString(
			"vendor_name",
			mcp.Required(),
			mcp.Description("The vendor's display name"),
		),
		mcp.WithString(
			"product_name",
			mcp.Required(),
			mcp.Description("The product to order"),
		),
		mcp.WithString(
			"product_id",
			mcp.Description("Optional product identifier, included in the order email"),
		),
		mcp.WithNumber(
			"quantity",
			mcp.Required(),
			mcp.Description("Units to order"),
		),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		vendorEmail, err := req.RequireString("vendor_email")
		if err != nil {
			return nil, err
		}
		vendorName, err := req.RequireString("vendor_name")
		if err != nil {
			return nil, err
		}
		productName, err := req.RequireString("product_name")
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(vendorEmail) == "" {
			return NewErrorResult("invalid_parameters", "vendor_email cannot be empty"), nil
		}

		quantity := 0
		if qtyVal, ok := req.Params.Arguments.(map[string]any)["quantity"]; ok {
			if qtyFloat, ok := qtyVal.(float64); ok {
				quantity = int(qtyFloat)
			}
		}
		if quantity <= 0 {
			return NewErrorResult("invalid_parameters", "quantity must be positive"), nil
		}

		productID := ""
		if idVal, ok := req.Params.Arguments.(map[string]any)["product_id"]; ok {
			if idStr, ok := idVal.(string); ok {
				productID = idStr
			}
		}

		err = deps.InventoryService.SendOrder(ctx, mailer.PurchaseOrder{
			VendorEmail: vendorEmail,
			VendorName:  vendorName,
			ProductName: productName,
			ProductID:   productID,
			Quantity:    quantity,
		})
		if err != nil {
			deps.Logger.Error("Purchase order send failed",
				zap.String("vendor_email", vendorEmail),
				zap.Error(err))
			return NewErrorResult("send_failed",
				fmt.Sprintf("failed to send purchase order: %s", err.Error())), nil
		}

		jsonResult, err := json.Marshal(map[string]any{
			"status":       "sent",
			"vendor_email": vendorEmail,
			"product_name": productName,
			"quantity":     quantity,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal result: %w", err)
		}

		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}
