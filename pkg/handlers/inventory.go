package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/restockhq/reorder-engine/pkg/apperrors"
	"github.com/restockhq/reorder-engine/pkg/mailer"
	"github.com/restockhq/reorder-engine/pkg/services"
)

// ============================================================================
// Request/Response Types
// ============================================================================

// AnalyzeStockRequest for POST /api/analyze-stock
type AnalyzeStockRequest struct {
	ProductName string `json:"product_name"`
	Category    string `json:"category"`
	Demand      int    `json:"demand"`
	ProductID   string `json:"product_id,omitempty"`
}

// FindVendorRequest for POST /api/find-vendor
type FindVendorRequest struct {
	VendorID string `json:"vendor_id"`
}

// SendOrderRequest for POST /api/send-order
type SendOrderRequest struct {
	VendorEmail string `json:"vendor_email"`
	VendorName  string `json:"vendor_name"`
	ProductName string `json:"product_name"`
	ProductID   string `json:"product_id,omitempty"`
	Quantity    int    `json:"quantity"`
}

// ============================================================================
// Handler
// ============================================================================

// InventoryHandler serves the single-row inventory operations and the
// catalogue listings.
type InventoryHandler struct {
	inventoryService services.InventoryService
	logger           *zap.Logger
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(inventoryService services.InventoryService, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
		logger:           logger,
	}
}

// RegisterRoutes registers the inventory handler's routes on the given mux.
func (h *InventoryHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/analyze-stock", h.AnalyzeStock)
	mux.HandleFunc("POST /api/find-vendor", h.FindVendor)
	mux.HandleFunc("POST /api/send-order", h.SendOrder)
	mux.HandleFunc("GET /api/products", h.ListProducts)
	mux.HandleFunc("GET /api/vendors", h.ListVendors)
	mux.HandleFunc("GET /api/dashboard", h.Dashboard)
}

// AnalyzeStock handles POST /api/analyze-stock
func (h *InventoryHandler) AnalyzeStock(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "invalid_request", "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.ProductName) == "" && strings.TrimSpace(req.ProductID) == "" {
		h.badRequest(w, "invalid_request", "product_name or product_id is required")
		return
	}

	analysis, err := h.inventoryService.AnalyzeStock(r.Context(), req.ProductName, req.Category, req.Demand, req.ProductID)
	if err != nil {
		h.logger.Error("Stock analysis failed",
			zap.String("product_name", req.ProductName),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "analyze_stock_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: analysis}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// FindVendor handles POST /api/find-vendor
func (h *InventoryHandler) FindVendor(w http.ResponseWriter, r *http.Request) {
	var req FindVendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "invalid_request", "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.VendorID) == "" {
		h.badRequest(w, "invalid_request", "vendor_id is required")
		return
	}

	vendor, err := h.inventoryService.LookupVendor(r.Context(), strings.TrimSpace(req.VendorID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			if err := ErrorResponse(w, http.StatusNotFound, "not_found", "vendor not found"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Vendor lookup failed",
			zap.String("vendor_id", req.VendorID),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "find_vendor_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: vendor}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// SendOrder handles POST /api/send-order
func (h *InventoryHandler) SendOrder(w http.ResponseWriter, r *http.Request) {
	var req SendOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "invalid_request", "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.VendorEmail) == "" || req.Quantity <= 0 {
		h.badRequest(w, "invalid_request", "vendor_email and a positive quantity are required")
		return
	}

	err := h.inventoryService.SendOrder(r.Context(), mailer.PurchaseOrder{
		VendorEmail: req.VendorEmail,
		VendorName:  req.VendorName,
		ProductName: req.ProductName,
		ProductID:   req.ProductID,
		Quantity:    req.Quantity,
	})
	if err != nil {
		h.logger.Error("Purchase order send failed",
			zap.String("vendor_email", req.VendorEmail),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusBadGateway, "send_order_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "purchase order sent"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListProducts handles GET /api/products
func (h *InventoryHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.inventoryService.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "list_products_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: products}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListVendors handles GET /api/vendors
func (h *InventoryHandler) ListVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.inventoryService.ListVendors(r.Context())
	if err != nil {
		h.logger.Error("Failed to list vendors", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "list_vendors_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: vendors}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Dashboard handles GET /api/dashboard
func (h *InventoryHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	data, err := h.inventoryService.Dashboard(r.Context())
	if err != nil {
		h.logger.Error("Failed to build dashboard", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "dashboard_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: data}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

func (h *InventoryHandler) badRequest(w http.ResponseWriter, code, msg string) {
	if err := ErrorResponse(w, http.StatusBadRequest, code, msg); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}
