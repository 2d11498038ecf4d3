package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/restockhq/reorder-engine/pkg/apperrors"
	"github.com/restockhq/reorder-engine/pkg/models"
	"github.com/restockhq/reorder-engine/pkg/services"
)

func TestInventoryHandler_AnalyzeStock(t *testing.T) {
	svc := &mockInventoryService{
		analysis: &services.StockAnalysis{
			Status:        services.StatusReorderNeeded,
			ProductID:     "P1",
			Name:          "Widget",
			Category:      "Tools",
			CurrentStock:  3,
			Demand:        10,
			RequiredStock: 7,
			VendorID:      "V1",
		},
	}
	handler := NewInventoryHandler(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze-stock",
		strings.NewReader(`{"product_name": "Widget", "category": "Tools", "demand": 10}`))
	rec := httptest.NewRecorder()

	handler.AnalyzeStock(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                   `json:"success"`
		Data    services.StockAnalysis `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, services.StatusReorderNeeded, resp.Data.Status)
	assert.Equal(t, 7, resp.Data.RequiredStock)
}

func TestInventoryHandler_AnalyzeStock_InvalidBody(t *testing.T) {
	handler := NewInventoryHandler(&mockInventoryService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze-stock", strings.NewReader("not json"))
	rec := httptest.NewRecorder()

	handler.AnalyzeStock(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInventoryHandler_AnalyzeStock_MissingIdentity(t *testing.T) {
	handler := NewInventoryHandler(&mockInventoryService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze-stock",
		strings.NewReader(`{"demand": 10}`))
	rec := httptest.NewRecorder()

	handler.AnalyzeStock(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInventoryHandler_FindVendor(t *testing.T) {
	svc := &mockInventoryService{
		vendor: &models.Vendor{ID: "V1", Name: "Acme Supplies", Email: "sales@acme.test"},
	}
	handler := NewInventoryHandler(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/find-vendor",
		strings.NewReader(`{"vendor_id": "V1"}`))
	rec := httptest.NewRecorder()

	handler.FindVendor(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sales@acme.test")
}

func TestInventoryHandler_FindVendor_NotFound(t *testing.T) {
	svc := &mockInventoryService{vendorErr: apperrors.ErrNotFound}
	handler := NewInventoryHandler(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/find-vendor",
		strings.NewReader(`{"vendor_id": "V9"}`))
	rec := httptest.NewRecorder()

	handler.FindVendor(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}

func TestInventoryHandler_SendOrder(t *testing.T) {
	svc := &mockInventoryService{}
	handler := NewInventoryHandler(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/send-order",
		strings.NewReader(`{"vendor_email": "sales@acme.test", "vendor_name": "Acme", "product_name": "Widget", "quantity": 7}`))
	rec := httptest.NewRecorder()

	handler.SendOrder(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.sentOrders, 1)
	assert.Equal(t, 7, svc.sentOrders[0].Quantity)
}

func TestInventoryHandler_SendOrder_InvalidQuantity(t *testing.T) {
	handler := NewInventoryHandler(&mockInventoryService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/send-order",
		strings.NewReader(`{"vendor_email": "sales@acme.test", "quantity": 0}`))
	rec := httptest.NewRecorder()

	handler.SendOrder(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInventoryHandler_ListProducts(t *testing.T) {
	svc := &mockInventoryService{
		products: []models.Product{{ID: "P1", Name: "Widget", Category: "Tools", Stock: 4}},
	}
	handler := NewInventoryHandler(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()

	handler.ListProducts(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Widget")
}

func TestInventoryHandler_Dashboard(t *testing.T) {
	svc := &mockInventoryService{
		dashboard: &services.DashboardData{TotalProducts: 12, TotalVendors: 3, OutOfStockCount: 2},
	}
	handler := NewInventoryHandler(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rec := httptest.NewRecorder()

	handler.Dashboard(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data services.DashboardData `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 12, resp.Data.TotalProducts)
	assert.Equal(t, 2, resp.Data.OutOfStockCount)
}

func TestInventoryHandler_RegisterRoutes(t *testing.T) {
	svc := &mockInventoryService{
		dashboard: &services.DashboardData{},
	}
	handler := NewInventoryHandler(svc, zap.NewNop())

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Wrong method is rejected by the mux pattern.
	req = httptest.NewRequest(http.MethodGet, "/api/analyze-stock", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
