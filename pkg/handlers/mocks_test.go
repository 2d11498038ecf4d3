package handlers

import (
	"context"
	"io"

	"github.com/restockhq/reorder-engine/pkg/mailer"
	"github.com/restockhq/reorder-engine/pkg/models"
	"github.com/restockhq/reorder-engine/pkg/services"
)

// ============================================================================
// Mock Implementations for Handler Tests
// ============================================================================

type mockReconcileService struct {
	report *models.RunReport
	err    error

	lastFilename string
	dispatched   bool
}

func (m *mockReconcileService) Reconcile(ctx context.Context, filename string, r io.Reader) (*models.RunReport, error) {
	m.lastFilename = filename
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

func (m *mockReconcileService) ReconcileAndDispatch(ctx context.Context, filename string, r io.Reader) (*models.RunReport, error) {
	m.lastFilename = filename
	m.dispatched = true
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

type mockInventoryService struct {
	analysis  *services.StockAnalysis
	vendor    *models.Vendor
	products  []models.Product
	vendors   []models.Vendor
	dashboard *services.DashboardData

	analyzeErr error
	vendorErr  error
	sendErr    error

	sentOrders []mailer.PurchaseOrder
}

func (m *mockInventoryService) AnalyzeStock(ctx context.Context, name, category string, demand int, productID string) (*services.StockAnalysis, error) {
	if m.analyzeErr != nil {
		return nil, m.analyzeErr
	}
	return m.analysis, nil
}

func (m *mockInventoryService) LookupVendor(ctx context.Context, vendorID string) (*models.Vendor, error) {
	if m.vendorErr != nil {
		return nil, m.vendorErr
	}
	return m.vendor, nil
}

func (m *mockInventoryService) SendOrder(ctx context.Context, po mailer.PurchaseOrder) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sentOrders = append(m.sentOrders, po)
	return nil
}

func (m *mockInventoryService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return m.products, nil
}

func (m *mockInventoryService) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	return m.vendors, nil
}

func (m *mockInventoryService) Dashboard(ctx context.Context) (*services.DashboardData, error) {
	return m.dashboard, nil
}

type mockAgent struct {
	answer string
	err    error

	lastQuery string
}

func (m *mockAgent) Run(ctx context.Context, query string) (string, error) {
	m.lastQuery = query
	if m.err != nil {
		return "", m.err
	}
	return m.answer, nil
}
