package services

import (
	"context"
	"errors"

	"github.com/restockhq/reorder-engine/pkg/apperrors"
	"github.com/restockhq/reorder-engine/pkg/database"
	"github.com/restockhq/reorder-engine/pkg/mailer"
	"github.com/restockhq/reorder-engine/pkg/models"
)

// ============================================================================
// Mock Implementations for Service Tests
// ============================================================================

type mockProductRepo struct {
	products []models.Product
	listErr  error
}

func (m *mockProductRepo) List(ctx context.Context) ([]models.Product, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.products, nil
}

func (m *mockProductRepo) GetByID(ctx context.Context, productID string) (*models.Product, error) {
	for _, p := range m.products {
		if p.ID == productID {
			return &p, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockProductRepo) GetByNameCategory(ctx context.Context, name, category string) (*models.Product, error) {
	key := models.KeyFor(name, category)
	for _, p := range m.products {
		if models.KeyFor(p.Name, p.Category) == key {
			return &p, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockProductRepo) Count(ctx context.Context) (int, error) {
	return len(m.products), nil
}

func (m *mockProductRepo) CountOutOfStock(ctx context.Context) (int, error) {
	count := 0
	for _, p := range m.products {
		if p.Stock == 0 {
			count++
		}
	}
	return count, nil
}

type mockVendorRepo struct {
	vendors map[string]*models.Vendor
	getErr  error
}

func newMockVendorRepo(vendors ...*models.Vendor) *mockVendorRepo {
	m := &mockVendorRepo{vendors: make(map[string]*models.Vendor)}
	for _, v := range vendors {
		m.vendors[v.ID] = v
	}
	return m
}

func (m *mockVendorRepo) GetByID(ctx context.Context, vendorID string) (*models.Vendor, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.vendors[vendorID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return v, nil
}

func (m *mockVendorRepo) List(ctx context.Context) ([]models.Vendor, error) {
	var vendors []models.Vendor
	for _, v := range m.vendors {
		vendors = append(vendors, *v)
	}
	return vendors, nil
}

func (m *mockVendorRepo) Count(ctx context.Context) (int, error) {
	return len(m.vendors), nil
}

// mockMailer records every purchase order it is asked to send. failFor
// marks product ids whose sends should fail, with failErr overriding the
// default failure. attempts counts calls per product id.
type mockMailer struct {
	sent     []mailer.PurchaseOrder
	failFor  map[string]bool
	failErr  error
	attempts map[string]int
}

func (m *mockMailer) SendPurchaseOrder(ctx context.Context, po mailer.PurchaseOrder) error {
	if m.attempts == nil {
		m.attempts = make(map[string]int)
	}
	m.attempts[po.ProductID]++
	if m.failFor[po.ProductID] {
		if m.failErr != nil {
			return m.failErr
		}
		return errors.New("SMTP auth failed")
	}
	m.sent = append(m.sent, po)
	return nil
}

// mockScoper hands out empty run scopes so the orchestrator can be tested
// without a database pool.
type mockScoper struct {
	acquireErr error
}

func (m *mockScoper) AcquireRunScope(ctx context.Context) (*database.RunScope, error) {
	if m.acquireErr != nil {
		return nil, m.acquireErr
	}
	return &database.RunScope{}, nil
}
