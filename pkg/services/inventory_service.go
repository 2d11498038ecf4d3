package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/restockhq/reorder-engine/pkg/apperrors"
	"github.com/restockhq/reorder-engine/pkg/mailer"
	"github.com/restockhq/reorder-engine/pkg/models"
	"github.com/restockhq/reorder-engine/pkg/repositories"
)

// Stock-analysis status values.
const (
	StatusSufficientStock = "sufficient_stock"
	StatusReorderNeeded   = "reorder_needed"
	StatusNotFound        = "not_found"
)

// StockAnalysis is the result of comparing demand against current stock for
// one product.
type StockAnalysis struct {
	Status        string `json:"status"`
	ProductID     string `json:"product_id,omitempty"`
	Name          string `json:"product_name"`
	Category      string `json:"category"`
	CurrentStock  int    `json:"current_stock"`
	Demand        int    `json:"demand"`
	RequiredStock int    `json:"required_stock"`
	VendorID      string `json:"vendor_id,omitempty"`
}

// DashboardData summarizes the catalogue for the dashboard endpoint.
type DashboardData struct {
	TotalProducts   int `json:"total_products"`
	TotalVendors    int `json:"total_vendors"`
	OutOfStockCount int `json:"out_of_stock_count"`
}

// InventoryService exposes the three primitive operations shared by the
// HTTP API, the MCP tools, and the agent: stock analysis, vendor lookup,
// and purchase-order send.
type InventoryService interface {
	// AnalyzeStock compares demand against stock for one product. Matching
	// follows the resolver's precedence: name+category first, product id
	// as fallback only. A miss is reported as StatusNotFound, not an error.
	AnalyzeStock(ctx context.Context, name, category string, demand int, productID string) (*StockAnalysis, error)

	// LookupVendor returns a vendor by id, or apperrors.ErrNotFound.
	LookupVendor(ctx context.Context, vendorID string) (*models.Vendor, error)

	// SendOrder emails one purchase order. Fails closed with a reason.
	SendOrder(ctx context.Context, po mailer.PurchaseOrder) error

	// ListProducts returns the full catalogue.
	ListProducts(ctx context.Context) ([]models.Product, error)

	// ListVendors returns all vendors.
	ListVendors(ctx context.Context) ([]models.Vendor, error)

	// Dashboard returns catalogue summary counts.
	Dashboard(ctx context.Context) (*DashboardData, error)
}

type inventoryService struct {
	productRepo repositories.ProductRepository
	vendorRepo  repositories.VendorRepository
	mailer      mailer.Mailer
	logger      *zap.Logger
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(
	productRepo repositories.ProductRepository,
	vendorRepo repositories.VendorRepository,
	m mailer.Mailer,
	logger *zap.Logger,
) InventoryService {
	return &inventoryService{
		productRepo: productRepo,
		vendorRepo:  vendorRepo,
		mailer:      m,
		logger:      logger.Named("inventory"),
	}
}

func (s *inventoryService) AnalyzeStock(ctx context.Context, name, category string, demand int, productID string) (*StockAnalysis, error) {
	product, err := s.productRepo.GetByNameCategory(ctx, name, category)
	if errors.Is(err, apperrors.ErrNotFound) && strings.TrimSpace(productID) != "" {
		product, err = s.productRepo.GetByID(ctx, strings.TrimSpace(productID))
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &StockAnalysis{
				Status:    StatusNotFound,
				ProductID: productID,
				Name:      name,
				Category:  category,
				Demand:    demand,
			}, nil
		}
		return nil, fmt.Errorf("stock analysis lookup failed: %w", err)
	}

	required := demand - product.Stock
	if required < 0 {
		required = 0
	}

	status := StatusSufficientStock
	if required > 0 {
		status = StatusReorderNeeded
	}

	return &StockAnalysis{
		Status:        status,
		ProductID:     product.ID,
		Name:          product.Name,
		Category:      product.Category,
		CurrentStock:  product.Stock,
		Demand:        demand,
		RequiredStock: required,
		VendorID:      product.VendorID,
	}, nil
}

func (s *inventoryService) LookupVendor(ctx context.Context, vendorID string) (*models.Vendor, error) {
	return s.vendorRepo.GetByID(ctx, vendorID)
}

func (s *inventoryService) SendOrder(ctx context.Context, po mailer.PurchaseOrder) error {
	if err := s.mailer.SendPurchaseOrder(ctx, po); err != nil {
		return err
	}
	s.logger.Info("Order sent",
		zap.String("vendor", po.VendorName),
		zap.String("product_id", po.ProductID))
	return nil
}

func (s *inventoryService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.productRepo.List(ctx)
}

func (s *inventoryService) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	return s.vendorRepo.List(ctx)
}

func (s *inventoryService) Dashboard(ctx context.Context) (*DashboardData, error) {
	products, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	vendors, err := s.vendorRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count vendors: %w", err)
	}
	outOfStock, err := s.productRepo.CountOutOfStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count out-of-stock products: %w", err)
	}

	return &DashboardData{
		TotalProducts:   products,
		TotalVendors:    vendors,
		OutOfStockCount: outOfStock,
	}, nil
}
