package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/restockhq/reorder-engine/pkg/apperrors"
	"github.com/restockhq/reorder-engine/pkg/database"
	"github.com/restockhq/reorder-engine/pkg/models"
)

// ProductRepository defines read access to the product catalogue. The
// catalogue is bulk-loaded out of band; the engine never writes to it.
type ProductRepository interface {
	// List retrieves the full catalogue.
	List(ctx context.Context) ([]models.Product, error)

	// GetByID retrieves a product by its business identifier.
	// Returns apperrors.ErrNotFound if no such product exists.
	GetByID(ctx context.Context, productID string) (*models.Product, error)

	// GetByNameCategory retrieves a product by normalized (name, category).
	// Returns apperrors.ErrNotFound if no such product exists.
	GetByNameCategory(ctx context.Context, name, category string) (*models.Product, error)

	// Count returns the number of catalogue rows.
	Count(ctx context.Context) (int, error)

	// CountOutOfStock returns the number of catalogue rows with zero stock.
	CountOutOfStock(ctx context.Context) (int, error)
}

// productRepository implements ProductRepository using PostgreSQL.
type productRepository struct {
	db *database.DB
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *database.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = "product_id, product_name, category_name, vendor_id, stock"

func scanProduct(row pgx.Row) (*models.Product, error) {
	var p models.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &p.VendorID, &p.Stock); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) List(ctx context.Context) ([]models.Product, error) {
	q := r.db.QuerierFrom(ctx)

	rows, err := q.Query(ctx, "SELECT "+productColumns+" FROM products ORDER BY product_id")
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.VendorID, &p.Stock); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}

	return products, nil
}

func (r *productRepository) GetByID(ctx context.Context, productID string) (*models.Product, error) {
	q := r.db.QuerierFrom(ctx)

	p, err := scanProduct(q.QueryRow(ctx,
		"SELECT "+productColumns+" FROM products WHERE product_id = $1", productID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get product %s: %w", productID, err)
	}
	return p, nil
}

func (r *productRepository) GetByNameCategory(ctx context.Context, name, category string) (*models.Product, error) {
	q := r.db.QuerierFrom(ctx)

	// Matches the aggregation-key normalization: trim then case-fold.
	p, err := scanProduct(q.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE lower(btrim(product_name)) = $1 AND lower(btrim(category_name)) = $2`,
		models.Normalize(name), models.Normalize(category)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get product by name/category: %w", err)
	}
	return p, nil
}

func (r *productRepository) Count(ctx context.Context) (int, error) {
	q := r.db.QuerierFrom(ctx)

	var count int
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (r *productRepository) CountOutOfStock(ctx context.Context) (int, error) {
	q := r.db.QuerierFrom(ctx)

	var count int
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM products WHERE stock = 0").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count out-of-stock products: %w", err)
	}
	return count, nil
}
