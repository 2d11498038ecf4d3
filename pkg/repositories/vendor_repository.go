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

// VendorRepository defines read access to the vendor list.
type VendorRepository interface {
	// GetByID retrieves a vendor by its business identifier.
	// Returns apperrors.ErrNotFound if no such vendor exists.
	GetByID(ctx context.Context, vendorID string) (*models.Vendor, error)

	// List retrieves all vendors.
	List(ctx context.Context) ([]models.Vendor, error)

	// Count returns the number of vendor rows.
	Count(ctx context.Context) (int, error)
}

// vendorRepository implements VendorRepository using PostgreSQL.
type vendorRepository struct {
	db *database.DB
}

// NewVendorRepository creates a new vendor repository.
func NewVendorRepository(db *database.DB) VendorRepository {
	return &vendorRepository{db: db}
}

const vendorColumns = "vendor_id, vendor_name, location, email, contact"

func (r *vendorRepository) GetByID(ctx context.Context, vendorID string) (*models.Vendor, error) {
	q := r.db.QuerierFrom(ctx)

	var v models.Vendor
	err := q.QueryRow(ctx,
		"SELECT "+vendorColumns+" FROM vendors WHERE vendor_id = $1", vendorID).
		Scan(&v.ID, &v.Name, &v.Location, &v.Email, &v.Contact)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get vendor %s: %w", vendorID, err)
	}
	return &v, nil
}

func (r *vendorRepository) List(ctx context.Context) ([]models.Vendor, error) {
	q := r.db.QuerierFrom(ctx)

	rows, err := q.Query(ctx, "SELECT "+vendorColumns+" FROM vendors ORDER BY vendor_id")
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	defer rows.Close()

	var vendors []models.Vendor
	for rows.Next() {
		var v models.Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.Location, &v.Email, &v.Contact); err != nil {
			return nil, fmt.Errorf("failed to scan vendor: %w", err)
		}
		vendors = append(vendors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vendors: %w", err)
	}

	return vendors, nil
}

func (r *vendorRepository) Count(ctx context.Context) (int, error) {
	q := r.db.QuerierFrom(ctx)

	var count int
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM vendors").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count vendors: %w", err)
	}
	return count, nil
}
