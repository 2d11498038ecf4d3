package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/restockhq/reorder-engine/pkg/apperrors"
	"github.com/restockhq/reorder-engine/pkg/logging"
	"github.com/restockhq/reorder-engine/pkg/mailer"
	"github.com/restockhq/reorder-engine/pkg/models"
	"github.com/restockhq/reorder-engine/pkg/repositories"
)

// OrderDispatcher emails one purchase order per OrderIntent. Dispatch is
// strictly sequential and continue-on-error: a failed send for one intent
// is recorded as data and never blocks the remaining intents.
type OrderDispatcher struct {
	vendorRepo repositories.VendorRepository
	mailer     mailer.Mailer
	logger     *zap.Logger
}

// NewOrderDispatcher creates a new dispatcher.
func NewOrderDispatcher(vendorRepo repositories.VendorRepository, m mailer.Mailer, logger *zap.Logger) *OrderDispatcher {
	return &OrderDispatcher{
		vendorRepo: vendorRepo,
		mailer:     m,
		logger:     logger.Named("dispatcher"),
	}
}

// Dispatch attempts exactly one send per intent and returns one
// DispatchResult per intent, in input order. Intents with no resolvable
// vendor are recorded with sentinel vendor fields and never reach the
// mailer.
func (d *OrderDispatcher) Dispatch(ctx context.Context, intents []models.OrderIntent) []models.DispatchResult {
	results := make([]models.DispatchResult, 0, len(intents))

	for _, intent := range intents {
		results = append(results, d.dispatchOne(ctx, intent))
	}

	return results
}

func (d *OrderDispatcher) dispatchOne(ctx context.Context, intent models.OrderIntent) models.DispatchResult {
	result := models.DispatchResult{
		ProductID: intent.ProductID,
		Name:      intent.Name,
		Shortage:  intent.Shortage,
	}

	if intent.VendorID == "" {
		result.VendorName = models.NoVendorName
		result.VendorEmail = models.NoVendorEmail
		result.Outcome = "no vendor found for this product"
		return result
	}

	vendor, err := d.vendorRepo.GetByID(ctx, intent.VendorID)
	if err != nil {
		result.VendorName = models.NoVendorName
		result.VendorEmail = models.NoVendorEmail
		if errors.Is(err, apperrors.ErrNotFound) {
			result.Outcome = fmt.Sprintf("no vendor found for vendor id %s", intent.VendorID)
		} else {
			d.logger.Error("Vendor lookup failed",
				zap.String("vendor_id", intent.VendorID),
				zap.Error(err))
			result.Outcome = fmt.Sprintf("vendor lookup failed: %s", logging.SanitizeError(err))
		}
		return result
	}

	result.VendorName = vendor.Name
	result.VendorEmail = vendor.Email

	// Exactly one send attempt per intent. A transient SMTP reply may
	// arrive after the server already accepted the message, so retrying
	// here could email a vendor the same purchase order twice.
	err = d.mailer.SendPurchaseOrder(ctx, mailer.PurchaseOrder{
		VendorEmail: vendor.Email,
		VendorName:  vendor.Name,
		ProductName: intent.Name,
		ProductID:   intent.ProductID,
		Quantity:    intent.Shortage,
	})
	if err != nil {
		// Fail closed: transport errors become a per-intent outcome, not a
		// run failure.
		d.logger.Warn("Purchase order send failed",
			zap.String("vendor_id", intent.VendorID),
			zap.String("product_id", intent.ProductID),
			zap.Error(err))
		result.Outcome = fmt.Sprintf("Error: %s", logging.SanitizeError(err))
		return result
	}

	result.Outcome = models.OutcomeSent
	return result
}
