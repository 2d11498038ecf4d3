package services

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/restockhq/reorder-engine/pkg/database"
	"github.com/restockhq/reorder-engine/pkg/ingest"
	"github.com/restockhq/reorder-engine/pkg/models"
	"github.com/restockhq/reorder-engine/pkg/repositories"
)

// RunScoper pins a database connection for the duration of one run.
// *database.DB satisfies it.
type RunScoper interface {
	AcquireRunScope(ctx context.Context) (*database.RunScope, error)
}

// ReconciliationService runs the demand-reconciliation pipeline: parse the
// uploaded file, aggregate demand, resolve shortages against a fresh
// catalogue index, and consolidate order intents. Each run pins one
// database connection for its duration and holds no state afterwards.
type ReconciliationService struct {
	db          RunScoper
	productRepo repositories.ProductRepository
	dispatcher  *OrderDispatcher
	logger      *zap.Logger
}

// NewReconciliationService creates a new reconciliation service.
func NewReconciliationService(
	db RunScoper,
	productRepo repositories.ProductRepository,
	dispatcher *OrderDispatcher,
	logger *zap.Logger,
) *ReconciliationService {
	return &ReconciliationService{
		db:          db,
		productRepo: productRepo,
		dispatcher:  dispatcher,
		logger:      logger.Named("reconciliation"),
	}
}

// Reconcile processes one uploaded demand file and returns the run report
// without dispatching any orders. Only input-shape errors (unsupported or
// unreadable files) fail the run; row defects and resolution misses are
// data in the report.
func (s *ReconciliationService) Reconcile(ctx context.Context, filename string, r io.Reader) (*models.RunReport, error) {
	scope, err := s.db.AcquireRunScope(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire run connection: %w", err)
	}
	defer scope.Close()
	runCtx := database.SetRunScope(ctx, scope)

	return s.reconcile(runCtx, filename, r)
}

// ReconcileAndDispatch runs the pipeline and then emails one purchase
// order per consolidated intent, recording per-intent outcomes in the
// report.
func (s *ReconciliationService) ReconcileAndDispatch(ctx context.Context, filename string, r io.Reader) (*models.RunReport, error) {
	scope, err := s.db.AcquireRunScope(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire run connection: %w", err)
	}
	defer scope.Close()
	runCtx := database.SetRunScope(ctx, scope)

	report, err := s.reconcile(runCtx, filename, r)
	if err != nil {
		return nil, err
	}

	report.DispatchResults = s.dispatcher.Dispatch(runCtx, report.OrderIntents)
	return report, nil
}

// DispatchIntents emails previously reviewed order intents. Used by the
// two-step flow where a caller inspects the planned orders before sending.
func (s *ReconciliationService) DispatchIntents(ctx context.Context, intents []models.OrderIntent) []models.DispatchResult {
	return s.dispatcher.Dispatch(ctx, intents)
}

func (s *ReconciliationService) reconcile(ctx context.Context, filename string, r io.Reader) (*models.RunReport, error) {
	rows, err := ingest.ParseDemandFile(filename, r)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalogue: %w", err)
	}

	idx := BuildCatalogueIndex(products)
	agg := AggregateDemand(rows)
	res := ResolveShortages(agg, idx)
	intents := GroupOrders(res.OrderCandidates)

	report := &models.RunReport{
		RunID:              uuid.New(),
		Matched:            res.Matched,
		Unmatched:          res.Unmatched,
		OrderIntents:       intents,
		CategorySummary:    SummarizeCategories(agg, products),
		TotalRowsProcessed: len(rows),
	}

	s.logger.Info("Reconciliation run complete",
		zap.String("run_id", report.RunID.String()),
		zap.String("file", filename),
		zap.Int("rows", report.TotalRowsProcessed),
		zap.Int("catalogue_size", idx.Size()),
		zap.Int("matched", len(report.Matched)),
		zap.Int("unmatched", len(report.Unmatched)),
		zap.Int("order_intents", len(report.OrderIntents)))

	return report, nil
}
