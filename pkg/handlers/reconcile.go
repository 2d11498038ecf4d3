package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/restockhq/reorder-engine/pkg/apperrors"
	"github.com/restockhq/reorder-engine/pkg/models"
)

// maxUploadBytes caps multipart demand-file uploads.
const maxUploadBytes = 32 << 20

// ReconcileService runs the demand-reconciliation pipeline.
type ReconcileService interface {
	Reconcile(ctx context.Context, filename string, r io.Reader) (*models.RunReport, error)
	ReconcileAndDispatch(ctx context.Context, filename string, r io.Reader) (*models.RunReport, error)
}

// ReconcileHandler handles demand file uploads.
type ReconcileHandler struct {
	svc    ReconcileService
	logger *zap.Logger
}

// NewReconcileHandler creates a new reconcile handler.
func NewReconcileHandler(svc ReconcileService, logger *zap.Logger) *ReconcileHandler {
	return &ReconcileHandler{svc: svc, logger: logger}
}

// RegisterRoutes registers the reconcile handler's routes on the given mux.
func (h *ReconcileHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/reconcile", h.Reconcile)
}

// Reconcile handles POST /api/reconcile. The demand file arrives as the
// multipart field "file"; passing form value "dispatch=true" additionally
// emails one purchase order per consolidated intent.
func (h *ReconcileHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_file", "expected multipart form with a demand file"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_file", "missing multipart field 'file'"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	defer file.Close()

	dispatch := r.FormValue("dispatch") == "true"

	var report *models.RunReport
	if dispatch {
		report, err = h.svc.ReconcileAndDispatch(r.Context(), header.Filename, file)
	} else {
		report, err = h.svc.Reconcile(r.Context(), header.Filename, file)
	}
	if err != nil {
		h.handleRunError(w, header.Filename, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: report}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

func (h *ReconcileHandler) handleRunError(w http.ResponseWriter, filename string, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUnsupportedFormat):
		if err := ErrorResponse(w, http.StatusBadRequest, "unsupported_format", "demand files must be .csv or .xlsx"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
	case errors.Is(err, apperrors.ErrEmptyFile):
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_file", "demand file has no header row"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
	default:
		h.logger.Error("Reconciliation run failed",
			zap.String("file", filename),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "reconcile_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
	}
}
