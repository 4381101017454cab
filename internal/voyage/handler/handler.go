package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fueleu/internal/platform/middleware"
	"fueleu/internal/transport/http/shared"
	"fueleu/internal/voyage"
	dErrors "fueleu/pkg/domain-errors"
)

// Service defines the voyage operations the handler depends on.
type Service interface {
	List(ctx context.Context) ([]voyage.Record, error)
	SetBaseline(ctx context.Context, id string) (voyage.Record, error)
	Comparison(ctx context.Context) (*voyage.ComparisonResult, error)
}

// Handler handles voyage record endpoints.
type Handler struct {
	voyages Service
	logger  *slog.Logger
}

// New creates a new voyage Handler.
func New(voyages Service, logger *slog.Logger) *Handler {
	return &Handler{voyages: voyages, logger: logger}
}

// Register registers the voyage routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/routes", h.handleList)
	r.Get("/routes/comparison", h.handleComparison)
	r.Post("/routes/{id}/baseline", h.handleSetBaseline)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.voyages.List(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list voyage records",
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, records)
}

func (h *Handler) handleSetBaseline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	if id == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "record id is required"))
		return
	}

	record, err := h.voyages.SetBaseline(ctx, id)
	if err != nil {
		if !dErrors.Is(err, dErrors.CodeNotFound) {
			h.logger.ErrorContext(ctx, "failed to set baseline",
				"request_id", middleware.GetRequestID(ctx),
				"record_id", id,
				"error", err.Error(),
			)
		}
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) handleComparison(w http.ResponseWriter, r *http.Request) {
	result, err := h.voyages.Comparison(r.Context())
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			h.logger.ErrorContext(r.Context(), "failed to compute comparison",
				"request_id", middleware.GetRequestID(r.Context()),
				"error", err.Error(),
			)
		}
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, result)
}
