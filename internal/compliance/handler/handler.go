package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"fueleu/internal/compliance"
	"fueleu/internal/platform/middleware"
	"fueleu/internal/transport/http/shared"
	dErrors "fueleu/pkg/domain-errors"
)

// Service defines the compliance operations the handler depends on.
type Service interface {
	ComputeForShip(ctx context.Context, shipID string, year int, targetOverride float64) (compliance.Balance, error)
	AdjustedForYear(ctx context.Context, year int) ([]compliance.AdjustedBalance, error)
}

// Handler handles compliance balance endpoints.
type Handler struct {
	compliance Service
	logger     *slog.Logger
}

// New creates a new compliance Handler.
func New(compliance Service, logger *slog.Logger) *Handler {
	return &Handler{compliance: compliance, logger: logger}
}

// Register registers the compliance routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/compliance/cb", h.handleComputeBalance)
	r.Get("/compliance/adjusted-cb", h.handleAdjustedBalances)
}

func (h *Handler) handleComputeBalance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	shipID := r.URL.Query().Get("shipId")
	if shipID == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "shipId is required"))
		return
	}

	year := 0
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "year must be an integer"))
			return
		}
		year = parsed
	}

	// Optional per-request regulatory target override.
	target := 0.0
	if raw := r.URL.Query().Get("target"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "target must be a positive number"))
			return
		}
		target = parsed
	}

	balance, err := h.compliance.ComputeForShip(ctx, shipID, year, target)
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			h.logger.ErrorContext(ctx, "failed to compute compliance balance",
				"request_id", middleware.GetRequestID(ctx),
				"ship_id", shipID,
				"error", err.Error(),
			)
		}
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, balance)
}

func (h *Handler) handleAdjustedBalances(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	raw := r.URL.Query().Get("year")
	if raw == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "year is required"))
		return
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "year must be an integer"))
		return
	}

	balances, err := h.compliance.AdjustedForYear(ctx, year)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to compute adjusted balances",
			"request_id", middleware.GetRequestID(ctx),
			"year", year,
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, balances)
}
