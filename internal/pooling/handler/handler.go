package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"fueleu/internal/platform/middleware"
	"fueleu/internal/pooling"
	"fueleu/internal/transport/http/shared"
	dErrors "fueleu/pkg/domain-errors"
)

// Service defines the pooling operations the handler depends on.
type Service interface {
	Create(ctx context.Context, year int, members []pooling.MemberInput) (*pooling.Pool, error)
	ListByYear(ctx context.Context, year int) ([]pooling.Pool, error)
}

// Handler handles pool endpoints.
type Handler struct {
	pools  Service
	logger *slog.Logger
}

// New creates a new pooling Handler.
func New(pools Service, logger *slog.Logger) *Handler {
	return &Handler{pools: pools, logger: logger}
}

// Register registers the pool routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/pools", h.handleList)
	r.Post("/pools", h.handleCreate)
}

type createPoolRequest struct {
	Year    int                   `json:"year"`
	Members []pooling.MemberInput `json:"members"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createPoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	pool, err := h.pools.Create(ctx, req.Year, req.Members)
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			h.logger.ErrorContext(ctx, "failed to create pool",
				"request_id", middleware.GetRequestID(ctx),
				"year", req.Year,
				"error", err.Error(),
			)
		}
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, pool)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
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

	pools, err := h.pools.ListByYear(r.Context(), year)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list pools",
			"request_id", middleware.GetRequestID(r.Context()),
			"year", year,
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, pools)
}
