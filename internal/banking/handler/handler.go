package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"fueleu/internal/banking"
	"fueleu/internal/platform/middleware"
	"fueleu/internal/transport/http/shared"
	dErrors "fueleu/pkg/domain-errors"
)

// Service defines the ledger operations the handler depends on.
type Service interface {
	Bank(ctx context.Context, shipID string, year int) (*banking.BankResult, error)
	Apply(ctx context.Context, shipID string, year int, cbCurrent float64) (*banking.ApplyResult, error)
	Records(ctx context.Context, shipID string, year int) (*banking.Records, error)
}

// BalanceSource provides the current compliance balance the apply
// operation offsets against.
type BalanceSource interface {
	CurrentBalance(ctx context.Context, shipID string, year int) (float64, error)
}

// Handler handles banking ledger endpoints.
type Handler struct {
	ledger   Service
	balances BalanceSource
	logger   *slog.Logger
}

// New creates a new banking Handler.
func New(ledger Service, balances BalanceSource, logger *slog.Logger) *Handler {
	return &Handler{ledger: ledger, balances: balances, logger: logger}
}

// Register registers the banking routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/banking/records", h.handleRecords)
	r.Post("/banking/bank", h.handleBank)
	r.Post("/banking/apply", h.handleApply)
}

type ledgerRequest struct {
	ShipID string `json:"shipId"`
	Year   int    `json:"year"`
}

func (h *Handler) handleRecords(w http.ResponseWriter, r *http.Request) {
	shipID := r.URL.Query().Get("shipId")
	rawYear := r.URL.Query().Get("year")
	if shipID == "" || rawYear == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "shipId and year are required"))
		return
	}
	year, err := strconv.Atoi(rawYear)
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "year must be an integer"))
		return
	}

	records, err := h.ledger.Records(r.Context(), shipID, year)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to read ledger records",
			"request_id", middleware.GetRequestID(r.Context()),
			"ship_id", shipID,
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, records)
}

func (h *Handler) handleBank(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := h.decodeLedgerRequest(w, r)
	if !ok {
		return
	}

	result, err := h.ledger.Bank(ctx, req.ShipID, req.Year)
	if err != nil {
		h.logFailure(ctx, "bank", req, err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleApply(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := h.decodeLedgerRequest(w, r)
	if !ok {
		return
	}

	// The current balance feeds the apply as plain data, keeping the
	// ledger decoupled from how balances are obtained.
	cbCurrent, err := h.balances.CurrentBalance(ctx, req.ShipID, req.Year)
	if err != nil {
		h.logFailure(ctx, "apply", req, err)
		shared.WriteError(w, err)
		return
	}

	result, err := h.ledger.Apply(ctx, req.ShipID, req.Year, cbCurrent)
	if err != nil {
		h.logFailure(ctx, "apply", req, err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) decodeLedgerRequest(w http.ResponseWriter, r *http.Request) (ledgerRequest, bool) {
	var req ledgerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return ledgerRequest{}, false
	}
	if req.ShipID == "" || req.Year == 0 {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "shipId and year are required"))
		return ledgerRequest{}, false
	}
	return req, true
}

func (h *Handler) logFailure(ctx context.Context, op string, req ledgerRequest, err error) {
	if dErrors.CodeOf(err) != dErrors.CodeInternal {
		return
	}
	h.logger.ErrorContext(ctx, "ledger operation failed",
		"request_id", middleware.GetRequestID(ctx),
		"op", op,
		"ship_id", req.ShipID,
		"year", req.Year,
		"error", err.Error(),
	)
}
