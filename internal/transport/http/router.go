package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	bankinghandler "fueleu/internal/banking/handler"
	compliancehandler "fueleu/internal/compliance/handler"
	"fueleu/internal/platform/metrics"
	"fueleu/internal/platform/middleware"
	poolinghandler "fueleu/internal/pooling/handler"
	voyagehandler "fueleu/internal/voyage/handler"
)

// Handlers groups the per-vertical handlers the router mounts.
type Handlers struct {
	Voyage     *voyagehandler.Handler
	Compliance *compliancehandler.Handler
	Banking    *bankinghandler.Handler
	Pooling    *poolinghandler.Handler
}

// NewRouter wires all public endpoints. Handlers delegate to domain
// services so transport concerns remain isolated here.
func NewRouter(h Handlers, logger *slog.Logger, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.Latency(m))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.ContentTypeJSON)
		h.Voyage.Register(api)
		h.Compliance.Register(api)
		h.Banking.Register(api)
		h.Pooling.Register(api)
	})

	return r
}
