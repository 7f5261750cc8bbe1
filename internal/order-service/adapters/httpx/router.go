package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcmexdev/order-taking/internal/pkg/interceptors"
	"github.com/jcmexdev/order-taking/internal/pkg/metrics"
)

// NewRouter wires the order routes. m may be nil, in which case neither
// request metrics nor /metrics are served.
func NewRouter(handler *Handler, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(attachRequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if m != nil {
		r.Use(m.Middleware)
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Get("/healthz", handler.Health)
	r.Post("/orders", handler.PlaceOrder)
	r.Get("/orders/{id}/runs/latest", handler.LatestRun)
	return r
}

// attachRequestID exposes chi's request id to the structured logger.
func attachRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := interceptors.WithRequestID(r.Context(), middleware.GetReqID(r.Context()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
