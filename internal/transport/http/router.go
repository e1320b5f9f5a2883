package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	flowhandler "tidv/internal/flow/handler"
	"tidv/internal/platform/metrics"
	"tidv/internal/platform/middleware"
	verificationhandler "tidv/internal/verification/handler"
)

// Deps are the pieces the router assembles.
type Deps struct {
	Logger             *slog.Logger
	Metrics            *metrics.Metrics
	Throttle           *middleware.Throttle
	BearerToken        string
	CORSAllowedOrigins []string
	Flow               *flowhandler.Handler
	Verification       *verificationhandler.Handler
}

// NewRouter wires all endpoints. The flow hops are public; payments data,
// identity checks, KBV and failure detail sit behind the bearer gate.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.RequestTime)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Latency(d.Metrics))
	if len(d.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   d.CORSAllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
			ExposedHeaders:   []string{"Location", "X-GUID", middleware.RequestIDHeader},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}
	r.Use(d.Throttle.Middleware)

	d.Flow.Register(r)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireBearer(d.BearerToken, d.Logger))
		d.Flow.RegisterProtected(r)
		d.Verification.Register(r)
	})

	return r
}
