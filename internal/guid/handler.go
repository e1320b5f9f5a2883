// Package guid serves the GUID resolver: it maps an opaque subject GUID to
// the National Insurance number held for it.
package guid

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tidv/pkg/platform/httputil"
	"tidv/pkg/requestcontext"
)

const (
	ServiceName = "guid"
	Banner      = "GUID resolver service is running"
)

// Resolution is the body of GET /guid/{guid}.
type Resolution struct {
	GUID string `json:"guid"`
	NINO string `json:"nino"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
}

// Handler resolves every GUID to the same configured NINO.
type Handler struct {
	nino   string
	logger *slog.Logger
}

// New constructs a resolver handler.
func New(nino string, logger *slog.Logger) *Handler {
	return &Handler{nino: nino, logger: logger}
}

// Register mounts the resolver endpoints on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.HandleHealth)
	r.Get("/", h.HandleRoot)
	r.Get("/guid/{guid}", h.HandleResolve)
}

// HandleHealth handles GET /health.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, HealthResponse{OK: true, Service: ServiceName})
}

// HandleRoot handles GET /.
func (h *Handler) HandleRoot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(Banner))
}

// HandleResolve handles GET /guid/{guid}.
func (h *Handler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	guid := chi.URLParam(r, "guid")
	h.logger.InfoContext(ctx, "guid resolved",
		"request_id", requestcontext.RequestID(ctx),
		"guid", guid,
	)
	httputil.WriteJSON(w, http.StatusOK, Resolution{GUID: guid, NINO: h.nino})
}
