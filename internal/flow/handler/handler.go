// Package handler serves the simulated authorization flow: the redirect hops
// between services, the authentication dialogue and the token endpoints.
package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"tidv/internal/identity/reference"
	"tidv/internal/identity/session"
	"tidv/internal/platform/metrics"
	"tidv/pkg/platform/httputil"
	"tidv/pkg/requestcontext"
)

// Canned values handed out by the simulated token endpoints.
const (
	SignInToken = "tok_001"
	AccessToken = "demo_access_123"
	IDToken     = "demo_id_456"
	TokenTTL    = 14400
	ServiceName = "dth"
	Banner      = "DTH (TIDV) demo service is running"
)

// Config holds the addresses and response mode of the flow.
type Config struct {
	Base         string
	BenefitsBase string
	KongBase     string
	AccessBase   string

	// RedirectMode answers hops with 302 + Location; otherwise a JSON body
	// carries the target.
	RedirectMode   bool
	ForceAuthLevel int

	// Completion is the code and OAuth state handed out once the dialogue
	// completes. It must match the machine's completion.
	Completion session.Completion
}

// Handler wires the flow endpoints.
type Handler struct {
	cfg     Config
	machine session.Machine
	data    *reference.Data
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New constructs a flow handler.
func New(cfg Config, machine session.Machine, data *reference.Data, logger *slog.Logger, m *metrics.Metrics) *Handler {
	if cfg.Completion.AuthorizationCode == "" {
		cfg.Completion.AuthorizationCode = session.DefaultAuthorizationCode
	}
	if cfg.Completion.State == "" {
		cfg.Completion.State = session.DefaultOAuthState
	}
	return &Handler{cfg: cfg, machine: machine, data: data, logger: logger, metrics: m}
}

// Register mounts the public endpoints on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.HandleHealth)
	r.Get("/", h.HandleRoot)
	r.Get("/payments/{benefitType}", h.HandlePayments)
	r.Get("/authorize", h.HandleAuthorize)
	r.Get("/authenticate", h.HandleStartAuthentication)
	r.Post("/authenticate", h.HandleAuthenticate)
	r.Get("/authorize-outcome", h.HandleAuthorizeOutcome)
	r.Post("/token", h.HandleToken)
	r.Post("/introspect", h.HandleIntrospect)
}

// RegisterProtected mounts the endpoints that sit behind the bearer gate.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Get("/protected/payments/{benefitType}", h.HandleProtectedPayments)
}

// HandleHealth handles GET /health.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, HealthResponse{OK: true, Service: ServiceName, Base: h.cfg.Base})
}

// HandleRoot handles GET /.
func (h *Handler) HandleRoot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(Banner))
}

// HandlePayments handles GET /payments/{benefitType}, the entry point that
// sends the caller to the authorization server.
func (h *Handler) HandlePayments(w http.ResponseWriter, r *http.Request) {
	benefitType := strings.ToUpper(chi.URLParam(r, "benefitType"))
	if benefitType == "" {
		benefitType = string(reference.BenefitESA)
	}
	q := url.Values{}
	q.Set("client_id", "CxP-"+benefitType+"-TIDV")
	q.Set("state", h.cfg.Completion.State)
	httputil.WriteLocation(w, h.cfg.RedirectMode, h.cfg.KongBase+"/authorize?"+q.Encode())
}

// HandleAuthorize handles GET /authorize.
func (h *Handler) HandleAuthorize(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteLocation(w, h.cfg.RedirectMode, h.cfg.AccessBase+"/authenticate?signInToken="+SignInToken)
}

// HandleStartAuthentication handles GET /authenticate and returns the first
// prompt of the dialogue.
func (h *Handler) HandleStartAuthentication(w http.ResponseWriter, r *http.Request) {
	step := h.machine.Start(r.Context())
	httputil.WriteJSON(w, http.StatusOK, FromStep(step))
}

// HandleAuthenticate handles POST /authenticate. The body names the step
// being answered in authId; an unreadable body is treated as an unknown step.
func (h *Handler) HandleAuthenticate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	sub := session.Submission{}
	body, err := httputil.DecodeObject[map[string]any](r, "authId")
	if err != nil {
		h.logger.WarnContext(ctx, "unreadable authenticate body",
			"request_id", requestID,
			"error", err,
		)
	} else if body != nil && *body != nil {
		sub = session.Submission(*body)
	}

	authID, _ := sub["authId"].(string)
	out := h.machine.Advance(ctx, authID, sub)

	from := string(out.From)
	if from == "" {
		from = "UNRECOGNIZED"
	}
	h.metrics.IncrementTransition(from, string(out.To))
	h.logger.InfoContext(ctx, "authentication step",
		"request_id", requestID,
		"from", from,
		"to", string(out.To),
	)

	switch {
	case out.Next != nil:
		httputil.WriteJSON(w, http.StatusOK, FromStep(*out.Next))
	case out.Completion != nil:
		q := url.Values{}
		q.Set("state", out.Completion.State)
		httputil.WriteLocation(w, h.cfg.RedirectMode, h.cfg.KongBase+"/authorize-outcome?"+q.Encode())
	default:
		httputil.WriteJSON(w, http.StatusUnauthorized, FromFailure(out.Failure))
	}
}

// HandleAuthorizeOutcome handles GET /authorize-outcome, handing the
// authorization code back to the benefits service.
func (h *Handler) HandleAuthorizeOutcome(w http.ResponseWriter, _ *http.Request) {
	code := h.cfg.Completion.AuthorizationCode
	if !h.cfg.RedirectMode {
		httputil.WriteJSON(w, http.StatusOK, CodeResponse{Code: code})
		return
	}
	httputil.WriteLocation(w, true, h.cfg.BenefitsBase+"/payments/esa?code="+url.QueryEscape(code))
}

// HandleToken handles POST /token.
func (h *Handler) HandleToken(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken: AccessToken,
		IDToken:     IDToken,
		ExpiresIn:   TokenTTL,
	})
}

// HandleIntrospect handles POST /introspect.
func (h *Handler) HandleIntrospect(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, IntrospectResponse{
		AuthLevel: h.cfg.ForceAuthLevel,
		GUID:      h.data.GUID,
		Active:    true,
	})
}

// HandleProtectedPayments handles GET /protected/payments/{benefitType}.
func (h *Handler) HandleProtectedPayments(w http.ResponseWriter, r *http.Request) {
	bt, err := reference.ParseBenefitType(chi.URLParam(r, "benefitType"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	p, ok := h.data.Payment(bt)
	if !ok {
		p, _ = h.data.Payment(reference.BenefitESA)
	}
	w.Header().Set("X-GUID", h.data.GUID)
	httputil.WriteJSON(w, http.StatusOK, PaymentResponse{PaymentDate: p.Date, PaymentAmount: p.Amount})
}
