package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"golang.org/x/time/rate"

	"tidv/internal/platform/metrics"
	dErrors "tidv/pkg/domain-errors"
	"tidv/pkg/platform/httputil"
	"tidv/pkg/requestcontext"
)

// Throttle applies a single process-wide token bucket. A nil limiter
// disables throttling.
type Throttle struct {
	limiter *rate.Limiter
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewThrottle builds a throttle admitting rps requests per second with the
// given burst. rps <= 0 returns a disabled throttle.
func NewThrottle(rps float64, burst int, m *metrics.Metrics, logger *slog.Logger) *Throttle {
	t := &Throttle{metrics: m, logger: logger}
	if rps > 0 {
		if burst < 1 {
			burst = 1
		}
		t.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		logger.Info("global throttle enabled", "rps", rps, "burst", burst)
	}
	return t
}

// Enabled reports whether requests are being limited.
func (t *Throttle) Enabled() bool {
	return t != nil && t.limiter != nil
}

// Middleware rejects requests over the budget with 429.
func (t *Throttle) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !t.Enabled() || t.limiter.Allow() {
			next.ServeHTTP(w, r)
			return
		}

		t.metrics.IncrementThrottled()
		ctx := r.Context()
		t.logger.WarnContext(ctx, "request throttled",
			"request_id", requestcontext.RequestID(ctx),
			"path", r.URL.Path,
		)
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(t.limiter.Limit())))
		httputil.WriteError(w, dErrors.New(dErrors.CodeRateLimited, "Too many requests. Please try again later."))
	})
}

func retryAfterSeconds(limit rate.Limit) int {
	if limit <= 0 {
		return 1
	}
	secs := int(1 / float64(limit))
	if secs < 1 {
		return 1
	}
	return secs
}
