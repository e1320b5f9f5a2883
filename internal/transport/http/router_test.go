package httptransport

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	flowhandler "tidv/internal/flow/handler"
	"tidv/internal/identity/reference"
	"tidv/internal/identity/session"
	"tidv/internal/platform/metrics"
	"tidv/internal/platform/middleware"
	"tidv/internal/verification"
	verificationhandler "tidv/internal/verification/handler"
	"tidv/pkg/testutil"
)

const token = "demo_token"

func newTestRouter(t *testing.T, origins ...string) http.Handler {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New(prometheus.NewRegistry())
	data := reference.Default()
	return NewRouter(Deps{
		Logger:             log,
		Metrics:            m,
		Throttle:           middleware.NewThrottle(0, 0, m, log),
		BearerToken:        token,
		CORSAllowedOrigins: origins,
		Flow: flowhandler.New(flowhandler.Config{
			Base:         "https://dth.test",
			KongBase:     "https://kong.test",
			AccessBase:   "https://access.test",
			BenefitsBase: "https://benefits.test",
			RedirectMode: true,
		}, session.NewTokenMachine(), data, log, m),
		Verification: verificationhandler.New(verification.New(data, log, verification.WithMetrics(m)), log),
	})
}

func TestPublicRoutesNeedNoBearer(t *testing.T) {
	r := newTestRouter(t)
	for _, path := range []string{"/health", "/", "/authenticate"} {
		rr := testutil.DoRequest(r, testutil.NewJSONRequest(t, http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.NotEmpty(t, rr.Header().Get(middleware.RequestIDHeader))
	}
}

func TestProtectedRoutesRequireBearer(t *testing.T) {
	r := newTestRouter(t)
	routes := []struct{ method, path string }{
		{http.MethodGet, "/protected/payments/esa"},
		{http.MethodGet, "/idv-failure"},
		{http.MethodGet, "/failures/NO_KBVS_CORRECT"},
		{http.MethodPost, "/validate"},
		{http.MethodPost, "/validate/dob-phone"},
		{http.MethodPost, "/validate/postcode-nino"},
		{http.MethodPost, "/validate/submitted"},
		{http.MethodPost, "/kbv/PIP/answer"},
		{http.MethodPost, "/kbv/PIP/batch"},
	}
	for _, rt := range routes {
		rr := testutil.DoRequest(r, testutil.NewJSONRequest(t, rt.method, rt.path, map[string]string{}))
		testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "invalid bearer")
	}
}

func TestValidateEndToEnd(t *testing.T) {
	r := newTestRouter(t)

	testutil.Given(t, "the demo subject's details in mixed formats", func(t *testing.T) {
		req := testutil.WithBearer(testutil.NewRequestWithBody(t, http.MethodPost, "/validate", "text/plain",
			`{"dob":"1975-05-01","postcode":"n22 5qh","nino":"JC 73 50 92 A","phone":" 07983215336 "}`), token)

		testutil.When(t, "they are validated", func(t *testing.T) {
			rr := testutil.DoRequest(r, req)

			testutil.Then(t, "all four fields match", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusOK)
				resp := testutil.UnmarshalResponse[verificationhandler.CheckResponse](t, rr)
				assert.True(t, resp.Match)
				assert.Equal(t, "FULL_MATCH", resp.Status)
				assert.Equal(t, 3, resp.ConfidenceLevel)
				assert.Equal(t, "GUID_DEMO_001", resp.GUID)
				require.NotNil(t, resp.MatchCount)
				assert.Equal(t, 4, *resp.MatchCount)
			})
		})
	})
}

func TestKBVBatchEndToEnd(t *testing.T) {
	r := newTestRouter(t)
	req := testutil.WithBearer(testutil.NewRequestWithBody(t, http.MethodPost, "/kbv/pip/batch", "application/json",
		`{"answers":[{"questionId":"pip_components","answer":["enhanced mobility","Standard Daily Living"]},{"questionId":"pip_payment_amount","answer":184.30}]}`), token)

	rr := testutil.DoRequest(r, req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[verificationhandler.KBVBatchResponse](t, rr)
	assert.Equal(t, 2, resp.PassedCount)
	assert.Equal(t, "FULL_MATCH", resp.Status)
	assert.Equal(t, 3, resp.ConfidenceLevel)
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(t, "https://app.test")
	req := testutil.NewJSONRequest(t, http.MethodOptions, "/validate", nil)
	req.Header.Set("Origin", "https://app.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rr := testutil.DoRequest(r, req)

	assert.Equal(t, "https://app.test", rr.Header().Get("Access-Control-Allow-Origin"))
}
