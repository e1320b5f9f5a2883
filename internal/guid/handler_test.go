package guid

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"tidv/pkg/testutil"
)

func newRouter() chi.Router {
	r := chi.NewRouter()
	New("AB123456C", slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	return r
}

func TestResolve(t *testing.T) {
	r := newRouter()
	for _, guid := range []string{"GUID_DEMO_001", "anything-else"} {
		rr := testutil.DoRequest(r, testutil.NewJSONRequest(t, http.MethodGet, "/guid/"+guid, nil))
		testutil.AssertStatus(t, rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[Resolution](t, rr)
		assert.Equal(t, guid, resp.GUID)
		assert.Equal(t, "AB123456C", resp.NINO)
	}
}

func TestHealthAndRoot(t *testing.T) {
	r := newRouter()

	rr := testutil.DoRequest(r, testutil.NewJSONRequest(t, http.MethodGet, "/health", nil))
	testutil.AssertStatus(t, rr, http.StatusOK)
	assert.Equal(t, HealthResponse{OK: true, Service: "guid"}, *testutil.UnmarshalResponse[HealthResponse](t, rr))

	rr = testutil.DoRequest(r, testutil.NewJSONRequest(t, http.MethodGet, "/", nil))
	assert.Equal(t, Banner, rr.Body.String())
}
