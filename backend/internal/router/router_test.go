package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/itchan-dev/hoots/backend/internal/setup"
	"github.com/itchan-dev/hoots/shared/config"
	"github.com/itchan-dev/hoots/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDeps(t *testing.T) *setup.Dependencies {
	t.Helper()
	cfg := &config.Config{
		Public: config.Public{
			HttpPort:       8080,
			JwtTTL:         time.Hour,
			StorageDriver:  config.StorageDriverMemory,
			AllowedOrigins: []string{"http://localhost:8081"},
			MaxTitleLen:    100,
			MaxTextLen:     1000,
			MaxCommentLen:  500,
			RateLimitRPS:   1000,
			RateLimitBurst: 1000,
		},
		Private: config.Private{JwtKey: "router_test_key"},
	}
	deps, err := setup.SetupDependencies(cfg)
	require.NoError(t, err)
	return deps
}

func do(t *testing.T, r http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestHealthRoutes(t *testing.T) {
	r := New(testDeps(t))

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/health", "", "").Code)
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/ready", "", "").Code)

	rr := do(t, r, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "http_requests_total")
}

func TestHootRoutesRequireAuth(t *testing.T) {
	r := New(testDeps(t))

	rr := do(t, r, http.MethodGet, "/v1/hoots", "", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = do(t, r, http.MethodGet, "/v1/hoots", "", "garbage")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestHootRoutesEndToEnd(t *testing.T) {
	deps := testDeps(t)
	r := New(deps)

	aliceToken, err := deps.Jwt.NewToken(domain.User{Id: 1})
	require.NoError(t, err)
	bobToken, err := deps.Jwt.NewToken(domain.User{Id: 2})
	require.NoError(t, err)

	rr := do(t, r, http.MethodPost, "/v1/hoots", `{"title":"T","text":"**X**"}`, aliceToken)
	require.Equal(t, http.StatusCreated, rr.Code)
	created := decode(t, rr)
	assert.Equal(t, "<p><strong>X</strong></p>", created["text_html"])
	assert.Equal(t, float64(1), created["author"])
	id := created["id"].(string)

	rr = do(t, r, http.MethodPost, "/v1/hoots/"+id+"/comments", `{"text":"hi"}`, bobToken)
	require.Equal(t, http.StatusCreated, rr.Code)
	commentId := decode(t, rr)["id"].(string)

	rr = do(t, r, http.MethodPut, "/v1/hoots/"+id+"/comments/"+commentId, `{"text":"z"}`, aliceToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = do(t, r, http.MethodPut, "/v1/hoots/"+id+"/comments/"+commentId, `{"text":"hello"}`, bobToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, r, http.MethodGet, "/v1/hoots/"+id, "", bobToken)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"text":"hello"`)

	rr = do(t, r, http.MethodGet, "/v1/hoots/urn:uuid:"+strings.ToUpper(id), "", bobToken)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, id, decode(t, rr)["id"])

	rr = do(t, r, http.MethodPut, "/v1/hoots/"+id, `{"title":"stolen"}`, bobToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = do(t, r, http.MethodDelete, "/v1/hoots/"+id, "", aliceToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, r, http.MethodGet, "/v1/hoots/"+id, "", aliceToken)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	rr = do(t, r, http.MethodPut, "/v1/hoots/"+id+"/comments/"+commentId, `{"text":"again"}`, bobToken)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, r, http.MethodGet, "/v1/hoots/not-a-uuid", "", aliceToken)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSecurityHeadersApplied(t *testing.T) {
	r := New(testDeps(t))
	rr := do(t, r, http.MethodGet, "/health", "", "")
	assert.Equal(t, "default-src 'none'; frame-ancestors 'none'", rr.Header().Get("Content-Security-Policy"))
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}
