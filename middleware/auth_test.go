package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oscarfollett-cpu/vf-dentist-mcp/config"
)

func testConfig() *config.Config {
	return &config.Config{
		APIKey:             "secret-key",
		SharedSecretHeader: "x-api-key",
		BearerHeader:       "Authorization",
		AltTokenHeader:     "x-auth-token",
		HandshakePaths:     []string{"/validate"},
	}
}

func newAuthRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(APIKeyAuth(cfg, zap.NewNop()))
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"reached": true}) }
	r.GET("/status", ok)
	r.POST("/validate", ok)
	r.POST("/check", ok)
	r.OPTIONS("/check", ok)
	return r
}

func doRequest(r *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthAllowsOpenPaths(t *testing.T) {
	r := newAuthRouter(testConfig())

	for _, path := range []string{"/status"} {
		if w := doRequest(r, http.MethodGet, path, "", nil); w.Code != http.StatusOK {
			t.Errorf("GET %s: expected 200, got %d", path, w.Code)
		}
	}
	// Handshake paths are open even with a body and no credential.
	if w := doRequest(r, http.MethodPost, "/validate", `{"probe":true}`, nil); w.Code != http.StatusOK {
		t.Errorf("POST /validate: expected 200, got %d", w.Code)
	}
}

func TestAuthAllowsPreflight(t *testing.T) {
	r := newAuthRouter(testConfig())
	if w := doRequest(r, http.MethodOptions, "/check", "", nil); w.Code != http.StatusOK {
		t.Errorf("OPTIONS: expected 200, got %d", w.Code)
	}
}

func TestAuthRejectsMissingCredentialWithBody(t *testing.T) {
	r := newAuthRouter(testConfig())
	w := doRequest(r, http.MethodPost, "/check", `{"start":"2024-06-10T09:00:00Z"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "unauthorized") {
		t.Errorf("expected generic unauthorized body, got %s", w.Body.String())
	}
}

func TestAuthAllowsEmptyBodyProbe(t *testing.T) {
	// The same uncredentialed request with no body is a handshake probe.
	r := newAuthRouter(testConfig())
	if w := doRequest(r, http.MethodPost, "/check", "", nil); w.Code != http.StatusOK {
		t.Errorf("expected 200 for empty-body probe, got %d", w.Code)
	}
}

func TestAuthRejectsWrongKey(t *testing.T) {
	r := newAuthRouter(testConfig())
	w := doRequest(r, http.MethodPost, "/check", `{}`, map[string]string{"x-api-key": "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthAcceptsConfiguredHeaderConventions(t *testing.T) {
	r := newAuthRouter(testConfig())

	cases := map[string]map[string]string{
		"shared secret": {"x-api-key": "secret-key"},
		"bearer":        {"Authorization": "Bearer secret-key"},
		"raw bearer":    {"Authorization": "secret-key"},
		"alt token":     {"x-auth-token": "secret-key"},
	}
	for name, headers := range cases {
		if w := doRequest(r, http.MethodPost, "/check", `{}`, headers); w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", name, w.Code)
		}
	}
}

func TestAuthFailsClosedWithoutConfiguredKey(t *testing.T) {
	cfg := testConfig()
	cfg.APIKey = ""
	r := newAuthRouter(cfg)

	w := doRequest(r, http.MethodPost, "/check", `{}`, map[string]string{"x-api-key": "anything"})
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 misconfiguration, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "server misconfigured") {
		t.Errorf("expected misconfiguration body, got %s", w.Body.String())
	}
	// Missing server secret must not masquerade as a caller error.
	if w.Code == http.StatusUnauthorized {
		t.Error("misconfiguration must not be reported as unauthorized")
	}
}
