package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cheertaboi/storefront-checkout-service/internal/models"
	"github.com/Cheertaboi/storefront-checkout-service/pkg/config"
	"github.com/Cheertaboi/storefront-checkout-service/pkg/logger"
)

var testSessionConfig = config.SessionConfig{JWTSecret: "test-secret", Issuer: "storefront"}

func mint(t *testing.T, cfg config.SessionConfig, subject string, expires time.Time) string {
	t.Helper()
	token, err := MintSessionToken(cfg, SessionClaims{
		Email: subject + "@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})
	require.NoError(t, err)
	return token
}

func captureSession(cfg config.SessionConfig, authHeader string) models.Session {
	var got models.Session
	h := Session(cfg, logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = SessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	h.ServeHTTP(httptest.NewRecorder(), req)
	return got
}

func TestSessionFromValidToken(t *testing.T) {
	t.Parallel()

	token := mint(t, testSessionConfig, "user-1", time.Now().Add(time.Hour))
	got := captureSession(testSessionConfig, "Bearer "+token)

	assert.Equal(t, models.Session{UserID: "user-1", Email: "user-1@example.com"}, got)
	assert.False(t, got.Anonymous())
}

func TestSessionAnonymousFallbacks(t *testing.T) {
	t.Parallel()

	valid := mint(t, testSessionConfig, "user-1", time.Now().Add(time.Hour))
	expired := mint(t, testSessionConfig, "user-1", time.Now().Add(-time.Hour))
	otherIssuer := mint(t, config.SessionConfig{JWTSecret: "test-secret", Issuer: "elsewhere"}, "user-1", time.Now().Add(time.Hour))
	otherSecret := mint(t, config.SessionConfig{JWTSecret: "nope", Issuer: "storefront"}, "user-1", time.Now().Add(time.Hour))

	tests := []struct {
		name   string
		cfg    config.SessionConfig
		header string
	}{
		{name: "no header", cfg: testSessionConfig},
		{name: "not bearer", cfg: testSessionConfig, header: "Basic " + valid},
		{name: "garbage", cfg: testSessionConfig, header: "Bearer not-a-jwt"},
		{name: "expired", cfg: testSessionConfig, header: "Bearer " + expired},
		{name: "wrong issuer", cfg: testSessionConfig, header: "Bearer " + otherIssuer},
		{name: "wrong secret", cfg: testSessionConfig, header: "Bearer " + otherSecret},
		{name: "verification disabled", cfg: config.SessionConfig{}, header: "Bearer " + valid},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := captureSession(tc.cfg, tc.header)
			assert.True(t, got.Anonymous())
		})
	}
}

func TestRequestIDEchoesOrGenerates(t *testing.T) {
	t.Parallel()

	h := RequestID(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "req-1")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	assert.Equal(t, "req-1", resp.Header().Get(requestIDHeader))

	resp = httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, resp.Header().Get(requestIDHeader))
}

func TestRecovererAnswers500(t *testing.T) {
	t.Parallel()

	h := Recoverer(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.JSONEq(t, `{"error":"internal_error"}`, resp.Body.String())
}
