package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Cheertaboi/storefront-checkout-service/internal/models"
	"github.com/Cheertaboi/storefront-checkout-service/pkg/config"
	"github.com/Cheertaboi/storefront-checkout-service/pkg/logger"
)

type sessionCtxKey struct{}

var sessionSigningMethod = jwt.SigningMethodHS256

// SessionClaims is the token the storefront's sign-in flow hands to the browser.
type SessionClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func SessionFromContext(ctx context.Context) models.Session {
	if ctx == nil {
		return models.Session{}
	}
	if s, ok := ctx.Value(sessionCtxKey{}).(models.Session); ok {
		return s
	}
	return models.Session{}
}

func WithSession(ctx context.Context, s models.Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, sessionCtxKey{}, s)
}

// Session attaches the shopper's session to the request context. Requests
// without a valid bearer token continue as anonymous; nothing here rejects.
func Session(cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	secret := []byte(cfg.JWTSecret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r.Header.Get("Authorization"))
			if raw == "" || len(secret) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := ParseSessionToken(cfg, raw)
			if err != nil {
				logg.Debug(logg.WithField(r.Context(), "error", err.Error()), "session.invalid_token")
				next.ServeHTTP(w, r)
				return
			}

			sess := models.Session{UserID: claims.Subject, Email: claims.Email}
			ctx := WithSession(r.Context(), sess)
			ctx = logg.WithUserID(ctx, sess.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ParseSessionToken(cfg config.SessionConfig, tokenString string) (*SessionClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{sessionSigningMethod.Alg()})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTSecret), nil
		},
		opts...,
	)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// MintSessionToken signs claims with the session secret.
func MintSessionToken(cfg config.SessionConfig, claims SessionClaims) (string, error) {
	if cfg.Issuer != "" && claims.Issuer == "" {
		claims.Issuer = cfg.Issuer
	}
	return jwt.NewWithClaims(sessionSigningMethod, claims).SignedString([]byte(cfg.JWTSecret))
}

func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
