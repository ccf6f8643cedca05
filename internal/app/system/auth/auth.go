// internal/app/system/auth/auth.go

// Package auth issues and verifies the bearer tokens that carry
// organization-scoped admin identity.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/tenanthub/internal/app/system/apperr"
	"github.com/dalemusser/tenanthub/internal/app/system/httpjson"
	"github.com/dalemusser/tenanthub/internal/domain/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenTypeAdmin is the only token type the service accepts.
const TokenTypeAdmin = "admin"

// Leeway is the clock-skew tolerance applied when validating exp and iat.
// A token whose iat lies further than this in the future is rejected.
const Leeway = 30 * time.Second

// ErrInvalidToken covers every verification failure: bad signature, missing
// claims, wrong token type, expiry. Callers cannot distinguish which;
// handlers map it to a generic unauthorized response.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the bearer token payload.
type Claims struct {
	AdminID        string `json:"admin_id"`
	OrganizationID string `json:"organization_id"`
	Email          string `json:"email"`
	TokenType      string `json:"type"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies admin bearer tokens with an HS256 key.
type TokenManager struct {
	secret []byte
	expiry time.Duration
	log    *zap.Logger
}

// NewTokenManager builds a TokenManager. The signing secret must be
// non-empty; expiry bounds each issued token's lifetime.
func NewTokenManager(secret string, expiry time.Duration, log *zap.Logger) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("auth: signing secret must not be empty")
	}
	if expiry <= 0 {
		return nil, errors.New("auth: token expiry must be positive")
	}
	return &TokenManager{secret: []byte(secret), expiry: expiry, log: log}, nil
}

// Expiry returns the configured token lifetime.
func (tm *TokenManager) Expiry() time.Duration { return tm.expiry }

// Issue mints a bearer token for the admin, carrying the admin id,
// organization id, email, token type, and a unique jti.
func (tm *TokenManager) Issue(admin models.Admin) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		AdminID:        admin.ID.Hex(),
		OrganizationID: admin.OrganizationID.Hex(),
		Email:          admin.Email,
		TokenType:      TokenTypeAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
}

// Verify decodes and validates a bearer token. A token is trusted only when
// the signature verifies, the token type is "admin", iat is not beyond the
// skew tolerance in the future, and all three identity claims are present.
// Every failure surfaces as ErrInvalidToken.
func (tm *TokenManager) Verify(tokenString string) (*Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims,
		func(t *jwt.Token) (any, error) { return tm.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(Leeway),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		if tm.log != nil {
			tm.log.Warn("token verification failed", zap.Error(err))
		}
		return nil, ErrInvalidToken
	}
	if claims.TokenType != TokenTypeAdmin {
		return nil, ErrInvalidToken
	}
	if claims.AdminID == "" || claims.OrganizationID == "" || claims.Email == "" {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

type ctxKey struct{}

// FromContext returns the verified claims placed in the request context by
// RequireAdmin.
func FromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(ctxKey{}).(*Claims)
	return c, ok
}

// WithClaims returns a context carrying the claims. Exposed for tests.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// RequireAdmin is middleware that extracts and verifies the bearer token,
// placing its claims into the request context. Missing or invalid tokens
// get a generic unauthorized response with no detail about why.
func (tm *TokenManager) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			httpjson.Error(w, tm.log, apperr.Unauthorized())
			return
		}
		claims, err := tm.Verify(token)
		if err != nil {
			httpjson.Error(w, tm.log, apperr.Unauthorized())
			return
		}
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
