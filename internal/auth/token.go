package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pageza/foodtrace/backend/internal/kvstore"
	"github.com/pageza/foodtrace/backend/internal/types"
)

// DefaultTokenTTL is the lifetime of an issued bearer token.
const DefaultTokenTTL = 2 * time.Hour

// TokenAuthenticator issues and validates HS256 bearer tokens.
//
// Logout is client side: the client discards its token. When a denylist is
// configured Revoke also records the token id until the token would have
// expired anyway, and Validate rejects it.
type TokenAuthenticator struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
	denylist kvstore.Store
	log      *slog.Logger
}

// TokenOption configures a TokenAuthenticator.
type TokenOption func(*TokenAuthenticator)

// WithTokenTTL overrides DefaultTokenTTL.
func WithTokenTTL(ttl time.Duration) TokenOption {
	return func(a *TokenAuthenticator) { a.ttl = ttl }
}

// WithTokenClock overrides the time source used to issue and validate.
func WithTokenClock(now func() time.Time) TokenOption {
	return func(a *TokenAuthenticator) { a.now = now }
}

// WithDenylist enables server-side revocation.
func WithDenylist(kv kvstore.Store) TokenOption {
	return func(a *TokenAuthenticator) { a.denylist = kv }
}

// WithTokenLogger sets the logger used for rejected tokens.
func WithTokenLogger(l *slog.Logger) TokenOption {
	return func(a *TokenAuthenticator) { a.log = l }
}

// NewTokenAuthenticator creates a token strategy signing with secret.
func NewTokenAuthenticator(secret, issuer, audience string, opts ...TokenOption) *TokenAuthenticator {
	a := &TokenAuthenticator{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      DefaultTokenTTL,
		now:      time.Now,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// GenerateToken signs a token for id valid for the configured TTL.
func (a *TokenAuthenticator) GenerateToken(id types.Identity) (string, error) {
	now := a.now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Email,
			Issuer:    a.issuer,
			Audience:  jwt.ClaimStrings{a.audience},
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
		UserID: id.UserID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies signature, issuer, audience and expiry. Every
// failure is reported as types.ErrUnauthorized; the cause is only logged.
func (a *TokenAuthenticator) ValidateToken(ctx context.Context, tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(a.issuer),
		jwt.WithAudience(a.audience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil || !token.Valid {
		a.log.DebugContext(ctx, "rejected bearer token", "error", err)
		return nil, types.ErrUnauthorized
	}
	if claims.UserID == 0 || claims.Subject == "" || claims.ID == "" {
		a.log.DebugContext(ctx, "rejected bearer token", "error", "missing identity claims")
		return nil, types.ErrUnauthorized
	}

	if a.denylist != nil {
		_, err := a.denylist.Get(ctx, denyKey(claims.ID))
		switch {
		case err == nil:
			return nil, types.ErrUnauthorized
		case !errors.Is(err, kvstore.ErrNotFound):
			// Fail closed when the denylist cannot be consulted.
			a.log.ErrorContext(ctx, "token denylist lookup failed", "error", err)
			return nil, types.ErrUnauthorized
		}
	}
	return claims, nil
}

func (a *TokenAuthenticator) Issue(_ http.ResponseWriter, _ *http.Request, id types.Identity) (string, error) {
	return a.GenerateToken(id)
}

func (a *TokenAuthenticator) CurrentIdentity(r *http.Request) (*types.Identity, error) {
	raw, ok := BearerToken(r)
	if !ok {
		return nil, types.ErrUnauthorized
	}
	claims, err := a.ValidateToken(r.Context(), raw)
	if err != nil {
		return nil, err
	}
	id := claims.Identity()
	return &id, nil
}

// Revoke is a no-op without a denylist.
func (a *TokenAuthenticator) Revoke(_ http.ResponseWriter, r *http.Request) error {
	if a.denylist == nil {
		return nil
	}
	raw, ok := BearerToken(r)
	if !ok {
		return nil
	}
	claims, err := a.ValidateToken(r.Context(), raw)
	if err != nil {
		return nil
	}
	remaining := claims.ExpiresAt.Time.Sub(a.now())
	if remaining <= 0 {
		return nil
	}
	if err := a.denylist.Set(r.Context(), denyKey(claims.ID), []byte{1}, remaining); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func denyKey(jti string) string {
	return "jti:" + jti
}
