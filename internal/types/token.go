package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// Identity is the authenticated principal attached to a request.
type Identity struct {
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
}

// TokenClaims represents the claims in a JWT token. The subject carries the
// account email and the ID claim a unique token identifier.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID uint `json:"user_id"`
}

// Identity returns the principal described by the claims.
func (c *TokenClaims) Identity() Identity {
	return Identity{UserID: c.UserID, Email: c.Subject}
}
