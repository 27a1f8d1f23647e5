// Package auth establishes and verifies request identity. The bearer token
// and cookie session strategies are interchangeable implementations of
// Authenticator.
package auth

import (
	"net/http"

	"github.com/pageza/foodtrace/backend/internal/types"
)

// Authenticator issues, reads and revokes the credential carried by a
// request. CurrentIdentity fails closed with types.ErrUnauthorized.
type Authenticator interface {
	// Issue binds id to the client. The token strategy returns the signed
	// token; the session strategy writes a cookie and returns "".
	Issue(w http.ResponseWriter, r *http.Request, id types.Identity) (string, error)
	CurrentIdentity(r *http.Request) (*types.Identity, error)
	Revoke(w http.ResponseWriter, r *http.Request) error
}

// Toucher is implemented by strategies with sliding expiry. The access gate
// calls Touch after every successfully authenticated request.
type Toucher interface {
	Touch(w http.ResponseWriter, r *http.Request) error
}
