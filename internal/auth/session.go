package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pageza/foodtrace/backend/internal/types"
)

// DefaultSessionTTL is the inactivity timeout of a cookie session.
const DefaultSessionTTL = 30 * time.Minute

// SessionCookieName names the session cookie.
const SessionCookieName = "foodtrace_session"

const (
	sessionUserID = "userId"
	sessionEmail  = "email"
)

// SessionAuthenticator keeps the identity in a server-side session keyed by
// an HttpOnly cookie.
type SessionAuthenticator struct {
	store *KVSessionStore
	name  string
	log   *slog.Logger
}

// NewSessionAuthenticator creates the cookie strategy over store.
func NewSessionAuthenticator(store *KVSessionStore, log *slog.Logger) *SessionAuthenticator {
	if log == nil {
		log = slog.Default()
	}
	return &SessionAuthenticator{store: store, name: SessionCookieName, log: log}
}

// Issue starts an authenticated session. The session id is always rotated
// so a pre-login cookie can never become authenticated.
func (a *SessionAuthenticator) Issue(w http.ResponseWriter, r *http.Request, id types.Identity) (string, error) {
	session, err := a.store.Get(r, a.name)
	if err != nil {
		a.log.DebugContext(r.Context(), "discarding unreadable session", "error", err)
	}

	if previous := session.ID; previous != "" {
		if err := a.store.Destroy(r, previous); err != nil {
			return "", fmt.Errorf("rotate session: %w", err)
		}
	}
	session.ID = ""
	for k := range session.Values {
		delete(session.Values, k)
	}
	session.Values[sessionUserID] = id.UserID
	session.Values[sessionEmail] = id.Email

	if err := session.Save(r, w); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return "", nil
}

func (a *SessionAuthenticator) CurrentIdentity(r *http.Request) (*types.Identity, error) {
	session, err := a.store.Get(r, a.name)
	if err != nil {
		a.log.DebugContext(r.Context(), "rejected session", "error", err)
		return nil, types.ErrUnauthorized
	}
	if session.IsNew {
		return nil, types.ErrUnauthorized
	}

	userID, ok := session.Values[sessionUserID].(uint)
	if !ok || userID == 0 {
		return nil, types.ErrUnauthorized
	}
	email, _ := session.Values[sessionEmail].(string)
	return &types.Identity{UserID: userID, Email: email}, nil
}

// Touch re-saves an existing session, extending its inactivity timeout.
func (a *SessionAuthenticator) Touch(w http.ResponseWriter, r *http.Request) error {
	session, err := a.store.Get(r, a.name)
	if err != nil || session.IsNew {
		return nil
	}
	return session.Save(r, w)
}

// Revoke clears every session key and expires the cookie.
func (a *SessionAuthenticator) Revoke(w http.ResponseWriter, r *http.Request) error {
	session, err := a.store.Get(r, a.name)
	if err != nil {
		a.log.DebugContext(r.Context(), "revoking unreadable session", "error", err)
	}
	for k := range session.Values {
		delete(session.Values, k)
	}
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
