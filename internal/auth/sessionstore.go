package auth

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	"github.com/pageza/foodtrace/backend/internal/kvstore"
)

// KVSessionStore is a gorilla/sessions Store that keeps session values in a
// kvstore.Store. The cookie only carries the signed, opaque session id.
type KVSessionStore struct {
	Codecs  []securecookie.Codec
	Options *sessions.Options
	kv      kvstore.Store
}

// NewKVSessionStore creates a store whose cookies are signed with keyPairs.
func NewKVSessionStore(kv kvstore.Store, keyPairs ...[]byte) *KVSessionStore {
	return &KVSessionStore{
		Codecs: securecookie.CodecsFromPairs(keyPairs...),
		Options: &sessions.Options{
			Path:     "/",
			MaxAge:   int(DefaultSessionTTL / time.Second),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
		kv: kv,
	}
}

// Get returns the session cached for this request or loads it.
func (s *KVSessionStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New loads the session named by the request cookie. A missing, expired or
// unknown session yields a fresh session with IsNew set.
func (s *KVSessionStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.Options
	session.Options = &opts
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}
	if err := securecookie.DecodeMulti(name, c.Value, &session.ID, s.Codecs...); err != nil {
		session.ID = ""
		return session, err
	}

	data, err := s.kv.Get(r.Context(), s.key(session.ID))
	if errors.Is(err, kvstore.ErrNotFound) {
		session.ID = ""
		return session, nil
	}
	if err != nil {
		session.ID = ""
		return session, fmt.Errorf("load session: %w", err)
	}
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&session.Values); err != nil {
		session.ID = ""
		return session, fmt.Errorf("decode session: %w", err)
	}
	session.IsNew = false
	return session, nil
}

// Save persists the session and refreshes its TTL. A negative MaxAge
// deletes the server-side record and expires the cookie.
func (s *KVSessionStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	ctx := r.Context()

	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			if err := s.kv.Delete(ctx, s.key(session.ID)); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = uuid.NewString()
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(session.Values); err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	ttl := time.Duration(session.Options.MaxAge) * time.Second
	if err := s.kv.Set(ctx, s.key(session.ID), buf.Bytes(), ttl); err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.Codecs...)
	if err != nil {
		return fmt.Errorf("encode session cookie: %w", err)
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

// Destroy removes a session record by id.
func (s *KVSessionStore) Destroy(r *http.Request, id string) error {
	return s.kv.Delete(r.Context(), s.key(id))
}

func (s *KVSessionStore) key(id string) string {
	return "session:" + id
}
