package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/foodtrace/backend/config"
	"github.com/pageza/foodtrace/backend/internal/models"
	"github.com/pageza/foodtrace/backend/internal/server"
	"github.com/pageza/foodtrace/backend/internal/testhelpers"
	"github.com/pageza/foodtrace/backend/internal/types"
)

// setupServer runs the full stack against PostgreSQL and Redis containers.
func setupServer(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupPostgresDB(t)
	rdb := testhelpers.SetupRedis(t)

	cfg := &config.Config{
		ServerHost:     "localhost",
		ServerPort:     "0",
		DBDriver:       "postgres",
		JWTSecret:      "integration-secret-integration-secret",
		JWTIssuer:      "foodtrace",
		JWTAudience:    "foodtrace-client",
		TokenTTL:       config.DefaultTokenTTL,
		SessionKey:     []byte("0123456789abcdef0123456789abcdef"),
		SessionTTL:     config.DefaultSessionTTL,
		CSRFKey:        []byte("fedcba9876543210fedcba9876543210"),
		PasswordHasher: "bcrypt",
	}
	srv, err := server.New(context.Background(), cfg, db, rdb, testhelpers.DiscardLogger())
	require.NoError(t, err)
	return srv.Handler()
}

func call(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestFullStack(t *testing.T) {
	h := setupServer(t)
	creds := gin.H{"email": "a@b.com", "password": "secret1", "confirmPassword": "secret1"}

	w := call(t, h, http.MethodPost, "/api/account/register", "", creds)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = call(t, h, http.MethodPost, "/api/account/register", "", creds)
	assert.Equal(t, http.StatusConflict, w.Code, "unique index violation maps to conflict")

	w = call(t, h, http.MethodPost, "/api/account/login", "", gin.H{"email": "a@b.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	var login types.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	w = call(t, h, http.MethodPost, "/api/items", login.Token, gin.H{
		"name": "Apple", "category": "Fruit", "energy": 52, "carbohydrates": 14,
		"countryOfOrigin": "Spain", "countryOfProvenance": "France",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var item models.Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Positive(t, item.ID)

	path := fmt.Sprintf("/api/items/%d", item.ID)
	assert.Equal(t, http.StatusOK, call(t, h, http.MethodGet, path, login.Token, nil).Code)
	assert.Equal(t, http.StatusNoContent, call(t, h, http.MethodDelete, path, login.Token, nil).Code)
	assert.Equal(t, http.StatusNotFound, call(t, h, http.MethodGet, path, login.Token, nil).Code)

	// Logout denies the token through the redis denylist.
	assert.Equal(t, http.StatusNoContent, call(t, h, http.MethodPost, "/api/account/logout", login.Token, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, call(t, h, http.MethodGet, "/api/items", login.Token, nil).Code)
}

func TestLoginIsRateLimited(t *testing.T) {
	h := setupServer(t)
	bad := gin.H{"email": "nobody@b.com", "password": "wrong"}

	for i := 0; i < 10; i++ {
		w := call(t, h, http.MethodPost, "/api/account/login", "", bad)
		require.Equal(t, http.StatusUnauthorized, w.Code, "attempt %d", i+1)
	}
	w := call(t, h, http.MethodPost, "/api/account/login", "", bad)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
