package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/pageza/foodtrace/backend/internal/api"
	"github.com/pageza/foodtrace/backend/internal/auth"
	"github.com/pageza/foodtrace/backend/internal/hasher"
	"github.com/pageza/foodtrace/backend/internal/middleware"
	"github.com/pageza/foodtrace/backend/internal/service"
	"github.com/pageza/foodtrace/backend/internal/store"
	"github.com/pageza/foodtrace/backend/internal/testhelpers"
	"github.com/pageza/foodtrace/backend/internal/types"
)

const testSecret = "api-test-secret-api-test-secret!!"

type testAPI struct {
	router *gin.Engine
	authn  *auth.TokenAuthenticator
}

// setupAPI builds the JSON surface over a fresh sqlite database. deps may
// override the item store or add an image service.
func setupAPI(t *testing.T, override func(*api.Deps)) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := testhelpers.DiscardLogger()
	db := testhelpers.SetupTestDB(t)
	accounts, err := service.NewAccountService(store.NewUsers(db, store.WithLogger(log)), hasher.SHA256Hasher{}, log)
	require.NoError(t, err)
	authn := auth.NewTokenAuthenticator(testSecret, "foodtrace", "foodtrace-client")

	deps := api.Deps{
		Accounts: accounts,
		Items:    store.NewItems(db, store.WithLogger(log)),
		Authn:    authn,
	}
	if override != nil {
		override(&deps)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(log), middleware.Recovery())
	api.SetupAPI(router, deps)
	return &testAPI{router: router, authn: authn}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// signUp registers and logs in, returning a bearer token.
func (a *testAPI) signUp(t *testing.T, email, password string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/account/register", "", gin.H{
		"email": email, "password": password, "confirmPassword": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(t, http.MethodPost, "/api/account/login", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
