package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/foodtrace/backend/internal/middleware"
)

func csrfRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.CSRF([]byte("0123456789abcdef0123456789abcdef"), false, nil))
	router.GET("/form", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"csrfToken": csrf.Token(c.Request)})
	})
	router.POST("/form", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestCSRFRejectsPostWithoutToken(t *testing.T) {
	router := csrfRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/form", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"invalid csrf token"}`, w.Body.String())
}

func TestCSRFAcceptsIssuedToken(t *testing.T) {
	router := csrfRouter()

	get := httptest.NewRecorder()
	router.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/form", nil))
	require.Equal(t, http.StatusOK, get.Code)

	var body struct {
		CSRFToken string `json:"csrfToken"`
	}
	require.NoError(t, json.Unmarshal(get.Body.Bytes(), &body))
	require.NotEmpty(t, body.CSRFToken)

	post := httptest.NewRequest(http.MethodPost, "/form", nil)
	post.Header.Set("X-CSRF-Token", body.CSRFToken)
	for _, c := range get.Result().Cookies() {
		post.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, post)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
