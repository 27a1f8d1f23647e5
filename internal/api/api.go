// Package api is the JSON surface: bearer-token authenticated account and
// item endpoints under /api.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/foodtrace/backend/internal/auth"
	"github.com/pageza/foodtrace/backend/internal/middleware"
	"github.com/pageza/foodtrace/backend/internal/service"
	"github.com/pageza/foodtrace/backend/internal/store"
)

// Paths reachable without a token.
const (
	LoginPath    = "/api/account/login"
	RegisterPath = "/api/account/register"
)

// Deps are the collaborators of the JSON surface. Images and LoginLimiter
// are optional.
type Deps struct {
	Accounts     service.IAccountService
	Items        store.ItemStore
	Images       service.IImageService
	Authn        auth.Authenticator
	LoginLimiter gin.HandlerFunc
}

// SetupAPI mounts /api on router.
func SetupAPI(router *gin.Engine, d Deps) {
	v := router.Group("/api")
	v.Use(middleware.RequireIdentity(d.Authn, middleware.DenyJSON, LoginPath, RegisterPath))

	var loginMiddleware []gin.HandlerFunc
	if d.LoginLimiter != nil {
		loginMiddleware = append(loginMiddleware, d.LoginLimiter)
	}
	NewAccountHandler(d.Accounts, d.Authn).RegisterRoutes(v, loginMiddleware...)
	NewItemHandler(d.Items).RegisterRoutes(v)
	if d.Images != nil {
		NewImageHandler(d.Images).RegisterRoutes(v)
	}
}
