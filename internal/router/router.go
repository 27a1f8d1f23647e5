package router

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/pageza/foodtrace/backend/internal/api"
	"github.com/pageza/foodtrace/backend/internal/middleware"
	"github.com/pageza/foodtrace/backend/internal/web"
)

// Deps collects everything the router mounts.
type Deps struct {
	Log            *slog.Logger
	CORSOrigins    []string
	// TrustedProxies may rewrite the client IP through forwarding headers.
	// With none, c.ClientIP() is the peer address.
	TrustedProxies []string
	Health         *api.HealthHandler
	API            api.Deps
	Web            web.Deps
}

// SetupRouter configures the application routes
func SetupRouter(d Deps) (*gin.Engine, error) {
	router := gin.New()
	if err := router.SetTrustedProxies(d.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	router.Use(middleware.RequestLogger(d.Log), middleware.Recovery())

	if len(d.CORSOrigins) > 0 {
		router.Use(middleware.CORS(d.CORSOrigins))
	}

	if d.Health != nil {
		router.GET("/health", d.Health.Health)
	}
	api.SetupAPI(router, d.API)
	web.SetupWeb(router, d.Web)

	return router, nil
}
