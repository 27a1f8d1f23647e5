package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/foodtrace/backend/config"
	"github.com/pageza/foodtrace/backend/internal/api"
	"github.com/pageza/foodtrace/backend/internal/auth"
	"github.com/pageza/foodtrace/backend/internal/hasher"
	"github.com/pageza/foodtrace/backend/internal/kvstore"
	"github.com/pageza/foodtrace/backend/internal/middleware"
	"github.com/pageza/foodtrace/backend/internal/router"
	"github.com/pageza/foodtrace/backend/internal/service"
	"github.com/pageza/foodtrace/backend/internal/store"
	"github.com/pageza/foodtrace/backend/internal/web"
)

const sweepInterval = time.Minute

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	log    *slog.Logger

	// memory is set when sessions and the denylist live in process.
	memory *kvstore.Memory
}

// New wires stores, services and both surfaces. rdb may be nil, in which
// case sessions and revoked tokens are kept in memory and login is not
// rate limited.
func New(ctx context.Context, cfg *config.Config, db *gorm.DB, rdb *redis.Client, log *slog.Logger) (*Server, error) {
	h, err := hasher.New(cfg.PasswordHasher)
	if err != nil {
		return nil, err
	}
	if cfg.PasswordHasher != "bcrypt" {
		log.Warn("passwords are stored as unsalted SHA-256 digests; set PASSWORD_HASHER=bcrypt for new deployments")
	}

	users := store.NewUsers(db, store.WithLogger(log))
	items := store.NewItems(db, store.WithLogger(log))
	accounts, err := service.NewAccountService(users, h, log)
	if err != nil {
		return nil, err
	}

	s := &Server{log: log}

	var kv kvstore.Store
	var loginLimiter gin.HandlerFunc
	if rdb != nil {
		kv = kvstore.NewRedis(rdb, "foodtrace:")
		loginLimiter = middleware.NewLoginRateLimiter(rdb).ByClientIP()
	} else {
		s.memory = kvstore.NewMemory()
		kv = s.memory
	}

	tokenOpts := []auth.TokenOption{auth.WithDenylist(kv), auth.WithTokenLogger(log)}
	if cfg.TokenTTL > 0 {
		tokenOpts = append(tokenOpts, auth.WithTokenTTL(cfg.TokenTTL))
	}
	tokens := auth.NewTokenAuthenticator(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, tokenOpts...)

	sessionStore := auth.NewKVSessionStore(kv, cfg.SessionKey)
	if cfg.SessionTTL > 0 {
		sessionStore.Options.MaxAge = int(cfg.SessionTTL / time.Second)
	}
	sessionStore.Options.Secure = cfg.CookieSecure
	sessionStore.Options.Domain = cfg.CookieDomain
	sessions := auth.NewSessionAuthenticator(sessionStore, log)

	var images service.IImageService
	if cfg.S3Enabled() {
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to configure S3: %w", err)
		}
		images = service.NewImageService(items, s3cfg, log)
	}

	s.router, err = router.SetupRouter(router.Deps{
		Log:            log,
		CORSOrigins:    cfg.CORSOrigins,
		TrustedProxies: cfg.TrustedProxies,
		Health:         api.NewHealthHandler(db),
		API: api.Deps{
			Accounts:     accounts,
			Items:        items,
			Images:       images,
			Authn:        tokens,
			LoginLimiter: loginLimiter,
		},
		Web: web.Deps{
			Accounts:     accounts,
			Items:        items,
			Authn:        sessions,
			CSRF:         middleware.CSRF(cfg.CSRFKey, cfg.CookieSecure, originHosts(cfg.CORSOrigins)),
			LoginLimiter: loginLimiter,
		},
	})
	if err != nil {
		return nil, err
	}

	s.http = &http.Server{
		Addr:              net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler exposes the router, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if s.memory != nil {
		go s.memory.RunSweeper(ctx, sweepInterval)
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.Stop(shutdownCtx)
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}

// originHosts turns CORS origins into the host[:port] form gorilla/csrf
// compares referers against.
func originHosts(origins []string) []string {
	hosts := make([]string, 0, len(origins))
	for _, o := range origins {
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			hosts = append(hosts, u.Host)
		}
	}
	return hosts
}
