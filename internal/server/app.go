// Package server assembles the HTTP application from configuration and runs
// it until its context is cancelled.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"recipes-be/internal/cache"
	"recipes-be/internal/config"
	"recipes-be/internal/controllers"
	"recipes-be/internal/database"
	"recipes-be/internal/jwt"
	"recipes-be/internal/logging"
	"recipes-be/internal/middleware"
	"recipes-be/internal/repository"
	"recipes-be/internal/service"
	"recipes-be/internal/session"
)

// App owns every long-lived resource of the running service.
type App struct {
	cfg      *config.Config
	log      logging.Logger
	db       *sql.DB
	cache    cache.Cache
	limiters []*middleware.RateLimiter
	router   *gin.Engine
}

// Options tunes New beyond what Config carries.
type Options struct {
	// Migrate applies pending schema migrations before serving.
	Migrate bool
}

// New connects to storage, wires services and controllers, and builds the router.
func New(ctx context.Context, cfg *config.Config, log logging.Logger, opts Options) (*App, error) {
	db, err := database.Open(ctx, cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "connected to database", "driver", cfg.Database.Driver)

	if opts.Migrate {
		if err := database.Migrate(ctx, cfg.Database.Driver, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Info(ctx, "database migrations completed")
	}

	sessionCache, err := newSessionCache(ctx, cfg, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := &App{cfg: cfg, log: log, db: db, cache: sessionCache}
	if err := a.wire(); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

// newSessionCache uses Redis when configured and process memory otherwise.
// A configured but unreachable Redis is an error: falling back silently would
// split sessions between instances.
func newSessionCache(ctx context.Context, cfg *config.Config, log logging.Logger) (cache.Cache, error) {
	if cfg.RedisURL == "" {
		log.Warn(ctx, "REDIS_URL not set, keeping sessions in memory")
		return cache.NewMemoryCache(time.Minute), nil
	}
	c, err := cache.NewRedisCache(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "connected to Redis session store")
	return c, nil
}

func (a *App) wire() error {
	controllers.SetupValidator()

	repos := repository.NewManager()
	tokens := jwt.NewJWTService(a.cfg.SessionSecret, a.cfg.SessionTTL)
	store := session.NewStore(a.cache)

	authService, err := service.NewAuthService(a.db, repos, a.cfg.BcryptCost)
	if err != nil {
		return err
	}
	sessionService := service.NewSessionService(a.db, repos, store, tokens)
	recipeService := service.NewRecipeService(a.db, repos)

	generalLimiter := middleware.NewRateLimiter(rate.Limit(a.cfg.RateLimitRPS), a.cfg.RateLimitBurst)
	authLimiter := middleware.NewRateLimiter(rate.Limit(a.cfg.RateLimitAuthRPS), a.cfg.RateLimitAuthBurst)
	a.limiters = append(a.limiters, generalLimiter, authLimiter)

	router, err := newRouter(routerDeps{
		log:            a.log,
		frontendURL:    a.cfg.FrontendURL,
		trustedProxies: a.cfg.TrustedProxies,
		sessions:       sessionService,
		generalLimiter: generalLimiter,
		authLimiter:    authLimiter,
		auth:           controllers.NewAuthController(authService, sessionService, a.log, a.cfg.SessionTTL, a.cfg.CookieSecure),
		recipes:        controllers.NewRecipeController(recipeService, a.log),
		health: controllers.NewHealthController(map[string]controllers.Pinger{
			"database": a.db,
			"sessions": controllers.PingFunc(a.cache.Ping),
		}, a.log),
	})
	if err != nil {
		return err
	}
	a.router = router
	return nil
}

// Handler is the HTTP entry point.
func (a *App) Handler() *gin.Engine {
	return a.router
}

// Close releases every resource held by the app.
func (a *App) Close() error {
	for _, l := range a.limiters {
		l.Stop()
	}
	var errs []error
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close session cache: %w", err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
