package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"recipes-be/internal/controllers"
	"recipes-be/internal/logging"
	"recipes-be/internal/middleware"
)

type routerDeps struct {
	log            logging.Logger
	frontendURL    string
	trustedProxies []string
	sessions       middleware.SessionResolver
	generalLimiter *middleware.RateLimiter
	authLimiter    *middleware.RateLimiter

	auth    *controllers.AuthController
	recipes *controllers.RecipeController
	health  *controllers.HealthController
}

func newRouter(d routerDeps) (*gin.Engine, error) {
	r := gin.New()
	// Rate limits key on ClientIP; forwarding headers count only from these.
	if err := r.SetTrustedProxies(d.trustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(d.log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{d.frontendURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint (no rate limiting)
	r.GET("/health", d.health.Health)

	api := r.Group("")
	api.Use(d.generalLimiter.LimitMiddleware())
	{
		// Auth routes with stricter rate limiting
		api.POST("/signup", d.authLimiter.LimitMiddleware(), d.auth.Signup)
		api.POST("/login", d.authLimiter.LimitMiddleware(), d.auth.Login)

		// Logout resolves the session itself so the cookie is cleared even
		// when the session is already gone.
		api.DELETE("/logout", d.auth.Logout)

		protected := api.Group("")
		protected.Use(middleware.RequireSession(d.sessions, d.log))
		{
			protected.GET("/check_session", d.auth.CheckSession)
			protected.GET("/recipes", d.recipes.List)
			protected.POST("/recipes", d.recipes.Create)
		}
	}

	return r, nil
}
