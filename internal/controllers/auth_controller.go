package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"recipes-be/internal/apperrors"
	"recipes-be/internal/logging"
	"recipes-be/internal/middleware"
	"recipes-be/internal/models"
	"recipes-be/internal/service"
)

type AuthController struct {
	authService    service.AuthService
	sessionService service.SessionService
	log            logging.Logger

	cookieTTL    time.Duration
	cookieSecure bool
}

func NewAuthController(
	authService service.AuthService,
	sessionService service.SessionService,
	log logging.Logger,
	cookieTTL time.Duration,
	cookieSecure bool,
) *AuthController {
	return &AuthController{
		authService:    authService,
		sessionService: sessionService,
		log:            log,
		cookieTTL:      cookieTTL,
		cookieSecure:   cookieSecure,
	}
}

// Signup handles POST /signup
func (ac *AuthController) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := ac.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, ac.log, err)
		return
	}

	ac.log.Info(c.Request.Context(), "user registered", "user_id", user.ID)
	c.JSON(http.StatusCreated, models.NewUserResponse(user))
}

// Login handles POST /login. A body that cannot be decoded is answered like
// wrong credentials.
func (ac *AuthController) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, ac.log, service.ErrInvalidCredentials)
		return
	}

	user, err := ac.authService.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		respondError(c, ac.log, err)
		return
	}

	// A session the client already holds is replaced, not left to expire.
	if prev := middleware.SessionToken(c); prev != "" {
		if err := ac.sessionService.Terminate(ctx, prev); err != nil && !errors.Is(err, apperrors.ErrUnauthorized) {
			respondError(c, ac.log, err)
			return
		}
	}

	token, err := ac.sessionService.Establish(ctx, user)
	if err != nil {
		respondError(c, ac.log, err)
		return
	}

	ac.setSessionCookie(c, token)
	c.JSON(http.StatusOK, models.NewUserResponse(user))
}

// CheckSession handles GET /check_session
func (ac *AuthController) CheckSession(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, models.NewUserResponse(user))
}

// Logout handles DELETE /logout. The cookie is cleared whatever the outcome.
func (ac *AuthController) Logout(c *gin.Context) {
	err := ac.sessionService.Terminate(c.Request.Context(), middleware.SessionToken(c))
	ac.clearSessionCookie(c)
	if err != nil {
		respondError(c, ac.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ac *AuthController) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(ac.cookieTTL.Seconds()), "/", "", ac.cookieSecure, true)
}

func (ac *AuthController) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", ac.cookieSecure, true)
}
