package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/burnout_journal/internal/core/domain"
	portssvc "github.com/SscSPs/burnout_journal/internal/core/ports/services"
	"github.com/SscSPs/burnout_journal/internal/dto"
	"github.com/SscSPs/burnout_journal/internal/middleware"
	"github.com/SscSPs/burnout_journal/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles sign-up, sign-in and sign-out.
type AuthHandler struct {
	userService   portssvc.UserSvcFacade
	tokenService  portssvc.TokenSvcFacade
	googleService portssvc.GoogleOAuthSvcFacade
	cookieName    string
	secureCookie  bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(services *portssvc.ServiceContainer, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService:   services.User,
		tokenService:  services.Token,
		googleService: services.Google,
		cookieName:    cfg.SessionCookieName,
		secureCookie:  cfg.IsProduction,
	}
}

// registerAuthRoutes sets up the public authentication routes.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services, cfg)

	auth := r.Group("/api/v1/auth")
	auth.POST("/signup", h.signUp)
	auth.POST("/google", h.googleSignIn)
	auth.POST("/google/exchange-code", h.googleExchangeCode)
	auth.POST("/signout", h.signOut)

	ipLimiter, err := middleware.NewMemoryLimiter(cfg.LoginRateLimit)
	if err != nil {
		slog.Warn("Invalid LOGIN_RATE_LIMIT, falling back to 5-M", slog.String("error", err.Error()))
		ipLimiter, _ = middleware.NewMemoryLimiter("5-M")
	}
	auth.POST("/signin", middleware.RateLimit(ipLimiter), h.signIn)
}

// signUp godoc
// @Summary Create a password account
// @Description Registers a new user and starts a session.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignUpRequest true "Account details"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) signUp(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind sign-up request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userService.SignUp(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}

	h.startSession(c, user, http.StatusCreated)
}

// signIn godoc
// @Summary Sign in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignInRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /auth/signin [post]
func (h *AuthHandler) signIn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind sign-in request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Invalid email or password")
		return
	}

	h.startSession(c, user, http.StatusOK)
}

// googleSignIn godoc
// @Summary Sign in with a Google ID token
// @Description Verifies the ID token, creating the account on first sign-in.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.GoogleSignInRequest true "Google ID token"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/google [post]
func (h *AuthHandler) googleSignIn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.GoogleSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind Google sign-in request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	identity, err := h.googleService.ValidateGoogleIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		respondError(c, err, "Google sign-in failed")
		return
	}
	h.finishGoogleSignIn(c, identity)
}

// googleExchangeCode godoc
// @Summary Sign in with a Google authorization code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.GoogleExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /auth/google/exchange-code [post]
func (h *AuthHandler) googleExchangeCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.GoogleExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind Google code exchange request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	identity, err := h.googleService.ExchangeCode(c.Request.Context(), req.Code)
	if err != nil {
		respondError(c, err, "Google sign-in failed")
		return
	}
	h.finishGoogleSignIn(c, identity)
}

func (h *AuthHandler) finishGoogleSignIn(c *gin.Context, identity *domain.GoogleIdentity) {
	user, err := h.userService.UpsertGoogleUser(c.Request.Context(), *identity)
	if err != nil {
		respondError(c, err, "Google sign-in failed")
		return
	}
	h.startSession(c, user, http.StatusOK)
}

// signOut godoc
// @Summary Sign out
// @Description Clears the session cookie. Bearer tokens stay valid until they expire.
// @Tags auth
// @Success 204
// @Router /auth/signout [post]
func (h *AuthHandler) signOut(c *gin.Context) {
	h.clearSessionCookie(c)
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) startSession(c *gin.Context, user *domain.User, status int) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	token, expiresAt, err := h.tokenService.GenerateSessionToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, err, "Failed to start session")
		return
	}

	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, token, maxAge, "/", "", h.secureCookie, true)

	logger.Info("Session started", slog.String("user_id", user.UserID), slog.String("provider", string(user.AuthProvider)))
	c.JSON(status, dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.ToUserResponse(user),
	})
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", h.secureCookie, true)
}
