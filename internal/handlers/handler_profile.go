package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/burnout_journal/internal/core/ports/services"
	"github.com/SscSPs/burnout_journal/internal/dto"
	"github.com/SscSPs/burnout_journal/internal/middleware"
	"github.com/SscSPs/burnout_journal/internal/platform/config"
	"github.com/gin-gonic/gin"
)

type profileHandler struct {
	userService  portssvc.UserSvcFacade
	cookieName   string
	secureCookie bool
}

func registerProfileRoutes(rg *gin.RouterGroup, cfg *config.Config, us portssvc.UserSvcFacade) {
	h := &profileHandler{userService: us, cookieName: cfg.SessionCookieName, secureCookie: cfg.IsProduction}

	profile := rg.Group("/profile")
	profile.GET("", h.getProfile)
	profile.PUT("", h.updateProfile)
	profile.DELETE("", h.deleteAccount)
}

// getProfile godoc
// @Summary Get profile preferences
// @Tags profile
// @Produce json
// @Success 200 {object} domain.Profile
// @Failure 404 {object} ErrorResponse
// @Router /profile [get]
// @Security BearerAuth
func (h *profileHandler) getProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// updateProfile godoc
// @Summary Update profile preferences
// @Description Omitted fields keep their stored value.
// @Tags profile
// @Accept json
// @Produce json
// @Param profile body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} ErrorResponse
// @Router /profile [put]
// @Security BearerAuth
func (h *profileHandler) updateProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind profile update", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	profile, err := h.userService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// deleteAccount godoc
// @Summary Delete account
// @Description Deletes the account with its journals and questionnaires, and ends the session.
// @Tags profile
// @Success 204
// @Router /profile [delete]
// @Security BearerAuth
func (h *profileHandler) deleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), userID); err != nil {
		respondError(c, err, "Failed to delete account")
		return
	}

	logger.Info("Account deleted")
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", h.secureCookie, true)
	c.Status(http.StatusNoContent)
}
