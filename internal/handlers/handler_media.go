package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/burnout_journal/internal/core/ports/services"
	"github.com/SscSPs/burnout_journal/internal/dto"
	"github.com/SscSPs/burnout_journal/internal/middleware"
	"github.com/gin-gonic/gin"
)

func registerMediaRoutes(rg *gin.RouterGroup, ms portssvc.MediaSvc) {
	rg.POST("/uploads", createUpload(ms))
}

// createUpload godoc
// @Summary Request an upload URL
// @Description Returns a short-lived presigned PUT URL for a journal attachment.
// @Tags media
// @Accept json
// @Produce json
// @Param upload body dto.CreateUploadRequest true "File details"
// @Success 201 {object} domain.UploadTicket
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse "Uploads not configured"
// @Router /uploads [post]
// @Security BearerAuth
func createUpload(ms portssvc.MediaSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())

		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		var req dto.CreateUploadRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind upload request", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
			return
		}

		ticket, err := ms.CreateUploadURL(c.Request.Context(), userID, req.Filename, req.ContentType)
		if err != nil {
			respondError(c, err, "Failed to create upload URL")
			return
		}
		c.JSON(http.StatusCreated, ticket)
	}
}
