package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/burnout_journal/internal/core/ports/services"
	"github.com/SscSPs/burnout_journal/internal/dto"
	"github.com/SscSPs/burnout_journal/internal/middleware"
	"github.com/gin-gonic/gin"
)

type analysisHandler struct {
	analysis portssvc.AnalysisGateway
	live     portssvc.LiveSessionSvc
}

func registerAnalysisRoutes(rg *gin.RouterGroup, analysis portssvc.AnalysisGateway, live portssvc.LiveSessionSvc) {
	h := &analysisHandler{analysis: analysis, live: live}

	rg.POST("/journal/analyze", h.analyze)
	rg.POST("/live/session", h.createLiveSession)
}

// analyze godoc
// @Summary Analyze text for burnout
// @Description Scores the text on the MBI dimensions and derives a sentiment.
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body dto.AnalyzeRequest true "Text to analyze"
// @Success 200 {object} domain.AnalysisResult
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse "Analysis service unavailable"
// @Router /journal/analyze [post]
// @Security BearerAuth
func (h *analysisHandler) analyze(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if _, ok := requireUserID(c); !ok {
		return
	}

	var req dto.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind analyze request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON body"})
		return
	}

	token := middleware.GetSessionTokenFromCtx(c.Request.Context())
	result, err := h.analysis.Analyze(c.Request.Context(), req.Text, token)
	if err != nil {
		respondError(c, err, "Analysis service unavailable")
		return
	}
	c.JSON(http.StatusOK, result)
}

// createLiveSession godoc
// @Summary Start a live coach session
// @Description Issues a single-use token for the live model websocket.
// @Tags analysis
// @Produce json
// @Success 200 {object} domain.LiveSession
// @Failure 500 {object} ErrorResponse "Live coach not configured"
// @Failure 502 {object} ErrorResponse
// @Router /live/session [post]
// @Security BearerAuth
func (h *analysisHandler) createLiveSession(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	session, err := h.live.CreateLiveSession(c.Request.Context())
	if err != nil {
		respondError(c, err, "Could not create live session token")
		return
	}
	c.JSON(http.StatusOK, session)
}
