package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/burnout_journal/internal/core/domain"
	portssvc "github.com/SscSPs/burnout_journal/internal/core/ports/services"
	"github.com/SscSPs/burnout_journal/internal/dto"
	"github.com/SscSPs/burnout_journal/internal/middleware"
	"github.com/gin-gonic/gin"
)

type quizHandler struct {
	quizService portssvc.QuizSvcFacade
}

func registerQuizRoutes(rg *gin.RouterGroup, qs portssvc.QuizSvcFacade) {
	h := &quizHandler{quizService: qs}

	quizzes := rg.Group("/quizzes")
	quizzes.POST("", h.submitQuiz)
	quizzes.GET("/stats", h.getQuizStats)
	quizzes.GET("/questions", h.getQuizQuestions)
}

// submitQuiz godoc
// @Summary Submit a burnout questionnaire
// @Description Stores the 22 answers (0-3) keyed by question index.
// @Tags quizzes
// @Accept json
// @Produce json
// @Param quiz body dto.SubmitQuizRequest true "Answers"
// @Success 201 {object} dto.SubmitQuizResponse
// @Failure 400 {object} ErrorResponse
// @Router /quizzes [post]
// @Security BearerAuth
func (h *quizHandler) submitQuiz(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind quiz submission", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.quizService.SubmitQuiz(c.Request.Context(), userID, req.Responses)
	if err != nil {
		respondError(c, err, "Failed to save quiz")
		return
	}

	c.JSON(http.StatusCreated, dto.SubmitQuizResponse{QuizID: result.QuizID, Success: true})
}

// getQuizStats godoc
// @Summary Questionnaire history
// @Description Normalized 0-100 scores, oldest first.
// @Tags quizzes
// @Produce json
// @Success 200 {object} dto.QuizStatsResponse
// @Router /quizzes/stats [get]
// @Security BearerAuth
func (h *quizHandler) getQuizStats(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	stats, err := h.quizService.GetQuizStats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve quiz stats")
		return
	}
	if stats == nil {
		stats = []domain.QuizStat{}
	}
	c.JSON(http.StatusOK, dto.QuizStatsResponse{Stats: stats})
}

// getQuizQuestions godoc
// @Summary Questionnaire content
// @Tags quizzes
// @Produce json
// @Success 200 {object} dto.QuizQuestionsResponse
// @Router /quizzes/questions [get]
// @Security BearerAuth
func (h *quizHandler) getQuizQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, dto.QuizQuestionsResponse{
		Questions: domain.QuizQuestions[:],
		Answers:   domain.QuizAnswerLabels[:],
	})
}
