package dto

import "github.com/SscSPs/burnout_journal/internal/core/domain"

// SubmitQuizRequest carries raw answers keyed by question index.
type SubmitQuizRequest struct {
	Responses map[int]int `json:"responses" binding:"required"`
}

// SubmitQuizResponse acknowledges a stored questionnaire.
type SubmitQuizResponse struct {
	QuizID  string `json:"id"`
	Success bool   `json:"success"`
}

// QuizStatsResponse lists normalized scores oldest first.
type QuizStatsResponse struct {
	Stats []domain.QuizStat `json:"stats"`
}

// QuizQuestionsResponse lists the questionnaire and its answer scale.
type QuizQuestionsResponse struct {
	Questions []string `json:"questions"`
	Answers   []string `json:"answers"`
}
