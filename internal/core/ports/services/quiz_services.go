package services

import (
	"context"

	"github.com/SscSPs/burnout_journal/internal/core/domain"
)

// QuizSvcFacade stores questionnaire results and summarizes them over time.
type QuizSvcFacade interface {
	SubmitQuiz(ctx context.Context, userID string, responses map[int]int) (*domain.QuizResult, error)
	GetQuizStats(ctx context.Context, userID string) ([]domain.QuizStat, error)
}
