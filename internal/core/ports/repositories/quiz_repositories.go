package repositories

import (
	"context"

	"github.com/SscSPs/burnout_journal/internal/core/domain"
)

type QuizWriter interface {
	SaveQuizResult(ctx context.Context, result domain.QuizResult) error
}

type QuizReader interface {
	// ListQuizResults returns the user's results ordered by completion time ascending.
	ListQuizResults(ctx context.Context, userID string) ([]domain.QuizResult, error)
}

type QuizRepositoryFacade interface {
	QuizReader
	QuizWriter
}
