package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/burnout_journal/internal/apperrors"
	"github.com/SscSPs/burnout_journal/internal/core/domain"
	portsrepo "github.com/SscSPs/burnout_journal/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/burnout_journal/internal/core/ports/services"
)

type quizService struct {
	BaseService
	quizRepo portsrepo.QuizRepositoryFacade
}

// QuizServiceOption configures a quizService.
type QuizServiceOption func(*quizService)

// WithQuizClock overrides the clock used for completion times.
func WithQuizClock(clock func() time.Time) QuizServiceOption {
	return func(s *quizService) { s.clock = clock }
}

// NewQuizService creates a new QuizService.
func NewQuizService(quizRepo portsrepo.QuizRepositoryFacade, opts ...QuizServiceOption) portssvc.QuizSvcFacade {
	s := &quizService{quizRepo: quizRepo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.QuizSvcFacade = (*quizService)(nil)

func validateQuizResponses(responses map[int]int) error {
	if len(responses) != domain.QuizQuestionCount {
		return apperrors.NewBadRequestError(fmt.Sprintf("All %d questions must be answered", domain.QuizQuestionCount))
	}
	for q, a := range responses {
		if q < 0 || q >= domain.QuizQuestionCount {
			return apperrors.NewBadRequestError(fmt.Sprintf("Unknown question %d", q))
		}
		if a < 0 || a > domain.QuizMaxAnswer {
			return apperrors.NewBadRequestError(fmt.Sprintf("Answer to question %d must be between 0 and %d", q, domain.QuizMaxAnswer))
		}
	}
	return nil
}

// SubmitQuiz stores the raw answers. Scoring happens when stats are read.
func (s *quizService) SubmitQuiz(ctx context.Context, userID string, responses map[int]int) (*domain.QuizResult, error) {
	if err := validateQuizResponses(responses); err != nil {
		return nil, err
	}

	result := domain.QuizResult{
		QuizID:      uuid.NewString(),
		UserID:      userID,
		Responses:   responses,
		CompletedAt: s.Now(),
		Processed:   false,
	}
	if err := s.quizRepo.SaveQuizResult(ctx, result); err != nil {
		s.LogError(ctx, err, "Failed to save quiz result")
		return nil, fmt.Errorf("failed to save quiz result: %w", err)
	}
	s.LogInfo(ctx, "Quiz submitted", slog.String("quiz_id", result.QuizID))
	return &result, nil
}

// GetQuizStats returns one normalized score per submission, oldest first.
func (s *quizService) GetQuizStats(ctx context.Context, userID string) ([]domain.QuizStat, error) {
	results, err := s.quizRepo.ListQuizResults(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list quiz results")
		return nil, fmt.Errorf("failed to retrieve quiz results: %w", err)
	}

	stats := make([]domain.QuizStat, 0, len(results))
	for _, r := range results {
		stats = append(stats, domain.QuizStat{
			QuizID:      r.QuizID,
			Date:        r.CompletedAt.UTC().Format(domain.JournalDateLayout),
			CompletedAt: r.CompletedAt,
			Score:       QuizScore(r.Responses),
		})
	}
	return stats, nil
}

// QuizScore is round(sum / (n * 3) * 100) over the n answered questions.
// An empty set scores zero.
func QuizScore(responses map[int]int) int {
	if len(responses) == 0 {
		return 0
	}
	sum := 0
	for _, a := range responses {
		sum += a
	}
	max := decimal.NewFromInt(int64(len(responses) * domain.QuizMaxAnswer))
	score := decimal.NewFromInt(int64(sum * 100)).Div(max).Round(0)
	return int(score.IntPart())
}
