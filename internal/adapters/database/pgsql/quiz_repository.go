package pgsql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/burnout_journal/internal/core/domain"
	portsrepo "github.com/SscSPs/burnout_journal/internal/core/ports/repositories"
	"github.com/SscSPs/burnout_journal/internal/models"
)

type PgxQuizRepository struct {
	BaseRepository
}

func newPgxQuizRepository(pool *pgxpool.Pool) portsrepo.QuizRepositoryFacade {
	return &PgxQuizRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.QuizRepositoryFacade = (*PgxQuizRepository)(nil)

func toModelQuizResult(d domain.QuizResult) models.QuizResult {
	responses := make(map[string]int, len(d.Responses))
	for q, a := range d.Responses {
		responses[strconv.Itoa(q)] = a
	}
	return models.QuizResult{
		QuizID:      d.QuizID,
		UserID:      d.UserID,
		Responses:   responses,
		CompletedAt: d.CompletedAt,
		Processed:   d.Processed,
	}
}

func toDomainQuizResult(m models.QuizResult) (domain.QuizResult, error) {
	responses := make(map[int]int, len(m.Responses))
	for k, a := range m.Responses {
		q, err := strconv.Atoi(k)
		if err != nil {
			return domain.QuizResult{}, fmt.Errorf("quiz %s has non-numeric question key %q", m.QuizID, k)
		}
		responses[q] = a
	}
	return domain.QuizResult{
		QuizID:      m.QuizID,
		UserID:      m.UserID,
		Responses:   responses,
		CompletedAt: m.CompletedAt,
		Processed:   m.Processed,
	}, nil
}

func (r *PgxQuizRepository) SaveQuizResult(ctx context.Context, result domain.QuizResult) error {
	m := toModelQuizResult(result)
	query := `
		INSERT INTO quiz_results (quiz_id, user_id, responses, completed_at, processed)
		VALUES ($1, $2, $3, $4, $5);
	`
	if _, err := r.Pool.Exec(ctx, query, m.QuizID, m.UserID, m.Responses, m.CompletedAt, m.Processed); err != nil {
		return fmt.Errorf("failed to save quiz result: %w", err)
	}
	return nil
}

func (r *PgxQuizRepository) ListQuizResults(ctx context.Context, userID string) ([]domain.QuizResult, error) {
	query := `
		SELECT quiz_id, user_id, responses, completed_at, processed
		FROM quiz_results
		WHERE user_id = $1
		ORDER BY completed_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quiz results: %w", err)
	}
	defer rows.Close()

	results := []domain.QuizResult{}
	for rows.Next() {
		var m models.QuizResult
		if err := rows.Scan(&m.QuizID, &m.UserID, &m.Responses, &m.CompletedAt, &m.Processed); err != nil {
			return nil, fmt.Errorf("failed to scan quiz row: %w", err)
		}
		d, err := toDomainQuizResult(m)
		if err != nil {
			return nil, err
		}
		results = append(results, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quiz rows: %w", err)
	}
	return results, nil
}
