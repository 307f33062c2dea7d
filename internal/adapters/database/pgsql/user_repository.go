package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/burnout_journal/internal/apperrors"
	"github.com/SscSPs/burnout_journal/internal/core/domain"
	portsrepo "github.com/SscSPs/burnout_journal/internal/core/ports/repositories"
	"github.com/SscSPs/burnout_journal/internal/models"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `user_id, email, password_hash, auth_provider, provider_user_id,
	display_name, timezone, date_format, time_format, created_at, last_updated_at, deleted_at`

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Helper to convert domain.User to models.User
func toModelUser(d domain.User) models.User {
	return models.User{
		UserID:         d.UserID,
		Email:          d.Email,
		PasswordHash:   nullableString(d.PasswordHash),
		AuthProvider:   string(d.AuthProvider),
		ProviderUserID: nullableString(d.ProviderUserID),
		DisplayName:    d.Profile.DisplayName,
		Timezone:       d.Profile.Timezone,
		DateFormat:     d.Profile.DateFormat,
		TimeFormat:     d.Profile.TimeFormat,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
		DeletedAt: d.DeletedAt,
	}
}

// Helper to convert models.User to domain.User
func toDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:         m.UserID,
		Email:          m.Email,
		PasswordHash:   derefString(m.PasswordHash),
		AuthProvider:   domain.AuthProvider(m.AuthProvider),
		ProviderUserID: derefString(m.ProviderUserID),
		Profile: domain.Profile{
			DisplayName: m.DisplayName,
			Timezone:    m.Timezone,
			DateFormat:  m.DateFormat,
			TimeFormat:  m.TimeFormat,
		},
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
		DeletedAt: m.DeletedAt,
	}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Email,
		&m.PasswordHash,
		&m.AuthProvider,
		&m.ProviderUserID,
		&m.DisplayName,
		&m.Timezone,
		&m.DateFormat,
		&m.TimeFormat,
		&m.CreatedAt,
		&m.LastUpdatedAt,
		&m.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	d := toDomainUser(m)
	return &d, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := toModelUser(user)
	query := `
        INSERT INTO users (user_id, email, password_hash, auth_provider, provider_user_id,
            display_name, timezone, date_format, time_format, created_at, last_updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.Email,
		m.PasswordHash,
		m.AuthProvider,
		m.ProviderUserID,
		m.DisplayName,
		m.Timezone,
		m.DateFormat,
		m.TimeFormat,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user with email already exists: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) findOne(ctx context.Context, what, where string, args ...any) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where + ` AND deleted_at IS NULL;`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by %s: %w", what, err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, "ID", `user_id = $1`, userID)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email", `lower(email) = lower($1)`, email)
}

func (r *PgxUserRepository) FindUserByProviderDetails(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	return r.findOne(ctx, "provider", `auth_provider = $1 AND provider_user_id = $2`, string(provider), providerUserID)
}

func (r *PgxUserRepository) UpdateProfile(ctx context.Context, userID string, profile domain.Profile, updatedAt time.Time) error {
	query := `
        UPDATE users
        SET display_name = $1, timezone = $2, date_format = $3, time_format = $4, last_updated_at = $5
        WHERE user_id = $6 AND deleted_at IS NULL;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		profile.DisplayName,
		profile.Timezone,
		profile.DateFormat,
		profile.TimeFormat,
		updatedAt,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update profile query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

// MarkUserDeleted soft-deletes the user row and removes their journals and quiz results.
func (r *PgxUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, `
            UPDATE users
            SET deleted_at = $1, last_updated_at = $1
            WHERE user_id = $2 AND deleted_at IS NULL;
        `, deletedAt, userID)
		if err != nil {
			return fmt.Errorf("failed to mark user as deleted: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("user not found or already deleted: %w", apperrors.ErrNotFound)
		}
		// Entries go with their journals through the foreign key cascade.
		if _, err := tx.Exec(ctx, `DELETE FROM journals WHERE user_id = $1;`, userID); err != nil {
			return fmt.Errorf("failed to delete journals of user: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM quiz_results WHERE user_id = $1;`, userID); err != nil {
			return fmt.Errorf("failed to delete quiz results of user: %w", err)
		}
		return nil
	})
}
