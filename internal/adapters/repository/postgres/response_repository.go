package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"
	"github.com/survey/api/internal/core/domain"
	"github.com/survey/api/internal/core/ports"
)

// uniqueViolation is the Postgres error code raised when an insert
// would duplicate a uniquely-constrained value.
const uniqueViolation = "23505"

const responseColumns = "id, email, motivation, favorite_language, submitted_at"

type responseRepository struct {
	db *sql.DB
}

func NewResponseRepository(db *sql.DB) ports.ResponseRepository {
	return &responseRepository{
		db: db,
	}
}

func (r *responseRepository) Create(ctx context.Context, email string, motivation *string, favoriteLanguage string) (*domain.Response, error) {
	defer observe("create", time.Now())

	query := `
		INSERT INTO responses (email, motivation, favorite_language)
		VALUES ($1, $2, $3)
		RETURNING ` + responseColumns

	var resp domain.Response
	err := r.db.QueryRowContext(ctx, query, email, motivation, favoriteLanguage).Scan(
		&resp.ID, &resp.Email, &resp.Motivation, &resp.FavoriteLanguage, &resp.SubmittedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to insert response: %w", err)
	}

	return &resp, nil
}

func (r *responseRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	defer observe("email_exists", time.Now())

	query := `SELECT EXISTS(SELECT 1 FROM responses WHERE email = $1)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

func (r *responseRepository) Count(ctx context.Context) (int64, error) {
	defer observe("count", time.Now())

	query := `SELECT COUNT(*) FROM responses`

	var total int64
	err := r.db.QueryRowContext(ctx, query).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count responses: %w", err)
	}
	return total, nil
}

func (r *responseRepository) Recent(ctx context.Context, limit int) ([]*domain.Response, error) {
	defer observe("recent", time.Now())

	query := `
		SELECT ` + responseColumns + `
		FROM responses
		ORDER BY submitted_at DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent responses: %w", err)
	}
	defer rows.Close()

	return scanResponses(rows)
}

func (r *responseRepository) LanguageStats(ctx context.Context) ([]domain.LanguageStat, error) {
	defer observe("language_stats", time.Now())

	query := `
		SELECT favorite_language, COUNT(*) AS count
		FROM responses
		GROUP BY favorite_language
		ORDER BY count DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get language stats: %w", err)
	}
	defer rows.Close()

	var stats []domain.LanguageStat
	for rows.Next() {
		var s domain.LanguageStat
		if err := rows.Scan(&s.Language, &s.Count); err != nil {
			return nil, fmt.Errorf("failed to scan language stat: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating language stats: %w", err)
	}
	return stats, nil
}

func (r *responseRepository) FindByEmail(ctx context.Context, email string) (*domain.Response, error) {
	defer observe("find_by_email", time.Now())

	query := `
		SELECT ` + responseColumns + `
		FROM responses
		WHERE email = $1
	`

	var resp domain.Response
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&resp.ID, &resp.Email, &resp.Motivation, &resp.FavoriteLanguage, &resp.SubmittedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrResponseNotFound
		}
		return nil, fmt.Errorf("failed to get response: %w", err)
	}
	return &resp, nil
}

func (r *responseRepository) FindAll(ctx context.Context) ([]*domain.Response, error) {
	defer observe("find_all", time.Now())

	query := `
		SELECT ` + responseColumns + `
		FROM responses
		ORDER BY submitted_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all responses: %w", err)
	}
	defer rows.Close()

	return scanResponses(rows)
}

func scanResponses(rows *sql.Rows) ([]*domain.Response, error) {
	var responses []*domain.Response
	for rows.Next() {
		var resp domain.Response
		if err := rows.Scan(&resp.ID, &resp.Email, &resp.Motivation, &resp.FavoriteLanguage, &resp.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		responses = append(responses, &resp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating responses: %w", err)
	}
	return responses, nil
}

func observe(op string, start time.Time) {
	slog.Debug("query executed", "op", op, "duration", time.Since(start))
}
