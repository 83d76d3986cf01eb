package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"flechazo/internal/domain"
)

type MatchRepository interface {
	Create(ctx context.Context, match domain.Match) error
	GetByID(ctx context.Context, id string) (domain.Match, error)
	// GetByPair busca un match existente entre dos usuarios, sin importar
	// el orden en que se hayan guardado.
	GetByPair(ctx context.Context, userAID, userBID string) (domain.Match, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Match, error)
}

type PgMatchRepository struct {
	pool *pgxpool.Pool
}

func NewPgMatchRepository(pool *pgxpool.Pool) *PgMatchRepository {
	return &PgMatchRepository{pool: pool}
}

func (r *PgMatchRepository) Create(ctx context.Context, match domain.Match) error {
	const query = `
		INSERT INTO matches (id, user_a_id, user_b_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		match.ID,
		match.UserAID,
		match.UserBID,
		match.Status,
		match.CreatedAt,
	)
	return err
}

func (r *PgMatchRepository) GetByID(ctx context.Context, id string) (domain.Match, error) {
	const query = `
		SELECT id, user_a_id, user_b_id, status, created_at
		FROM matches
		WHERE id = $1
	`
	var match domain.Match
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&match.ID,
		&match.UserAID,
		&match.UserBID,
		&match.Status,
		&match.CreatedAt,
	)
	return match, err
}

func (r *PgMatchRepository) GetByPair(ctx context.Context, userAID, userBID string) (domain.Match, error) {
	const query = `
		SELECT id, user_a_id, user_b_id, status, created_at
		FROM matches
		WHERE (user_a_id = $1 AND user_b_id = $2)
		   OR (user_a_id = $2 AND user_b_id = $1)
	`
	var match domain.Match
	err := r.pool.QueryRow(ctx, query, userAID, userBID).Scan(
		&match.ID,
		&match.UserAID,
		&match.UserBID,
		&match.Status,
		&match.CreatedAt,
	)
	return match, err
}

func (r *PgMatchRepository) ListByUser(ctx context.Context, userID string) ([]domain.Match, error) {
	const query = `
		SELECT id, user_a_id, user_b_id, status, created_at
		FROM matches
		WHERE user_a_id = $1 OR user_b_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []domain.Match
	for rows.Next() {
		var m domain.Match
		if err := rows.Scan(
			&m.ID,
			&m.UserAID,
			&m.UserBID,
			&m.Status,
			&m.CreatedAt,
		); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return matches, nil
}
