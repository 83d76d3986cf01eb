package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"flechazo/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile domain.Profile) error
	GetByUserID(ctx context.Context, userID string) (domain.Profile, error)
	// FindNearest devuelve los perfiles mas cercanos al embedding dado,
	// excluyendo al propio usuario. Orden por distancia ascendente.
	FindNearest(ctx context.Context, embedding pgvector.Vector, excludeUserID string, k int) ([]domain.Profile, error)
}

type PgProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgProfileRepository(pool *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{pool: pool}
}

func (r *PgProfileRepository) Create(ctx context.Context, profile domain.Profile) error {
	const query = `
		INSERT INTO profiles (
			id, user_id, display_name, bio,
			openness, conscientiousness, extraversion, agreeableness, neuroticism,
			completeness, trait_embedding, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.pool.Exec(ctx, query,
		profile.ID,
		profile.UserID,
		profile.DisplayName,
		profile.Bio,
		profile.Big5.Openness,
		profile.Big5.Conscientiousness,
		profile.Big5.Extraversion,
		profile.Big5.Agreeableness,
		profile.Big5.Neuroticism,
		profile.Completeness,
		profile.TraitVector(),
		profile.CreatedAt,
	)
	return err
}

func (r *PgProfileRepository) GetByUserID(ctx context.Context, userID string) (domain.Profile, error) {
	const query = `
		SELECT id, user_id, display_name, bio,
			openness, conscientiousness, extraversion, agreeableness, neuroticism,
			completeness, created_at
		FROM profiles
		WHERE user_id = $1
	`
	var profile domain.Profile
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.DisplayName,
		&profile.Bio,
		&profile.Big5.Openness,
		&profile.Big5.Conscientiousness,
		&profile.Big5.Extraversion,
		&profile.Big5.Agreeableness,
		&profile.Big5.Neuroticism,
		&profile.Completeness,
		&profile.CreatedAt,
	)
	return profile, err
}

func (r *PgProfileRepository) FindNearest(ctx context.Context, embedding pgvector.Vector, excludeUserID string, k int) ([]domain.Profile, error) {
	if k <= 0 {
		k = 10
	}
	const query = `
		SELECT id, user_id, display_name, bio,
			openness, conscientiousness, extraversion, agreeableness, neuroticism,
			completeness, created_at
		FROM profiles
		WHERE user_id <> $1
		ORDER BY trait_embedding <-> $2
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, excludeUserID, embedding, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.DisplayName,
			&p.Bio,
			&p.Big5.Openness,
			&p.Big5.Conscientiousness,
			&p.Big5.Extraversion,
			&p.Big5.Agreeableness,
			&p.Big5.Neuroticism,
			&p.Completeness,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}
