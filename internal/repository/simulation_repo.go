package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"flechazo/internal/domain"
)

type SimulationRepository interface {
	Create(ctx context.Context, record domain.SimulationRecord) error
	// ListByPair devuelve el historial de simulaciones entre dos usuarios en
	// orden cronologico (mas antiguo primero). matchID opcional filtra por match.
	ListByPair(ctx context.Context, userAID, userBID string, matchID *string) ([]domain.SimulationRecord, error)
	ListByPairSince(ctx context.Context, userAID, userBID string, since time.Time) ([]domain.SimulationRecord, error)
}

type PgSimulationRepository struct {
	pool *pgxpool.Pool
}

func NewPgSimulationRepository(pool *pgxpool.Pool) *PgSimulationRepository {
	return &PgSimulationRepository{pool: pool}
}

func (r *PgSimulationRepository) Create(ctx context.Context, record domain.SimulationRecord) error {
	const query = `
		INSERT INTO simulation_records (id, match_id, user_a_id, user_b_id, metrics, summary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	metricsJSON, err := json.Marshal(record.Metrics)
	if err != nil {
		return err
	}

	var matchID interface{}
	if record.MatchID != nil {
		matchID = *record.MatchID
	}

	_, err = r.pool.Exec(ctx, query,
		record.ID,
		matchID,
		record.UserAID,
		record.UserBID,
		metricsJSON,
		record.Summary,
		record.CreatedAt,
	)
	return err
}

func (r *PgSimulationRepository) ListByPair(ctx context.Context, userAID, userBID string, matchID *string) ([]domain.SimulationRecord, error) {
	query := `
		SELECT id, match_id, user_a_id, user_b_id, metrics, summary, created_at
		FROM simulation_records
		WHERE ((user_a_id = $1 AND user_b_id = $2) OR (user_a_id = $2 AND user_b_id = $1))
	`
	args := []interface{}{userAID, userBID}
	if matchID != nil {
		query += ` AND match_id = $3`
		args = append(args, *matchID)
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSimulationRecords(rows)
}

func (r *PgSimulationRepository) ListByPairSince(ctx context.Context, userAID, userBID string, since time.Time) ([]domain.SimulationRecord, error) {
	const query = `
		SELECT id, match_id, user_a_id, user_b_id, metrics, summary, created_at
		FROM simulation_records
		WHERE ((user_a_id = $1 AND user_b_id = $2) OR (user_a_id = $2 AND user_b_id = $1))
		  AND created_at >= $3
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, userAID, userBID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSimulationRecords(rows)
}

type simulationRows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

func scanSimulationRecords(rows simulationRows) ([]domain.SimulationRecord, error) {
	var records []domain.SimulationRecord
	for rows.Next() {
		var rec domain.SimulationRecord
		var matchID *string
		var metricsJSON []byte

		if err := rows.Scan(
			&rec.ID,
			&matchID,
			&rec.UserAID,
			&rec.UserBID,
			&metricsJSON,
			&rec.Summary,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		rec.MatchID = matchID
		if len(metricsJSON) > 0 {
			if err := json.Unmarshal(metricsJSON, &rec.Metrics); err != nil {
				return nil, err
			}
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
