package domain

import "time"

// SimulationRecord es el resultado de una conversacion simulada entre los
// avatares de dos usuarios. Append-only: nunca se edita despues de creado.
type SimulationRecord struct {
	ID        string             `json:"id"`
	MatchID   *string            `json:"match_id,omitempty"`
	UserAID   string             `json:"user_a_id"`
	UserBID   string             `json:"user_b_id"`
	Metrics   map[string]float64 `json:"metrics"` // dimension -> resultado 0.0-1.0
	Summary   string             `json:"summary,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}
