package domain

import "time"

const (
	MatchStatusPending  = "pending"
	MatchStatusActive   = "active"
	MatchStatusArchived = "archived"
)

type Match struct {
	ID        string    `json:"id"`
	UserAID   string    `json:"user_a_id"`
	UserBID   string    `json:"user_b_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// MatchCandidate es un perfil cercano en el espacio de rasgos, con su score
// de compatibilidad calculado solo a partir de perfiles (sin historial).
type MatchCandidate struct {
	Profile Profile  `json:"profile"`
	Scores  ScoreSet `json:"scores"`
	Overall float64  `json:"overall"`
}
