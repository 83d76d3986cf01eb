package domain

import "time"

// Dimension es un eje de compatibilidad. El set es fijo: los clientes
// comparan payloads entre report/dashboard/trends usando las mismas claves.
type Dimension string

const (
	DimensionPersonality   Dimension = "personality"
	DimensionCommunication Dimension = "communication"
	DimensionValues        Dimension = "values"
	DimensionLifestyle     Dimension = "lifestyle"
)

// AllDimensions define el orden canonico para salidas deterministas.
var AllDimensions = []Dimension{
	DimensionPersonality,
	DimensionCommunication,
	DimensionValues,
	DimensionLifestyle,
}

// ScoreSet mapea cada dimension a un score normalizado.
// Invariante: todas las claves presentes y todos los valores en [0,1].
type ScoreSet map[Dimension]float64

// Overall promedia las dimensiones en orden canonico.
func (s ScoreSet) Overall() float64 {
	if len(s) == 0 {
		return 0
	}
	var sum float64
	for _, d := range AllDimensions {
		sum += s[d]
	}
	return sum / float64(len(AllDimensions))
}

// Insights agrupa hallazgos cualitativos derivados de los scores.
type Insights struct {
	Strengths     []string `json:"strengths"`
	Challenges    []string `json:"challenges"`
	Opportunities []string `json:"opportunities"`
}

type Report struct {
	UserAID           string        `json:"user_a_id"`
	UserBID           string        `json:"user_b_id"`
	MatchID           *string       `json:"match_id,omitempty"`
	Scores            ScoreSet      `json:"scores"`
	Overall           float64       `json:"overall"`
	Insights          Insights      `json:"insights"`
	Recommendations   []string      `json:"recommendations"`
	SimulationCount   int           `json:"simulation_count"`
	HasSimulationData bool          `json:"has_simulation_data"`
	Trends            *TrendPayload `json:"trends,omitempty"`
	GeneratedAt       time.Time     `json:"generated_at"`
}

type DashboardPayload struct {
	Scores            ScoreSet  `json:"scores"`
	Overall           float64   `json:"overall"`
	TopStrength       Dimension `json:"top_strength"`
	TopChallenge      Dimension `json:"top_challenge"`
	SimulationCount   int       `json:"simulation_count"`
	HasSimulationData bool      `json:"has_simulation_data"`
}

type TrendPoint struct {
	Date    time.Time `json:"date"`
	Scores  ScoreSet  `json:"scores"`
	Overall float64   `json:"overall"`
}

const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

type TrendPayload struct {
	HasTrends       bool         `json:"has_trends"`
	WindowDays      int          `json:"window_days"`
	Points          []TrendPoint `json:"points,omitempty"`
	Trend           string       `json:"trend,omitempty"`
	ImprovementRate float64      `json:"improvement_rate"` // delta semanal del score global
}
