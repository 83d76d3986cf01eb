package domain

import (
	"time"

	pgvector "github.com/pgvector/pgvector-go"
)

type Profile struct {
	ID           string      `json:"id"`
	UserID       string      `json:"user_id"`
	DisplayName  string      `json:"display_name"`
	Bio          string      `json:"bio,omitempty"`
	Big5         Big5Profile `json:"big5"`
	Completeness float64     `json:"completeness"` // fraccion 0.0-1.0 de campos completados
	CreatedAt    time.Time   `json:"created_at"`
}

type Big5Profile struct {
	Openness          int `json:"openness"`          // Creatividad vs. Pragmatismo
	Conscientiousness int `json:"conscientiousness"` // Orden vs. Caos
	Extraversion      int `json:"extraversion"`      // Energia social
	Agreeableness     int `json:"agreeableness"`     // Amabilidad
	Neuroticism       int `json:"neuroticism"`       // Estabilidad emocional (inverso)
}

// TraitVector devuelve el embedding normalizado (0.0-1.0 por rasgo) que usamos
// para descubrir candidatos por distancia en pgvector.
func (p *Profile) TraitVector() pgvector.Vector {
	return pgvector.NewVector([]float32{
		float32(p.Big5.Openness) / 100.0,
		float32(p.Big5.Conscientiousness) / 100.0,
		float32(p.Big5.Extraversion) / 100.0,
		float32(p.Big5.Agreeableness) / 100.0,
		float32(p.Big5.Neuroticism) / 100.0,
	})
}
