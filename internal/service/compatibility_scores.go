package service

import (
	"math"
	"strings"

	"flechazo/internal/domain"
)

// Peso empirico: w = n / (n + k). Con k=3, una sola simulacion pesa 25%,
// tres pesan 50% y el historial domina gradualmente sin saltos.
const empiricalHalfWeight = 3

func blendWeight(n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(n) / float64(n+empiricalHalfWeight)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// CalculateScores produce el ScoreSet combinando similitud estatica de
// perfiles con el promedio empirico de las simulaciones. Los registros
// llegan ordenados del mas antiguo al mas reciente; el orden no altera el
// resultado pero si lo hara cuando incorporemos decaimiento temporal.
func CalculateScores(profileA, profileB domain.Profile, traitsA, traitsB []domain.Trait, records []domain.SimulationRecord) domain.ScoreSet {
	scores := make(domain.ScoreSet, len(domain.AllDimensions))
	for _, dim := range domain.AllDimensions {
		sim := dimensionSimilarity(dim, profileA, profileB, traitsA, traitsB)
		emp, n := empiricalAverage(records, dim)
		w := blendWeight(n)
		scores[dim] = clamp01((1-w)*sim + w*emp)
	}
	return scores
}

func dimensionSimilarity(dim domain.Dimension, profileA, profileB domain.Profile, traitsA, traitsB []domain.Trait) float64 {
	switch dim {
	case domain.DimensionPersonality:
		return big5Similarity(profileA.Big5, profileB.Big5)
	case domain.DimensionCommunication:
		if sim, ok := categorySimilarity(traitsA, traitsB, domain.TraitCategoryCommunication); ok {
			return sim
		}
		return pairSimilarity(
			profileA.Big5.Extraversion, profileB.Big5.Extraversion,
			profileA.Big5.Agreeableness, profileB.Big5.Agreeableness,
		)
	case domain.DimensionValues:
		if sim, ok := categorySimilarity(traitsA, traitsB, domain.TraitCategoryValues); ok {
			return sim
		}
		return pairSimilarity(
			profileA.Big5.Openness, profileB.Big5.Openness,
			profileA.Big5.Conscientiousness, profileB.Big5.Conscientiousness,
		)
	case domain.DimensionLifestyle:
		if sim, ok := categorySimilarity(traitsA, traitsB, domain.TraitCategoryLifestyle); ok {
			return sim
		}
		return pairSimilarity(
			profileA.Big5.Conscientiousness, profileB.Big5.Conscientiousness,
			profileA.Big5.Extraversion, profileB.Big5.Extraversion,
		)
	}
	return 0.5
}

// big5Similarity: 1 - distancia media absoluta normalizada (rasgos 0-100).
func big5Similarity(a, b domain.Big5Profile) float64 {
	diff := math.Abs(float64(a.Openness-b.Openness)) +
		math.Abs(float64(a.Conscientiousness-b.Conscientiousness)) +
		math.Abs(float64(a.Extraversion-b.Extraversion)) +
		math.Abs(float64(a.Agreeableness-b.Agreeableness)) +
		math.Abs(float64(a.Neuroticism-b.Neuroticism))
	return clamp01(1 - diff/(5*100))
}

func pairSimilarity(a1, b1, a2, b2 int) float64 {
	diff := math.Abs(float64(a1-b1)) + math.Abs(float64(a2-b2))
	return clamp01(1 - diff/(2*100))
}

// categorySimilarity compara rasgos con el mismo nombre dentro de una
// categoria. ok=false cuando no hay rasgos compartidos y el caller debe
// caer al proxy de Big5.
func categorySimilarity(traitsA, traitsB []domain.Trait, category string) (float64, bool) {
	valuesA := traitValues(traitsA, category)
	valuesB := traitValues(traitsB, category)
	if len(valuesA) == 0 || len(valuesB) == 0 {
		return 0, false
	}

	var sum float64
	var shared int
	for name, va := range valuesA {
		vb, ok := valuesB[name]
		if !ok {
			continue
		}
		sum += 1 - math.Abs(float64(va-vb))/100
		shared++
	}
	if shared == 0 {
		return 0, false
	}
	return clamp01(sum / float64(shared)), true
}

func traitValues(traits []domain.Trait, category string) map[string]int {
	values := make(map[string]int)
	for _, t := range traits {
		if t.Category != category {
			continue
		}
		values[strings.ToLower(strings.TrimSpace(t.Trait))] = t.Value
	}
	return values
}

// empiricalAverage promedia la metrica de una dimension sobre el historial.
// n cuenta solo los registros que traen esa metrica.
func empiricalAverage(records []domain.SimulationRecord, dim domain.Dimension) (float64, int) {
	var sum float64
	var n int
	for _, rec := range records {
		v, ok := rec.Metrics[string(dim)]
		if !ok {
			continue
		}
		sum += clamp01(v)
		n++
	}
	if n == 0 {
		return 0, 0
	}
	return sum / float64(n), n
}
