package service

import (
	"fmt"
	"sort"

	"flechazo/internal/domain"
)

// Umbrales de clasificacion: >=0.75 fortaleza, <=0.40 reto, el resto es
// margen de mejora. La dispersion alta entre dimensiones se reporta aparte.
const (
	strengthThreshold   = 0.75
	challengeThreshold  = 0.40
	dispersionThreshold = 0.35
	minSimulationsHint  = 3
	maxRecommendations  = 5
)

var dimensionLabels = map[domain.Dimension]string{
	domain.DimensionPersonality:   "personality fit",
	domain.DimensionCommunication: "communication style",
	domain.DimensionValues:        "core values",
	domain.DimensionLifestyle:     "lifestyle habits",
}

// buildInsights aplica reglas de umbral sobre los scores. Funcion pura:
// mismo input, mismo output, sin llamadas externas.
func buildInsights(scores domain.ScoreSet, simulationCount int) domain.Insights {
	insights := domain.Insights{
		Strengths:     []string{},
		Challenges:    []string{},
		Opportunities: []string{},
	}

	for _, dim := range domain.AllDimensions {
		score := scores[dim]
		label := dimensionLabels[dim]
		switch {
		case score >= strengthThreshold:
			insights.Strengths = append(insights.Strengths,
				fmt.Sprintf("Strong alignment on %s (%.0f%%)", label, score*100))
		case score <= challengeThreshold:
			insights.Challenges = append(insights.Challenges,
				fmt.Sprintf("Low alignment on %s (%.0f%%)", label, score*100))
		default:
			insights.Opportunities = append(insights.Opportunities,
				fmt.Sprintf("Room to grow on %s (%.0f%%)", label, score*100))
		}
	}

	if maxScore(scores)-minScore(scores) >= dispersionThreshold {
		insights.Challenges = append(insights.Challenges,
			"Compatibility is uneven across dimensions; expect friction where scores diverge")
	}

	if simulationCount < minSimulationsHint {
		insights.Opportunities = append(insights.Opportunities,
			"Run more avatar simulations to sharpen these scores")
	}

	return insights
}

var recommendationTemplates = map[domain.Dimension]string{
	domain.DimensionPersonality:   "Plan activities that play to both temperaments instead of forcing one style",
	domain.DimensionCommunication: "Agree on how often and through which channel you both prefer to talk",
	domain.DimensionValues:        "Discuss long-term priorities early and surface dealbreakers before they surprise you",
	domain.DimensionLifestyle:     "Compare weekly routines and find overlapping time for shared plans",
}

// buildRecommendations sugiere acciones priorizando la dimension mas debil.
// Nunca devuelve mas de maxRecommendations elementos.
func buildRecommendations(scores domain.ScoreSet) []string {
	dims := sortedByScoreAsc(scores)

	recommendations := []string{}
	for _, dim := range dims {
		if scores[dim] >= strengthThreshold {
			continue
		}
		recommendations = append(recommendations, recommendationTemplates[dim])
		if len(recommendations) >= maxRecommendations {
			break
		}
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations,
			"Keep doing what works and re-run a simulation from time to time to confirm the trend")
	}

	return recommendations
}

// sortedByScoreAsc ordena las dimensiones de menor a mayor score,
// desempatando por el orden canonico.
func sortedByScoreAsc(scores domain.ScoreSet) []domain.Dimension {
	dims := make([]domain.Dimension, len(domain.AllDimensions))
	copy(dims, domain.AllDimensions)
	sort.SliceStable(dims, func(i, j int) bool {
		return scores[dims[i]] < scores[dims[j]]
	})
	return dims
}

func maxScore(scores domain.ScoreSet) float64 {
	max := scores[domain.AllDimensions[0]]
	for _, d := range domain.AllDimensions[1:] {
		if scores[d] > max {
			max = scores[d]
		}
	}
	return max
}

func minScore(scores domain.ScoreSet) float64 {
	min := scores[domain.AllDimensions[0]]
	for _, d := range domain.AllDimensions[1:] {
		if scores[d] < min {
			min = scores[d]
		}
	}
	return min
}
