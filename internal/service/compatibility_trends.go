package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"flechazo/internal/domain"
)

const (
	minTrendWindowDays = 7
	maxTrendWindowDays = 365

	// Pendiente diaria minima del score global para salir de "stable".
	// 0.0025/dia equivale a ~0.075 al mes sobre un score 0-1.
	trendSlopeThreshold = 0.0025
)

// GetTrends calcula la trayectoria de scores en la ventana pedida,
// agrupando simulaciones por dia UTC. Con menos de dos puntos devuelve
// un payload sin tendencias en lugar de fallar.
func (s *CompatibilityService) GetTrends(ctx context.Context, userAID, userBID string, windowDays int) (domain.TrendPayload, error) {
	if windowDays < minTrendWindowDays || windowDays > maxTrendWindowDays {
		return domain.TrendPayload{}, ErrInvalidWindow
	}

	since := time.Now().UTC().AddDate(0, 0, -windowDays)
	records, err := s.sims.ListByPairSince(ctx, userAID, userBID, since)
	if err != nil {
		return domain.TrendPayload{}, fmt.Errorf("list simulations since %s: %w", since.Format("2006-01-02"), err)
	}

	points := bucketByDay(records)
	if len(points) < 2 {
		return domain.TrendPayload{HasTrends: false, WindowDays: windowDays}, nil
	}

	slope := overallSlope(points)
	trend := domain.TrendStable
	switch {
	case slope >= trendSlopeThreshold:
		trend = domain.TrendImproving
	case slope <= -trendSlopeThreshold:
		trend = domain.TrendDeclining
	}

	return domain.TrendPayload{
		HasTrends:       true,
		WindowDays:      windowDays,
		Points:          points,
		Trend:           trend,
		ImprovementRate: slope * 7, // delta semanal
	}, nil
}

// bucketByDay agrupa registros por dia UTC y promedia sus metricas en un
// ScoreSet por punto. Dimensiones sin metrica en el dia se rellenan con el
// promedio de las presentes para mantener el invariante de claves completas.
func bucketByDay(records []domain.SimulationRecord) []domain.TrendPoint {
	type bucket struct {
		sums   map[domain.Dimension]float64
		counts map[domain.Dimension]int
	}

	buckets := make(map[time.Time]*bucket)
	for _, rec := range records {
		day := rec.CreatedAt.UTC().Truncate(24 * time.Hour)
		b, ok := buckets[day]
		if !ok {
			b = &bucket{
				sums:   make(map[domain.Dimension]float64),
				counts: make(map[domain.Dimension]int),
			}
			buckets[day] = b
		}
		for _, dim := range domain.AllDimensions {
			v, ok := rec.Metrics[string(dim)]
			if !ok {
				continue
			}
			b.sums[dim] += clamp01(v)
			b.counts[dim]++
		}
	}

	days := make([]time.Time, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	points := make([]domain.TrendPoint, 0, len(days))
	for _, day := range days {
		b := buckets[day]
		scores := make(domain.ScoreSet, len(domain.AllDimensions))

		var presentSum float64
		var presentCount int
		for _, dim := range domain.AllDimensions {
			if b.counts[dim] == 0 {
				continue
			}
			v := b.sums[dim] / float64(b.counts[dim])
			scores[dim] = v
			presentSum += v
			presentCount++
		}
		if presentCount == 0 {
			continue
		}
		fill := presentSum / float64(presentCount)
		for _, dim := range domain.AllDimensions {
			if b.counts[dim] == 0 {
				scores[dim] = fill
			}
		}

		points = append(points, domain.TrendPoint{
			Date:    day,
			Scores:  scores,
			Overall: scores.Overall(),
		})
	}

	return points
}

// overallSlope ajusta por minimos cuadrados la serie (dias, score global).
func overallSlope(points []domain.TrendPoint) float64 {
	n := float64(len(points))
	if n < 2 {
		return 0
	}

	first := points[0].Date
	var sumX, sumY, sumXY, sumXX float64
	for _, p := range points {
		x := p.Date.Sub(first).Hours() / 24
		y := p.Overall
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}
