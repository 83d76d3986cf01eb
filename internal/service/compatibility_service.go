package service

import (
	"errors"
	"fmt"
	"time"

	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"flechazo/internal/domain"
	"flechazo/internal/repository"
)

// CompatibilityService calcula scores de compatibilidad entre dos usuarios
// a partir de sus perfiles y del historial de simulaciones entre sus avatares.
// No persiste nada: cada reporte se recalcula por request.
type CompatibilityService struct {
	logger   *zap.Logger
	profiles repository.ProfileRepository
	traits   repository.TraitRepository
	sims     repository.SimulationRepository
}

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidWindow   = errors.New("trend window out of range")
)

const defaultTrendWindowDays = 30

func NewCompatibilityService(
	logger *zap.Logger,
	profiles repository.ProfileRepository,
	traits repository.TraitRepository,
	sims repository.SimulationRepository,
) *CompatibilityService {
	return &CompatibilityService{
		logger:   logger,
		profiles: profiles,
		traits:   traits,
		sims:     sims,
	}
}

// profilePair agrupa los datos resueltos de ambos usuarios.
type profilePair struct {
	profileA domain.Profile
	profileB domain.Profile
	traitsA  []domain.Trait
	traitsB  []domain.Trait
}

func (s *CompatibilityService) fetchPair(ctx context.Context, userAID, userBID string) (profilePair, error) {
	var pair profilePair
	var err error

	pair.profileA, err = s.profiles.GetByUserID(ctx, userAID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profilePair{}, ErrProfileNotFound
		}
		return profilePair{}, fmt.Errorf("get profile %s: %w", userAID, err)
	}
	pair.profileB, err = s.profiles.GetByUserID(ctx, userBID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profilePair{}, ErrProfileNotFound
		}
		return profilePair{}, fmt.Errorf("get profile %s: %w", userBID, err)
	}

	// Sin rasgos extendidos el calculo cae a los proxies de Big5.
	pair.traitsA, err = s.traits.FindByProfileID(ctx, pair.profileA.ID)
	if err != nil {
		return profilePair{}, fmt.Errorf("get traits %s: %w", pair.profileA.ID, err)
	}
	pair.traitsB, err = s.traits.FindByProfileID(ctx, pair.profileB.ID)
	if err != nil {
		return profilePair{}, fmt.Errorf("get traits %s: %w", pair.profileB.ID, err)
	}

	return pair, nil
}

// GenerateReport compone el reporte completo: scores, insights,
// recomendaciones y (opcional) tendencias.
func (s *CompatibilityService) GenerateReport(ctx context.Context, userAID, userBID string, matchID *string, includeTrends bool) (domain.Report, error) {
	pair, err := s.fetchPair(ctx, userAID, userBID)
	if err != nil {
		return domain.Report{}, err
	}

	records, err := s.sims.ListByPair(ctx, userAID, userBID, matchID)
	if err != nil {
		return domain.Report{}, fmt.Errorf("list simulations: %w", err)
	}

	scores := CalculateScores(pair.profileA, pair.profileB, pair.traitsA, pair.traitsB, records)

	report := domain.Report{
		UserAID:           userAID,
		UserBID:           userBID,
		MatchID:           matchID,
		Scores:            scores,
		Overall:           scores.Overall(),
		Insights:          buildInsights(scores, len(records)),
		Recommendations:   buildRecommendations(scores),
		SimulationCount:   len(records),
		HasSimulationData: len(records) > 0,
		GeneratedAt:       time.Now().UTC(),
	}

	if includeTrends {
		trends, err := s.GetTrends(ctx, userAID, userBID, defaultTrendWindowDays)
		if err != nil {
			// Las tendencias son opcionales dentro del reporte: degradamos sin fallar.
			s.logger.Warn("trends unavailable for report", zap.Error(err))
		} else {
			report.Trends = &trends
		}
	}

	return report, nil
}

// GetDashboardData devuelve la vista resumida para el dashboard del match.
func (s *CompatibilityService) GetDashboardData(ctx context.Context, userAID, userBID string, matchID *string) (domain.DashboardPayload, error) {
	pair, err := s.fetchPair(ctx, userAID, userBID)
	if err != nil {
		return domain.DashboardPayload{}, err
	}

	records, err := s.sims.ListByPair(ctx, userAID, userBID, matchID)
	if err != nil {
		return domain.DashboardPayload{}, fmt.Errorf("list simulations: %w", err)
	}

	scores := CalculateScores(pair.profileA, pair.profileB, pair.traitsA, pair.traitsB, records)
	best, worst := extremeDimensions(scores)

	return domain.DashboardPayload{
		Scores:            scores,
		Overall:           scores.Overall(),
		TopStrength:       best,
		TopChallenge:      worst,
		SimulationCount:   len(records),
		HasSimulationData: len(records) > 0,
	}, nil
}

// extremeDimensions devuelve la mejor y peor dimension en orden canonico
// para que los empates sean estables.
func extremeDimensions(scores domain.ScoreSet) (best, worst domain.Dimension) {
	best = domain.AllDimensions[0]
	worst = domain.AllDimensions[0]
	for _, d := range domain.AllDimensions[1:] {
		if scores[d] > scores[best] {
			best = d
		}
		if scores[d] < scores[worst] {
			worst = d
		}
	}
	return best, worst
}
