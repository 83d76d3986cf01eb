package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"flechazo/internal/domain"
)

func TestGenerateReportProfileNotFound(t *testing.T) {
	svc := NewCompatibilityService(
		zap.NewNop(),
		newMockProfileRepo(balancedProfile("p-a", "u-a")),
		&mockTraitRepo{},
		&mockSimRepo{},
	)

	_, err := svc.GenerateReport(context.Background(), "u-a", "u-missing", nil, false)
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("err = %v, want ErrProfileNotFound", err)
	}

	_, err = svc.GenerateReport(context.Background(), "u-missing", "u-a", nil, false)
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("err = %v, want ErrProfileNotFound", err)
	}
}

func TestGenerateReportWithoutHistory(t *testing.T) {
	svc := NewCompatibilityService(
		zap.NewNop(),
		newMockProfileRepo(balancedProfile("p-a", "u-a"), balancedProfile("p-b", "u-b")),
		&mockTraitRepo{},
		&mockSimRepo{},
	)

	report, err := svc.GenerateReport(context.Background(), "u-a", "u-b", nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.SimulationCount != 0 || report.HasSimulationData {
		t.Fatalf("expected no simulation data, got count=%d has=%v", report.SimulationCount, report.HasSimulationData)
	}
	if len(report.Scores) != len(domain.AllDimensions) {
		t.Fatalf("scores keys = %d, want %d", len(report.Scores), len(domain.AllDimensions))
	}
	if len(report.Recommendations) == 0 {
		t.Fatalf("expected at least one recommendation")
	}
	if report.Trends != nil {
		t.Fatalf("trends must be nil when not requested")
	}
	if report.GeneratedAt.IsZero() {
		t.Fatalf("GeneratedAt not set")
	}
}

func TestGenerateReportIncludesTrends(t *testing.T) {
	now := time.Now().UTC()
	sims := &mockSimRepo{records: []domain.SimulationRecord{
		uniformRecord("u-a", "u-b", 0.4, now.AddDate(0, 0, -8)),
		uniformRecord("u-a", "u-b", 0.7, now.AddDate(0, 0, -1)),
	}}
	svc := NewCompatibilityService(
		zap.NewNop(),
		newMockProfileRepo(balancedProfile("p-a", "u-a"), balancedProfile("p-b", "u-b")),
		&mockTraitRepo{},
		sims,
	)

	report, err := svc.GenerateReport(context.Background(), "u-a", "u-b", nil, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.SimulationCount != 2 || !report.HasSimulationData {
		t.Fatalf("simulation count = %d, want 2", report.SimulationCount)
	}
	if report.Trends == nil || !report.Trends.HasTrends {
		t.Fatalf("expected trends in report, got %+v", report.Trends)
	}
	if report.Trends.Trend != domain.TrendImproving {
		t.Fatalf("trend = %q, want improving", report.Trends.Trend)
	}
}

func TestGenerateReportDegradesWhenTrendsFail(t *testing.T) {
	profiles := newMockProfileRepo(balancedProfile("p-a", "u-a"), balancedProfile("p-b", "u-b"))
	svc := NewCompatibilityService(zap.NewNop(), profiles, &mockTraitRepo{}, &mockSimRepo{})

	// ListByPair funciona pero ListByPairSince falla: el reporte sale sin tendencias.
	svc.sims = &splitSimRepo{pair: &mockSimRepo{}, sinceErr: errors.New("db timeout")}

	report, err := svc.GenerateReport(context.Background(), "u-a", "u-b", nil, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Trends != nil {
		t.Fatalf("expected nil trends when trend query fails")
	}
}

// splitSimRepo permite que ListByPair y ListByPairSince fallen por separado.
type splitSimRepo struct {
	pair     *mockSimRepo
	sinceErr error
}

func (s *splitSimRepo) Create(ctx context.Context, record domain.SimulationRecord) error {
	return s.pair.Create(ctx, record)
}

func (s *splitSimRepo) ListByPair(ctx context.Context, userAID, userBID string, matchID *string) ([]domain.SimulationRecord, error) {
	return s.pair.ListByPair(ctx, userAID, userBID, matchID)
}

func (s *splitSimRepo) ListByPairSince(ctx context.Context, userAID, userBID string, since time.Time) ([]domain.SimulationRecord, error) {
	if s.sinceErr != nil {
		return nil, s.sinceErr
	}
	return s.pair.ListByPairSince(ctx, userAID, userBID, since)
}

func TestGetDashboardDataExtremes(t *testing.T) {
	profiles := newMockProfileRepo(balancedProfile("p-a", "u-a"), balancedProfile("p-b", "u-b"))
	traits := &mockTraitRepo{traits: []domain.Trait{
		{ProfileID: "p-a", Category: domain.TraitCategoryCommunication, Trait: "directness", Value: 90},
		{ProfileID: "p-b", Category: domain.TraitCategoryCommunication, Trait: "directness", Value: 20},
	}}
	svc := NewCompatibilityService(zap.NewNop(), profiles, traits, &mockSimRepo{})

	dashboard, err := svc.GetDashboardData(context.Background(), "u-a", "u-b", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Perfiles identicos: personality/values/lifestyle = 1.0; communication
	// baja por el rasgo compartido (1 - 70/100 = 0.3).
	if dashboard.TopStrength != domain.DimensionPersonality {
		t.Fatalf("top strength = %q, want personality (empate resuelto en orden canonico)", dashboard.TopStrength)
	}
	if dashboard.TopChallenge != domain.DimensionCommunication {
		t.Fatalf("top challenge = %q, want communication", dashboard.TopChallenge)
	}
	if dashboard.HasSimulationData {
		t.Fatalf("expected HasSimulationData=false")
	}
}
