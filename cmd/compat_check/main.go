package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"flechazo/internal/domain"
	"flechazo/internal/service"
)

const (
	colorGreen = "\033[32m"
	colorCyan  = "\033[36m"
	colorRed   = "\033[31m"
	colorReset = "\033[0m"
)

// Ejecuta el motor de compatibilidad contra dos perfiles sinteticos y un
// historial de simulaciones inventado, sin base de datos ni LLM. Sirve para
// verificar a ojo que scores, insights y tendencias se ven razonables.
func main() {
	ctx := context.Background()
	logger := zap.NewNop()

	now := time.Now().UTC()
	userA := "user-ana"
	userB := "user-bruno"

	profileA := domain.Profile{
		ID:          uuid.NewString(),
		UserID:      userA,
		DisplayName: "Ana",
		Big5: domain.Big5Profile{
			Openness:          80,
			Conscientiousness: 70,
			Extraversion:      60,
			Agreeableness:     75,
			Neuroticism:       30,
		},
		Completeness: 1.0,
		CreatedAt:    now.AddDate(0, -2, 0),
	}
	profileB := domain.Profile{
		ID:          uuid.NewString(),
		UserID:      userB,
		DisplayName: "Bruno",
		Big5: domain.Big5Profile{
			Openness:          75,
			Conscientiousness: 40,
			Extraversion:      85,
			Agreeableness:     70,
			Neuroticism:       45,
		},
		Completeness: 1.0,
		CreatedAt:    now.AddDate(0, -1, 0),
	}

	traits := []domain.Trait{
		{ID: uuid.NewString(), ProfileID: profileA.ID, Category: domain.TraitCategoryCommunication, Trait: "directness", Value: 70, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.NewString(), ProfileID: profileA.ID, Category: domain.TraitCategoryValues, Trait: "family", Value: 85, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.NewString(), ProfileID: profileA.ID, Category: domain.TraitCategoryLifestyle, Trait: "routine", Value: 60, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.NewString(), ProfileID: profileB.ID, Category: domain.TraitCategoryCommunication, Trait: "directness", Value: 55, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.NewString(), ProfileID: profileB.ID, Category: domain.TraitCategoryValues, Trait: "family", Value: 50, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.NewString(), ProfileID: profileB.ID, Category: domain.TraitCategoryLifestyle, Trait: "routine", Value: 25, CreatedAt: now, UpdatedAt: now},
	}

	// Historial de tres semanas con mejora leve sostenida.
	var records []domain.SimulationRecord
	for week := 0; week < 3; week++ {
		base := 0.55 + 0.07*float64(week)
		records = append(records, domain.SimulationRecord{
			ID:      uuid.NewString(),
			UserAID: userA,
			UserBID: userB,
			Metrics: map[string]float64{
				"personality":   base + 0.10,
				"communication": base,
				"values":        base - 0.05,
				"lifestyle":     base - 0.15,
			},
			Summary:   fmt.Sprintf("Conversacion simulada de la semana %d", week+1),
			CreatedAt: now.AddDate(0, 0, -21+7*week),
		})
	}

	profileRepo := &memoryProfileRepo{profiles: []domain.Profile{profileA, profileB}}
	traitRepo := &memoryTraitRepo{traits: traits}
	simRepo := &memorySimulationRepo{records: records}

	compatSvc := service.NewCompatibilityService(logger, profileRepo, traitRepo, simRepo)

	report, err := compatSvc.GenerateReport(ctx, userA, userB, nil, true)
	if err != nil {
		log.Fatalf("generate report failed: %v", err)
	}

	fmt.Printf("%s==== Reporte %s x %s ====%s\n", colorCyan, profileA.DisplayName, profileB.DisplayName, colorReset)
	for _, dim := range domain.AllDimensions {
		fmt.Printf("  %-14s %s%.0f%%%s\n", dim, colorGreen, report.Scores[dim]*100, colorReset)
	}
	fmt.Printf("  %-14s %s%.0f%%%s\n", "overall", colorGreen, report.Overall*100, colorReset)
	fmt.Printf("  simulaciones: %d\n\n", report.SimulationCount)

	printList("Fortalezas", report.Insights.Strengths, colorGreen)
	printList("Desafios", report.Insights.Challenges, colorRed)
	printList("Oportunidades", report.Insights.Opportunities, colorCyan)
	printList("Recomendaciones", report.Recommendations, colorCyan)

	if report.Trends != nil && report.Trends.HasTrends {
		fmt.Printf("%s==== Tendencias (%d dias) ====%s\n", colorCyan, report.Trends.WindowDays, colorReset)
		for _, pt := range report.Trends.Points {
			fmt.Printf("  %s  overall %.0f%%\n", pt.Date.Format("2006-01-02"), pt.Overall*100)
		}
		fmt.Printf("  tendencia: %s (%.2f%%/semana)\n", report.Trends.Trend, report.Trends.ImprovementRate*100)
	} else {
		fmt.Println("Sin datos suficientes para tendencias.")
	}
}

func printList(title string, items []string, color string) {
	if len(items) == 0 {
		return
	}
	fmt.Printf("%s%s:%s\n", color, title, colorReset)
	for _, item := range items {
		fmt.Printf("  - %s\n", item)
	}
	fmt.Println()
}
