package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"flechazo/internal/domain"
	"flechazo/internal/llm"
)

const simulationJSON = `{
	"transcript": [
		{"speaker": "a", "content": "Hola, me dijeron que te gusta escalar."},
		{"speaker": "b", "content": "Si! Todos los fines de semana. Vos?"}
	],
	"metrics": {"personality": 0.8, "communication": 0.7, "values": 0.6, "lifestyle": 0.9},
	"summary": "Conversacion fluida con intereses compartidos."
}`

type avatarFixture struct {
	svc           *AvatarService
	match         domain.Match
	sims          *mockSimRepo
	messages      *mockMessageRepo
	notifications *mockNotificationRepo
	limiter       *stubLimiter
}

func newAvatarFixture(t *testing.T, enabled bool, client llm.LLMClient, allow bool) *avatarFixture {
	t.Helper()

	match := domain.Match{ID: "match-1", UserAID: "u-a", UserBID: "u-b", Status: domain.MatchStatusActive}
	profiles := newMockProfileRepo(balancedProfile("p-a", "u-a"), balancedProfile("p-b", "u-b"))
	sims := &mockSimRepo{}
	messages := &mockMessageRepo{}
	notifRepo := &mockNotificationRepo{}
	limiter := &stubLimiter{allow: allow}

	svc := NewAvatarService(
		zap.NewNop(),
		enabled,
		client,
		profiles,
		&mockTraitRepo{},
		&mockMatchRepo{matches: []domain.Match{match}},
		messages,
		sims,
		NewNotificationService(notifRepo),
		limiter,
	)

	return &avatarFixture{
		svc:           svc,
		match:         match,
		sims:          sims,
		messages:      messages,
		notifications: notifRepo,
		limiter:       limiter,
	}
}

func TestRunSimulationDisabled(t *testing.T) {
	f := newAvatarFixture(t, false, &llm.MockClient{Response: simulationJSON}, true)

	_, err := f.svc.RunSimulation(context.Background(), "match-1")
	if !errors.Is(err, ErrSimulationDisabled) {
		t.Fatalf("err = %v, want ErrSimulationDisabled", err)
	}
}

func TestRunSimulationMatchNotFound(t *testing.T) {
	f := newAvatarFixture(t, true, &llm.MockClient{Response: simulationJSON}, true)

	_, err := f.svc.RunSimulation(context.Background(), "match-missing")
	if !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("err = %v, want ErrMatchNotFound", err)
	}
}

func TestRunSimulationRateLimited(t *testing.T) {
	f := newAvatarFixture(t, true, &llm.MockClient{Response: simulationJSON}, false)

	_, err := f.svc.RunSimulation(context.Background(), "match-1")
	if !errors.Is(err, ErrSimulationRateLimited) {
		t.Fatalf("err = %v, want ErrSimulationRateLimited", err)
	}
	if len(f.limiter.keys) != 1 || f.limiter.keys[0] != "match-1" {
		t.Fatalf("limiter keys = %v, want [match-1]", f.limiter.keys)
	}
}

func TestRunSimulationLLMFailure(t *testing.T) {
	f := newAvatarFixture(t, true, &llm.MockClient{Err: errors.New("provider down")}, true)

	if _, err := f.svc.RunSimulation(context.Background(), "match-1"); err == nil {
		t.Fatalf("expected error when LLM fails")
	}
	if len(f.sims.records) != 0 {
		t.Fatalf("no record should persist on LLM failure")
	}
}

func TestRunSimulationHappyPath(t *testing.T) {
	f := newAvatarFixture(t, true, &llm.MockClient{Response: simulationJSON}, true)

	record, err := f.svc.RunSimulation(context.Background(), "match-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if record.UserAID != "u-a" || record.UserBID != "u-b" {
		t.Fatalf("record pair = %s/%s", record.UserAID, record.UserBID)
	}
	if record.MatchID == nil || *record.MatchID != "match-1" {
		t.Fatalf("record match id = %v, want match-1", record.MatchID)
	}
	if record.Metrics["lifestyle"] != 0.9 {
		t.Fatalf("lifestyle metric = %v, want 0.9", record.Metrics["lifestyle"])
	}
	if record.Summary == "" {
		t.Fatalf("summary missing")
	}

	if len(f.sims.records) != 1 {
		t.Fatalf("persisted records = %d, want 1", len(f.sims.records))
	}

	// La transcripcion queda como mensajes de avatar con el emisor correcto.
	if len(f.messages.msgs) != 2 {
		t.Fatalf("persisted messages = %d, want 2", len(f.messages.msgs))
	}
	if f.messages.msgs[0].SenderID != "u-a" || f.messages.msgs[1].SenderID != "u-b" {
		t.Fatalf("senders = %s/%s, want u-a/u-b", f.messages.msgs[0].SenderID, f.messages.msgs[1].SenderID)
	}
	for _, msg := range f.messages.msgs {
		if msg.Role != domain.MessageRoleAvatar {
			t.Fatalf("role = %q, want avatar", msg.Role)
		}
		if msg.MatchID != "match-1" {
			t.Fatalf("match id = %q", msg.MatchID)
		}
	}

	// Ambos participantes reciben aviso de reporte listo.
	if len(f.notifications.notifications) != 2 {
		t.Fatalf("notifications = %d, want 2", len(f.notifications.notifications))
	}
	for _, n := range f.notifications.notifications {
		if n.Kind != domain.NotificationReportReady {
			t.Fatalf("kind = %q, want report_ready", n.Kind)
		}
	}
}

func TestBuildSimulationPromptMentionsBothAvatars(t *testing.T) {
	a := balancedProfile("p-a", "u-a")
	a.DisplayName = "Ana"
	b := balancedProfile("p-b", "u-b")
	b.DisplayName = "Bruno"

	prompt := buildSimulationPrompt(a, nil, b, nil)
	for _, want := range []string{"Ana", "Bruno", "transcript", "metrics", "summary"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}
