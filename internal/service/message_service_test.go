package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"flechazo/internal/domain"
)

func newMessageFixture() (*MessageService, *mockMessageRepo, *mockNotificationRepo) {
	messages := &mockMessageRepo{}
	matches := &mockMatchRepo{matches: []domain.Match{
		{ID: "match-1", UserAID: "u-a", UserBID: "u-b", Status: domain.MatchStatusActive},
	}}
	notifRepo := &mockNotificationRepo{}
	svc := NewMessageService(zap.NewNop(), messages, matches, NewNotificationService(notifRepo))
	return svc, messages, notifRepo
}

func TestSendMessageValidation(t *testing.T) {
	svc, _, _ := newMessageFixture()

	cases := []struct {
		name    string
		matchID string
		sender  string
		content string
	}{
		{"empty match", "", "u-a", "hola"},
		{"empty sender", "match-1", "", "hola"},
		{"empty content", "match-1", "u-a", "   "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Send(context.Background(), tc.matchID, tc.sender, tc.content); !errors.Is(err, ErrMessageInvalidInput) {
				t.Fatalf("err = %v, want ErrMessageInvalidInput", err)
			}
		})
	}
}

func TestSendMessageMatchNotFound(t *testing.T) {
	svc, _, _ := newMessageFixture()
	if _, err := svc.Send(context.Background(), "match-missing", "u-a", "hola"); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("err = %v, want ErrMatchNotFound", err)
	}
}

func TestSendMessageRejectsOutsiders(t *testing.T) {
	svc, _, _ := newMessageFixture()
	if _, err := svc.Send(context.Background(), "match-1", "u-intruso", "hola"); !errors.Is(err, ErrNotAParticipant) {
		t.Fatalf("err = %v, want ErrNotAParticipant", err)
	}
}

func TestSendMessageNotifiesRecipient(t *testing.T) {
	svc, messages, notifRepo := newMessageFixture()

	msg, err := svc.Send(context.Background(), "match-1", "u-a", "  hola Bruno  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Content != "hola Bruno" {
		t.Fatalf("content = %q, want trimmed", msg.Content)
	}
	if msg.Role != domain.MessageRoleUser {
		t.Fatalf("role = %q, want user", msg.Role)
	}
	if len(messages.msgs) != 1 {
		t.Fatalf("persisted = %d, want 1", len(messages.msgs))
	}

	if len(notifRepo.notifications) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notifRepo.notifications))
	}
	n := notifRepo.notifications[0]
	if n.UserID != "u-b" {
		t.Fatalf("notified %q, want the other participant u-b", n.UserID)
	}
	if n.Kind != domain.NotificationNewMessage {
		t.Fatalf("kind = %q, want new_message", n.Kind)
	}
}

func TestListByMatchEmptyID(t *testing.T) {
	svc, _, _ := newMessageFixture()
	msgs, err := svc.ListByMatch(context.Background(), "  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("expected empty list")
	}
}
