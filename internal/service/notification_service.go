package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"flechazo/internal/domain"
	"flechazo/internal/repository"
)

// NotificationService crea y consulta notificaciones in-app.
type NotificationService struct {
	repo repository.NotificationRepository
}

var ErrNotificationInvalidInput = errors.New("notification invalid input")

func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) Notify(ctx context.Context, userID, kind, body string) error {
	if s == nil || s.repo == nil {
		return errors.New("notification service not configured")
	}

	userID = strings.TrimSpace(userID)
	kind = strings.TrimSpace(kind)
	body = strings.TrimSpace(body)
	if userID == "" || kind == "" || body == "" {
		return ErrNotificationInvalidInput
	}

	notification := domain.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Kind:      kind,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	return s.repo.Create(ctx, notification)
}

func (s *NotificationService) ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	if s == nil || s.repo == nil {
		return nil, errors.New("notification service not configured")
	}
	return s.repo.ListByUser(ctx, userID, unreadOnly)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	if s == nil || s.repo == nil {
		return errors.New("notification service not configured")
	}
	return s.repo.MarkRead(ctx, id, userID, time.Now().UTC())
}
