package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"flechazo/internal/domain"
	"flechazo/internal/repository"
)

// MessageService encapsula la logica para mensajes reales entre usuarios
// de un match. Los mensajes de avatar los escribe AvatarService.
type MessageService struct {
	logger        *zap.Logger
	messages      repository.MessageRepository
	matches       repository.MatchRepository
	notifications *NotificationService
}

var (
	ErrMessageInvalidInput = errors.New("message invalid input")
	ErrNotAParticipant     = errors.New("sender is not part of the match")
)

func NewMessageService(
	logger *zap.Logger,
	messages repository.MessageRepository,
	matches repository.MatchRepository,
	notifications *NotificationService,
) *MessageService {
	return &MessageService{
		logger:        logger,
		messages:      messages,
		matches:       matches,
		notifications: notifications,
	}
}

func (s *MessageService) Send(ctx context.Context, matchID, senderID, content string) (domain.Message, error) {
	matchID = strings.TrimSpace(matchID)
	senderID = strings.TrimSpace(senderID)
	content = strings.TrimSpace(content)
	if matchID == "" || senderID == "" || content == "" {
		return domain.Message{}, ErrMessageInvalidInput
	}

	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Message{}, ErrMatchNotFound
		}
		return domain.Message{}, fmt.Errorf("get match: %w", err)
	}
	if senderID != match.UserAID && senderID != match.UserBID {
		return domain.Message{}, ErrNotAParticipant
	}

	msg := domain.Message{
		ID:        uuid.NewString(),
		MatchID:   match.ID,
		SenderID:  senderID,
		Content:   content,
		Role:      domain.MessageRoleUser,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return domain.Message{}, fmt.Errorf("persist message: %w", err)
	}

	recipientID := match.UserAID
	if senderID == match.UserAID {
		recipientID = match.UserBID
	}
	if s.notifications != nil {
		if err := s.notifications.Notify(ctx, recipientID, domain.NotificationNewMessage, "You have a new message"); err != nil {
			s.logger.Warn("message notification failed", zap.Error(err), zap.String("user_id", recipientID))
		}
	}

	return msg, nil
}

func (s *MessageService) ListByMatch(ctx context.Context, matchID string) ([]domain.Message, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return []domain.Message{}, nil
	}
	return s.messages.ListByMatchID(ctx, matchID)
}
