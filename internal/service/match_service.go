package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"flechazo/internal/domain"
	"flechazo/internal/email"
	"flechazo/internal/repository"
)

// MatchService maneja la creacion de matches y el descubrimiento de
// candidatos por cercania en el espacio de rasgos.
type MatchService struct {
	logger        *zap.Logger
	users         repository.UserRepository
	profiles      repository.ProfileRepository
	traits        repository.TraitRepository
	matches       repository.MatchRepository
	notifications *NotificationService
	emailSender   email.Sender
}

var (
	ErrSelfMatch   = errors.New("cannot match a user with itself")
	ErrMatchExists = errors.New("match already exists")
)

func NewMatchService(
	logger *zap.Logger,
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	traits repository.TraitRepository,
	matches repository.MatchRepository,
	notifications *NotificationService,
	emailSender email.Sender,
) *MatchService {
	return &MatchService{
		logger:        logger,
		users:         users,
		profiles:      profiles,
		traits:        traits,
		matches:       matches,
		notifications: notifications,
		emailSender:   emailSender,
	}
}

// CreateMatch crea el match entre dos usuarios con perfil, avisa a ambos y
// manda el correo de alerta si hay sender configurado.
func (s *MatchService) CreateMatch(ctx context.Context, userAID, userBID string) (domain.Match, error) {
	if userAID == userBID {
		return domain.Match{}, ErrSelfMatch
	}

	if _, err := s.matches.GetByPair(ctx, userAID, userBID); err == nil {
		return domain.Match{}, ErrMatchExists
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Match{}, fmt.Errorf("check existing match: %w", err)
	}

	profileA, err := s.profiles.GetByUserID(ctx, userAID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Match{}, ErrProfileNotFound
		}
		return domain.Match{}, fmt.Errorf("get profile %s: %w", userAID, err)
	}
	profileB, err := s.profiles.GetByUserID(ctx, userBID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Match{}, ErrProfileNotFound
		}
		return domain.Match{}, fmt.Errorf("get profile %s: %w", userBID, err)
	}

	match := domain.Match{
		ID:        uuid.NewString(),
		UserAID:   userAID,
		UserBID:   userBID,
		Status:    domain.MatchStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.matches.Create(ctx, match); err != nil {
		return domain.Match{}, fmt.Errorf("create match: %w", err)
	}

	s.announceMatch(ctx, userAID, profileB.DisplayName)
	s.announceMatch(ctx, userBID, profileA.DisplayName)

	return match, nil
}

// announceMatch notifica in-app y por correo. Ningun fallo aqui revierte el match.
func (s *MatchService) announceMatch(ctx context.Context, userID, otherName string) {
	if s.notifications != nil {
		body := fmt.Sprintf("You matched with %s", otherName)
		if err := s.notifications.Notify(ctx, userID, domain.NotificationNewMatch, body); err != nil {
			s.logger.Warn("match notification failed", zap.Error(err), zap.String("user_id", userID))
		}
	}

	if s.emailSender == nil || s.users == nil {
		return
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.logger.Warn("match email lookup failed", zap.Error(err), zap.String("user_id", userID))
		return
	}
	if err := s.emailSender.SendMatchAlert(ctx, user.Email, otherName); err != nil {
		s.logger.Warn("match email failed", zap.Error(err), zap.String("user_id", userID))
	}
}

func (s *MatchService) ListForUser(ctx context.Context, userID string) ([]domain.Match, error) {
	return s.matches.ListByUser(ctx, userID)
}

func (s *MatchService) GetByID(ctx context.Context, matchID string) (domain.Match, error) {
	match, err := s.matches.GetByID(ctx, matchID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Match{}, ErrMatchNotFound
	}
	return match, err
}

// DiscoverCandidates devuelve perfiles cercanos en el espacio de rasgos,
// cada uno con su score de compatibilidad sin historial (solo perfiles).
func (s *MatchService) DiscoverCandidates(ctx context.Context, userID string, limit int) ([]domain.MatchCandidate, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile %s: %w", userID, err)
	}

	ownTraits, err := s.traits.FindByProfileID(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("get traits %s: %w", profile.ID, err)
	}

	nearest, err := s.profiles.FindNearest(ctx, profile.TraitVector(), userID, limit)
	if err != nil {
		return nil, fmt.Errorf("find nearest profiles: %w", err)
	}

	candidates := make([]domain.MatchCandidate, 0, len(nearest))
	for _, other := range nearest {
		otherTraits, err := s.traits.FindByProfileID(ctx, other.ID)
		if err != nil {
			s.logger.Warn("candidate traits lookup failed", zap.Error(err), zap.String("profile_id", other.ID))
			otherTraits = nil
		}
		scores := CalculateScores(profile, other, ownTraits, otherTraits, nil)
		candidates = append(candidates, domain.MatchCandidate{
			Profile: other,
			Scores:  scores,
			Overall: scores.Overall(),
		})
	}

	return candidates, nil
}
