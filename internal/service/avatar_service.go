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
	"flechazo/internal/llm"
	"flechazo/internal/repository"
)

// AvatarService orquesta conversaciones simuladas entre los avatares de un
// match y persiste el resultado como SimulationRecord. El motor de
// compatibilidad nunca llama al LLM: consume estos registros ya guardados.
type AvatarService struct {
	logger        *zap.Logger
	enabled       bool
	llmClient     llm.LLMClient
	profiles      repository.ProfileRepository
	traits        repository.TraitRepository
	matches       repository.MatchRepository
	messages      repository.MessageRepository
	sims          repository.SimulationRepository
	notifications *NotificationService
	limiter       SimulationRateLimiter
}

var (
	ErrSimulationDisabled    = errors.New("avatar simulation disabled")
	ErrSimulationRateLimited = errors.New("simulation rate limited")
	ErrMatchNotFound         = errors.New("match not found")
)

func NewAvatarService(
	logger *zap.Logger,
	enabled bool,
	llmClient llm.LLMClient,
	profiles repository.ProfileRepository,
	traits repository.TraitRepository,
	matches repository.MatchRepository,
	messages repository.MessageRepository,
	sims repository.SimulationRepository,
	notifications *NotificationService,
	limiter SimulationRateLimiter,
) *AvatarService {
	return &AvatarService{
		logger:        logger,
		enabled:       enabled,
		llmClient:     llmClient,
		profiles:      profiles,
		traits:        traits,
		matches:       matches,
		messages:      messages,
		sims:          sims,
		notifications: notifications,
		limiter:       limiter,
	}
}

// RunSimulation ejecuta una conversacion simulada para el match dado,
// persiste la transcripcion como mensajes de avatar y guarda el registro
// con las metricas por dimension.
func (s *AvatarService) RunSimulation(ctx context.Context, matchID string) (domain.SimulationRecord, error) {
	if !s.enabled {
		return domain.SimulationRecord{}, ErrSimulationDisabled
	}

	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.SimulationRecord{}, ErrMatchNotFound
		}
		return domain.SimulationRecord{}, fmt.Errorf("get match: %w", err)
	}

	if s.limiter != nil && !s.limiter.Allow(match.ID) {
		return domain.SimulationRecord{}, ErrSimulationRateLimited
	}

	profileA, traitsA, err := s.loadAvatar(ctx, match.UserAID)
	if err != nil {
		return domain.SimulationRecord{}, err
	}
	profileB, traitsB, err := s.loadAvatar(ctx, match.UserBID)
	if err != nil {
		return domain.SimulationRecord{}, err
	}

	prompt := buildSimulationPrompt(profileA, traitsA, profileB, traitsB)

	raw, err := s.llmClient.Generate(ctx, prompt)
	if err != nil {
		return domain.SimulationRecord{}, fmt.Errorf("llm generate: %w", err)
	}

	outcome, err := parseSimulationOutcome(raw)
	if err != nil {
		return domain.SimulationRecord{}, fmt.Errorf("parse simulation outcome: %w", err)
	}

	now := time.Now().UTC()
	s.persistTranscript(ctx, match, outcome.Transcript, now)

	record := domain.SimulationRecord{
		ID:        uuid.NewString(),
		MatchID:   &match.ID,
		UserAID:   match.UserAID,
		UserBID:   match.UserBID,
		Metrics:   outcome.Metrics,
		Summary:   outcome.Summary,
		CreatedAt: now,
	}
	if err := s.sims.Create(ctx, record); err != nil {
		return domain.SimulationRecord{}, fmt.Errorf("persist simulation record: %w", err)
	}

	s.notifyParticipants(ctx, match)

	return record, nil
}

func (s *AvatarService) loadAvatar(ctx context.Context, userID string) (domain.Profile, []domain.Trait, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Profile{}, nil, ErrProfileNotFound
		}
		return domain.Profile{}, nil, fmt.Errorf("get profile %s: %w", userID, err)
	}
	traits, err := s.traits.FindByProfileID(ctx, profile.ID)
	if err != nil {
		return domain.Profile{}, nil, fmt.Errorf("get traits %s: %w", profile.ID, err)
	}
	return profile, traits, nil
}

// persistTranscript guarda los turnos como mensajes de rol avatar.
// Un fallo aqui no invalida la simulacion: se loguea y se sigue.
func (s *AvatarService) persistTranscript(ctx context.Context, match domain.Match, transcript []simulationTurn, now time.Time) {
	for i, turn := range transcript {
		senderID := match.UserAID
		if turn.Speaker == "b" {
			senderID = match.UserBID
		}
		msg := domain.Message{
			ID:        uuid.NewString(),
			MatchID:   match.ID,
			SenderID:  senderID,
			Content:   turn.Content,
			Role:      domain.MessageRoleAvatar,
			CreatedAt: now.Add(time.Duration(i) * time.Millisecond),
		}
		if err := s.messages.Create(ctx, msg); err != nil {
			s.logger.Warn("persist avatar message failed", zap.Error(err), zap.String("match_id", match.ID))
		}
	}
}

func (s *AvatarService) notifyParticipants(ctx context.Context, match domain.Match) {
	if s.notifications == nil {
		return
	}
	body := "A new avatar simulation finished; your compatibility report was updated"
	for _, userID := range []string{match.UserAID, match.UserBID} {
		if err := s.notifications.Notify(ctx, userID, domain.NotificationReportReady, body); err != nil {
			s.logger.Warn("notify simulation finished failed", zap.Error(err), zap.String("user_id", userID))
		}
	}
}
