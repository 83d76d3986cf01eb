package main

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	pgvector "github.com/pgvector/pgvector-go"

	"flechazo/internal/domain"
)

// --- Repositorios en memoria para la corrida local ---

type memoryProfileRepo struct {
	profiles []domain.Profile
}

func (m *memoryProfileRepo) Create(ctx context.Context, profile domain.Profile) error {
	m.profiles = append(m.profiles, profile)
	return nil
}

func (m *memoryProfileRepo) GetByUserID(ctx context.Context, userID string) (domain.Profile, error) {
	for _, p := range m.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return domain.Profile{}, pgx.ErrNoRows
}

func (m *memoryProfileRepo) FindNearest(ctx context.Context, embedding pgvector.Vector, excludeUserID string, k int) ([]domain.Profile, error) {
	var out []domain.Profile
	for _, p := range m.profiles {
		if p.UserID == excludeUserID {
			continue
		}
		out = append(out, p)
		if k > 0 && len(out) >= k {
			break
		}
	}
	return out, nil
}

type memoryTraitRepo struct {
	traits []domain.Trait
}

func (m *memoryTraitRepo) Upsert(ctx context.Context, trait domain.Trait) error {
	for i := range m.traits {
		if m.traits[i].ProfileID == trait.ProfileID &&
			m.traits[i].Category == trait.Category &&
			m.traits[i].Trait == trait.Trait {
			m.traits[i] = trait
			return nil
		}
	}
	m.traits = append(m.traits, trait)
	return nil
}

func (m *memoryTraitRepo) FindByProfileID(ctx context.Context, profileID string) ([]domain.Trait, error) {
	var out []domain.Trait
	for _, t := range m.traits {
		if t.ProfileID == profileID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memoryTraitRepo) FindByCategory(ctx context.Context, profileID, category string) ([]domain.Trait, error) {
	var out []domain.Trait
	for _, t := range m.traits {
		if t.ProfileID == profileID && strings.EqualFold(t.Category, category) {
			out = append(out, t)
		}
	}
	return out, nil
}

type memorySimulationRepo struct {
	records []domain.SimulationRecord
}

func (m *memorySimulationRepo) Create(ctx context.Context, record domain.SimulationRecord) error {
	m.records = append(m.records, record)
	return nil
}

func (m *memorySimulationRepo) ListByPair(ctx context.Context, userAID, userBID string, matchID *string) ([]domain.SimulationRecord, error) {
	var out []domain.SimulationRecord
	for _, r := range m.records {
		if !samePair(r, userAID, userBID) {
			continue
		}
		if matchID != nil && (r.MatchID == nil || *r.MatchID != *matchID) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *memorySimulationRepo) ListByPairSince(ctx context.Context, userAID, userBID string, since time.Time) ([]domain.SimulationRecord, error) {
	var out []domain.SimulationRecord
	for _, r := range m.records {
		if samePair(r, userAID, userBID) && !r.CreatedAt.Before(since) {
			out = append(out, r)
		}
	}
	return out, nil
}

func samePair(r domain.SimulationRecord, userAID, userBID string) bool {
	return (r.UserAID == userAID && r.UserBID == userBID) ||
		(r.UserAID == userBID && r.UserBID == userAID)
}
