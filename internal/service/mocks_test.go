package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	pgvector "github.com/pgvector/pgvector-go"

	"flechazo/internal/domain"
)

// Mocks en memoria compartidos por los tests del paquete.

type mockProfileRepo struct {
	profiles map[string]domain.Profile // userID -> profile
	nearest  []domain.Profile
}

func newMockProfileRepo(profiles ...domain.Profile) *mockProfileRepo {
	m := &mockProfileRepo{profiles: make(map[string]domain.Profile)}
	for _, p := range profiles {
		m.profiles[p.UserID] = p
	}
	return m
}

func (m *mockProfileRepo) Create(_ context.Context, profile domain.Profile) error {
	m.profiles[profile.UserID] = profile
	return nil
}

func (m *mockProfileRepo) GetByUserID(_ context.Context, userID string) (domain.Profile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return domain.Profile{}, pgx.ErrNoRows
	}
	return p, nil
}

func (m *mockProfileRepo) FindNearest(_ context.Context, _ pgvector.Vector, excludeUserID string, k int) ([]domain.Profile, error) {
	var out []domain.Profile
	for _, p := range m.nearest {
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

type mockTraitRepo struct {
	traits []domain.Trait
}

func (m *mockTraitRepo) Upsert(_ context.Context, trait domain.Trait) error {
	m.traits = append(m.traits, trait)
	return nil
}

func (m *mockTraitRepo) FindByProfileID(_ context.Context, profileID string) ([]domain.Trait, error) {
	var out []domain.Trait
	for _, t := range m.traits {
		if t.ProfileID == profileID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockTraitRepo) FindByCategory(_ context.Context, profileID, category string) ([]domain.Trait, error) {
	var out []domain.Trait
	for _, t := range m.traits {
		if t.ProfileID == profileID && t.Category == category {
			out = append(out, t)
		}
	}
	return out, nil
}

type mockSimRepo struct {
	records []domain.SimulationRecord
	listErr error
}

func (m *mockSimRepo) Create(_ context.Context, record domain.SimulationRecord) error {
	m.records = append(m.records, record)
	return nil
}

func (m *mockSimRepo) ListByPair(_ context.Context, userAID, userBID string, matchID *string) ([]domain.SimulationRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []domain.SimulationRecord
	for _, r := range m.records {
		if !sameUserPair(r, userAID, userBID) {
			continue
		}
		if matchID != nil && (r.MatchID == nil || *r.MatchID != *matchID) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *mockSimRepo) ListByPairSince(_ context.Context, userAID, userBID string, since time.Time) ([]domain.SimulationRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []domain.SimulationRecord
	for _, r := range m.records {
		if sameUserPair(r, userAID, userBID) && !r.CreatedAt.Before(since) {
			out = append(out, r)
		}
	}
	return out, nil
}

func sameUserPair(r domain.SimulationRecord, userAID, userBID string) bool {
	return (r.UserAID == userAID && r.UserBID == userBID) ||
		(r.UserAID == userBID && r.UserBID == userAID)
}

type mockMatchRepo struct {
	matches []domain.Match
}

func (m *mockMatchRepo) Create(_ context.Context, match domain.Match) error {
	m.matches = append(m.matches, match)
	return nil
}

func (m *mockMatchRepo) GetByID(_ context.Context, id string) (domain.Match, error) {
	for _, match := range m.matches {
		if match.ID == id {
			return match, nil
		}
	}
	return domain.Match{}, pgx.ErrNoRows
}

func (m *mockMatchRepo) GetByPair(_ context.Context, userAID, userBID string) (domain.Match, error) {
	for _, match := range m.matches {
		if (match.UserAID == userAID && match.UserBID == userBID) ||
			(match.UserAID == userBID && match.UserBID == userAID) {
			return match, nil
		}
	}
	return domain.Match{}, pgx.ErrNoRows
}

func (m *mockMatchRepo) ListByUser(_ context.Context, userID string) ([]domain.Match, error) {
	var out []domain.Match
	for _, match := range m.matches {
		if match.UserAID == userID || match.UserBID == userID {
			out = append(out, match)
		}
	}
	return out, nil
}

type mockMessageRepo struct {
	msgs []domain.Message
}

func (m *mockMessageRepo) Create(_ context.Context, message domain.Message) error {
	m.msgs = append(m.msgs, message)
	return nil
}

func (m *mockMessageRepo) ListByMatchID(_ context.Context, matchID string) ([]domain.Message, error) {
	var out []domain.Message
	for _, msg := range m.msgs {
		if msg.MatchID == matchID {
			out = append(out, msg)
		}
	}
	return out, nil
}

type mockNotificationRepo struct {
	notifications []domain.Notification
}

func (m *mockNotificationRepo) Create(_ context.Context, notification domain.Notification) error {
	m.notifications = append(m.notifications, notification)
	return nil
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range m.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.ReadAt != nil {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id, userID string, readAt time.Time) error {
	for i, n := range m.notifications {
		if n.ID == id && n.UserID == userID {
			m.notifications[i].ReadAt = &readAt
			return nil
		}
	}
	return pgx.ErrNoRows
}

type mockUserRepo struct {
	usersByID    map[string]domain.User
	usersByEmail map[string]string
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		usersByID:    make(map[string]domain.User),
		usersByEmail: make(map[string]string),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	m.usersByID[user.ID] = user
	if user.Email != "" {
		m.usersByEmail[user.Email] = user.ID
	}
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	user, ok := m.usersByID[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	id, ok := m.usersByEmail[email]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return m.GetByID(context.Background(), id)
}

type mockEmailSender struct {
	sent []string // "toEmail|matchName"
	err  error
}

func (m *mockEmailSender) SendMatchAlert(_ context.Context, toEmail, matchName string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, toEmail+"|"+matchName)
	return nil
}

type stubLimiter struct {
	allow bool
	keys  []string
}

func (l *stubLimiter) Allow(key string) bool {
	l.keys = append(l.keys, key)
	return l.allow
}
