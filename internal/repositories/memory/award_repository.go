package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ArowuTest/rsu-vesting/internal/models"
	"github.com/ArowuTest/rsu-vesting/internal/repositories"
)

type sessionAwards struct {
	order    []string
	byName   map[string]*models.Award
	lastSeen time.Time
}

// AwardRepository keeps awards in process memory. Sessions idle for longer
// than ttl are dropped on the next write.
type AwardRepository struct {
	mu       sync.RWMutex
	sessions map[string]*sessionAwards
	ttl      time.Duration
	now      func() time.Time
}

// NewAwardRepository creates an in-memory store. A zero ttl never evicts.
func NewAwardRepository(ttl time.Duration) *AwardRepository {
	return &AwardRepository{
		sessions: make(map[string]*sessionAwards),
		ttl:      ttl,
		now:      time.Now,
	}
}

var _ repositories.AwardRepository = (*AwardRepository)(nil)

func (r *AwardRepository) Upsert(ctx context.Context, sessionID string, award *models.Award) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.evictLocked(now)

	s, ok := r.sessions[sessionID]
	if !ok {
		s = &sessionAwards{byName: make(map[string]*models.Award)}
		r.sessions[sessionID] = s
	}
	s.lastSeen = now

	stored := *award
	stored.SessionID = sessionID
	stored.UpdatedAt = now
	if prev, exists := s.byName[award.Name]; exists {
		stored.CreatedAt = prev.CreatedAt
	} else {
		stored.CreatedAt = now
		s.order = append(s.order, award.Name)
	}
	s.byName[award.Name] = &stored

	award.SessionID = stored.SessionID
	award.CreatedAt = stored.CreatedAt
	award.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *AwardRepository) FindByName(ctx context.Context, sessionID, name string) (*models.Award, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, repositories.ErrAwardNotFound
	}
	award, ok := s.byName[name]
	if !ok {
		return nil, repositories.ErrAwardNotFound
	}
	out := *award
	return &out, nil
}

func (r *AwardRepository) FindAll(ctx context.Context, sessionID string) ([]*models.Award, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return []*models.Award{}, nil
	}
	awards := make([]*models.Award, 0, len(s.order))
	for _, name := range s.order {
		a := *s.byName[name]
		awards = append(awards, &a)
	}
	return awards, nil
}

// Len reports the number of live sessions.
func (r *AwardRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *AwardRepository) evictLocked(now time.Time) {
	if r.ttl <= 0 {
		return
	}
	for id, s := range r.sessions {
		if now.Sub(s.lastSeen) > r.ttl {
			delete(r.sessions, id)
		}
	}
}
