package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/ArowuTest/rsu-vesting/internal/models"
	"github.com/ArowuTest/rsu-vesting/internal/repositories"
)

const keyPrefix = "rsu:session:"

// AwardRepository stores each session as a hash of award JSON keyed by name
// plus a list holding the submission order. Both keys expire with the session.
type AwardRepository struct {
	client redis.Cmdable
	ttl    time.Duration
	now    func() time.Time
}

// NewAwardRepository creates a Redis backed award store.
func NewAwardRepository(client redis.Cmdable, ttl time.Duration) *AwardRepository {
	return &AwardRepository{client: client, ttl: ttl, now: time.Now}
}

var _ repositories.AwardRepository = (*AwardRepository)(nil)

func awardsKey(sessionID string) string { return keyPrefix + sessionID + ":awards" }
func orderKey(sessionID string) string  { return keyPrefix + sessionID + ":order" }

func (r *AwardRepository) Upsert(ctx context.Context, sessionID string, award *models.Award) error {
	now := r.now().UTC()
	created := now

	prev, err := r.FindByName(ctx, sessionID, award.Name)
	switch {
	case err == nil:
		created = prev.CreatedAt
	case !errors.Is(err, repositories.ErrAwardNotFound):
		return err
	}

	stored := *award
	stored.SessionID = sessionID
	stored.CreatedAt = created
	stored.UpdatedAt = now

	data, err := json.Marshal(&stored)
	if err != nil {
		return fmt.Errorf("encode award: %w", err)
	}

	// Only the writer whose HSETNX succeeds appends the name to the order list.
	added := false
	if prev == nil {
		if added, err = r.client.HSetNX(ctx, awardsKey(sessionID), award.Name, string(data)).Result(); err != nil {
			return err
		}
	}
	if added {
		if err := r.client.RPush(ctx, orderKey(sessionID), award.Name).Err(); err != nil {
			return err
		}
	} else if err := r.client.HSet(ctx, awardsKey(sessionID), award.Name, string(data)).Err(); err != nil {
		return err
	}
	if r.ttl > 0 {
		if err := r.client.Expire(ctx, awardsKey(sessionID), r.ttl).Err(); err != nil {
			return err
		}
		if err := r.client.Expire(ctx, orderKey(sessionID), r.ttl).Err(); err != nil {
			return err
		}
	}

	*award = stored
	return nil
}

func (r *AwardRepository) FindByName(ctx context.Context, sessionID, name string) (*models.Award, error) {
	raw, err := r.client.HGet(ctx, awardsKey(sessionID), name).Result()
	if errors.Is(err, redis.Nil) {
		return nil, repositories.ErrAwardNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeAward(sessionID, raw)
}

func (r *AwardRepository) FindAll(ctx context.Context, sessionID string) ([]*models.Award, error) {
	names, err := r.client.LRange(ctx, orderKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	awards := make([]*models.Award, 0, len(names))
	if len(names) == 0 {
		return awards, nil
	}

	values, err := r.client.HMGet(ctx, awardsKey(sessionID), names...).Result()
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		award, err := decodeAward(sessionID, raw)
		if err != nil {
			return nil, err
		}
		awards = append(awards, award)
	}
	return awards, nil
}

func decodeAward(sessionID, raw string) (*models.Award, error) {
	var award models.Award
	if err := json.Unmarshal([]byte(raw), &award); err != nil {
		return nil, fmt.Errorf("decode award: %w", err)
	}
	award.SessionID = sessionID
	return &award, nil
}
