package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/rsu-vesting/internal/models"
	"github.com/ArowuTest/rsu-vesting/internal/repositories"
)

func TestAwardRepository_UpsertKeepsOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewAwardRepository(0)

	require.NoError(t, repo.Upsert(ctx, "s1", &models.Award{Name: "initial", TotalValue: 100}))
	require.NoError(t, repo.Upsert(ctx, "s1", &models.Award{Name: "refresh", TotalValue: 200}))
	require.NoError(t, repo.Upsert(ctx, "s1", &models.Award{Name: "initial", TotalValue: 300}))

	awards, err := repo.FindAll(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, awards, 2)
	assert.Equal(t, "initial", awards[0].Name)
	assert.Equal(t, 300.0, awards[0].TotalValue)
	assert.Equal(t, "refresh", awards[1].Name)
	assert.Equal(t, "s1", awards[0].SessionID)
}

func TestAwardRepository_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	repo := NewAwardRepository(0)

	require.NoError(t, repo.Upsert(ctx, "a", &models.Award{Name: "x"}))

	_, err := repo.FindByName(ctx, "b", "x")
	assert.ErrorIs(t, err, repositories.ErrAwardNotFound)

	awards, err := repo.FindAll(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, awards)
}

func TestAwardRepository_FindByNameReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewAwardRepository(0)
	require.NoError(t, repo.Upsert(ctx, "s", &models.Award{Name: "x", TotalValue: 1}))

	got, err := repo.FindByName(ctx, "s", "x")
	require.NoError(t, err)
	got.TotalValue = 99

	again, err := repo.FindByName(ctx, "s", "x")
	require.NoError(t, err)
	assert.Equal(t, 1.0, again.TotalValue)

	_, err = repo.FindByName(ctx, "s", "missing")
	assert.ErrorIs(t, err, repositories.ErrAwardNotFound)
}

func TestAwardRepository_ReplaceKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	repo := NewAwardRepository(0)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return clock }

	require.NoError(t, repo.Upsert(ctx, "s", &models.Award{Name: "x"}))
	clock = clock.Add(time.Hour)
	award := &models.Award{Name: "x", TotalValue: 5}
	require.NoError(t, repo.Upsert(ctx, "s", award))

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), award.CreatedAt)
	assert.Equal(t, clock, award.UpdatedAt)
}

func TestAwardRepository_EvictsIdleSessions(t *testing.T) {
	ctx := context.Background()
	repo := NewAwardRepository(time.Hour)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return clock }

	require.NoError(t, repo.Upsert(ctx, "old", &models.Award{Name: "x"}))
	clock = clock.Add(2 * time.Hour)
	require.NoError(t, repo.Upsert(ctx, "new", &models.Award{Name: "y"}))

	assert.Equal(t, 1, repo.Len())
	awards, err := repo.FindAll(ctx, "old")
	require.NoError(t, err)
	assert.Empty(t, awards)
}
