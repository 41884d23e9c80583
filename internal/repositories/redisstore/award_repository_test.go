package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/rsu-vesting/internal/models"
	"github.com/ArowuTest/rsu-vesting/internal/repositories"
	"github.com/ArowuTest/rsu-vesting/internal/vesting"
)

var (
	grant   = time.Date(2022, 3, 15, 0, 0, 0, 0, time.UTC)
	created = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
)

func encode(t *testing.T, a models.Award) string {
	t.Helper()
	b, err := json.Marshal(&a)
	require.NoError(t, err)
	return string(b)
}

func newRepo(now time.Time) (*AwardRepository, redismock.ClientMock) {
	db, mock := redismock.NewClientMock()
	repo := NewAwardRepository(db, time.Hour)
	repo.now = func() time.Time { return now }
	return repo, mock
}

func TestAwardRepository_UpsertNew(t *testing.T) {
	ctx := context.Background()
	repo, mock := newRepo(created)

	award := models.Award{Name: "initial", GrantDate: grant, TotalValue: 20000, CliffYears: 1, DurationYears: 4, Variant: vesting.VariantParameterized}
	want := award
	want.CreatedAt, want.UpdatedAt = created, created

	mock.ExpectHGet("rsu:session:s1:awards", "initial").RedisNil()
	mock.ExpectHSetNX("rsu:session:s1:awards", "initial", encode(t, want)).SetVal(true)
	mock.ExpectRPush("rsu:session:s1:order", "initial").SetVal(1)
	mock.ExpectExpire("rsu:session:s1:awards", time.Hour).SetVal(true)
	mock.ExpectExpire("rsu:session:s1:order", time.Hour).SetVal(true)

	require.NoError(t, repo.Upsert(ctx, "s1", &award))
	assert.Equal(t, "s1", award.SessionID)
	assert.Equal(t, created, award.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAwardRepository_UpsertReplaceKeepsOrderAndCreatedAt(t *testing.T) {
	ctx := context.Background()
	later := created.Add(time.Hour)
	repo, mock := newRepo(later)

	prev := models.Award{Name: "initial", GrantDate: grant, TotalValue: 100, DurationYears: 4, CreatedAt: created, UpdatedAt: created}
	award := models.Award{Name: "initial", GrantDate: grant, TotalValue: 200, DurationYears: 4}
	want := award
	want.CreatedAt, want.UpdatedAt = created, later

	mock.ExpectHGet("rsu:session:s1:awards", "initial").SetVal(encode(t, prev))
	mock.ExpectHSet("rsu:session:s1:awards", "initial", encode(t, want)).SetVal(0)
	mock.ExpectExpire("rsu:session:s1:awards", time.Hour).SetVal(true)
	mock.ExpectExpire("rsu:session:s1:order", time.Hour).SetVal(true)

	require.NoError(t, repo.Upsert(ctx, "s1", &award))
	assert.Equal(t, created, award.CreatedAt)
	assert.Equal(t, later, award.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAwardRepository_UpsertLosesFirstWriteRace(t *testing.T) {
	ctx := context.Background()
	repo, mock := newRepo(created)

	award := models.Award{Name: "initial", GrantDate: grant, TotalValue: 20000, DurationYears: 4}
	want := award
	want.CreatedAt, want.UpdatedAt = created, created

	// another writer stored the name between the lookup and the write
	mock.ExpectHGet("rsu:session:s1:awards", "initial").RedisNil()
	mock.ExpectHSetNX("rsu:session:s1:awards", "initial", encode(t, want)).SetVal(false)
	mock.ExpectHSet("rsu:session:s1:awards", "initial", encode(t, want)).SetVal(0)
	mock.ExpectExpire("rsu:session:s1:awards", time.Hour).SetVal(true)
	mock.ExpectExpire("rsu:session:s1:order", time.Hour).SetVal(true)

	require.NoError(t, repo.Upsert(ctx, "s1", &award))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAwardRepository_ConcurrentFirstSubmissions(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	repo := NewAwardRepository(client, time.Hour)
	ctx := context.Background()

	for run := 0; run < 50; run++ {
		session := fmt.Sprintf("s%d", run)

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				award := &models.Award{Name: "initial", GrantDate: grant, TotalValue: 20000, DurationYears: 4}
				assert.NoError(t, repo.Upsert(ctx, session, award))
			}()
		}
		wg.Wait()

		awards, err := repo.FindAll(ctx, session)
		require.NoError(t, err)
		require.Len(t, awards, 1, "session %s", session)
		assert.Equal(t, "initial", awards[0].Name)
	}
}

func TestAwardRepository_UpsertRedisError(t *testing.T) {
	repo, mock := newRepo(created)
	mock.ExpectHGet("rsu:session:s1:awards", "x").SetErr(errors.New("connection refused"))

	err := repo.Upsert(context.Background(), "s1", &models.Award{Name: "x"})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, repositories.ErrAwardNotFound)
}

func TestAwardRepository_FindByNameMissing(t *testing.T) {
	repo, mock := newRepo(created)
	mock.ExpectHGet("rsu:session:s1:awards", "nope").RedisNil()

	_, err := repo.FindByName(context.Background(), "s1", "nope")
	assert.ErrorIs(t, err, repositories.ErrAwardNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAwardRepository_FindAllInOrder(t *testing.T) {
	repo, mock := newRepo(created)
	a := models.Award{Name: "b-second", GrantDate: grant, TotalValue: 1, DurationYears: 4, CreatedAt: created}
	b := models.Award{Name: "a-first", GrantDate: grant, TotalValue: 2, DurationYears: 4, CreatedAt: created}

	mock.ExpectLRange("rsu:session:s1:order", 0, -1).SetVal([]string{"a-first", "b-second"})
	mock.ExpectHMGet("rsu:session:s1:awards", "a-first", "b-second").SetVal([]interface{}{encode(t, b), encode(t, a)})

	awards, err := repo.FindAll(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, awards, 2)
	assert.Equal(t, "a-first", awards[0].Name)
	assert.Equal(t, "b-second", awards[1].Name)
	assert.Equal(t, "s1", awards[0].SessionID)
	assert.Equal(t, grant, awards[0].GrantDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAwardRepository_FindAllEmpty(t *testing.T) {
	repo, mock := newRepo(created)
	mock.ExpectLRange("rsu:session:s1:order", 0, -1).SetVal([]string{})

	awards, err := repo.FindAll(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, awards)
	assert.NoError(t, mock.ExpectationsWereMet())
}
