package repository

import (
	"context"
	"io"
	"testing"
	"time"

	"kinobot/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisRepo(t *testing.T) (*RedisStateRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStateRepository(client, time.Hour), mr
}

func testState(userID int64) *models.UserState {
	return &models.UserState{
		UserID: userID,
		Flow:   models.FlowUser,
		Step:   models.StateSessionChoice,
		User:   &models.UserFlowData{SelectedMovie: "Дюна"},
	}
}

func TestRedisStateRoundTrip(t *testing.T) {
	repo, _ := newTestRedisRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SetState(ctx, testState(1)))

	got, err := repo.GetState(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.StateSessionChoice, got.Step)
	assert.Equal(t, "Дюна", got.UserData().SelectedMovie)

	require.NoError(t, repo.ClearState(ctx, 1))
	got, err = repo.GetState(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStateMissingUser(t *testing.T) {
	repo, _ := newTestRedisRepo(t)

	got, err := repo.GetState(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStateTTL(t *testing.T) {
	repo, mr := newTestRedisRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SetState(ctx, testState(1)))

	mr.FastForward(2 * time.Hour)

	got, err := repo.GetState(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisRateLimit(t *testing.T) {
	repo, _ := newTestRedisRepo(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := repo.CheckRateLimit(ctx, 1, 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should pass", i+1)
	}

	allowed, err := repo.CheckRateLimit(ctx, 1, 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	// Другой пользователь считается отдельно
	allowed, err = repo.CheckRateLimit(ctx, 2, 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisNilClient(t *testing.T) {
	repo := NewRedisStateRepository(nil, time.Hour)
	ctx := context.Background()

	_, err := repo.GetState(ctx, 1)
	assert.Error(t, err)
	assert.Error(t, repo.SetState(ctx, testState(1)))
}

func TestMemoryStateRoundTrip(t *testing.T) {
	repo := NewMemoryStateRepository(time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.SetState(ctx, testState(1)))

	got, err := repo.GetState(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.StateSessionChoice, got.Step)

	require.NoError(t, repo.ClearState(ctx, 1))
	got, err = repo.GetState(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStateExpiry(t *testing.T) {
	repo := NewMemoryStateRepository(time.Millisecond)
	ctx := context.Background()

	require.NoError(t, repo.SetState(ctx, testState(1)))
	time.Sleep(5 * time.Millisecond)

	got, err := repo.GetState(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryRateLimit(t *testing.T) {
	repo := NewMemoryStateRepository(time.Hour)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, err := repo.CheckRateLimit(ctx, 1, 2, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := repo.CheckRateLimit(ctx, 1, 2, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestFailoverFallsBackToMemory(t *testing.T) {
	logger := zerolog.New(io.Discard)
	primary := NewRedisStateRepository(nil, time.Hour) // всегда ошибка
	fallback := NewMemoryStateRepository(time.Hour)
	repo := NewFailoverStateRepository(primary, fallback, &logger)
	ctx := context.Background()

	require.NoError(t, repo.SetState(ctx, testState(1)))

	got, err := repo.GetState(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.StateSessionChoice, got.Step)
}

func TestFailoverRecoversPrimary(t *testing.T) {
	logger := zerolog.New(io.Discard)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	primary := NewRedisStateRepository(client, time.Hour)
	fallback := NewMemoryStateRepository(time.Hour)
	repo := NewFailoverStateRepository(primary, fallback, &logger)
	ctx := context.Background()

	// Первый вызов при живом Redis
	require.NoError(t, repo.SetState(ctx, testState(1)))
	got, err := primary.GetState(ctx, 1)
	require.NoError(t, err)
	assert.NotNil(t, got, "state should land in primary while it is up")
}
