package otp

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/thelegendaryarticuno/myfashion/pkg/errors"
)

func setupRedisRepo(t *testing.T) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisRepository(client, 10*time.Minute), mr
}

func TestRedisRepository_RoundTrip(t *testing.T) {
	repo, _ := setupRedisRepo(t)
	ctx := context.Background()

	sess := &Session{Email: testEmail, State: StateSent}
	require.NoError(t, repo.Save(ctx, sess))

	got, err := repo.Get(ctx, testEmail)
	require.NoError(t, err)
	assert.Equal(t, testEmail, got.Email)
	assert.Equal(t, StateSent, got.State)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestRedisRepository_Get_Missing(t *testing.T) {
	repo, _ := setupRedisRepo(t)

	_, err := repo.Get(context.Background(), "nobody@example.com")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRedisRepository_Save_SetsTTL(t *testing.T) {
	repo, mr := setupRedisRepo(t)

	require.NoError(t, repo.Save(context.Background(), &Session{Email: testEmail, State: StateSent}))

	ttl := mr.TTL(sessionKeyPrefix + testEmail)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, 10*time.Minute)
}

func TestRedisRepository_SessionExpires(t *testing.T) {
	repo, mr := setupRedisRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &Session{Email: testEmail, State: StateSent}))

	mr.FastForward(11 * time.Minute)

	_, err := repo.Get(ctx, testEmail)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRedisRepository_Delete(t *testing.T) {
	repo, _ := setupRedisRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &Session{Email: testEmail, State: StateVerified}))
	require.NoError(t, repo.Delete(ctx, testEmail))

	_, err := repo.Get(ctx, testEmail)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRedisRepository_Delete_MissingIsNoop(t *testing.T) {
	repo, _ := setupRedisRepo(t)

	assert.NoError(t, repo.Delete(context.Background(), "nobody@example.com"))
}
