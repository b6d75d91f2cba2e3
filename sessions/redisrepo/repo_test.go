package redisrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/thriveremote/thrive-server/sessions"
	"github.com/thriveremote/thrive-server/sessions/redisrepo"
)

func setupRepo(t *testing.T) (*redisrepo.Repo, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redisrepo.New(client), mr
}

func testSession(token string, ttl time.Duration) *sessions.Session {
	now := time.Now()
	return &sessions.Session{
		Token:      token,
		UserID:     "user-1",
		CreatedAt:  now,
		LastUsedAt: now,
		ExpiresAt:  now.Add(ttl),
	}
}

func TestPutGet_RoundTrip(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	s := testSession("tok-1", time.Hour)
	require.NoError(t, repo.Put(ctx, s))

	got, err := repo.Get(ctx, "tok-1")
	require.NoError(t, err)
	require.Equal(t, "user-1", got.UserID)
	require.Equal(t, s.Token, got.Token)
}

func TestPut_RejectsExpiredSession(t *testing.T) {
	repo, _ := setupRepo(t)

	err := repo.Put(context.Background(), testSession("tok-1", -time.Minute))
	require.Error(t, err)
}

func TestGet_UnknownToken(t *testing.T) {
	repo, _ := setupRepo(t)

	_, err := repo.Get(context.Background(), "never-stored")
	require.ErrorIs(t, err, sessions.ErrNotFound)
}

func TestGet_AfterRedisTTLExpiry(t *testing.T) {
	repo, mr := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, testSession("tok-1", time.Hour)))
	mr.FastForward(2 * time.Hour)

	_, err := repo.Get(ctx, "tok-1")
	require.ErrorIs(t, err, sessions.ErrNotFound)
}

func TestTouch_UpdatesLastUsedOnly(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	s := testSession("tok-1", time.Hour)
	require.NoError(t, repo.Put(ctx, s))

	later := time.Now().Add(30 * time.Minute)
	require.NoError(t, repo.Touch(ctx, "tok-1", later))

	got, err := repo.Get(ctx, "tok-1")
	require.NoError(t, err)
	require.True(t, got.LastUsedAt.Equal(later))
	require.True(t, got.ExpiresAt.Equal(s.ExpiresAt))
}

func TestTouch_UnknownToken(t *testing.T) {
	repo, _ := setupRepo(t)

	err := repo.Touch(context.Background(), "never-stored", time.Now())
	require.ErrorIs(t, err, sessions.ErrNotFound)
}

func TestDelete_Idempotent(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, testSession("tok-1", time.Hour)))
	require.NoError(t, repo.Delete(ctx, "tok-1"))
	require.NoError(t, repo.Delete(ctx, "tok-1"))

	_, err := repo.Get(ctx, "tok-1")
	require.ErrorIs(t, err, sessions.ErrNotFound)
}
