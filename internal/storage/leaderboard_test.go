package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisLeaderboard) {
	t.Helper()
	mr := miniredis.RunT(t)

	client, err := DialRedis(context.Background(), mr.Addr())
	require.NoError(t, err, "failed to create redis client")
	t.Cleanup(func() { client.Close() })

	return mr, NewRedisLeaderboard(client, "test:lb")
}

func TestRedisLeaderboardKeepsBest(t *testing.T) {
	mr, lb := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, lb.Submit(ctx, "classic", "ann", 300))
	require.NoError(t, lb.Submit(ctx, "classic", "bob", 500))
	require.NoError(t, lb.Submit(ctx, "classic", "ann", 200))
	require.NoError(t, lb.Submit(ctx, "tutorial", "cid", 50))

	top, err := lb.Top(ctx, "classic", 10)
	require.NoError(t, err)
	assert.Equal(t, []LeaderEntry{
		{Player: "bob", Score: 500},
		{Player: "ann", Score: 300},
	}, top)

	assert.True(t, mr.Exists("test:lb:classic"))
	assert.True(t, mr.Exists("test:lb:tutorial"))
}

func TestRedisLeaderboardRank(t *testing.T) {
	_, lb := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, lb.Submit(ctx, "classic", "ann", 300))
	require.NoError(t, lb.Submit(ctx, "classic", "bob", 500))

	rank, err := lb.Rank(ctx, "classic", "ann")
	require.NoError(t, err)
	assert.Equal(t, 2, rank)

	_, err = lb.Rank(ctx, "classic", "nobody")
	assert.ErrorIs(t, err, ErrNotRanked)
}

func TestRedisLeaderboardTopLimit(t *testing.T) {
	_, lb := newTestRedis(t)
	ctx := context.Background()

	for i, p := range []string{"a", "b", "c", "d"} {
		require.NoError(t, lb.Submit(ctx, "generated", p, (i+1)*100))
	}

	top, err := lb.Top(ctx, "generated", 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "d", top[0].Player)
	assert.Equal(t, "c", top[1].Player)
}

func TestDialRedisErrors(t *testing.T) {
	_, err := DialRedis(context.Background(), "")
	assert.Error(t, err)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = DialRedis(context.Background(), addr)
	assert.Error(t, err)
}

func TestStoreLeaderboard(t *testing.T) {
	store := openTestStore(t)
	lb := NewStoreLeaderboard(store)
	ctx := context.Background()

	require.NoError(t, lb.Submit(ctx, "classic", "ann", 300))
	require.NoError(t, lb.Submit(ctx, "classic", "ann", 100))
	require.NoError(t, lb.Submit(ctx, "classic", "bob", 500))

	top, err := lb.Top(ctx, "classic", 10)
	require.NoError(t, err)
	assert.Equal(t, []LeaderEntry{
		{Player: "bob", Score: 500},
		{Player: "ann", Score: 300},
	}, top)

	rank, err := lb.Rank(ctx, "classic", "ann")
	require.NoError(t, err)
	assert.Equal(t, 2, rank)

	_, err = lb.Rank(ctx, "classic", "nobody")
	assert.ErrorIs(t, err, ErrNotRanked)
}
