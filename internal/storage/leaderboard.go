package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotRanked is returned by Rank when the player has no score for a pack.
var ErrNotRanked = errors.New("storage: player not ranked")

// LeaderEntry is one player's best score on a pack.
type LeaderEntry struct {
	Player string
	Score  int
}

// Leaderboard keeps the best score per player and pack.
type Leaderboard interface {
	// Submit records score for player, keeping the higher of old and new.
	Submit(ctx context.Context, packID, player string, score int) error
	// Top returns up to n entries ordered by score descending.
	Top(ctx context.Context, packID string, n int) ([]LeaderEntry, error)
	// Rank returns the 1-based position of player on the pack.
	Rank(ctx context.Context, packID, player string) (int, error)
}

// DialRedis connects to a Redis server and checks it is reachable.
func DialRedis(ctx context.Context, addr string) (*redis.Client, error) {
	if addr == "" {
		return nil, errors.New("storage: redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 3 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("storage: cannot reach redis at %s: %w", addr, err)
	}
	return client, nil
}

// RedisLeaderboard stores one sorted set per pack, shared by every server
// pointed at the same Redis.
type RedisLeaderboard struct {
	client redis.Cmdable
	prefix string
}

var _ Leaderboard = (*RedisLeaderboard)(nil)

// NewRedisLeaderboard creates a leaderboard using keys "<prefix>:<pack>".
func NewRedisLeaderboard(client redis.Cmdable, prefix string) *RedisLeaderboard {
	if prefix == "" {
		prefix = "beams:leaderboard"
	}
	return &RedisLeaderboard{client: client, prefix: prefix}
}

func (l *RedisLeaderboard) key(packID string) string {
	return l.prefix + ":" + packID
}

// Submit records a score. Lower scores never replace a better one.
func (l *RedisLeaderboard) Submit(ctx context.Context, packID, player string, score int) error {
	err := l.client.ZAddArgs(ctx, l.key(packID), redis.ZAddArgs{
		GT:      true,
		Members: []redis.Z{{Score: float64(score), Member: player}},
	}).Err()
	if err != nil {
		return fmt.Errorf("storage: cannot submit score: %w", err)
	}
	return nil
}

// Top returns the best n players of a pack.
func (l *RedisLeaderboard) Top(ctx context.Context, packID string, n int) ([]LeaderEntry, error) {
	if n <= 0 {
		n = 10
	}

	zs, err := l.client.ZRevRangeWithScores(ctx, l.key(packID), 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read leaderboard: %w", err)
	}

	entries := make([]LeaderEntry, 0, len(zs))
	for _, z := range zs {
		player, _ := z.Member.(string)
		entries = append(entries, LeaderEntry{Player: player, Score: int(z.Score)})
	}
	return entries, nil
}

// Rank returns the 1-based position of player.
func (l *RedisLeaderboard) Rank(ctx context.Context, packID, player string) (int, error) {
	rank, err := l.client.ZRevRank(ctx, l.key(packID), player).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNotRanked
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read rank: %w", err)
	}
	return int(rank) + 1, nil
}

// StoreLeaderboard derives a leaderboard from the local scores table.
// It is used when no Redis is configured.
type StoreLeaderboard struct {
	store *Store
}

var _ Leaderboard = (*StoreLeaderboard)(nil)

// NewStoreLeaderboard wraps a Store.
func NewStoreLeaderboard(store *Store) *StoreLeaderboard {
	return &StoreLeaderboard{store: store}
}

// Submit saves the run as a plain score entry.
func (l *StoreLeaderboard) Submit(_ context.Context, packID, player string, score int) error {
	_, err := l.store.SaveScore(ScoreEntry{PackID: packID, Player: player, Score: score})
	return err
}

// Top returns each player's best score.
func (l *StoreLeaderboard) Top(ctx context.Context, packID string, n int) ([]LeaderEntry, error) {
	if n <= 0 {
		n = 10
	}

	rows, err := l.store.db.QueryContext(ctx,
		`SELECT player, MAX(score) AS best
		 FROM scores
		 WHERE pack_id = ?
		 GROUP BY player
		 ORDER BY best DESC, player ASC
		 LIMIT ?`,
		packID, n,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderEntry
	for rows.Next() {
		var e LeaderEntry
		if err := rows.Scan(&e.Player, &e.Score); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Rank counts players with a strictly better best score.
func (l *StoreLeaderboard) Rank(ctx context.Context, packID, player string) (int, error) {
	var best sql.NullInt64
	err := l.store.db.QueryRowContext(ctx,
		"SELECT MAX(score) FROM scores WHERE pack_id = ? AND player = ?",
		packID, player,
	).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read rank: %w", err)
	}
	if !best.Valid {
		return 0, ErrNotRanked
	}

	var better int
	err = l.store.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM (
			SELECT player FROM scores WHERE pack_id = ?
			GROUP BY player HAVING MAX(score) > ?
		 )`,
		packID, best.Int64,
	).Scan(&better)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read rank: %w", err)
	}
	return better + 1, nil
}
