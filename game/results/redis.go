package results

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the leaderboard in two sorted sets (wins and games per
// controller) and the latest results in a capped list
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a store using keys under prefix
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "quoridor"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (r *RedisStore) winsKey() string   { return r.prefix + ":wins" }
func (r *RedisStore) gamesKey() string  { return r.prefix + ":games" }
func (r *RedisStore) recentKey() string { return r.prefix + ":recent" }

// Record stores a finished game in one MULTI/EXEC transaction
func (r *RedisStore) Record(ctx context.Context, record Record) (Record, error) {
	record, err := prepare(record)
	if err != nil {
		return record, err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return record, fmt.Errorf("failed to encode result: %w", err)
	}

	pipe := r.client.TxPipeline()
	for _, c := range seats(record) {
		pipe.ZIncrBy(ctx, r.gamesKey(), 1, c)
	}
	pipe.ZIncrBy(ctx, r.winsKey(), 1, record.WinnerName())
	pipe.LPush(ctx, r.recentKey(), data)
	pipe.LTrim(ctx, r.recentKey(), 0, DefaultRecentLimit-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return record, fmt.Errorf("failed to record result: %w", err)
	}
	return record, nil
}

// Standings returns the leaderboard
func (r *RedisStore) Standings(ctx context.Context, limit int) ([]Standing, error) {
	games, err := r.client.ZRangeWithScores(ctx, r.gamesKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read games: %w", err)
	}
	if len(games) == 0 {
		return []Standing{}, nil
	}

	members := make([]string, len(games))
	for i, z := range games {
		members[i] = z.Member.(string)
	}
	wins, err := r.client.ZMScore(ctx, r.winsKey(), members...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read wins: %w", err)
	}

	standings := make([]Standing, len(games))
	for i, z := range games {
		standings[i] = Standing{
			Controller: members[i],
			Games:      int(z.Score),
			Wins:       int(wins[i]),
		}
	}
	return rank(standings, limit), nil
}

// Recent returns the latest results, newest first
func (r *RedisStore) Recent(ctx context.Context, limit int) ([]Record, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	raw, err := r.client.LRange(ctx, r.recentKey(), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read recent results: %w", err)
	}

	records := make([]Record, 0, len(raw))
	for _, item := range raw {
		var record Record
		if err := json.Unmarshal([]byte(item), &record); err != nil {
			return nil, fmt.Errorf("failed to decode result: %w", err)
		}
		records = append(records, record)
	}
	return records, nil
}
