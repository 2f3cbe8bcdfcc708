package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ideagen/ideagen/backend/go-services/internal/ideas"
	"github.com/redis/go-redis/v9"
)

const maxTxRetries = 8

// RedisRepo stores each session's ideas as one JSON list under
// "<prefix><sessionId>". Mutations run as WATCH/MULTI/EXEC transactions, so
// the store contract holds across several service instances. The key TTL
// tracks the newest idea, so a session whose ideas all expired disappears
// without a sweep.
type RedisRepo struct {
	client *redis.Client
	prefix string
	opts   Options
}

// NewRedisRepository creates a Redis-backed idea repository. Prefix may be empty.
func NewRedisRepository(client *redis.Client, prefix string, opts Options) *RedisRepo {
	if prefix == "" {
		prefix = "ideas:"
	}
	return &RedisRepo{client: client, prefix: prefix, opts: opts.withDefaults()}
}

func (r *RedisRepo) key(sessionID string) string {
	return r.prefix + sessionID
}

func (r *RedisRepo) load(ctx context.Context, tx *redis.Tx, key string) ([]ideas.SavedIdea, error) {
	b, err := tx.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var items []ideas.SavedIdea
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return items, nil
}

func (r *RedisRepo) store(ctx context.Context, pipe redis.Pipeliner, key string, items []ideas.SavedIdea, now time.Time) error {
	if len(items) == 0 {
		return pipe.Del(ctx, key).Err()
	}
	var newest int64
	for _, it := range items {
		if it.Timestamp > newest {
			newest = it.Timestamp
		}
	}
	ttl := time.UnixMilli(newest).Add(r.opts.TTL).Sub(now)
	if ttl < time.Millisecond {
		ttl = time.Millisecond
	}
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return pipe.Set(ctx, key, b, ttl).Err()
}

// mutation computes the new list for a key; changed=false skips the write.
type mutation func(items []ideas.SavedIdea) (out []ideas.SavedIdea, res ideas.Result, changed bool, err error)

func (r *RedisRepo) update(ctx context.Context, key string, now time.Time, fn mutation) (ideas.Result, error) {
	var res ideas.Result
	txf := func(tx *redis.Tx) error {
		items, err := r.load(ctx, tx, key)
		if err != nil {
			return err
		}
		items, expired := ideas.Evict(items, now, r.opts.TTL)
		out, got, changed, err := fn(items)
		if err != nil {
			return err
		}
		got.Expired = expired
		res = got
		if !changed && expired == 0 {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			return r.store(ctx, pipe, key, out, now)
		})
		return err
	}
	for i := 0; i < maxTxRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return res, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return ideas.Result{}, err
	}
	return ideas.Result{}, ErrConflict
}

func (r *RedisRepo) List(ctx context.Context, sessionID string, now time.Time) (ideas.Result, error) {
	return r.update(ctx, r.key(sessionID), now, func(items []ideas.SavedIdea) ([]ideas.SavedIdea, ideas.Result, bool, error) {
		return items, ideas.Result{Ideas: ideas.Session(items, sessionID)}, false, nil
	})
}

func (r *RedisRepo) Toggle(ctx context.Context, sessionID string, idea ideas.SavedIdea, now time.Time) (ideas.Result, error) {
	return r.update(ctx, r.key(sessionID), now, func(items []ideas.SavedIdea) ([]ideas.SavedIdea, ideas.Result, bool, error) {
		out, res, err := ideas.Toggle(items, sessionID, idea, now, r.opts.Capacity)
		return out, res, true, err
	})
}

func (r *RedisRepo) Delete(ctx context.Context, sessionID, ideaID string, now time.Time) (ideas.Result, error) {
	return r.update(ctx, r.key(sessionID), now, func(items []ideas.SavedIdea) ([]ideas.SavedIdea, ideas.Result, bool, error) {
		out, removed := ideas.Remove(items, sessionID, ideaID)
		return out, ideas.Result{Ideas: ideas.Session(out, sessionID), Removed: removed}, removed, nil
	})
}

// Sweep rewrites every session key that holds expired ideas.
func (r *RedisRepo) Sweep(ctx context.Context, now time.Time) (int, error) {
	total := 0
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		res, err := r.update(ctx, iter.Val(), now, func(items []ideas.SavedIdea) ([]ideas.SavedIdea, ideas.Result, bool, error) {
			return items, ideas.Result{}, false, nil
		})
		if err != nil {
			return total, err
		}
		total += res.Expired
	}
	return total, iter.Err()
}

// Ping reports whether the backing Redis is reachable.
func (r *RedisRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
