package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/istinmth/dobble-generator/internal/domain"
	"github.com/istinmth/dobble-generator/internal/ports"
)

const (
	jobKeyPrefix = "dobble:job:"
	jobIndexKey  = "dobble:jobs"
)

// RedisStore keeps job metadata in redis: one JSON value per job plus a
// sorted set scored by creation time for newest-first listing.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore connects and pings so a dead redis fails fast at
// startup instead of on the first request.
func NewRedisStore(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{rdb: rdb}, nil
}

func (s *RedisStore) Save(ctx context.Context, job ports.Job) error {
	raw, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job %s: %w", job.ID, err)
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, jobKeyPrefix+job.ID, raw, 0)
	pipe.ZAdd(ctx, jobIndexKey, &redis.Z{
		Score:  float64(job.CreatedAt.UnixNano()),
		Member: job.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save job %s: %w", job.ID, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (ports.Job, error) {
	raw, err := s.rdb.Get(ctx, jobKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.Job{}, fmt.Errorf("%w: %s", domain.ErrJobNotFound, id)
	}
	if err != nil {
		return ports.Job{}, fmt.Errorf("get job %s: %w", id, err)
	}

	var job ports.Job
	if err := json.Unmarshal(raw, &job); err != nil {
		return ports.Job{}, fmt.Errorf("parse job %s: %w", id, err)
	}
	return job, nil
}

func (s *RedisStore) List(ctx context.Context, limit int) ([]ports.Job, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	ids, err := s.rdb.ZRevRange(ctx, jobIndexKey, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	jobs := make([]ports.Job, 0, len(ids))
	for _, id := range ids {
		job, err := s.Get(ctx, id)
		if errors.Is(err, domain.ErrJobNotFound) {
			// Index entry outlived its job; skip it.
			continue
		}
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	deleted, err := s.rdb.Del(ctx, jobKeyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("delete job %s: %w", id, err)
	}
	if deleted == 0 {
		return fmt.Errorf("%w: %s", domain.ErrJobNotFound, id)
	}
	if err := s.rdb.ZRem(ctx, jobIndexKey, id).Err(); err != nil {
		return fmt.Errorf("unindex job %s: %w", id, err)
	}
	return nil
}
