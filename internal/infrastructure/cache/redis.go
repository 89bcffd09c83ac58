package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/application/analytics"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const maxJitterMinutes = 3

// RedisReportCache keeps analytics reports in Redis as JSON
type RedisReportCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

// NewRedisReportCache creates a report cache. A zero ttl falls back to 10 minutes.
func NewRedisReportCache(client *redis.Client, ttl time.Duration) *RedisReportCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisReportCache{client: client, baseTTL: ttl}
}

func (r *RedisReportCache) Get(ctx context.Context, ownerID uuid.UUID) (*analytics.Report, error) {
	data, err := r.client.Get(ctx, reportKey(ownerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var report analytics.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("unmarshal report failed: %w", err)
	}
	return &report, nil
}

func (r *RedisReportCache) Generation(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	gen, err := r.client.Get(ctx, generationKey(ownerID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get generation failed: %w", err)
	}
	return gen, nil
}

// Set stores the report only while the owner's generation still equals
// generation. A concurrent Delete fails the transaction with ErrStaleReport.
func (r *RedisReportCache) Set(ctx context.Context, ownerID uuid.UUID, generation int64, report *analytics.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report failed: %w", err)
	}

	// spread expiries so reports built together do not all rebuild together
	ttl := r.baseTTL + time.Duration(rand.Intn(maxJitterMinutes+1))*time.Minute
	genKey := generationKey(ownerID)

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return ErrStaleReport
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, reportKey(ownerID), data, ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrStaleReport), errors.Is(err, redis.TxFailedErr):
		return ErrStaleReport
	default:
		return fmt.Errorf("redis set failed: %w", err)
	}
}

// Delete drops the cached report and bumps the generation in one transaction
func (r *RedisReportCache) Delete(ctx context.Context, ownerID uuid.UUID) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(ownerID))
		pipe.Del(ctx, reportKey(ownerID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func reportKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("analytics:report:%s", ownerID)
}

func generationKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("analytics:generation:%s", ownerID)
}
