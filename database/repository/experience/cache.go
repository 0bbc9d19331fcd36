package experienceRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"central/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	catalogCacheTTL = time.Hour
	catalogListKey  = "catalog:experiences"
)

type cachedExperienceRepo struct {
	inner  ExperienceRepository
	cache  *redis.Client
	logger *zap.Logger
}

// NewCachedExperienceRepo wraps an ExperienceRepository with a Redis
// read-through cache. The catalog is consulted on every completed chat turn,
// so lookups serve from Redis and fall back to the backing store on a miss.
// A nil cache client degrades to plain pass-through.
func NewCachedExperienceRepo(inner ExperienceRepository, cache *redis.Client, logger *zap.Logger) ExperienceRepository {
	return &cachedExperienceRepo{inner: inner, cache: cache, logger: logger}
}

func (r *cachedExperienceRepo) GetByID(ctx context.Context, id int) (*models.Experience, error) {
	key := fmt.Sprintf("catalog:experience:id:%d", id)
	if payload, ok := r.fetch(ctx, key); ok {
		if exp, ok := decodeExperience(payload); ok {
			return exp, nil
		}
	}
	exp, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, exp)
	return exp, nil
}

func (r *cachedExperienceRepo) GetByCode(ctx context.Context, code string) (*models.Experience, error) {
	key := "catalog:experience:code:" + code
	if payload, ok := r.fetch(ctx, key); ok {
		if exp, ok := decodeExperience(payload); ok {
			return exp, nil
		}
	}
	exp, err := r.inner.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, exp)
	return exp, nil
}

func (r *cachedExperienceRepo) List(ctx context.Context) ([]models.Experience, error) {
	if payload, ok := r.fetch(ctx, catalogListKey); ok {
		if exps, ok := decodeExperienceList(payload); ok {
			return exps, nil
		}
	}
	exps, err := r.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	r.store(ctx, catalogListKey, exps)
	return exps, nil
}

// SeedDefaults writes through to the backing store and drops the cached
// listing so the seeded rows are visible on the next read.
func (r *cachedExperienceRepo) SeedDefaults(ctx context.Context) error {
	if err := r.inner.SeedDefaults(ctx); err != nil {
		return err
	}
	if r.cache != nil {
		if err := r.cache.Del(ctx, catalogListKey).Err(); err != nil {
			r.logger.Debug("failed to invalidate catalog cache", zap.Error(err))
		}
	}
	return nil
}

// fetch reads a cached payload; a miss or an unreachable cache is not an
// error, the caller falls through to the backing store.
func (r *cachedExperienceRepo) fetch(ctx context.Context, key string) (string, bool) {
	if r.cache == nil {
		return "", false
	}
	payload, err := r.cache.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			r.logger.Debug("catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return payload, true
}

func (r *cachedExperienceRepo) store(ctx context.Context, key string, v interface{}) {
	if r.cache == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, key, payload, catalogCacheTTL).Err(); err != nil {
		r.logger.Debug("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// decodeExperience reports false on a corrupt payload so the caller re-reads
// the backing store instead of failing the request.
func decodeExperience(payload string) (*models.Experience, bool) {
	var exp models.Experience
	if err := json.Unmarshal([]byte(payload), &exp); err != nil || exp.ID == 0 {
		return nil, false
	}
	return &exp, true
}

func decodeExperienceList(payload string) ([]models.Experience, bool) {
	var exps []models.Experience
	if err := json.Unmarshal([]byte(payload), &exps); err != nil || len(exps) == 0 {
		return nil, false
	}
	return exps, true
}
