package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"instauto/internal/domain/entities"
	"instauto/internal/usecase/interfaces"
)

const (
	DefaultWorkshopCacheTTL = 5 * time.Minute
	workshopCacheKeyPrefix  = "instauto:workshop:"
)

// CachedWorkshopProfileRepository is a read-through Redis cache in front of
// another workshop source. Redis failures fall through to the inner source.
// Unknown workshops are not cached.
type CachedWorkshopProfileRepository struct {
	inner  interfaces.IWorkshopProfileRepository
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

var _ interfaces.IWorkshopProfileRepository = (*CachedWorkshopProfileRepository)(nil)

// NewCachedWorkshopProfileRepository returns inner unchanged when client is nil.
func NewCachedWorkshopProfileRepository(inner interfaces.IWorkshopProfileRepository, client *redis.Client, ttl time.Duration, log *zap.Logger) interfaces.IWorkshopProfileRepository {
	if client == nil {
		return inner
	}
	if ttl <= 0 {
		ttl = DefaultWorkshopCacheTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedWorkshopProfileRepository{inner: inner, client: client, ttl: ttl, log: log}
}

func (r *CachedWorkshopProfileRepository) GetByID(ctx context.Context, id string) (entities.WorkshopProfile, error) {
	key := workshopCacheKeyPrefix + id

	raw, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var w entities.WorkshopProfile
		if jerr := json.Unmarshal(raw, &w); jerr == nil {
			return w, nil
		}
		r.log.Warn("[workshop][cache] corrupt entry", zap.String("workshop_id", id))
	case !errors.Is(err, redis.Nil):
		r.log.Warn("[workshop][cache] get failed", zap.String("workshop_id", id), zap.Error(err))
	}

	w, err := r.inner.GetByID(ctx, id)
	if err != nil || w.ID == "" {
		return w, err
	}

	if raw, err := json.Marshal(w); err == nil {
		if err := r.client.Set(ctx, key, raw, r.ttl).Err(); err != nil {
			r.log.Warn("[workshop][cache] set failed", zap.String("workshop_id", id), zap.Error(err))
		}
	}
	return w, nil
}
