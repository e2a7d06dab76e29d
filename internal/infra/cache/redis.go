package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"amenity-booking/internal/domain/slot"
	"amenity-booking/internal/pkg/caldate"
	"amenity-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "slots:"

// RedisSlotCache stores one hash per amenity: field = date, value = JSON grid.
// Invalidate drops the whole hash, so one DEL covers every cached date.
type RedisSlotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSlotCache(client *redis.Client, ttl time.Duration) shared.SlotCache {
	return &RedisSlotCache{client: client, ttl: ttl}
}

type cachedWindow struct {
	Start int64 `json:"s"`
	End   int64 `json:"e"`
}

func key(amenityID uuid.UUID) string {
	return keyPrefix + amenityID.String()
}

func (c *RedisSlotCache) Get(ctx context.Context, amenityID uuid.UUID, date caldate.Date) ([]slot.Window, bool, error) {
	raw, err := c.client.HGet(ctx, key(amenityID), date.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var stored []cachedWindow
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, false, err
	}
	out := make([]slot.Window, 0, len(stored))
	for _, s := range stored {
		w, err := slot.NewWindow(time.Unix(s.Start, 0), time.Unix(s.End, 0))
		if err != nil {
			return nil, false, err
		}
		out = append(out, w)
	}
	return out, true, nil
}

func (c *RedisSlotCache) Set(ctx context.Context, amenityID uuid.UUID, date caldate.Date, slots []slot.Window) error {
	stored := make([]cachedWindow, 0, len(slots))
	for _, w := range slots {
		stored = append(stored, cachedWindow{Start: w.Start().Unix(), End: w.End().Unix()})
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		return err
	}

	k := key(amenityID)
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, k, date.String(), raw)
	pipe.Expire(ctx, k, c.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (c *RedisSlotCache) Invalidate(ctx context.Context, amenityID uuid.UUID) error {
	return c.client.Del(ctx, key(amenityID)).Err()
}
