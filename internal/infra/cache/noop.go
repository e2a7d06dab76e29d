package cache

import (
	"context"

	"amenity-booking/internal/domain/slot"
	"amenity-booking/internal/pkg/caldate"
	"amenity-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// NoopSlotCache always misses. Used when Redis is disabled.
type NoopSlotCache struct{}

func NewNoopSlotCache() shared.SlotCache {
	return NoopSlotCache{}
}

func (NoopSlotCache) Get(context.Context, uuid.UUID, caldate.Date) ([]slot.Window, bool, error) {
	return nil, false, nil
}

func (NoopSlotCache) Set(context.Context, uuid.UUID, caldate.Date, []slot.Window) error {
	return nil
}

func (NoopSlotCache) Invalidate(context.Context, uuid.UUID) error {
	return nil
}
