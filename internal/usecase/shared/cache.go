package shared

import (
	"context"

	"amenity-booking/internal/domain/slot"
	"amenity-booking/internal/pkg/caldate"

	"github.com/google/uuid"
)

// SlotCache memoizes generated slot grids per amenity and date.
// The grid depends only on hours and duration, so edits to those must Invalidate.
type SlotCache interface {
	Get(ctx context.Context, amenityID uuid.UUID, date caldate.Date) ([]slot.Window, bool, error)
	Set(ctx context.Context, amenityID uuid.UUID, date caldate.Date, slots []slot.Window) error
	Invalidate(ctx context.Context, amenityID uuid.UUID) error
}
