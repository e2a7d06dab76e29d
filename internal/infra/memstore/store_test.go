//go:build unit

package memstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"amenity-booking/internal/domain/slot"
	"amenity-booking/internal/domain/waitlist"
	"amenity-booking/internal/infra"
	"amenity-booking/internal/infra/memstore"
	"amenity-booking/internal/usecase/shared"
	"amenity-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Within(t *testing.T) {
	ctx := context.Background()

	t.Run("failed transaction rolls back", func(t *testing.T) {
		store := memstore.New()
		a := builder.NewAmenityBuilder().MustBuildDomain()
		boom := errors.New("boom")

		err := store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			require.NoError(t, tx.Amenities().Create(ctx, a))
			return boom
		})
		assert.ErrorIs(t, err, boom)

		err = store.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
			_, err := tx.Amenities().FindByID(ctx, a.ID())
			return err
		})
		assert.True(t, infra.IsKind(err, infra.KindNotFound), "got %v", err)
	})

	t.Run("read-only transactions reject writes", func(t *testing.T) {
		store := memstore.New()
		err := store.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Amenities().Create(ctx, builder.NewAmenityBuilder().MustBuildDomain())
		})
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		store := memstore.New()
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		err := store.Within(cctx, func(context.Context, shared.Tx) error { return nil })
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestStore_SlotInvariants(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	first := builder.NewBookingBuilder().MustBuildConfirmed()
	second := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.AmenityID = first.AmenityID()
	}).MustBuildConfirmed()

	require.NoError(t, store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().Create(ctx, first)
	}))

	err := store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().Create(ctx, second)
	})
	assert.True(t, infra.IsKind(err, infra.KindConflict), "a second holder on the same window is refused: %v", err)

	w := first.Window()
	user := uuid.New()
	joined := w.Start().Add(-24 * time.Hour)
	require.NoError(t, store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Waitlist().Enqueue(ctx, waitlist.NewEntry(first.AmenityID(), w, user, "w@example.com", joined))
	}))
	err = store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Waitlist().Enqueue(ctx, waitlist.NewEntry(first.AmenityID(), w, user, "w@example.com", joined))
	})
	assert.ErrorIs(t, err, waitlist.ErrAlreadyWaitlisted)

	other := slot.MustWindow(w.End(), w.End().Add(2*time.Hour))
	require.NoError(t, store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Waitlist().Enqueue(ctx, waitlist.NewEntry(first.AmenityID(), other, user, "w@example.com", joined))
	}), "the same user may wait on a different window")

	require.NoError(t, store.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Waitlist().Count(ctx, first.AmenityID(), w)
		assert.Equal(t, 1, n)
		return err
	}))

	store.Reset()
	require.NoError(t, store.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		held, err := tx.Bookings().HasActiveOverlap(ctx, first.AmenityID(), w)
		assert.False(t, held)
		return err
	}))
}
