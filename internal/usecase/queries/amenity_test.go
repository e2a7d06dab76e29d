//go:build unit

package queries_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"amenity-booking/internal/domain/amenity"
	"amenity-booking/internal/domain/slot"
	"amenity-booking/internal/infra/memstore"
	"amenity-booking/internal/pkg/caldate"
	"amenity-booking/internal/pkg/clock"
	"amenity-booking/internal/usecase/commands"
	"amenity-booking/internal/usecase/promotion"
	"amenity-booking/internal/usecase/queries"
	"amenity-booking/internal/usecase/shared"
	"amenity-booking/tests/common/builder"
	"amenity-booking/tests/common/fake"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapCache struct {
	grids map[string][]slot.Window
	gets  int
	sets  int
	err   error
}

func newMapCache() *mapCache {
	return &mapCache{grids: map[string][]slot.Window{}}
}

func (c *mapCache) key(id uuid.UUID, d caldate.Date) string { return id.String() + "/" + d.String() }

func (c *mapCache) Get(_ context.Context, id uuid.UUID, d caldate.Date) ([]slot.Window, bool, error) {
	c.gets++
	if c.err != nil {
		return nil, false, c.err
	}
	g, ok := c.grids[c.key(id, d)]
	return g, ok, nil
}

func (c *mapCache) Set(_ context.Context, id uuid.UUID, d caldate.Date, slots []slot.Window) error {
	c.sets++
	if c.err != nil {
		return c.err
	}
	c.grids[c.key(id, d)] = slots
	return nil
}

func (c *mapCache) Invalidate(context.Context, uuid.UUID) error {
	c.grids = map[string][]slot.Window{}
	return nil
}

type slotsFixture struct {
	ctx      context.Context
	store    *memstore.Store
	clock    *clock.MockClock
	cache    *mapCache
	q        queries.AmenityQueries
	bookings commands.BookingCommands
	court    *amenity.Amenity
}

func newSlotsFixture(t *testing.T) *slotsFixture {
	t.Helper()
	f := &slotsFixture{
		ctx:   context.Background(),
		store: memstore.New(),
		clock: clock.NewMockClock(time.Date(2030, 1, 5, 9, 0, 0, 0, time.UTC)),
		cache: newMapCache(),
	}
	settings := shared.DefaultSettings()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sink := fake.NewSink()
	scheduler := promotion.NewScheduler(settings, fake.Links{}, f.clock, nil, logger)

	f.q = queries.NewAmenityQueries(f.store, f.cache, settings, f.clock, logger)
	f.bookings = commands.NewBookingCommands(f.store, scheduler, sink, settings, f.clock, nil, logger)
	f.court = builder.NewAmenityBuilder().MustBuildDomain()
	require.NoError(t, f.store.Within(f.ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Amenities().Create(ctx, f.court)
	}))
	return f
}

func (f *slotsFixture) book(t *testing.T, start time.Time) {
	t.Helper()
	_, err := f.bookings.CreateBooking(f.ctx, builder.NewActorBuilder().Build(), commands.CreateBookingInput{
		AmenityID: f.court.ID(), Start: start, End: start.Add(2 * time.Hour),
	})
	require.NoError(t, err)
}

func TestAmenityQueries_ListSlots(t *testing.T) {
	tuesday10 := time.Date(2030, 1, 8, 10, 0, 0, 0, time.UTC)

	t.Run("reports held windows with waitlist length", func(t *testing.T) {
		f := newSlotsFixture(t)
		f.book(t, tuesday10)
		f.book(t, tuesday10)
		f.book(t, tuesday10)

		view, err := f.q.ListSlots(f.ctx, f.court.ID(), "2030-01-08")
		require.NoError(t, err)
		assert.Equal(t, "2030-01-08", view.Date)
		require.Len(t, view.Slots, 7)

		type row struct {
			Start     string
			Available bool
			Kind      string
			Waiting   int
		}
		got := make([]row, 0, len(view.Slots))
		for _, s := range view.Slots {
			got = append(got, row{s.StartTime.Format("15:04"), s.Available, s.Kind, s.WaitlistLength})
		}
		want := []row{
			{"08:00", true, "", 0},
			{"10:00", false, "slot_full", 2},
			{"12:00", true, "", 0},
			{"14:00", true, "", 0},
			{"16:00", true, "", 0},
			{"18:00", true, "", 0},
			{"20:00", true, "", 0},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("slots mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("started slots are not bookable", func(t *testing.T) {
		f := newSlotsFixture(t)
		f.clock.Set(time.Date(2030, 1, 8, 11, 0, 0, 0, time.UTC))

		view, err := f.q.ListSlots(f.ctx, f.court.ID(), "2030-01-08")
		require.NoError(t, err)
		assert.False(t, view.Slots[0].Available)
		assert.False(t, view.Slots[1].Available, "10:00 slot is underway")
		assert.Equal(t, "slot already started", view.Slots[1].Reason)
		assert.True(t, view.Slots[2].Available)
	})

	t.Run("grid is cached per date", func(t *testing.T) {
		f := newSlotsFixture(t)
		_, err := f.q.ListSlots(f.ctx, f.court.ID(), "2030-01-08")
		require.NoError(t, err)
		_, err = f.q.ListSlots(f.ctx, f.court.ID(), "2030-01-08")
		require.NoError(t, err)
		assert.Equal(t, 2, f.cache.gets)
		assert.Equal(t, 1, f.cache.sets)
	})

	t.Run("cache failures fall back to generation", func(t *testing.T) {
		f := newSlotsFixture(t)
		f.cache.err = errors.New("redis down")
		view, err := f.q.ListSlots(f.ctx, f.court.ID(), "2030-01-08")
		require.NoError(t, err)
		assert.Len(t, view.Slots, 7)
	})

	t.Run("blackout marks every slot", func(t *testing.T) {
		f := newSlotsFixture(t)
		require.NoError(t, f.store.Within(f.ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Amenities().AddBlackoutDate(ctx, f.court.ID(), amenity.BlackoutDate{
				Date: caldate.New(2030, time.January, 8), Reason: "Holiday", AddedAt: f.clock.Now(),
			})
		}))
		view, err := f.q.ListSlots(f.ctx, f.court.ID(), "2030-01-08")
		require.NoError(t, err)
		for _, s := range view.Slots {
			assert.False(t, s.Available)
			assert.Equal(t, string(amenity.RejectionBlackout), s.Kind)
		}
	})

	t.Run("invalid date", func(t *testing.T) {
		f := newSlotsFixture(t)
		_, err := f.q.ListSlots(f.ctx, f.court.ID(), "08/01/2030")
		assert.ErrorIs(t, err, queries.ErrInvalidDate)
	})

	t.Run("unknown amenity", func(t *testing.T) {
		f := newSlotsFixture(t)
		_, err := f.q.ListSlots(f.ctx, uuid.New(), "2030-01-08")
		assert.ErrorIs(t, err, queries.ErrAmenityNotFound)
	})
}

func TestAmenityQueries_List(t *testing.T) {
	f := newSlotsFixture(t)
	other := builder.NewAmenityBuilder().With(func(b *builder.AmenityBuilder) { b.Name = "Pool" }).MustBuildDomain()
	require.NoError(t, f.store.Within(f.ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Amenities().Create(ctx, other)
	}))

	all, err := f.q.ListAmenities(f.ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	community := f.court.CommunityID()
	mine, err := f.q.ListAmenities(f.ctx, &community)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Tennis Court", mine[0].Name)
	assert.Equal(t, 120, mine[0].SlotDurationMinutes)
	assert.Equal(t, "08:00", mine[0].WeekdayStart)
	assert.NotNil(t, mine[0].BlackoutDates)

	got, err := f.q.GetAmenity(f.ctx, f.court.ID())
	require.NoError(t, err)
	assert.Equal(t, f.court.ID(), got.ID)
}
