//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"amenity-booking/internal/domain/slot"
	"amenity-booking/internal/infra/memstore"
	"amenity-booking/internal/pkg/caldate"
	"amenity-booking/internal/pkg/clock"
	"amenity-booking/internal/pkg/errs"
	"amenity-booking/internal/pkg/ptr"
	"amenity-booking/internal/usecase/commands"
	"amenity-booking/internal/usecase/shared"
	"amenity-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSlotCache struct {
	mock.Mock
}

func (m *MockSlotCache) Get(ctx context.Context, amenityID uuid.UUID, date caldate.Date) ([]slot.Window, bool, error) {
	args := m.Called(ctx, amenityID, date)
	return args.Get(0).([]slot.Window), args.Bool(1), args.Error(2)
}

func (m *MockSlotCache) Set(ctx context.Context, amenityID uuid.UUID, date caldate.Date, slots []slot.Window) error {
	args := m.Called(ctx, amenityID, date, slots)
	return args.Error(0)
}

func (m *MockSlotCache) Invalidate(ctx context.Context, amenityID uuid.UUID) error {
	args := m.Called(ctx, amenityID)
	return args.Error(0)
}

func newAmenityCommands(t *testing.T, c shared.SlotCache) (commands.AmenityCommands, uuid.UUID) {
	t.Helper()
	store := memstore.New()
	clk := clock.NewMockClock(time.Date(2030, 1, 5, 9, 0, 0, 0, time.UTC))
	cmds := commands.NewAmenityCommands(store, c, shared.DefaultSettings(), clk, slog.New(slog.NewTextHandler(io.Discard, nil)))

	admin := builder.NewActorBuilder().Admin().Build()
	a, err := cmds.CreateAmenity(context.Background(), admin, builder.NewAmenityBuilder().BuildCreateRequestDTO().ToInput())
	require.NoError(t, err)
	return cmds, a.ID()
}

func TestUpdateAmenity_SlotCache(t *testing.T) {
	ctx := context.Background()
	admin := builder.NewActorBuilder().Admin().Build()

	tests := []struct {
		name           string
		in             commands.UpdateAmenityInput
		wantInvalidate bool
	}{
		{
			name:           "name only change keeps the cache",
			in:             commands.UpdateAmenityInput{Name: ptr.To("Court A")},
			wantInvalidate: false,
		},
		{
			name:           "slot duration change",
			in:             commands.UpdateAmenityInput{SlotDurationMinutes: ptr.To(60)},
			wantInvalidate: true,
		},
		{
			name:           "weekend hours change",
			in:             commands.UpdateAmenityInput{WeekendHours: &commands.HoursInput{Start: "10:00", End: "18:00"}},
			wantInvalidate: true,
		},
		{
			name:           "same hours again",
			in:             commands.UpdateAmenityInput{WeekdayHours: &commands.HoursInput{Start: "08:00", End: "22:00"}},
			wantInvalidate: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := new(MockSlotCache)
			cmds, id := newAmenityCommands(t, c)
			if tt.wantInvalidate {
				c.On("Invalidate", mock.Anything, id).Return(nil).Once()
			}

			_, err := cmds.UpdateAmenity(ctx, admin, id, tt.in)
			require.NoError(t, err)
			c.AssertExpectations(t)
			if !tt.wantInvalidate {
				c.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
			}
		})
	}

	t.Run("invalidation failure does not fail the update", func(t *testing.T) {
		c := new(MockSlotCache)
		cmds, id := newAmenityCommands(t, c)
		c.On("Invalidate", mock.Anything, id).Return(assert.AnError)

		a, err := cmds.UpdateAmenity(ctx, admin, id, commands.UpdateAmenityInput{SlotDurationMinutes: ptr.To(60)})
		require.NoError(t, err)
		assert.Equal(t, time.Hour, a.SlotDuration())
	})
}

func TestAmenityCommands_Admin(t *testing.T) {
	ctx := context.Background()
	cmds, id := newAmenityCommands(t, new(MockSlotCache))
	admin := builder.NewActorBuilder().Admin().Build()
	resident := builder.NewActorBuilder().Build()

	t.Run("residents cannot edit", func(t *testing.T) {
		_, err := cmds.SetBlocked(ctx, resident, id, true, "maintenance")
		assert.ErrorIs(t, err, commands.ErrAdminRequired)
		assert.True(t, errs.Is(err, errs.ErrAuthorization))
	})

	t.Run("block and unblock", func(t *testing.T) {
		a, err := cmds.SetBlocked(ctx, admin, id, true, "maintenance")
		require.NoError(t, err)
		assert.True(t, a.IsBlocked())
		require.NotNil(t, a.BlockReason())
		assert.Equal(t, "maintenance", *a.BlockReason())

		a, err = cmds.SetBlocked(ctx, admin, id, false, "")
		require.NoError(t, err)
		assert.False(t, a.IsBlocked())
	})

	t.Run("blackout dates accept any representation", func(t *testing.T) {
		a, err := cmds.AddBlackoutDate(ctx, admin, id, time.Date(2030, 1, 8, 15, 0, 0, 0, time.UTC), "tournament")
		require.NoError(t, err)
		require.Len(t, a.BlackoutDates(), 1)
		assert.Equal(t, "2030-01-08", a.BlackoutDates()[0].Date.String())

		_, err = cmds.AddBlackoutDate(ctx, admin, id, "not a date", "")
		assert.True(t, errs.Is(err, errs.ErrValidation))

		a, err = cmds.RemoveBlackoutDate(ctx, admin, id, "2030-01-08")
		require.NoError(t, err)
		assert.Empty(t, a.BlackoutDates())

		_, err = cmds.RemoveBlackoutDate(ctx, admin, id, "08/01/2030")
		assert.ErrorIs(t, err, commands.ErrInvalidDate)
	})

	t.Run("unknown amenity", func(t *testing.T) {
		_, err := cmds.SetBlocked(ctx, admin, uuid.New(), true, "")
		assert.ErrorIs(t, err, commands.ErrAmenityNotFound)
	})
}
