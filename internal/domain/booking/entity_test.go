//go:build unit

package booking_test

import (
	"testing"
	"time"

	"amenity-booking/internal/domain/booking"
	"amenity-booking/internal/pkg/errs"
	"amenity-booking/internal/pkg/ptr"
	"amenity-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	start = time.Date(2030, 1, 8, 10, 0, 0, 0, time.UTC)
	end   = start.Add(2 * time.Hour)
)

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name   string
		stored booking.Status
		now    time.Time
		want   booking.DisplayStatus
	}{
		{"開始前の確定予約はupcoming", booking.StatusConfirmed, start.Add(-time.Minute), booking.DisplayUpcoming},
		{"開始時刻ちょうどはactive", booking.StatusConfirmed, start, booking.DisplayActive},
		{"終了時刻ちょうどもactive", booking.StatusConfirmed, end, booking.DisplayActive},
		{"終了後はexpired", booking.StatusConfirmed, end.Add(time.Second), booking.DisplayExpired},
		{"開始前の確認待ち", booking.StatusPendingConfirmation, start.Add(-time.Hour), booking.DisplayPendingConfirmation},
		{"開始後の確認待ちはexpired", booking.StatusPendingConfirmation, start, booking.DisplayExpired},
		{"キャンセル済みは時刻より優先", booking.StatusCancelled, start.Add(-time.Hour), booking.DisplayCancelled},
		{"完了済みは時刻より優先", booking.StatusCompleted, start.Add(-time.Hour), booking.DisplayCompleted},
		{"アーカイブ済みは時刻より優先", booking.StatusArchived, start, booking.DisplayArchived},
		{"保存済みのexpired", booking.StatusExpired, start.Add(-time.Hour), booking.DisplayExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booking.DeriveStatus(tt.stored, start, end, tt.now))
		})
	}
}

func TestNewConfirmedBooking(t *testing.T) {
	t.Run("参加者未指定なら予約者のみ", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		actual, err := b.BuildConfirmed()
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, booking.StatusConfirmed, actual.Status())
		assert.Equal(t, []uuid.UUID{b.UserID}, actual.Attendees())
		require.NotNil(t, actual.AccessCode())
		assert.Equal(t, "ABCD2345", *actual.AccessCode())
		assert.Equal(t, actual.CreatedAt(), actual.UpdatedAt())
	})

	t.Run("参加者の検証", func(t *testing.T) {
		dup := uuid.New()
		tests := []struct {
			name   string
			mutate func(*builder.BookingBuilder)
			errIs  error
		}{
			{
				name: "定員ちょうど",
				mutate: func(b *builder.BookingBuilder) {
					b.Attendees = []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
				},
			},
			{
				name: "定員超過",
				mutate: func(b *builder.BookingBuilder) {
					b.Attendees = []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New()}
				},
				errIs: booking.ErrTooManyAttendees,
			},
			{
				name:   "参加者の重複",
				mutate: func(b *builder.BookingBuilder) { b.Attendees = []uuid.UUID{dup, dup} },
				errIs:  booking.ErrDuplicateAttendee,
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := builder.NewBookingBuilder().With(tt.mutate).BuildConfirmed()
				if tt.errIs == nil {
					assert.NoError(t, err)
					return
				}
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.errIs)
				assert.True(t, errs.Is(err, errs.ErrValidation))
			})
		}
	})

	t.Run("確認待ちの予約は参加者指定を無視", func(t *testing.T) {
		b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Attendees = []uuid.UUID{uuid.New(), uuid.New()}
		})
		actual, err := b.BuildPending()
		require.NoError(t, err)
		assert.Equal(t, booking.StatusPendingConfirmation, actual.Status())
		assert.Equal(t, []uuid.UUID{b.UserID}, actual.Attendees())
		assert.Nil(t, actual.AccessCode())
	})
}

func TestBookingTransitions(t *testing.T) {
	now := start.Add(-24 * time.Hour)

	t.Run("キャンセル", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuildConfirmed()
		by := uuid.New()
		require.NoError(t, b.Cancel(by, ptr.To("  rain  "), now))
		assert.Equal(t, booking.StatusCancelled, b.Status())
		assert.Equal(t, by, *b.CancelledBy())
		assert.Equal(t, "rain", *b.CancellationReason())

		err := b.Cancel(by, nil, now)
		assert.ErrorIs(t, err, booking.ErrInvalidTransition)
		assert.True(t, errs.Is(err, errs.ErrConflict))
	})

	t.Run("空白のキャンセル理由は破棄", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuildConfirmed()
		require.NoError(t, b.Cancel(uuid.New(), ptr.To("   "), now))
		assert.Nil(t, b.CancellationReason())
	})

	t.Run("確定と期限切れは確認待ちのみ", func(t *testing.T) {
		pending, err := builder.NewBookingBuilder().BuildPending()
		require.NoError(t, err)
		require.NoError(t, pending.Confirm("ZZZZ2222", now))
		assert.Equal(t, booking.StatusConfirmed, pending.Status())
		assert.Equal(t, "ZZZZ2222", *pending.AccessCode())

		assert.ErrorIs(t, pending.Confirm("ZZZZ2222", now), booking.ErrInvalidTransition)
		assert.ErrorIs(t, pending.ExpireOffer(now), booking.ErrInvalidTransition)

		other, err := builder.NewBookingBuilder().BuildPending()
		require.NoError(t, err)
		require.NoError(t, other.ExpireOffer(now))
		assert.Equal(t, booking.StatusExpired, other.Status())
	})

	t.Run("チェックイン可能時間", func(t *testing.T) {
		grace := 15 * time.Minute
		tests := []struct {
			name  string
			at    time.Time
			errIs error
		}{
			{"猶予開始ちょうど", start.Add(-grace), nil},
			{"猶予より前", start.Add(-grace - time.Second), booking.ErrOutsideCheckInWindow},
			{"利用中", start.Add(time.Hour), nil},
			{"終了後の猶予内", end.Add(grace), nil},
			{"終了後の猶予超過", end.Add(grace + time.Second), booking.ErrOutsideCheckInWindow},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				b := builder.NewBookingBuilder().MustBuildConfirmed()
				err := b.CheckIn(tt.at, grace)
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
					assert.False(t, b.IsCheckedIn())
					return
				}
				require.NoError(t, err)
				assert.True(t, b.IsCheckedIn())
			})
		}
	})

	t.Run("二重チェックインは最初の時刻を保持", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuildConfirmed()
		require.NoError(t, b.CheckIn(start, time.Minute))
		require.NoError(t, b.CheckIn(start.Add(time.Minute), time.Minute))
		assert.True(t, b.CheckedInAt().Equal(start))
	})

	t.Run("完了は冪等", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuildConfirmed()
		require.NoError(t, b.Complete(end))
		require.NoError(t, b.Complete(end))
		assert.Equal(t, booking.StatusCompleted, b.Status())
	})

	t.Run("開始前は完了できない", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuildConfirmed()
		assert.ErrorIs(t, b.Complete(start.Add(-time.Second)), booking.ErrStillInProgress)
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		assert.True(t, b.Status().HoldsSlot())

		require.NoError(t, b.Complete(start))
		assert.Equal(t, booking.StatusCompleted, b.Status())
	})

	t.Run("アーカイブ", func(t *testing.T) {
		upcoming := builder.NewBookingBuilder().MustBuildConfirmed()
		err := upcoming.Archive(now)
		assert.ErrorIs(t, err, booking.ErrStillInProgress)

		active := builder.NewBookingBuilder().MustBuildConfirmed()
		assert.ErrorIs(t, active.Archive(start.Add(time.Hour)), booking.ErrStillInProgress)

		past := builder.NewBookingBuilder().MustBuildConfirmed()
		require.NoError(t, past.Archive(end.Add(time.Minute)))
		assert.Equal(t, booking.StatusArchived, past.Status())
		require.NoError(t, past.Archive(end.Add(time.Hour)))

		cancelled := builder.NewBookingBuilder().MustBuildConfirmed()
		require.NoError(t, cancelled.Cancel(uuid.New(), nil, now))
		require.NoError(t, cancelled.Archive(now))
	})
}

func TestNewAccessCode(t *testing.T) {
	seen := map[string]struct{}{}
	for range 50 {
		code, err := booking.NewAccessCode()
		require.NoError(t, err)
		assert.Len(t, code, 8)
		assert.Regexp(t, `^[A-Z2-7]{8}$`, code)
		seen[code] = struct{}{}
	}
	assert.Greater(t, len(seen), 45)
}
