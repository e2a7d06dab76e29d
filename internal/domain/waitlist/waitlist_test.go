//go:build unit

package waitlist_test

import (
	"testing"
	"time"

	"amenity-booking/internal/domain/slot"
	"amenity-booking/internal/domain/waitlist"
	"amenity-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	joined = time.Date(2030, 1, 5, 9, 0, 0, 0, time.UTC)
	window = slot.MustWindow(time.Date(2030, 1, 8, 10, 0, 0, 0, time.UTC), time.Date(2030, 1, 8, 12, 0, 0, 0, time.UTC))
)

func newEntry(at time.Time, seq int64) *waitlist.Entry {
	return waitlist.ReconstructEntry(uuid.New(), uuid.New(), window, uuid.New(), "w@example.com", at, seq)
}

func TestSortFIFO(t *testing.T) {
	first := newEntry(joined, 3)
	sameTimeEarlierSeq := newEntry(joined.Add(time.Minute), 1)
	sameTimeLaterSeq := newEntry(joined.Add(time.Minute), 2)
	last := newEntry(joined.Add(time.Hour), 0)

	entries := []*waitlist.Entry{last, sameTimeLaterSeq, first, sameTimeEarlierSeq}
	waitlist.SortFIFO(entries)

	assert.Equal(t, []uuid.UUID{first.ID(), sameTimeEarlierSeq.ID(), sameTimeLaterSeq.ID(), last.ID()},
		[]uuid.UUID{entries[0].ID(), entries[1].ID(), entries[2].ID(), entries[3].ID()})
}

func TestNewEntry(t *testing.T) {
	e := waitlist.NewEntry(uuid.New(), window, uuid.New(), "  w@example.com ", joined)
	assert.Equal(t, "w@example.com", e.UserEmail())
	assert.Zero(t, e.Seq())
	e.AssignSequence(7)
	assert.Equal(t, int64(7), e.Seq())
}

func TestOffer(t *testing.T) {
	ttl := 2 * time.Hour
	offerAt := joined.Add(24 * time.Hour)

	newOffer := func() *waitlist.Offer {
		return waitlist.NewOffer(newEntry(joined, 1), uuid.New(), offerAt, ttl)
	}

	t.Run("offer copies the entry and sets the deadline", func(t *testing.T) {
		e := newEntry(joined, 1)
		bookingID := uuid.New()
		o := waitlist.NewOffer(e, bookingID, offerAt, ttl)

		assert.Equal(t, bookingID, o.BookingID())
		assert.Equal(t, e.ID(), o.WaitlistEntryID())
		assert.Equal(t, e.UserID(), o.UserID())
		assert.True(t, o.Window().Equal(e.Window()))
		assert.Equal(t, offerAt.Add(ttl), o.Deadline())
		assert.True(t, o.IsPending())
	})

	tests := []struct {
		name   string
		act    func(*waitlist.Offer, time.Time) error
		at     time.Time
		status waitlist.OfferStatus
		errIs  error
	}{
		{"confirm before deadline", (*waitlist.Offer).Confirm, offerAt.Add(ttl - time.Second), waitlist.OfferConfirmed, nil},
		{"confirm at deadline expires", (*waitlist.Offer).Confirm, offerAt.Add(ttl), waitlist.OfferPending, waitlist.ErrOfferExpired},
		{"decline before deadline", (*waitlist.Offer).Decline, offerAt, waitlist.OfferDeclined, nil},
		{"decline after deadline expires", (*waitlist.Offer).Decline, offerAt.Add(3 * time.Hour), waitlist.OfferPending, waitlist.ErrOfferExpired},
		{"expire ignores the clock", (*waitlist.Offer).Expire, offerAt, waitlist.OfferExpired, nil},
		{"withdraw", (*waitlist.Offer).Withdraw, offerAt, waitlist.OfferDeclined, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newOffer()
			err := tt.act(o, tt.at)
			if tt.errIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.errIs)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.status, o.Status())
		})
	}

	t.Run("expired offer maps to the expired category", func(t *testing.T) {
		o := newOffer()
		err := o.Confirm(offerAt.Add(ttl))
		assert.True(t, errs.Is(err, errs.ErrExpiredOffer))
	})

	t.Run("resolved offers reject further transitions", func(t *testing.T) {
		o := newOffer()
		require.NoError(t, o.Confirm(offerAt))
		for _, act := range []func(time.Time) error{o.Confirm, o.Decline, o.Expire, o.Withdraw} {
			err := act(offerAt)
			assert.ErrorIs(t, err, waitlist.ErrOfferNotPending)
			assert.True(t, errs.Is(err, errs.ErrConflict))
		}
	})

	t.Run("overdue", func(t *testing.T) {
		o := newOffer()
		assert.False(t, o.IsOverdue(offerAt))
		assert.True(t, o.IsOverdue(o.Deadline()))
		require.NoError(t, o.Expire(o.Deadline()))
		assert.False(t, o.IsOverdue(o.Deadline().Add(time.Hour)), "resolved offers are never overdue")
	})
}
