package waitlist

import (
	"errors"
	"sort"
	"strings"
	"time"

	"amenity-booking/internal/domain/slot"
	"amenity-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrAlreadyWaitlisted = errs.Mark(errors.New("user is already on the waitlist for this slot"), errs.ErrConflict)

type Entry struct {
	id        uuid.UUID
	amenityID uuid.UUID
	window    slot.Window
	userID    uuid.UUID
	userEmail string
	joinedAt  time.Time
	seq       int64
}

func NewEntry(amenityID uuid.UUID, window slot.Window, userID uuid.UUID, userEmail string, now time.Time) *Entry {
	return &Entry{
		id:        uuid.New(),
		amenityID: amenityID,
		window:    window,
		userID:    userID,
		userEmail: strings.TrimSpace(userEmail),
		joinedAt:  now,
	}
}

func ReconstructEntry(id, amenityID uuid.UUID, window slot.Window, userID uuid.UUID, userEmail string, joinedAt time.Time, seq int64) *Entry {
	return &Entry{
		id:        id,
		amenityID: amenityID,
		window:    window,
		userID:    userID,
		userEmail: userEmail,
		joinedAt:  joinedAt,
		seq:       seq,
	}
}

func (e *Entry) ID() uuid.UUID        { return e.id }
func (e *Entry) AmenityID() uuid.UUID { return e.amenityID }
func (e *Entry) Window() slot.Window  { return e.window }
func (e *Entry) UserID() uuid.UUID    { return e.userID }
func (e *Entry) UserEmail() string    { return e.userEmail }
func (e *Entry) JoinedAt() time.Time  { return e.joinedAt }
func (e *Entry) Seq() int64           { return e.seq }

// AssignSequence is called by the store when the entry is appended.
func (e *Entry) AssignSequence(seq int64) {
	e.seq = seq
}

// Precedes orders entries by join time, then by insertion sequence so equal
// timestamps still give strict FIFO.
func (e *Entry) Precedes(o *Entry) bool {
	if !e.joinedAt.Equal(o.joinedAt) {
		return e.joinedAt.Before(o.joinedAt)
	}
	return e.seq < o.seq
}

func SortFIFO(entries []*Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Precedes(entries[j])
	})
}
