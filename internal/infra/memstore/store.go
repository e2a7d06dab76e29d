package memstore

import (
	"context"
	"errors"
	"sync"

	"amenity-booking/internal/domain/slot"
	"amenity-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var errReadOnly = errors.New("write attempted in read-only transaction")

// Store keeps everything in process memory. Transactions are serialized and
// run against a private copy that replaces the committed state only on success.
type Store struct {
	mu    sync.Mutex
	state *state
}

func New() *Store {
	return &Store{state: newState()}
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(ctx, &memTx{st: work}); err != nil {
		return err
	}
	s.state = work
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(ctx, &memTx{st: s.state, readOnly: true})
}

// Reset drops all data. Used by tests.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = newState()
}

type memTx struct {
	st       *state
	readOnly bool
}

func (t *memTx) writable() error {
	if t.readOnly {
		return errReadOnly
	}
	return nil
}

func (t *memTx) Amenities() shared.AmenityRepository { return &amenityRepo{tx: t} }
func (t *memTx) Bookings() shared.BookingRepository  { return &bookingRepo{tx: t} }
func (t *memTx) Waitlist() shared.WaitlistRepository { return &waitlistRepo{tx: t} }
func (t *memTx) Offers() shared.OfferRepository      { return &offerRepo{tx: t} }

// LockSlot is a no-op: transactions already run one at a time.
func (t *memTx) LockSlot(context.Context, uuid.UUID, slot.Window) error {
	return nil
}
