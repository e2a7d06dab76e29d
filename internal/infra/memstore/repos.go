package memstore

import (
	"context"
	"sort"
	"time"

	"amenity-booking/internal/domain/amenity"
	"amenity-booking/internal/domain/booking"
	"amenity-booking/internal/domain/slot"
	"amenity-booking/internal/domain/waitlist"
	"amenity-booking/internal/infra"
	"amenity-booking/internal/pkg/caldate"
	"amenity-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type amenityRepo struct{ tx *memTx }

func (r *amenityRepo) Create(_ context.Context, a *amenity.Amenity) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := r.tx.st.amenities[a.ID()]; ok {
		return infra.NewRepoErr(infra.KindDuplicateKey, "amenity already exists")
	}
	r.tx.st.amenities[a.ID()] = amenityToRecord(a)
	return nil
}

func (r *amenityRepo) FindByID(_ context.Context, id uuid.UUID) (*amenity.Amenity, error) {
	rec, ok := r.tx.st.amenities[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "amenity not found")
	}
	return rec.toDomain(), nil
}

func (r *amenityRepo) List(_ context.Context, communityID *uuid.UUID) ([]*amenity.Amenity, error) {
	var out []*amenity.Amenity
	for _, rec := range r.tx.st.amenities {
		if communityID != nil && rec.communityID != *communityID {
			continue
		}
		out = append(out, rec.toDomain())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name() != out[j].Name() {
			return out[i].Name() < out[j].Name()
		}
		return out[i].ID().String() < out[j].ID().String()
	})
	return out, nil
}

func (r *amenityRepo) UpdateFields(_ context.Context, id uuid.UUID, f shared.AmenityFields) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	rec, ok := r.tx.st.amenities[id]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "amenity not found")
	}
	if f.Name != nil {
		rec.name = *f.Name
	}
	if f.MaxPeople != nil {
		rec.maxPeople = *f.MaxPeople
	}
	if f.SlotDuration != nil {
		rec.slotDuration = *f.SlotDuration
	}
	if f.WeekdayHours != nil {
		rec.weekdayHours = *f.WeekdayHours
	}
	if f.WeekendHours != nil {
		rec.weekendHours = *f.WeekendHours
	}
	if f.IsBlocked != nil {
		rec.isBlocked = *f.IsBlocked
	}
	if f.BlockReason != nil {
		rec.blockReason = nil
		if *f.BlockReason != "" {
			rec.blockReason = copyPtr(f.BlockReason)
		}
	}
	rec.updatedAt = f.UpdatedAt
	r.tx.st.amenities[id] = rec
	return nil
}

func (r *amenityRepo) AddBlackoutDate(_ context.Context, id uuid.UUID, b amenity.BlackoutDate) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	rec, ok := r.tx.st.amenities[id]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "amenity not found")
	}
	for _, existing := range rec.blackouts {
		if existing.Date == b.Date {
			return infra.NewRepoErr(infra.KindDuplicateKey, "blackout date already exists")
		}
	}
	blackouts := append(append([]amenity.BlackoutDate(nil), rec.blackouts...), b)
	sort.Slice(blackouts, func(i, j int) bool { return blackouts[i].Date.Before(blackouts[j].Date) })
	rec.blackouts = blackouts
	r.tx.st.amenities[id] = rec
	return nil
}

func (r *amenityRepo) RemoveBlackoutDate(_ context.Context, id uuid.UUID, d caldate.Date) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	rec, ok := r.tx.st.amenities[id]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "amenity not found")
	}
	kept := make([]amenity.BlackoutDate, 0, len(rec.blackouts))
	for _, b := range rec.blackouts {
		if b.Date != d {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(rec.blackouts) {
		return infra.NewRepoErr(infra.KindNotFound, "blackout date not found")
	}
	rec.blackouts = kept
	r.tx.st.amenities[id] = rec
	return nil
}

type bookingRepo struct{ tx *memTx }

func (r *bookingRepo) Create(ctx context.Context, b *booking.Booking) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := r.tx.st.bookings[b.ID()]; ok {
		return infra.NewRepoErr(infra.KindDuplicateKey, "booking already exists")
	}
	if b.Status().HoldsSlot() {
		if holder, _ := r.FindActiveOverlap(ctx, b.AmenityID(), b.Window()); holder != nil {
			return infra.NewRepoErr(infra.KindConflict, "slot already held")
		}
	}
	r.tx.st.bookings[b.ID()] = bookingToRecord(b)
	return nil
}

func (r *bookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	rec, ok := r.tx.st.bookings[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "booking not found")
	}
	return rec.toDomain(), nil
}

func (r *bookingRepo) Update(_ context.Context, b *booking.Booking) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := r.tx.st.bookings[b.ID()]; !ok {
		return infra.NewRepoErr(infra.KindNotFound, "booking not found")
	}
	r.tx.st.bookings[b.ID()] = bookingToRecord(b)
	return nil
}

func (r *bookingRepo) HasActiveOverlap(ctx context.Context, amenityID uuid.UUID, w slot.Window) (bool, error) {
	b, err := r.FindActiveOverlap(ctx, amenityID, w)
	return b != nil, err
}

func (r *bookingRepo) FindActiveOverlap(_ context.Context, amenityID uuid.UUID, w slot.Window) (*booking.Booking, error) {
	var found *bookingRecord
	for _, rec := range r.tx.st.bookings {
		if rec.amenityID != amenityID || !rec.status.HoldsSlot() || !rec.window.Overlaps(w) {
			continue
		}
		if found == nil || rec.window.Start().Before(found.window.Start()) {
			rec := rec
			found = &rec
		}
	}
	if found == nil {
		return nil, nil
	}
	return found.toDomain(), nil
}

func (r *bookingRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*booking.Booking, error) {
	return r.filter(func(rec bookingRecord) bool { return rec.userID == userID }), nil
}

func (r *bookingRepo) ListByAmenityRange(_ context.Context, amenityID uuid.UUID, from, to time.Time) ([]*booking.Booking, error) {
	return r.filter(func(rec bookingRecord) bool {
		return rec.amenityID == amenityID && rec.window.Start().Before(to) && rec.window.End().After(from)
	}), nil
}

func (r *bookingRepo) ListReminderDue(_ context.Context, from, to time.Time) ([]*booking.Booking, error) {
	return r.filter(func(rec bookingRecord) bool {
		start := rec.window.Start()
		return rec.status == booking.StatusConfirmed && rec.reminderSentAt == nil &&
			start.After(from) && !start.After(to)
	}), nil
}

func (r *bookingRepo) filter(keep func(rec bookingRecord) bool) []*booking.Booking {
	var recs []bookingRecord
	for _, rec := range r.tx.st.bookings {
		if keep(rec) {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].window.Start().Equal(recs[j].window.Start()) {
			return recs[i].window.Start().Before(recs[j].window.Start())
		}
		return recs[i].id.String() < recs[j].id.String()
	})
	out := make([]*booking.Booking, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.toDomain())
	}
	return out
}

type waitlistRepo struct{ tx *memTx }

func (r *waitlistRepo) Enqueue(_ context.Context, e *waitlist.Entry) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	for _, rec := range r.tx.st.entries {
		if rec.sameSlot(e.AmenityID(), e.Window()) && rec.userID == e.UserID() {
			return waitlist.ErrAlreadyWaitlisted
		}
	}
	r.tx.st.seq++
	e.AssignSequence(r.tx.st.seq)
	r.tx.st.entries[e.ID()] = entryRecord{
		id:        e.ID(),
		amenityID: e.AmenityID(),
		window:    e.Window(),
		userID:    e.UserID(),
		userEmail: e.UserEmail(),
		joinedAt:  e.JoinedAt(),
		seq:       e.Seq(),
	}
	return nil
}

func (r *waitlistRepo) FindByID(_ context.Context, id uuid.UUID) (*waitlist.Entry, error) {
	rec, ok := r.tx.st.entries[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "waitlist entry not found")
	}
	return rec.toDomain(), nil
}

func (r *waitlistRepo) slotEntries(amenityID uuid.UUID, w slot.Window) []*waitlist.Entry {
	var out []*waitlist.Entry
	for _, rec := range r.tx.st.entries {
		if rec.sameSlot(amenityID, w) {
			out = append(out, rec.toDomain())
		}
	}
	waitlist.SortFIFO(out)
	return out
}

func (r *waitlistRepo) Head(_ context.Context, amenityID uuid.UUID, w slot.Window) (*waitlist.Entry, error) {
	entries := r.slotEntries(amenityID, w)
	if len(entries) == 0 {
		return nil, nil
	}
	return entries[0], nil
}

func (r *waitlistRepo) Count(_ context.Context, amenityID uuid.UUID, w slot.Window) (int, error) {
	return len(r.slotEntries(amenityID, w)), nil
}

func (r *waitlistRepo) Position(_ context.Context, e *waitlist.Entry) (int, error) {
	pos := 1
	for _, other := range r.slotEntries(e.AmenityID(), e.Window()) {
		if other.Precedes(e) {
			pos++
		}
	}
	return pos, nil
}

func (r *waitlistRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*waitlist.Entry, error) {
	var out []*waitlist.Entry
	for _, rec := range r.tx.st.entries {
		if rec.userID == userID {
			out = append(out, rec.toDomain())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Window().Start().Equal(out[j].Window().Start()) {
			return out[i].Window().Start().Before(out[j].Window().Start())
		}
		return out[i].Seq() < out[j].Seq()
	})
	return out, nil
}

func (r *waitlistRepo) Remove(_ context.Context, id uuid.UUID) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := r.tx.st.entries[id]; !ok {
		return infra.NewRepoErr(infra.KindNotFound, "waitlist entry not found")
	}
	delete(r.tx.st.entries, id)
	return nil
}

func (r *waitlistRepo) RemoveSlot(_ context.Context, amenityID uuid.UUID, w slot.Window) (int, error) {
	return r.removeWhere(func(rec entryRecord) bool { return rec.sameSlot(amenityID, w) })
}

func (r *waitlistRepo) RemoveStartedBefore(_ context.Context, t time.Time) (int, error) {
	return r.removeWhere(func(rec entryRecord) bool { return !rec.window.Start().After(t) })
}

func (r *waitlistRepo) removeWhere(match func(rec entryRecord) bool) (int, error) {
	if err := r.tx.writable(); err != nil {
		return 0, err
	}
	n := 0
	for id, rec := range r.tx.st.entries {
		if match(rec) {
			delete(r.tx.st.entries, id)
			n++
		}
	}
	return n, nil
}

type offerRepo struct{ tx *memTx }

func (r *offerRepo) Create(_ context.Context, o *waitlist.Offer) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := r.tx.st.offers[o.BookingID()]; ok {
		return infra.NewRepoErr(infra.KindDuplicateKey, "promotion offer already exists")
	}
	if o.IsPending() {
		for _, rec := range r.tx.st.offers {
			if rec.status == waitlist.OfferPending && rec.amenityID == o.AmenityID() && rec.window.Equal(o.Window()) {
				return infra.NewRepoErr(infra.KindDuplicateKey, "slot already has a pending offer")
			}
		}
	}
	r.tx.st.offers[o.BookingID()] = offerToRecord(o)
	return nil
}

func (r *offerRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) (*waitlist.Offer, error) {
	rec, ok := r.tx.st.offers[bookingID]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "promotion offer not found")
	}
	return rec.toDomain(), nil
}

func (r *offerRepo) Update(_ context.Context, o *waitlist.Offer) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := r.tx.st.offers[o.BookingID()]; !ok {
		return infra.NewRepoErr(infra.KindNotFound, "promotion offer not found")
	}
	r.tx.st.offers[o.BookingID()] = offerToRecord(o)
	return nil
}

func (r *offerRepo) ListOverdue(_ context.Context, now time.Time) ([]*waitlist.Offer, error) {
	return r.filter(func(rec offerRecord) bool {
		return rec.status == waitlist.OfferPending && !now.Before(rec.deadline)
	}), nil
}

func (r *offerRepo) ListReminderDue(_ context.Context, now, before time.Time) ([]*waitlist.Offer, error) {
	return r.filter(func(rec offerRecord) bool {
		return rec.status == waitlist.OfferPending && rec.reminderSentAt == nil &&
			rec.deadline.After(now) && !rec.deadline.After(before)
	}), nil
}

func (r *offerRepo) filter(keep func(rec offerRecord) bool) []*waitlist.Offer {
	var recs []offerRecord
	for _, rec := range r.tx.st.offers {
		if keep(rec) {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].deadline.Before(recs[j].deadline) })
	out := make([]*waitlist.Offer, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.toDomain())
	}
	return out
}
