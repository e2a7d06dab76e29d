package repository

import (
	"context"
	"time"

	"amenity-booking/internal/domain/slot"
	"amenity-booking/internal/domain/waitlist"
	"amenity-booking/internal/infra"
	"amenity-booking/internal/pkg/pgconv"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var offerColumns = []string{
	"booking_id", "waitlist_entry_id", "amenity_id", "slot_start", "slot_end", "user_id", "user_email",
	"deadline", "status", "reminder_sent_at", "created_at", "updated_at",
}

type OfferRepository struct {
	db DBTX
}

func NewOfferRepository(db DBTX) *OfferRepository {
	return &OfferRepository{db: db}
}

func (r *OfferRepository) Create(ctx context.Context, o *waitlist.Offer) error {
	q := psql.Insert("promotion_offers").Columns(offerColumns...).Values(
		pgconv.UUIDToPgtype(o.BookingID()),
		pgconv.UUIDToPgtype(o.WaitlistEntryID()),
		pgconv.UUIDToPgtype(o.AmenityID()),
		o.Window().Start(),
		o.Window().End(),
		pgconv.UUIDToPgtype(o.UserID()),
		o.UserEmail(),
		o.Deadline(),
		o.Status().String(),
		pgconv.TimePtrToPgtype(o.ReminderSentAt()),
		o.CreatedAt(),
		o.UpdatedAt(),
	)
	if _, err := exec(ctx, r.db, q); err != nil {
		return infra.WrapRepoErr("failed to create promotion offer", err)
	}
	return nil
}

func (r *OfferRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*waitlist.Offer, error) {
	query, args, err := psql.Select(offerColumns...).From("promotion_offers").
		Where(squirrel.Eq{"booking_id": pgconv.UUIDToPgtype(bookingID)}).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build offer query", err)
	}
	o, err := scanOffer(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "promotion offer not found")
		}
		return nil, infra.WrapRepoErr("failed to get promotion offer", err)
	}
	return o, nil
}

func (r *OfferRepository) Update(ctx context.Context, o *waitlist.Offer) error {
	q := psql.Update("promotion_offers").
		Set("status", o.Status().String()).
		Set("reminder_sent_at", pgconv.TimePtrToPgtype(o.ReminderSentAt())).
		Set("updated_at", o.UpdatedAt()).
		Where(squirrel.Eq{"booking_id": pgconv.UUIDToPgtype(o.BookingID())})
	tag, err := exec(ctx, r.db, q)
	if err != nil {
		return infra.WrapRepoErr("failed to update promotion offer", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "promotion offer not found")
	}
	return nil
}

func (r *OfferRepository) ListOverdue(ctx context.Context, now time.Time) ([]*waitlist.Offer, error) {
	return r.list(ctx, psql.Select(offerColumns...).From("promotion_offers").
		Where(squirrel.Eq{"status": waitlist.OfferPending.String()}).
		Where(squirrel.LtOrEq{"deadline": now}).
		OrderBy("deadline", "booking_id"))
}

func (r *OfferRepository) ListReminderDue(ctx context.Context, now, before time.Time) ([]*waitlist.Offer, error) {
	return r.list(ctx, psql.Select(offerColumns...).From("promotion_offers").
		Where(squirrel.Eq{"status": waitlist.OfferPending.String(), "reminder_sent_at": nil}).
		Where(squirrel.Gt{"deadline": now}).
		Where(squirrel.LtOrEq{"deadline": before}).
		OrderBy("deadline", "booking_id"))
}

func (r *OfferRepository) list(ctx context.Context, sb squirrel.SelectBuilder) ([]*waitlist.Offer, error) {
	query, args, err := sb.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build offer list query", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list promotion offers", err)
	}
	defer rows.Close()

	var out []*waitlist.Offer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan promotion offer", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate promotion offers", err)
	}
	return out, nil
}

func scanOffer(row pgx.Row) (*waitlist.Offer, error) {
	var (
		bookingID, entryID, amenityID, userID      pgtype.UUID
		start, end, deadline, createdAt, updatedAt time.Time
		email, status                              string
		reminderSentAt                             pgtype.Timestamptz
	)
	err := row.Scan(
		&bookingID, &entryID, &amenityID, &start, &end, &userID, &email,
		&deadline, &status, &reminderSentAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	w, err := slot.NewWindow(start, end)
	if err != nil {
		return nil, err
	}
	return waitlist.ReconstructOffer(
		pgconv.UUIDFromPgtype(bookingID),
		pgconv.UUIDFromPgtype(entryID),
		pgconv.UUIDFromPgtype(amenityID),
		w,
		pgconv.UUIDFromPgtype(userID),
		email,
		deadline,
		waitlist.OfferStatus(status),
		pgconv.TimePtrFromPgtype(reminderSentAt),
		createdAt,
		updatedAt,
	), nil
}
