package repository

import (
	"context"
	"time"

	"amenity-booking/internal/domain/booking"
	"amenity-booking/internal/domain/slot"
	"amenity-booking/internal/infra"
	"amenity-booking/internal/pkg/pgconv"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var bookingColumns = []string{
	"id", "amenity_id", "community_id", "user_id", "user_email", "start_time", "end_time",
	"attendees", "status", "access_code", "checked_in_at", "cancelled_by", "cancellation_reason",
	"reminder_sent_at", "created_at", "updated_at",
}

type BookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	q := psql.Insert("bookings").Columns(bookingColumns...).Values(
		pgconv.UUIDToPgtype(b.ID()),
		pgconv.UUIDToPgtype(b.AmenityID()),
		pgconv.UUIDToPgtype(b.CommunityID()),
		pgconv.UUIDToPgtype(b.UserID()),
		b.UserEmail(),
		b.StartTime(),
		b.EndTime(),
		pgconv.UUIDsToPgtype(b.Attendees()),
		b.Status().String(),
		pgconv.StringPtrToPgtype(b.AccessCode()),
		pgconv.TimePtrToPgtype(b.CheckedInAt()),
		pgconv.UUIDPtrToPgtype(b.CancelledBy()),
		pgconv.StringPtrToPgtype(b.CancellationReason()),
		pgconv.TimePtrToPgtype(b.ReminderSentAt()),
		b.CreatedAt(),
		b.UpdatedAt(),
	)
	if _, err := exec(ctx, r.db, q); err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	query, args, err := psql.Select(bookingColumns...).From("bookings").
		Where(squirrel.Eq{"id": pgconv.UUIDToPgtype(id)}).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking query", err)
	}
	b, err := scanBooking(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "booking not found")
		}
		return nil, infra.WrapRepoErr("failed to get booking", err)
	}
	return b, nil
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	q := psql.Update("bookings").
		Set("status", b.Status().String()).
		Set("attendees", pgconv.UUIDsToPgtype(b.Attendees())).
		Set("access_code", pgconv.StringPtrToPgtype(b.AccessCode())).
		Set("checked_in_at", pgconv.TimePtrToPgtype(b.CheckedInAt())).
		Set("cancelled_by", pgconv.UUIDPtrToPgtype(b.CancelledBy())).
		Set("cancellation_reason", pgconv.StringPtrToPgtype(b.CancellationReason())).
		Set("reminder_sent_at", pgconv.TimePtrToPgtype(b.ReminderSentAt())).
		Set("updated_at", b.UpdatedAt()).
		Where(squirrel.Eq{"id": pgconv.UUIDToPgtype(b.ID())})
	tag, err := exec(ctx, r.db, q)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "booking not found")
	}
	return nil
}

func (r *BookingRepository) HasActiveOverlap(ctx context.Context, amenityID uuid.UUID, w slot.Window) (bool, error) {
	b, err := r.FindActiveOverlap(ctx, amenityID, w)
	if err != nil {
		return false, err
	}
	return b != nil, nil
}

func (r *BookingRepository) FindActiveOverlap(ctx context.Context, amenityID uuid.UUID, w slot.Window) (*booking.Booking, error) {
	query, args, err := psql.Select(bookingColumns...).From("bookings").
		Where(squirrel.Eq{"amenity_id": pgconv.UUIDToPgtype(amenityID)}).
		Where(slotHolding).
		Where(squirrel.Lt{"start_time": w.End()}).
		Where(squirrel.Gt{"end_time": w.Start()}).
		OrderBy("start_time").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build overlap query", err)
	}
	b, err := scanBooking(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to check overlap", err)
	}
	return b, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*booking.Booking, error) {
	return r.list(ctx, psql.Select(bookingColumns...).From("bookings").
		Where(squirrel.Eq{"user_id": pgconv.UUIDToPgtype(userID)}).
		OrderBy("start_time", "id"))
}

func (r *BookingRepository) ListByAmenityRange(ctx context.Context, amenityID uuid.UUID, from, to time.Time) ([]*booking.Booking, error) {
	return r.list(ctx, psql.Select(bookingColumns...).From("bookings").
		Where(squirrel.Eq{"amenity_id": pgconv.UUIDToPgtype(amenityID)}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("start_time", "id"))
}

func (r *BookingRepository) ListReminderDue(ctx context.Context, from, to time.Time) ([]*booking.Booking, error) {
	return r.list(ctx, psql.Select(bookingColumns...).From("bookings").
		Where(squirrel.Eq{"status": booking.StatusConfirmed.String(), "reminder_sent_at": nil}).
		Where(squirrel.Gt{"start_time": from}).
		Where(squirrel.LtOrEq{"start_time": to}).
		OrderBy("start_time", "id"))
}

func (r *BookingRepository) list(ctx context.Context, sb squirrel.SelectBuilder) ([]*booking.Booking, error) {
	query, args, err := sb.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking list query", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var out []*booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}
	return out, nil
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		id, amenityID, communityID, userID, cancelledBy pgtype.UUID
		email, status                                   string
		start, end, createdAt, updatedAt                time.Time
		attendees                                       []pgtype.UUID
		accessCode, reason                              pgtype.Text
		checkedInAt, reminderSentAt                     pgtype.Timestamptz
	)
	err := row.Scan(
		&id, &amenityID, &communityID, &userID, &email, &start, &end,
		&attendees, &status, &accessCode, &checkedInAt, &cancelledBy, &reason,
		&reminderSentAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	w, err := slot.NewWindow(start, end)
	if err != nil {
		return nil, err
	}
	return booking.ReconstructBooking(
		pgconv.UUIDFromPgtype(id),
		pgconv.UUIDFromPgtype(amenityID),
		pgconv.UUIDFromPgtype(communityID),
		pgconv.UUIDFromPgtype(userID),
		email,
		w,
		pgconv.UUIDsFromPgtype(attendees),
		booking.Status(status),
		pgconv.StringPtrFromPgtype(accessCode),
		pgconv.TimePtrFromPgtype(checkedInAt),
		pgconv.UUIDPtrFromPgtype(cancelledBy),
		pgconv.StringPtrFromPgtype(reason),
		pgconv.TimePtrFromPgtype(reminderSentAt),
		createdAt,
		updatedAt,
	), nil
}
