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

var entryColumns = []string{"id", "amenity_id", "slot_start", "slot_end", "user_id", "user_email", "joined_at", "seq"}

type WaitlistRepository struct {
	db DBTX
}

func NewWaitlistRepository(db DBTX) *WaitlistRepository {
	return &WaitlistRepository{db: db}
}

func slotEq(amenityID uuid.UUID, w slot.Window) squirrel.Eq {
	return squirrel.Eq{
		"amenity_id": pgconv.UUIDToPgtype(amenityID),
		"slot_start": w.Start(),
		"slot_end":   w.End(),
	}
}

func (r *WaitlistRepository) Enqueue(ctx context.Context, e *waitlist.Entry) error {
	query, args, err := psql.Insert("waitlist_entries").
		Columns("id", "amenity_id", "slot_start", "slot_end", "user_id", "user_email", "joined_at").
		Values(
			pgconv.UUIDToPgtype(e.ID()),
			pgconv.UUIDToPgtype(e.AmenityID()),
			e.Window().Start(),
			e.Window().End(),
			pgconv.UUIDToPgtype(e.UserID()),
			e.UserEmail(),
			e.JoinedAt(),
		).
		Suffix("RETURNING seq").
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build enqueue query", err)
	}

	var seq int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&seq); err != nil {
		wrapped := infra.WrapRepoErr("failed to enqueue waitlist entry", err)
		if infra.IsKind(wrapped, infra.KindDuplicateKey) {
			return waitlist.ErrAlreadyWaitlisted
		}
		return wrapped
	}
	e.AssignSequence(seq)
	return nil
}

func (r *WaitlistRepository) FindByID(ctx context.Context, id uuid.UUID) (*waitlist.Entry, error) {
	query, args, err := psql.Select(entryColumns...).From("waitlist_entries").
		Where(squirrel.Eq{"id": pgconv.UUIDToPgtype(id)}).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build waitlist query", err)
	}
	e, err := scanEntry(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "waitlist entry not found")
		}
		return nil, infra.WrapRepoErr("failed to get waitlist entry", err)
	}
	return e, nil
}

func (r *WaitlistRepository) Head(ctx context.Context, amenityID uuid.UUID, w slot.Window) (*waitlist.Entry, error) {
	query, args, err := psql.Select(entryColumns...).From("waitlist_entries").
		Where(slotEq(amenityID, w)).
		OrderBy("joined_at", "seq").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build waitlist head query", err)
	}
	e, err := scanEntry(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to get waitlist head", err)
	}
	return e, nil
}

func (r *WaitlistRepository) Count(ctx context.Context, amenityID uuid.UUID, w slot.Window) (int, error) {
	return r.count(ctx, psql.Select("count(*)").From("waitlist_entries").Where(slotEq(amenityID, w)))
}

func (r *WaitlistRepository) Position(ctx context.Context, e *waitlist.Entry) (int, error) {
	ahead, err := r.count(ctx, psql.Select("count(*)").From("waitlist_entries").
		Where(slotEq(e.AmenityID(), e.Window())).
		Where(squirrel.Expr("(joined_at, seq) < (?, ?)", e.JoinedAt(), e.Seq())))
	if err != nil {
		return 0, err
	}
	return ahead + 1, nil
}

func (r *WaitlistRepository) count(ctx context.Context, sb squirrel.SelectBuilder) (int, error) {
	query, args, err := sb.ToSql()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build waitlist count query", err)
	}
	var n int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, infra.WrapRepoErr("failed to count waitlist entries", err)
	}
	return n, nil
}

func (r *WaitlistRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*waitlist.Entry, error) {
	query, args, err := psql.Select(entryColumns...).From("waitlist_entries").
		Where(squirrel.Eq{"user_id": pgconv.UUIDToPgtype(userID)}).
		OrderBy("slot_start", "seq").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build waitlist list query", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list waitlist entries", err)
	}
	defer rows.Close()

	var out []*waitlist.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan waitlist entry", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate waitlist entries", err)
	}
	return out, nil
}

func (r *WaitlistRepository) Remove(ctx context.Context, id uuid.UUID) error {
	tag, err := exec(ctx, r.db, psql.Delete("waitlist_entries").Where(squirrel.Eq{"id": pgconv.UUIDToPgtype(id)}))
	if err != nil {
		return infra.WrapRepoErr("failed to remove waitlist entry", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "waitlist entry not found")
	}
	return nil
}

func (r *WaitlistRepository) RemoveSlot(ctx context.Context, amenityID uuid.UUID, w slot.Window) (int, error) {
	tag, err := exec(ctx, r.db, psql.Delete("waitlist_entries").Where(slotEq(amenityID, w)))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to purge waitlist slot", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *WaitlistRepository) RemoveStartedBefore(ctx context.Context, t time.Time) (int, error) {
	tag, err := exec(ctx, r.db, psql.Delete("waitlist_entries").Where(squirrel.LtOrEq{"slot_start": t}))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to purge started waitlist entries", err)
	}
	return int(tag.RowsAffected()), nil
}

func scanEntry(row pgx.Row) (*waitlist.Entry, error) {
	var (
		id, amenityID, userID pgtype.UUID
		start, end, joinedAt  time.Time
		email                 string
		seq                   int64
	)
	if err := row.Scan(&id, &amenityID, &start, &end, &userID, &email, &joinedAt, &seq); err != nil {
		return nil, err
	}
	w, err := slot.NewWindow(start, end)
	if err != nil {
		return nil, err
	}
	return waitlist.ReconstructEntry(
		pgconv.UUIDFromPgtype(id),
		pgconv.UUIDFromPgtype(amenityID),
		w,
		pgconv.UUIDFromPgtype(userID),
		email,
		joinedAt,
		seq,
	), nil
}
