package repository

import (
	"context"
	"time"

	"amenity-booking/internal/domain/amenity"
	"amenity-booking/internal/infra"
	"amenity-booking/internal/pkg/caldate"
	"amenity-booking/internal/pkg/pgconv"
	"amenity-booking/internal/usecase/shared"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var amenityColumns = []string{
	"id", "community_id", "name", "max_people", "slot_duration_minutes",
	"weekday_start_minutes", "weekday_end_minutes", "weekend_start_minutes", "weekend_end_minutes",
	"is_blocked", "block_reason", "created_at", "updated_at",
}

type AmenityRepository struct {
	db DBTX
}

func NewAmenityRepository(db DBTX) *AmenityRepository {
	return &AmenityRepository{db: db}
}

func (r *AmenityRepository) Create(ctx context.Context, a *amenity.Amenity) error {
	q := psql.Insert("amenities").Columns(amenityColumns...).Values(
		pgconv.UUIDToPgtype(a.ID()),
		pgconv.UUIDToPgtype(a.CommunityID()),
		a.Name(),
		a.MaxPeople(),
		int(a.SlotDuration()/time.Minute),
		a.WeekdayHours().Start().Minutes(),
		a.WeekdayHours().End().Minutes(),
		a.WeekendHours().Start().Minutes(),
		a.WeekendHours().End().Minutes(),
		a.IsBlocked(),
		pgconv.StringPtrToPgtype(a.BlockReason()),
		a.CreatedAt(),
		a.UpdatedAt(),
	)
	if _, err := exec(ctx, r.db, q); err != nil {
		return infra.WrapRepoErr("failed to create amenity", err)
	}
	for _, b := range a.BlackoutDates() {
		if err := r.AddBlackoutDate(ctx, a.ID(), b); err != nil {
			return err
		}
	}
	return nil
}

func (r *AmenityRepository) FindByID(ctx context.Context, id uuid.UUID) (*amenity.Amenity, error) {
	query, args, err := psql.Select(amenityColumns...).From("amenities").
		Where(squirrel.Eq{"id": pgconv.UUIDToPgtype(id)}).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build amenity query", err)
	}
	row, err := scanAmenity(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "amenity not found")
		}
		return nil, infra.WrapRepoErr("failed to get amenity", err)
	}

	blackouts, err := r.blackouts(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	return row.toDomain(blackouts[id])
}

func (r *AmenityRepository) List(ctx context.Context, communityID *uuid.UUID) ([]*amenity.Amenity, error) {
	sb := psql.Select(amenityColumns...).From("amenities").OrderBy("name", "id")
	if communityID != nil {
		sb = sb.Where(squirrel.Eq{"community_id": pgconv.UUIDToPgtype(*communityID)})
	}
	query, args, err := sb.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build amenity list query", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list amenities", err)
	}
	defer rows.Close()

	var (
		records []amenityRow
		ids     []uuid.UUID
	)
	for rows.Next() {
		rec, err := scanAmenity(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan amenity", err)
		}
		records = append(records, rec)
		ids = append(ids, pgconv.UUIDFromPgtype(rec.ID))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate amenities", err)
	}

	blackouts, err := r.blackouts(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]*amenity.Amenity, 0, len(records))
	for _, rec := range records {
		a, err := rec.toDomain(blackouts[pgconv.UUIDFromPgtype(rec.ID)])
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *AmenityRepository) UpdateFields(ctx context.Context, id uuid.UUID, f shared.AmenityFields) error {
	ub := psql.Update("amenities").Set("updated_at", f.UpdatedAt).Where(squirrel.Eq{"id": pgconv.UUIDToPgtype(id)})
	if f.Name != nil {
		ub = ub.Set("name", *f.Name)
	}
	if f.MaxPeople != nil {
		ub = ub.Set("max_people", *f.MaxPeople)
	}
	if f.SlotDuration != nil {
		ub = ub.Set("slot_duration_minutes", int(*f.SlotDuration/time.Minute))
	}
	if f.WeekdayHours != nil {
		ub = ub.Set("weekday_start_minutes", f.WeekdayHours.Start().Minutes()).
			Set("weekday_end_minutes", f.WeekdayHours.End().Minutes())
	}
	if f.WeekendHours != nil {
		ub = ub.Set("weekend_start_minutes", f.WeekendHours.Start().Minutes()).
			Set("weekend_end_minutes", f.WeekendHours.End().Minutes())
	}
	if f.IsBlocked != nil {
		ub = ub.Set("is_blocked", *f.IsBlocked)
	}
	if f.BlockReason != nil {
		var reason *string
		if *f.BlockReason != "" {
			reason = f.BlockReason
		}
		ub = ub.Set("block_reason", pgconv.StringPtrToPgtype(reason))
	}

	tag, err := exec(ctx, r.db, ub)
	if err != nil {
		return infra.WrapRepoErr("failed to update amenity", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "amenity not found")
	}
	return nil
}

func (r *AmenityRepository) AddBlackoutDate(ctx context.Context, id uuid.UUID, b amenity.BlackoutDate) error {
	q := psql.Insert("amenity_blackout_dates").
		Columns("amenity_id", "blackout_date", "reason", "added_at", "added_by").
		Values(pgconv.UUIDToPgtype(id), pgconv.DateToPgtype(b.Date), b.Reason, b.AddedAt, pgconv.UUIDToPgtype(b.AddedBy))
	if _, err := exec(ctx, r.db, q); err != nil {
		return infra.WrapRepoErr("failed to add blackout date", err)
	}
	return nil
}

func (r *AmenityRepository) RemoveBlackoutDate(ctx context.Context, id uuid.UUID, d caldate.Date) error {
	q := psql.Delete("amenity_blackout_dates").Where(squirrel.Eq{
		"amenity_id":    pgconv.UUIDToPgtype(id),
		"blackout_date": pgconv.DateToPgtype(d),
	})
	tag, err := exec(ctx, r.db, q)
	if err != nil {
		return infra.WrapRepoErr("failed to remove blackout date", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "blackout date not found")
	}
	return nil
}

func (r *AmenityRepository) blackouts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]amenity.BlackoutDate, error) {
	out := make(map[uuid.UUID][]amenity.BlackoutDate, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query, args, err := psql.Select("amenity_id", "blackout_date", "reason", "added_at", "added_by").
		From("amenity_blackout_dates").
		Where(squirrel.Eq{"amenity_id": pgconv.UUIDsToPgtype(ids)}).
		OrderBy("blackout_date").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build blackout query", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list blackout dates", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			amenityID, addedBy pgtype.UUID
			date               pgtype.Date
			b                  amenity.BlackoutDate
		)
		if err := rows.Scan(&amenityID, &date, &b.Reason, &b.AddedAt, &addedBy); err != nil {
			return nil, infra.WrapRepoErr("failed to scan blackout date", err)
		}
		b.Date = pgconv.DateFromPgtype(date)
		b.AddedBy = pgconv.UUIDFromPgtype(addedBy)
		id := pgconv.UUIDFromPgtype(amenityID)
		out[id] = append(out[id], b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate blackout dates", err)
	}
	return out, nil
}

type amenityRow struct {
	ID           pgtype.UUID
	CommunityID  pgtype.UUID
	Name         string
	MaxPeople    int
	SlotMinutes  int
	WeekdayStart int
	WeekdayEnd   int
	WeekendStart int
	WeekendEnd   int
	IsBlocked    bool
	BlockReason  pgtype.Text
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func scanAmenity(row pgx.Row) (amenityRow, error) {
	var r amenityRow
	err := row.Scan(
		&r.ID, &r.CommunityID, &r.Name, &r.MaxPeople, &r.SlotMinutes,
		&r.WeekdayStart, &r.WeekdayEnd, &r.WeekendStart, &r.WeekendEnd,
		&r.IsBlocked, &r.BlockReason, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

func (r amenityRow) toDomain(blackouts []amenity.BlackoutDate) (*amenity.Amenity, error) {
	weekday, err := hoursFromMinutes(r.WeekdayStart, r.WeekdayEnd)
	if err != nil {
		return nil, err
	}
	weekend, err := hoursFromMinutes(r.WeekendStart, r.WeekendEnd)
	if err != nil {
		return nil, err
	}
	return amenity.ReconstructAmenity(
		pgconv.UUIDFromPgtype(r.ID),
		pgconv.UUIDFromPgtype(r.CommunityID),
		r.Name,
		r.MaxPeople,
		time.Duration(r.SlotMinutes)*time.Minute,
		weekday,
		weekend,
		r.IsBlocked,
		pgconv.StringPtrFromPgtype(r.BlockReason),
		blackouts,
		r.CreatedAt,
		r.UpdatedAt,
	), nil
}

func hoursFromMinutes(start, end int) (amenity.OperatingHours, error) {
	s, err := amenity.ClockTimeFromMinutes(start)
	if err != nil {
		return amenity.OperatingHours{}, err
	}
	e, err := amenity.ClockTimeFromMinutes(end)
	if err != nil {
		return amenity.OperatingHours{}, err
	}
	return amenity.NewOperatingHours(s, e)
}
