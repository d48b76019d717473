package bookingrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shareit/model"
	"shareit/util/database"

	"github.com/jackc/pgx/v5"
)

type Repo interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id int64) (*model.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error
	ViewByID(ctx context.Context, id int64) (*model.BookingView, error)
	ListByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, limit, offset int) ([]model.BookingView, error)
	ListByOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, limit, offset int) ([]model.BookingView, error)
	FindLastForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
	FindCurrentForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
	FindNextForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
	HasFinishedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, b *model.Booking) error {
	const q = `
		INSERT INTO bookings (start_date, end_date, item_id, booker_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	return r.db.Pool.QueryRow(ctx, q, b.Start, b.End, b.ItemID, b.BookerID, b.Status).Scan(&b.ID)
}

func (r *repo) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	const q = `
		SELECT id, start_date, end_date, item_id, booker_id, status
		FROM bookings
		WHERE id = $1`
	b := &model.Booking{}
	err := r.db.Pool.QueryRow(ctx, q, id).Scan(
		&b.ID, &b.Start, &b.End, &b.ItemID, &b.BookerID, &b.Status,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error {
	const q = `
		UPDATE bookings
		SET status = $2
		WHERE id = $1`
	_, err := r.db.Pool.Exec(ctx, q, id, status)
	return err
}

const viewSelect = `
	SELECT b.id, b.start_date, b.end_date, b.status,
	       i.id, i.name, i.description, i.available, i.owner_id, i.request_id,
	       u.id, u.name, u.email
	FROM bookings b
	JOIN items i ON i.id = b.item_id
	JOIN users u ON u.id = b.booker_id`

func (r *repo) ViewByID(ctx context.Context, id int64) (*model.BookingView, error) {
	const q = viewSelect + `
	WHERE b.id = $1`
	v := &model.BookingView{}
	err := r.db.Pool.QueryRow(ctx, q, id).Scan(
		&v.ID, &v.Start, &v.End, &v.Status,
		&v.Item.ID, &v.Item.Name, &v.Item.Description, &v.Item.Available, &v.Item.OwnerID, &v.Item.RequestID,
		&v.Booker.ID, &v.Booker.Name, &v.Booker.Email,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *repo) ListByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, limit, offset int) ([]model.BookingView, error) {
	return r.listViews(ctx, "b.booker_id = $1", bookerID, state, now, limit, offset)
}

func (r *repo) ListByOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, limit, offset int) ([]model.BookingView, error) {
	return r.listViews(ctx, "i.owner_id = $1", ownerID, state, now, limit, offset)
}

// stateCond translates a listing state into its WHERE fragment and arguments.
// Placeholders start at $2; $1 is always the booker or owner id. CURRENT means
// start <= now <= end, PAST means end < now, FUTURE means start > now;
// WAITING and REJECTED filter on status. ALL adds nothing.
func stateCond(state model.BookingState, now time.Time) (string, []any) {
	switch state {
	case model.StateCurrent:
		return "AND b.start_date <= $2 AND b.end_date >= $3", []any{now, now}
	case model.StatePast:
		return "AND b.end_date < $2", []any{now}
	case model.StateFuture:
		return "AND b.start_date > $2", []any{now}
	case model.StateWaiting:
		return "AND b.status = $2", []any{model.StatusWaiting}
	case model.StateRejected:
		return "AND b.status = $2", []any{model.StatusRejected}
	default:
		return "", nil
	}
}

func (r *repo) listViews(ctx context.Context, who string, id int64, state model.BookingState, now time.Time, limit, offset int) ([]model.BookingView, error) {
	cond, extra := stateCond(state, now)
	args := append([]any{id}, extra...)
	q := fmt.Sprintf(`%s
	WHERE %s %s
	ORDER BY b.start_date DESC
	LIMIT $%d OFFSET $%d`, viewSelect, who, cond, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.BookingView
	for rows.Next() {
		var v model.BookingView
		if err := rows.Scan(
			&v.ID, &v.Start, &v.End, &v.Status,
			&v.Item.ID, &v.Item.Name, &v.Item.Description, &v.Item.Available, &v.Item.OwnerID, &v.Item.RequestID,
			&v.Booker.ID, &v.Booker.Name, &v.Booker.Email,
		); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// FindLastForItem returns the latest approved booking that already ended.
func (r *repo) FindLastForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error) {
	const q = `
		SELECT id, start_date, end_date, item_id, booker_id, status
		FROM bookings
		WHERE item_id = $1
		AND status = 'APPROVED'
		AND end_date < $2
		ORDER BY end_date DESC
		LIMIT 1`
	return r.one(ctx, q, itemID, now)
}

// FindCurrentForItem returns an approved booking active at the given instant.
func (r *repo) FindCurrentForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error) {
	const q = `
		SELECT id, start_date, end_date, item_id, booker_id, status
		FROM bookings
		WHERE item_id = $1
		AND status = 'APPROVED'
		AND start_date <= $2
		AND end_date > $2
		ORDER BY start_date DESC
		LIMIT 1`
	return r.one(ctx, q, itemID, now)
}

// FindNextForItem returns the earliest approved booking still to start.
func (r *repo) FindNextForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error) {
	const q = `
		SELECT id, start_date, end_date, item_id, booker_id, status
		FROM bookings
		WHERE item_id = $1
		AND status = 'APPROVED'
		AND start_date > $2
		ORDER BY start_date ASC
		LIMIT 1`
	return r.one(ctx, q, itemID, now)
}

func (r *repo) one(ctx context.Context, q string, args ...any) (*model.Booking, error) {
	b := &model.Booking{}
	err := r.db.Pool.QueryRow(ctx, q, args...).Scan(
		&b.ID, &b.Start, &b.End, &b.ItemID, &b.BookerID, &b.Status,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// HasFinishedBooking reports whether the user has a completed approved booking
// of the item. Comment authorship hangs on this.
func (r *repo) HasFinishedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE item_id = $1
			AND booker_id = $2
			AND status = 'APPROVED'
			AND end_date < $3
		)`
	var ok bool
	err := r.db.Pool.QueryRow(ctx, q, itemID, bookerID, now).Scan(&ok)
	return ok, err
}
