package itemrepo

import (
	"context"
	"errors"

	"shareit/model"
	"shareit/util/database"

	"github.com/jackc/pgx/v5"
)

type Repo interface {
	Create(ctx context.Context, it *model.Item) error
	GetByID(ctx context.Context, id int64) (*model.Item, error)
	Update(ctx context.Context, it *model.Item) error
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Item, error)
	Search(ctx context.Context, text string, limit, offset int) ([]model.Item, error)
	ListByRequest(ctx context.Context, requestID int64) ([]model.Item, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db: db} }

const itemCols = `id, name, description, available, owner_id, request_id`

func (r *repo) Create(ctx context.Context, it *model.Item) error {
	const q = `
		INSERT INTO items (name, description, available, owner_id, request_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	return r.db.Pool.QueryRow(ctx, q,
		it.Name, it.Description, it.Available, it.OwnerID, it.RequestID,
	).Scan(&it.ID)
}

func (r *repo) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	const q = `
		SELECT ` + itemCols + `
		FROM items
		WHERE id = $1`
	it := &model.Item{}
	err := r.db.Pool.QueryRow(ctx, q, id).Scan(
		&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *repo) Update(ctx context.Context, it *model.Item) error {
	const q = `
		UPDATE items
		SET name = $2,
			description = $3,
			available = $4
		WHERE id = $1`
	_, err := r.db.Pool.Exec(ctx, q, it.ID, it.Name, it.Description, it.Available)
	return err
}

func (r *repo) ListByOwner(ctx context.Context, ownerID int64) ([]model.Item, error) {
	const q = `
		SELECT ` + itemCols + `
		FROM items
		WHERE owner_id = $1
		ORDER BY id`
	return r.list(ctx, q, ownerID)
}

// Search matches available items by case-insensitive substring on name or
// description. Blank text is short-circuited in the service layer.
func (r *repo) Search(ctx context.Context, text string, limit, offset int) ([]model.Item, error) {
	const q = `
		SELECT ` + itemCols + `
		FROM items
		WHERE available = true
		AND (name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		ORDER BY id
		LIMIT $2 OFFSET $3`
	return r.list(ctx, q, text, limit, offset)
}

func (r *repo) ListByRequest(ctx context.Context, requestID int64) ([]model.Item, error) {
	const q = `
		SELECT ` + itemCols + `
		FROM items
		WHERE request_id = $1
		ORDER BY id`
	return r.list(ctx, q, requestID)
}

func (r *repo) list(ctx context.Context, q string, args ...any) ([]model.Item, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Item
	for rows.Next() {
		var it model.Item
		if err := rows.Scan(
			&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID,
		); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
