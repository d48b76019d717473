package commentrepo

import (
	"context"

	"shareit/model"
	"shareit/util/database"
)

type Repo interface {
	Create(ctx context.Context, c *model.Comment) error
	ListByItem(ctx context.Context, itemID int64) ([]model.Comment, error)
	ListByItems(ctx context.Context, itemIDs []int64) (map[int64][]model.Comment, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, c *model.Comment) error {
	const q = `
		INSERT INTO comments (text, item_id, author_id, created)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	return r.db.Pool.QueryRow(ctx, q, c.Text, c.ItemID, c.AuthorID, c.Created).Scan(&c.ID)
}

func (r *repo) ListByItem(ctx context.Context, itemID int64) ([]model.Comment, error) {
	const q = `
		SELECT c.id, c.text, c.item_id, c.author_id, u.name, c.created
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.item_id = $1
		ORDER BY c.created DESC`
	rows, err := r.db.Pool.Query(ctx, q, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.ItemID, &c.AuthorID, &c.AuthorName, &c.Created); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListByItems batches comments for the owner's item listing.
func (r *repo) ListByItems(ctx context.Context, itemIDs []int64) (map[int64][]model.Comment, error) {
	if len(itemIDs) == 0 {
		return map[int64][]model.Comment{}, nil
	}
	const q = `
		SELECT c.id, c.text, c.item_id, c.author_id, u.name, c.created
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.item_id = ANY($1)
		ORDER BY c.created DESC`
	rows, err := r.db.Pool.Query(ctx, q, itemIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]model.Comment)
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.ItemID, &c.AuthorID, &c.AuthorName, &c.Created); err != nil {
			return nil, err
		}
		out[c.ItemID] = append(out[c.ItemID], c)
	}
	return out, rows.Err()
}
