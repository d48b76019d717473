package userrepo

import (
	"context"
	"errors"

	"shareit/model"
	"shareit/util/database"

	"github.com/jackc/pgx/v5"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetAll(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id int64) (bool, error)
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, u *model.User) error {
	const q = `
		INSERT INTO users (name, email)
		VALUES ($1, $2)
		RETURNING id`
	return r.db.Pool.QueryRow(ctx, q, u.Name, u.Email).Scan(&u.ID)
}

func (r *repo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const q = `
		SELECT id, name, email
		FROM users
		WHERE id = $1`
	u := &model.User{}
	err := r.db.Pool.QueryRow(ctx, q, id).Scan(&u.ID, &u.Name, &u.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) GetAll(ctx context.Context) ([]model.User, error) {
	const q = `
		SELECT id, name, email
		FROM users
		ORDER BY id`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *repo) Update(ctx context.Context, u *model.User) error {
	const q = `
		UPDATE users
		SET name = $2,
			email = $3
		WHERE id = $1`
	_, err := r.db.Pool.Exec(ctx, q, u.ID, u.Name, u.Email)
	return err
}

func (r *repo) Delete(ctx context.Context, id int64) (bool, error) {
	const q = `
		DELETE FROM users
		WHERE id = $1`
	tag, err := r.db.Pool.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// EmailTaken reports whether another user already holds the email. Pass
// excludeID = 0 when creating.
func (r *repo) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE lower(email) = lower($1)
			AND id <> $2
		)`
	var taken bool
	err := r.db.Pool.QueryRow(ctx, q, email, excludeID).Scan(&taken)
	return taken, err
}
