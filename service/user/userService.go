package usersvc

import (
	"context"
	"errors"

	"shareit/model"
	"shareit/util/apperr"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetAll(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id int64) (bool, error)
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
}

type Service interface {
	Create(ctx context.Context, name, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetAll(ctx context.Context) ([]model.User, error)

	// Update applies partial semantics: nil fields are left untouched.
	Update(ctx context.Context, id int64, name, email *string) (*model.User, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, name, email string) (*model.User, error) {
	taken, err := s.r.EmailTaken(ctx, email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflictf("email %s is already in use", email)
	}

	u := &model.User{Name: name, Email: email}
	if err := s.r.Create(ctx, u); err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflictf("email %s is already in use", email)
		}
		return nil, err
	}
	return u, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFoundf("user with id %d not found", id)
	}
	return u, nil
}

func (s *service) GetAll(ctx context.Context) ([]model.User, error) {
	return s.r.GetAll(ctx)
}

func (s *service) Update(ctx context.Context, id int64, name, email *string) (*model.User, error) {
	u, err := s.r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFoundf("user with id %d not found", id)
	}

	if email != nil && *email != u.Email {
		taken, err := s.r.EmailTaken(ctx, *email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflictf("email %s is already in use by another user", *email)
		}
	}

	if name != nil {
		u.Name = *name
	}
	if email != nil {
		u.Email = *email
	}

	if err := s.r.Update(ctx, u); err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflictf("email %s is already in use by another user", u.Email)
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	deleted, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFoundf("user with id %d not found", id)
	}
	return nil
}

// The uniqueness pre-check races with concurrent writers; the DB constraint is
// the backstop.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
