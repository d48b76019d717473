package requestsvc

import (
	"context"
	"strings"
	"time"

	"shareit/model"
	"shareit/util/apperr"
)

type Repo interface {
	Create(ctx context.Context, req *model.ItemRequest) error
	GetByID(ctx context.Context, id int64) (*model.ItemRequest, error)
	ListByRequestor(ctx context.Context, requestorID int64) ([]model.ItemRequest, error)
	ListByOthers(ctx context.Context, userID int64, limit, offset int) ([]model.ItemRequest, error)
}

type UserRepo interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

type ItemRepo interface {
	ListByRequest(ctx context.Context, requestID int64) ([]model.Item, error)
}

type Service interface {
	Create(ctx context.Context, requestorID int64, description string) (*model.ItemRequestView, error)
	GetUserRequests(ctx context.Context, userID int64) ([]model.ItemRequestView, error)
	GetAll(ctx context.Context, userID int64, from, size int) ([]model.ItemRequestView, error)
	GetByID(ctx context.Context, requestID, userID int64) (*model.ItemRequestView, error)
}

type service struct {
	requests Repo
	users    UserRepo
	items    ItemRepo
}

func New(requests Repo, users UserRepo, items ItemRepo) Service {
	return &service{requests: requests, users: users, items: items}
}

func (s *service) Create(ctx context.Context, requestorID int64, description string) (*model.ItemRequestView, error) {
	requestor, err := s.users.GetByID(ctx, requestorID)
	if err != nil {
		return nil, err
	}
	if requestor == nil {
		return nil, apperr.NotFoundf("user with id %d not found", requestorID)
	}

	if strings.TrimSpace(description) == "" {
		return nil, apperr.Validationf("request description must not be blank")
	}

	req := &model.ItemRequest{
		Description: description,
		RequestorID: requestorID,
		Created:     time.Now(),
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}
	return s.toView(ctx, req)
}

func (s *service) GetUserRequests(ctx context.Context, userID int64) ([]model.ItemRequestView, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.requests.ListByRequestor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, requests)
}

// GetAll lists other users' requests, newest first.
func (s *service) GetAll(ctx context.Context, userID int64, from, size int) ([]model.ItemRequestView, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}
	if from < 0 || size <= 0 {
		return nil, apperr.Validationf("invalid pagination: from=%d size=%d", from, size)
	}
	requests, err := s.requests.ListByOthers(ctx, userID, size, (from/size)*size)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, requests)
}

func (s *service) GetByID(ctx context.Context, requestID, userID int64) (*model.ItemRequestView, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, apperr.NotFoundf("request with id %d not found", requestID)
	}
	return s.toView(ctx, req)
}

func (s *service) checkUser(ctx context.Context, userID int64) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return apperr.NotFoundf("user with id %d not found", userID)
	}
	return nil
}

func (s *service) toView(ctx context.Context, req *model.ItemRequest) (*model.ItemRequestView, error) {
	items, err := s.items.ListByRequest(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Item{}
	}
	return &model.ItemRequestView{
		ID:          req.ID,
		Description: req.Description,
		Created:     req.Created,
		Items:       items,
	}, nil
}

func (s *service) toViews(ctx context.Context, requests []model.ItemRequest) ([]model.ItemRequestView, error) {
	out := make([]model.ItemRequestView, 0, len(requests))
	for i := range requests {
		v, err := s.toView(ctx, &requests[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}
