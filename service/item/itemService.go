package itemsvc

import (
	"context"
	"strings"
	"time"

	"shareit/model"
	"shareit/util/apperr"
)

type Repo interface {
	Create(ctx context.Context, it *model.Item) error
	GetByID(ctx context.Context, id int64) (*model.Item, error)
	Update(ctx context.Context, it *model.Item) error
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Item, error)
	Search(ctx context.Context, text string, limit, offset int) ([]model.Item, error)
}

type UserRepo interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

type RequestRepo interface {
	GetByID(ctx context.Context, id int64) (*model.ItemRequest, error)
}

type BookingRepo interface {
	FindLastForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
	FindCurrentForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
	FindNextForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
	HasFinishedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)
}

type CommentRepo interface {
	Create(ctx context.Context, c *model.Comment) error
	ListByItem(ctx context.Context, itemID int64) ([]model.Comment, error)
	ListByItems(ctx context.Context, itemIDs []int64) (map[int64][]model.Comment, error)
}

type CreateInput struct {
	Name        string
	Description string
	Available   *bool
	RequestID   *int64
}

type UpdateInput struct {
	Name        *string
	Description *string
	Available   *bool
}

type Service interface {
	Create(ctx context.Context, ownerID int64, in CreateInput) (*model.Item, error)
	Update(ctx context.Context, itemID, ownerID int64, in UpdateInput) (*model.Item, error)
	GetByID(ctx context.Context, itemID, userID int64) (*model.ItemWithBookings, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.ItemWithBookings, error)
	Search(ctx context.Context, text string, from, size int) ([]model.Item, error)
	AddComment(ctx context.Context, itemID, authorID int64, text string) (*model.Comment, error)
}

type service struct {
	items    Repo
	users    UserRepo
	requests RequestRepo
	bookings BookingRepo
	comments CommentRepo
}

func New(items Repo, users UserRepo, requests RequestRepo, bookings BookingRepo, comments CommentRepo) Service {
	return &service{items: items, users: users, requests: requests, bookings: bookings, comments: comments}
}

func (s *service) Create(ctx context.Context, ownerID int64, in CreateInput) (*model.Item, error) {
	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, apperr.NotFoundf("owner with id %d not found", ownerID)
	}

	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.Validationf("item name must not be blank")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, apperr.Validationf("item description must not be blank")
	}
	if in.Available == nil {
		return nil, apperr.Validationf("item availability must be set")
	}

	if in.RequestID != nil {
		req, err := s.requests.GetByID(ctx, *in.RequestID)
		if err != nil {
			return nil, err
		}
		if req == nil {
			return nil, apperr.NotFoundf("request with id %d not found", *in.RequestID)
		}
	}

	it := &model.Item{
		Name:        in.Name,
		Description: in.Description,
		Available:   *in.Available,
		OwnerID:     ownerID,
		RequestID:   in.RequestID,
	}
	if err := s.items.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Update(ctx context.Context, itemID, ownerID int64, in UpdateInput) (*model.Item, error) {
	it, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, apperr.NotFoundf("item with id %d not found", itemID)
	}
	if it.OwnerID != ownerID {
		return nil, apperr.NotFoundf("only the owner may edit an item")
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, apperr.Validationf("item name must not be blank")
		}
		it.Name = *in.Name
	}
	if in.Description != nil {
		if strings.TrimSpace(*in.Description) == "" {
			return nil, apperr.Validationf("item description must not be blank")
		}
		it.Description = *in.Description
	}
	if in.Available != nil {
		it.Available = *in.Available
	}

	if err := s.items.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) GetByID(ctx context.Context, itemID, userID int64) (*model.ItemWithBookings, error) {
	it, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, apperr.NotFoundf("item with id %d not found", itemID)
	}

	view := toView(it)
	now := time.Now()

	if it.OwnerID == userID {
		if err := s.fillBookings(ctx, view, now); err != nil {
			return nil, err
		}
	}

	comments, err := s.comments.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	view.Comments = comments

	return view, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64) ([]model.ItemWithBookings, error) {
	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, apperr.NotFoundf("user with id %d not found", ownerID)
	}

	items, err := s.items.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	commentsByItem, err := s.comments.ListByItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := make([]model.ItemWithBookings, 0, len(items))
	for i := range items {
		view := toView(&items[i])
		if err := s.fillBookings(ctx, view, now); err != nil {
			return nil, err
		}
		view.Comments = commentsByItem[items[i].ID]
		out = append(out, *view)
	}
	return out, nil
}

func (s *service) Search(ctx context.Context, text string, from, size int) ([]model.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []model.Item{}, nil
	}
	limit, offset, err := page(from, size)
	if err != nil {
		return nil, err
	}
	return s.items.Search(ctx, text, limit, offset)
}

func (s *service) AddComment(ctx context.Context, itemID, authorID int64, text string) (*model.Comment, error) {
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, apperr.NotFoundf("user with id %d not found", authorID)
	}

	it, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, apperr.NotFoundf("item with id %d not found", itemID)
	}

	now := time.Now()
	finished, err := s.bookings.HasFinishedBooking(ctx, itemID, authorID, now)
	if err != nil {
		return nil, err
	}
	if !finished {
		return nil, apperr.Validationf("user has not rented this item or the rental is not finished")
	}

	if strings.TrimSpace(text) == "" {
		return nil, apperr.Validationf("comment text must not be blank")
	}

	c := &model.Comment{
		Text:       text,
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: author.Name,
		Created:    now,
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// fillBookings sets the owner-only last/next annotations. The last booking
// falls back to a currently active one when nothing has finished yet.
func (s *service) fillBookings(ctx context.Context, view *model.ItemWithBookings, now time.Time) error {
	last, err := s.bookings.FindLastForItem(ctx, view.ID, now)
	if err != nil {
		return err
	}
	if last == nil {
		last, err = s.bookings.FindCurrentForItem(ctx, view.ID, now)
		if err != nil {
			return err
		}
	}
	view.LastBooking = toInfo(last)

	next, err := s.bookings.FindNextForItem(ctx, view.ID, now)
	if err != nil {
		return err
	}
	view.NextBooking = toInfo(next)
	return nil
}

func toView(it *model.Item) *model.ItemWithBookings {
	return &model.ItemWithBookings{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		RequestID:   it.RequestID,
	}
}

func toInfo(b *model.Booking) *model.BookingInfo {
	if b == nil {
		return nil
	}
	return &model.BookingInfo{ID: b.ID, BookerID: b.BookerID, Start: b.Start, End: b.End}
}

// page maps from/size to LIMIT/OFFSET using page-index = from/size.
func page(from, size int) (limit, offset int, err error) {
	if from < 0 || size <= 0 {
		return 0, 0, apperr.Validationf("invalid pagination: from=%d size=%d", from, size)
	}
	return size, (from / size) * size, nil
}
