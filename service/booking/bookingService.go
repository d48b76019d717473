package bookingsvc

import (
	"context"
	"time"

	"shareit/model"
	"shareit/util/apperr"
)

type Repo interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id int64) (*model.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error
	ViewByID(ctx context.Context, id int64) (*model.BookingView, error)
	ListByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, limit, offset int) ([]model.BookingView, error)
	ListByOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, limit, offset int) ([]model.BookingView, error)
}

type UserRepo interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

type ItemRepo interface {
	GetByID(ctx context.Context, id int64) (*model.Item, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Item, error)
}

type Service interface {
	Create(ctx context.Context, bookerID, itemID int64, start, end *time.Time) (*model.BookingView, error)
	Approve(ctx context.Context, bookingID, ownerID int64, approved bool) (*model.BookingView, error)
	GetByID(ctx context.Context, bookingID, userID int64) (*model.BookingView, error)
	ListByBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]model.BookingView, error)
	ListByOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]model.BookingView, error)
}

type service struct {
	bookings Repo
	users    UserRepo
	items    ItemRepo
}

func New(bookings Repo, users UserRepo, items ItemRepo) Service {
	return &service{bookings: bookings, users: users, items: items}
}

func (s *service) Create(ctx context.Context, bookerID, itemID int64, start, end *time.Time) (*model.BookingView, error) {
	booker, err := s.users.GetByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	if booker == nil {
		return nil, apperr.NotFoundf("user with id %d not found", bookerID)
	}

	it, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, apperr.NotFoundf("item with id %d not found", itemID)
	}

	if !it.Available {
		return nil, apperr.Validationf("item is not available for booking")
	}

	// Owners booking their own items surface as NotFound, not Forbidden.
	if it.OwnerID == bookerID {
		return nil, apperr.NotFoundf("owner cannot book their own item")
	}

	if start == nil || end == nil {
		return nil, apperr.Validationf("booking start and end must be set")
	}
	if !start.Before(*end) {
		return nil, apperr.Validationf("booking start must be before its end")
	}
	if start.Before(time.Now()) {
		return nil, apperr.Validationf("booking start must not be in the past")
	}

	b := &model.Booking{
		Start:    *start,
		End:      *end,
		ItemID:   itemID,
		BookerID: bookerID,
		Status:   model.StatusWaiting,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	return &model.BookingView{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: b.Status,
		Item:   *it,
		Booker: *booker,
	}, nil
}

func (s *service) Approve(ctx context.Context, bookingID, ownerID int64, approved bool) (*model.BookingView, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperr.NotFoundf("booking with id %d not found", bookingID)
	}

	it, err := s.items.GetByID(ctx, b.ItemID)
	if err != nil {
		return nil, err
	}
	if it == nil || it.OwnerID != ownerID {
		return nil, apperr.Forbiddenf("only the item owner may approve a booking")
	}

	if b.Status != model.StatusWaiting {
		return nil, apperr.Validationf("booking has already been processed")
	}

	status := model.StatusRejected
	if approved {
		status = model.StatusApproved
	}
	if err := s.bookings.UpdateStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}

	view, err := s.bookings.ViewByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, apperr.NotFoundf("booking with id %d not found", bookingID)
	}
	return view, nil
}

func (s *service) GetByID(ctx context.Context, bookingID, userID int64) (*model.BookingView, error) {
	view, err := s.bookings.ViewByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, apperr.NotFoundf("booking with id %d not found", bookingID)
	}

	// Privacy by 404: third parties cannot tell the booking exists.
	if view.Booker.ID != userID && view.Item.OwnerID != userID {
		return nil, apperr.NotFoundf("booking is visible only to the booker or the item owner")
	}
	return view, nil
}

func (s *service) ListByBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]model.BookingView, error) {
	booker, err := s.users.GetByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	if booker == nil {
		return nil, apperr.NotFoundf("user with id %d not found", bookerID)
	}

	st, limit, offset, err := listArgs(state, from, size)
	if err != nil {
		return nil, err
	}
	return s.bookings.ListByBooker(ctx, bookerID, st, time.Now(), limit, offset)
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]model.BookingView, error) {
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
	if len(items) == 0 {
		return []model.BookingView{}, nil
	}

	st, limit, offset, err := listArgs(state, from, size)
	if err != nil {
		return nil, err
	}
	return s.bookings.ListByOwner(ctx, ownerID, st, time.Now(), limit, offset)
}

func listArgs(state string, from, size int) (model.BookingState, int, int, error) {
	st, ok := model.ParseBookingState(state)
	if !ok {
		return "", 0, 0, apperr.Validationf("Unknown state: %s", state)
	}
	if from < 0 || size <= 0 {
		return "", 0, 0, apperr.Validationf("invalid pagination: from=%d size=%d", from, size)
	}
	return st, size, (from / size) * size, nil
}
