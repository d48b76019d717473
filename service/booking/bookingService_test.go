package bookingsvc

import (
	"context"
	"testing"
	"time"

	"shareit/model"
	"shareit/util/apperr"

	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	createFn       func(ctx context.Context, b *model.Booking) error
	getByIDFn      func(ctx context.Context, id int64) (*model.Booking, error)
	updateStatusFn func(ctx context.Context, id int64, status model.BookingStatus) error
	viewByIDFn     func(ctx context.Context, id int64) (*model.BookingView, error)
	listByBookerFn func(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, limit, offset int) ([]model.BookingView, error)
	listByOwnerFn  func(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, limit, offset int) ([]model.BookingView, error)
}

var _ Repo = (*mockRepo)(nil)

func (m *mockRepo) Create(ctx context.Context, b *model.Booking) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, b)
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	if m.getByIDFn == nil {
		return nil, nil
	}
	return m.getByIDFn(ctx, id)
}

func (m *mockRepo) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error {
	if m.updateStatusFn == nil {
		return nil
	}
	return m.updateStatusFn(ctx, id, status)
}

func (m *mockRepo) ViewByID(ctx context.Context, id int64) (*model.BookingView, error) {
	if m.viewByIDFn == nil {
		return nil, nil
	}
	return m.viewByIDFn(ctx, id)
}

func (m *mockRepo) ListByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, limit, offset int) ([]model.BookingView, error) {
	return m.listByBookerFn(ctx, bookerID, state, now, limit, offset)
}

func (m *mockRepo) ListByOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, limit, offset int) ([]model.BookingView, error) {
	return m.listByOwnerFn(ctx, ownerID, state, now, limit, offset)
}

type mockUsers struct {
	getByIDFn func(ctx context.Context, id int64) (*model.User, error)
}

func (m *mockUsers) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn == nil {
		return nil, nil
	}
	return m.getByIDFn(ctx, id)
}

type mockItems struct {
	getByIDFn     func(ctx context.Context, id int64) (*model.Item, error)
	listByOwnerFn func(ctx context.Context, ownerID int64) ([]model.Item, error)
}

func (m *mockItems) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	if m.getByIDFn == nil {
		return nil, nil
	}
	return m.getByIDFn(ctx, id)
}

func (m *mockItems) ListByOwner(ctx context.Context, ownerID int64) ([]model.Item, error) {
	if m.listByOwnerFn == nil {
		return nil, nil
	}
	return m.listByOwnerFn(ctx, ownerID)
}

func knownUser(id int64) *mockUsers {
	return &mockUsers{getByIDFn: func(ctx context.Context, got int64) (*model.User, error) {
		if got == id {
			return &model.User{ID: id, Name: "Booker", Email: "booker@example.com"}, nil
		}
		return nil, nil
	}}
}

func availableItem(id, ownerID int64) *mockItems {
	return &mockItems{getByIDFn: func(ctx context.Context, got int64) (*model.Item, error) {
		if got == id {
			return &model.Item{ID: id, Name: "Drill", Description: "Cordless", Available: true, OwnerID: ownerID}, nil
		}
		return nil, nil
	}}
}

func timeptr(t time.Time) *time.Time { return &t }

func TestCreate_Success(t *testing.T) {
	ctx := context.Background()
	start := time.Now().Add(24 * time.Hour)
	end := start.Add(24 * time.Hour)

	var persisted *model.Booking
	repo := &mockRepo{
		createFn: func(ctx context.Context, b *model.Booking) error {
			b.ID = 11
			persisted = b
			return nil
		},
	}
	svc := New(repo, knownUser(2), availableItem(1, 5))

	view, err := svc.Create(ctx, 2, 1, timeptr(start), timeptr(end))
	require.NoError(t, err)
	require.Equal(t, int64(11), view.ID)
	require.Equal(t, model.StatusWaiting, view.Status)
	require.Equal(t, int64(1), view.Item.ID)
	require.Equal(t, int64(2), view.Booker.ID)
	require.NotNil(t, persisted)
	require.Equal(t, model.StatusWaiting, persisted.Status)
}

func TestCreate_Failures(t *testing.T) {
	ctx := context.Background()
	future := time.Now().Add(24 * time.Hour)
	later := future.Add(24 * time.Hour)

	testCases := []struct {
		name     string
		bookerID int64
		itemID   int64
		start    *time.Time
		end      *time.Time
		items    *mockItems
		wantCode apperr.Code
	}{
		{
			name:     "booker not found",
			bookerID: 99, itemID: 1,
			start: timeptr(future), end: timeptr(later),
			items:    availableItem(1, 5),
			wantCode: apperr.NotFound,
		},
		{
			name:     "item not found",
			bookerID: 2, itemID: 99,
			start: timeptr(future), end: timeptr(later),
			items:    availableItem(1, 5),
			wantCode: apperr.NotFound,
		},
		{
			name:     "item unavailable",
			bookerID: 2, itemID: 1,
			start: timeptr(future), end: timeptr(later),
			items: &mockItems{getByIDFn: func(ctx context.Context, id int64) (*model.Item, error) {
				return &model.Item{ID: 1, Available: false, OwnerID: 5}, nil
			}},
			wantCode: apperr.Validation,
		},
		{
			name:     "owner books own item",
			bookerID: 5, itemID: 1,
			start: timeptr(future), end: timeptr(later),
			items:    availableItem(1, 5),
			wantCode: apperr.NotFound,
		},
		{
			name:     "missing dates",
			bookerID: 2, itemID: 1,
			start: nil, end: nil,
			items:    availableItem(1, 5),
			wantCode: apperr.Validation,
		},
		{
			name:     "start equals end",
			bookerID: 2, itemID: 1,
			start: timeptr(future), end: timeptr(future),
			items:    availableItem(1, 5),
			wantCode: apperr.Validation,
		},
		{
			name:     "start after end",
			bookerID: 2, itemID: 1,
			start: timeptr(later), end: timeptr(future),
			items:    availableItem(1, 5),
			wantCode: apperr.Validation,
		},
		{
			name:     "start in the past",
			bookerID: 2, itemID: 1,
			start: timeptr(time.Now().Add(-time.Hour)), end: timeptr(later),
			items:    availableItem(1, 5),
			wantCode: apperr.Validation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockRepo{
				createFn: func(ctx context.Context, b *model.Booking) error {
					t.Fatal("no booking must be persisted on failure")
					return nil
				},
			}
			users := knownUser(2)
			if tc.bookerID == 5 {
				users = knownUser(5)
			}
			svc := New(repo, users, tc.items)

			_, err := svc.Create(ctx, tc.bookerID, tc.itemID, tc.start, tc.end)
			require.Error(t, err)
			require.Equal(t, tc.wantCode, apperr.CodeOf(err))
		})
	}
}

func TestApprove_Success(t *testing.T) {
	ctx := context.Background()
	var setStatus model.BookingStatus
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id int64) (*model.Booking, error) {
			return &model.Booking{ID: id, ItemID: 1, BookerID: 2, Status: model.StatusWaiting}, nil
		},
		updateStatusFn: func(ctx context.Context, id int64, status model.BookingStatus) error {
			setStatus = status
			return nil
		},
		viewByIDFn: func(ctx context.Context, id int64) (*model.BookingView, error) {
			return &model.BookingView{ID: id, Status: model.StatusApproved}, nil
		},
	}
	svc := New(repo, knownUser(5), availableItem(1, 5))

	view, err := svc.Approve(ctx, 11, 5, true)
	require.NoError(t, err)
	require.Equal(t, model.StatusApproved, setStatus)
	require.Equal(t, model.StatusApproved, view.Status)
}

func TestApprove_Reject(t *testing.T) {
	ctx := context.Background()
	var setStatus model.BookingStatus
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id int64) (*model.Booking, error) {
			return &model.Booking{ID: id, ItemID: 1, BookerID: 2, Status: model.StatusWaiting}, nil
		},
		updateStatusFn: func(ctx context.Context, id int64, status model.BookingStatus) error {
			setStatus = status
			return nil
		},
		viewByIDFn: func(ctx context.Context, id int64) (*model.BookingView, error) {
			return &model.BookingView{ID: id, Status: model.StatusRejected}, nil
		},
	}
	svc := New(repo, knownUser(5), availableItem(1, 5))

	_, err := svc.Approve(ctx, 11, 5, false)
	require.NoError(t, err)
	require.Equal(t, model.StatusRejected, setStatus)
}

func TestApprove_NotOwner(t *testing.T) {
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id int64) (*model.Booking, error) {
			return &model.Booking{ID: id, ItemID: 1, BookerID: 2, Status: model.StatusWaiting}, nil
		},
	}
	svc := New(repo, knownUser(3), availableItem(1, 5))

	_, err := svc.Approve(context.Background(), 11, 3, true)
	require.Error(t, err)
	require.Equal(t, apperr.Forbidden, apperr.CodeOf(err))
}

func TestApprove_AlreadyProcessed(t *testing.T) {
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id int64) (*model.Booking, error) {
			return &model.Booking{ID: id, ItemID: 1, BookerID: 2, Status: model.StatusApproved}, nil
		},
	}
	svc := New(repo, knownUser(5), availableItem(1, 5))

	_, err := svc.Approve(context.Background(), 11, 5, true)
	require.Error(t, err)
	require.Equal(t, apperr.Validation, apperr.CodeOf(err))
}

func TestApprove_NotFound(t *testing.T) {
	svc := New(&mockRepo{}, knownUser(5), availableItem(1, 5))

	_, err := svc.Approve(context.Background(), 404, 5, true)
	require.Error(t, err)
	require.Equal(t, apperr.NotFound, apperr.CodeOf(err))
}

func TestGetByID_Visibility(t *testing.T) {
	repo := &mockRepo{
		viewByIDFn: func(ctx context.Context, id int64) (*model.BookingView, error) {
			return &model.BookingView{
				ID:     id,
				Item:   model.Item{ID: 1, OwnerID: 5},
				Booker: model.User{ID: 2},
			}, nil
		},
	}
	svc := New(repo, knownUser(2), availableItem(1, 5))

	for _, uid := range []int64{2, 5} {
		view, err := svc.GetByID(context.Background(), 11, uid)
		require.NoError(t, err)
		require.Equal(t, int64(11), view.ID)
	}

	_, err := svc.GetByID(context.Background(), 11, 3)
	require.Error(t, err)
	require.Equal(t, apperr.NotFound, apperr.CodeOf(err))
}

func TestListByBooker_UnknownState(t *testing.T) {
	svc := New(&mockRepo{}, knownUser(2), availableItem(1, 5))

	_, err := svc.ListByBooker(context.Background(), 2, "SOMEDAY", 0, 10)
	require.Error(t, err)
	require.Equal(t, apperr.Validation, apperr.CodeOf(err))
}

func TestListByBooker_PaginationWindow(t *testing.T) {
	var gotLimit, gotOffset int
	var gotState model.BookingState
	repo := &mockRepo{
		listByBookerFn: func(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, limit, offset int) ([]model.BookingView, error) {
			gotLimit, gotOffset, gotState = limit, offset, state
			return []model.BookingView{{ID: 1}, {ID: 2}}, nil
		},
	}
	svc := New(repo, knownUser(2), availableItem(1, 5))

	views, err := svc.ListByBooker(context.Background(), 2, "future", 3, 2)
	require.NoError(t, err)
	require.Len(t, views, 2)
	require.Equal(t, model.StateFuture, gotState)
	require.Equal(t, 2, gotLimit)
	// page index = from/size, so from=3,size=2 lands on the second page
	require.Equal(t, 2, gotOffset)
}

func TestListByOwner_NoItems(t *testing.T) {
	repo := &mockRepo{
		listByOwnerFn: func(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, limit, offset int) ([]model.BookingView, error) {
			t.Fatal("must not query bookings when the owner has no items")
			return nil, nil
		},
	}
	items := &mockItems{listByOwnerFn: func(ctx context.Context, ownerID int64) ([]model.Item, error) {
		return nil, nil
	}}
	svc := New(repo, knownUser(5), items)

	views, err := svc.ListByOwner(context.Background(), 5, "ALL", 0, 10)
	require.NoError(t, err)
	require.Empty(t, views)
}
