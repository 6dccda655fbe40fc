package service

import (
	"context"
	"errors"
	"testing"

	"gastroguide/internal/apperrors"
	"gastroguide/internal/logger"
	"gastroguide/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	items    []model.MenuItem
	bookings map[string]*model.Booking
	err      error
	created  []model.BookingRequest
}

func (f *fakeRepo) ListAvailable(context.Context) ([]model.MenuItem, error) {
	return f.items, f.err
}

func (f *fakeRepo) Find(_ context.Context, id string) (*model.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.bookings[id], nil
}

func (f *fakeRepo) Create(_ context.Context, req model.BookingRequest) (*model.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, req)
	b := &model.Booking{ID: "BK1234567", Customer: req.Customer, Email: req.Email, Date: req.Date, Time: req.Time, Guests: req.Guests, Status: model.BookingConfirmed}
	f.bookings[b.ID] = b
	return b, nil
}

func (f *fakeRepo) Cancel(_ context.Context, id string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	b, ok := f.bookings[id]
	if !ok {
		return false, nil
	}
	b.Status = model.BookingCancelled
	return true, nil
}

func (f *fakeRepo) List(context.Context) ([]model.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []model.Booking{}
	for _, b := range f.bookings {
		out = append(out, *b)
	}
	return out, nil
}

type fakeNotifier struct {
	calls int
	sent  bool
	err   error
}

func (f *fakeNotifier) SendBookingConfirmation(context.Context, *model.Booking) (bool, error) {
	f.calls++
	return f.sent, f.err
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		items: []model.MenuItem{{ID: 1, Name: "Baklava", Category: "Desserts", Price: 8.99, Available: true}},
		bookings: map[string]*model.Booking{
			"BK001": {ID: "BK001", Customer: "Ajeet Gupta", Status: model.BookingConfirmed},
		},
	}
}

func TestBookingService_MenuAndGet(t *testing.T) {
	svc := NewBookingService(newFakeRepo(), nil, logger.NewTestLogger(t))
	ctx := context.Background()

	items, err := svc.Menu(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	b, err := svc.Get(ctx, "BK001")
	require.NoError(t, err)
	assert.Equal(t, "Ajeet Gupta", b.Customer)

	_, err = svc.Get(ctx, "BK404")
	assert.Equal(t, apperrors.ErrCodeBookingNotFound, apperrors.CodeOf(err))
}

func TestBookingService_StoreFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.err = errors.New("connection reset")
	svc := NewBookingService(repo, nil, logger.NewTestLogger(t))
	ctx := context.Background()

	_, err := svc.Menu(ctx)
	assert.Equal(t, apperrors.ErrCodeMenuCatalogUnavailable, apperrors.CodeOf(err))

	_, err = svc.Get(ctx, "BK001")
	assert.Equal(t, apperrors.ErrCodeBookingStoreUnavailable, apperrors.CodeOf(err))
	assert.True(t, apperrors.IsRetryable(err))

	assert.Equal(t, apperrors.ErrCodeBookingStoreUnavailable, apperrors.CodeOf(svc.Cancel(ctx, "BK001")))

	_, err = svc.List(ctx)
	assert.Equal(t, apperrors.ErrCodeBookingStoreUnavailable, apperrors.CodeOf(err))
}

func TestBookingService_CreateNotifies(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{sent: true}
	svc := NewBookingService(repo, notifier, logger.NewTestLogger(t))

	b, err := svc.Create(context.Background(), model.BookingRequest{Customer: "Lee", Email: "lee@example.com", Date: "2025-12-24", Time: "19:00", Guests: 2})
	require.NoError(t, err)
	assert.Equal(t, "BK1234567", b.ID)
	assert.Equal(t, 1, notifier.calls)
}

func TestBookingService_CreateSurvivesNotificationFailure(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("ses throttled")}
	svc := NewBookingService(newFakeRepo(), notifier, logger.NewTestLogger(t))

	b, err := svc.Create(context.Background(), model.BookingRequest{Customer: "Lee", Email: "lee@example.com", Date: "2025-12-24", Time: "19:00", Guests: 2})
	require.NoError(t, err)
	assert.NotNil(t, b)
	assert.Equal(t, 1, notifier.calls)
}

func TestBookingService_Cancel(t *testing.T) {
	repo := newFakeRepo()
	svc := NewBookingService(repo, nil, logger.NewTestLogger(t))
	ctx := context.Background()

	require.NoError(t, svc.Cancel(ctx, "BK001"))
	assert.Equal(t, model.BookingCancelled, repo.bookings["BK001"].Status)

	err := svc.Cancel(ctx, "BK404")
	assert.Equal(t, apperrors.ErrCodeBookingNotFound, apperrors.CodeOf(err))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
