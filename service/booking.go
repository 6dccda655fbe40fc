package service

import (
	"context"

	"gastroguide/internal/apperrors"
	"gastroguide/internal/logger"
	"gastroguide/internal/metrics"
	"gastroguide/model"
)

// BookingRepository is the booking and menu storage used by the REST surface.
type BookingRepository interface {
	ListAvailable(ctx context.Context) ([]model.MenuItem, error)
	Find(ctx context.Context, id string) (*model.Booking, error)
	Create(ctx context.Context, req model.BookingRequest) (*model.Booking, error)
	Cancel(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]model.Booking, error)
}

// Notifier sends a booking confirmation. It reports false with a nil error
// when the booking has nothing to send to.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, booking *model.Booking) (bool, error)
}

type BookingService struct {
	repo     BookingRepository
	notifier Notifier
	logger   logger.Logger
}

func NewBookingService(repo BookingRepository, notifier Notifier, log logger.Logger) *BookingService {
	return &BookingService{
		repo:     repo,
		notifier: notifier,
		logger:   logger.Component(log, "BookingService"),
	}
}

func (s *BookingService) Menu(ctx context.Context) ([]model.MenuItem, error) {
	items, err := s.repo.ListAvailable(ctx)
	if err != nil {
		metrics.CollaboratorErrors.WithLabelValues("menu_catalog").Inc()
		return nil, apperrors.NewCollaboratorError(apperrors.ErrCodeMenuCatalogUnavailable, "menu catalog", err)
	}
	return items, nil
}

func (s *BookingService) Get(ctx context.Context, id string) (*model.Booking, error) {
	b, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, s.storeError(err)
	}
	if b == nil {
		return nil, apperrors.NewNotFoundError("Booking", id)
	}
	return b, nil
}

// Create stores the booking and sends a confirmation on a best-effort basis:
// a notification failure is logged and does not fail the booking.
func (s *BookingService) Create(ctx context.Context, req model.BookingRequest) (*model.Booking, error) {
	b, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, s.storeError(err)
	}
	metrics.BookingsCreated.Inc()

	if s.notifier == nil {
		metrics.Notifications.WithLabelValues(metrics.NotificationSkipped).Inc()
		return b, nil
	}

	sent, err := s.notifier.SendBookingConfirmation(ctx, b)
	switch {
	case err != nil:
		metrics.Notifications.WithLabelValues(metrics.NotificationFailed).Inc()
		s.logger.WithError(err).Warn("booking confirmation not sent", map[string]interface{}{"booking_id": b.ID})
	case sent:
		metrics.Notifications.WithLabelValues(metrics.NotificationSent).Inc()
	default:
		metrics.Notifications.WithLabelValues(metrics.NotificationSkipped).Inc()
	}
	return b, nil
}

func (s *BookingService) Cancel(ctx context.Context, id string) error {
	ok, err := s.repo.Cancel(ctx, id)
	if err != nil {
		return s.storeError(err)
	}
	if !ok {
		return apperrors.NewNotFoundError("Booking", id)
	}
	s.logger.Info("booking cancelled", map[string]interface{}{"booking_id": id})
	return nil
}

func (s *BookingService) List(ctx context.Context) ([]model.Booking, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.storeError(err)
	}
	return list, nil
}

func (s *BookingService) storeError(err error) error {
	metrics.CollaboratorErrors.WithLabelValues("booking_store").Inc()
	return apperrors.NewCollaboratorError(apperrors.ErrCodeBookingStoreUnavailable, "booking store", err)
}
