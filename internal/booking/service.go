package booking

import (
	"context"
	"errors"
	"fmt"

	"roombook/internal/logger"
	"roombook/internal/metrics"
	"roombook/internal/team"
	"roombook/internal/user"
)

// Notifier queues user-facing messages about booking outcomes.
type Notifier interface {
	BookingConfirmed(ctx context.Context, email, name, roomName, roomType, date, slotRange string) error
	BookingCancelled(ctx context.Context, email, name, roomName, date, slotRange string) error
}

type Service interface {
	Book(ctx context.Context, userID int, req BookRequest) (*Booking, error)
	Cancel(ctx context.Context, userID, bookingID int) error
	ListForUser(ctx context.Context, userID int) ([]BookingWithDetails, error)
	ListAll(ctx context.Context, limit, offset int) ([]BookingWithDetails, error)
}

type service struct {
	gate        *Gate
	coordinator *Coordinator
	repo        Repository
	users       user.Repository
	teams       team.Repository
	notifier    Notifier
}

func NewService(gate *Gate, coordinator *Coordinator, repo Repository, users user.Repository, teams team.Repository, notifier Notifier) Service {
	return &service{
		gate:        gate,
		coordinator: coordinator,
		repo:        repo,
		users:       users,
		teams:       teams,
		notifier:    notifier,
	}
}

func (s *service) Book(ctx context.Context, userID int, req BookRequest) (*Booking, error) {
	intent, err := s.gate.Validate(ctx, userID, req)
	if err != nil {
		if IsValidationError(err) {
			metrics.RecordBookingAttempt(metrics.OutcomeRejected, req.RoomType)
		} else {
			metrics.RecordBookingAttempt(metrics.OutcomeFaulted, req.RoomType)
		}
		return nil, err
	}

	booking, err := s.coordinator.Reserve(ctx, intent)
	if err != nil {
		if errors.Is(err, ErrNoAvailability) {
			metrics.RecordBookingAttempt(metrics.OutcomeDenied, req.RoomType)
		} else {
			metrics.RecordBookingAttempt(metrics.OutcomeFaulted, req.RoomType)
		}
		return nil, err
	}

	metrics.RecordBookingAttempt(metrics.OutcomeGranted, req.RoomType)
	logger.Info("booking granted",
		"booking_id", booking.ID, "user_id", userID, "date", booking.Date, "slot_id", booking.TimeSlotID)

	s.notifyConfirmed(ctx, userID, booking.ID)

	return booking, nil
}

func (s *service) Cancel(ctx context.Context, userID, bookingID int) error {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	owns, err := s.ownsBooking(ctx, userID, b)
	if err != nil {
		return err
	}
	if !owns {
		return ErrNotBookingOwner
	}

	if b.Status != StatusActive {
		return ErrAlreadyCancelled
	}

	// The admission counter is left alone on purpose; the freed seat
	// surfaces again when the counter key is next re-seeded from the
	// authoritative count.
	if err := s.repo.Cancel(ctx, bookingID); err != nil {
		return err
	}

	metrics.RecordBookingCancellation()
	logger.Info("booking cancelled", "booking_id", bookingID, "user_id", userID)

	s.notifyCancelled(ctx, userID, bookingID)

	return nil
}

// ownsBooking allows the booking user, or any member of the booking
// team, to act on it.
func (s *service) ownsBooking(ctx context.Context, userID int, b *Booking) (bool, error) {
	if b.UserID != nil {
		return *b.UserID == userID, nil
	}
	if b.TeamID == nil {
		return false, nil
	}

	member, err := s.teams.IsMember(ctx, *b.TeamID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check team membership: %w", err)
	}
	return member, nil
}

func (s *service) ListForUser(ctx context.Context, userID int) ([]BookingWithDetails, error) {
	return s.repo.ListForUser(ctx, userID)
}

func (s *service) ListAll(ctx context.Context, limit, offset int) ([]BookingWithDetails, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListAll(ctx, limit, offset)
}

func (s *service) notifyConfirmed(ctx context.Context, userID, bookingID int) {
	if s.notifier == nil {
		return
	}

	details, requester, err := s.notificationContext(ctx, userID, bookingID)
	if err != nil {
		logger.Error("skipping confirmation notification", "booking_id", bookingID, "error", err)
		return
	}

	slotRange := details.StartTime + "-" + details.EndTime
	if err := s.notifier.BookingConfirmed(ctx, requester.Email, requester.Username,
		details.RoomName, details.RoomType, details.Date, slotRange); err != nil {
		logger.Error("failed to queue confirmation", "booking_id", bookingID, "error", err)
	}
}

func (s *service) notifyCancelled(ctx context.Context, userID, bookingID int) {
	if s.notifier == nil {
		return
	}

	details, requester, err := s.notificationContext(ctx, userID, bookingID)
	if err != nil {
		logger.Error("skipping cancellation notification", "booking_id", bookingID, "error", err)
		return
	}

	slotRange := details.StartTime + "-" + details.EndTime
	if err := s.notifier.BookingCancelled(ctx, requester.Email, requester.Username,
		details.RoomName, details.Date, slotRange); err != nil {
		logger.Error("failed to queue cancellation notice", "booking_id", bookingID, "error", err)
	}
}

func (s *service) notificationContext(ctx context.Context, userID, bookingID int) (*BookingWithDetails, *user.User, error) {
	details, err := s.repo.GetDetailsByID(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	requester, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return details, requester, nil
}
