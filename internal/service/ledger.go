package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// BookingService is the booking ledger. It owns booking records and drives
// every seat mutation through the catalog, so the ride's counter and the
// set of active bookings stay mutually consistent.
type BookingService struct {
	bookingRepo         repository.BookingRepository
	userRepo            repository.UserRepository
	catalog             *CatalogService
	notificationService *NotificationService
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookingRepo repository.BookingRepository,
	userRepo repository.UserRepository,
	catalog *CatalogService,
	notificationService *NotificationService,
) *BookingService {
	return &BookingService{
		bookingRepo:         bookingRepo,
		userRepo:            userRepo,
		catalog:             catalog,
		notificationService: notificationService,
	}
}

// BookRequest contains the parameters for booking seats on a ride.
type BookRequest struct {
	RideID string
	UserID string
	Seats  int
}

// Book reserves seats on a ride and records the booking. The reservation is
// the commit point: if persisting the booking record fails afterwards, the
// seats are restored before the error surfaces, so the operation is
// all-or-nothing from the caller's perspective. The total fare is
// snapshotted from the ride at booking time and never changes again.
func (s *BookingService) Book(ctx context.Context, req BookRequest) (*domain.Booking, error) {
	if req.RideID == "" {
		return nil, ErrInvalidRideID
	}
	if req.UserID == "" {
		return nil, ErrInvalidUserID
	}
	if req.Seats <= 0 {
		return nil, ErrInvalidSeatCount
	}

	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	// FarePerSeat is immutable, so reading it before the reservation
	// cannot race with a fare change.
	ride, err := s.catalog.RideByID(ctx, req.RideID)
	if err != nil {
		return nil, err
	}

	if err := s.catalog.ReserveSeats(ctx, req.RideID, req.Seats); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ID:          uuid.New().String(),
		RideID:      req.RideID,
		UserID:      req.UserID,
		SeatsBooked: req.Seats,
		TotalFare:   req.Seats * ride.FarePerSeat,
		Status:      domain.BookingStatusActive,
		CreatedAt:   time.Now(),
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		// Give the seats back; a failed booking write must not leak them.
		if restoreErr := s.catalog.RestoreSeats(ctx, req.RideID, req.Seats); restoreErr != nil {
			log.Printf("failed to restore %d seats on ride %s after booking write failure: %v",
				req.Seats, req.RideID, restoreErr)
		}
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyBookingConfirmed(ctx, booking, ride)
	}

	return booking, nil
}

// CancelRequest contains the parameters for cancelling a booking.
type CancelRequest struct {
	BookingID string
	UserID    string
}

// Cancel marks a booking cancelled and restores its seats to the ride. Only
// the booking's owner may cancel it, and only once. The status flip is a
// compare-and-set on ACTIVE, so when two cancels race exactly one wins and
// the seats are restored exactly once; the loser sees
// ErrBookingAlreadyCancelled. If the restore fails the status flip is
// compensated back to ACTIVE so the two mutations land together or not
// at all.
func (s *BookingService) Cancel(ctx context.Context, req CancelRequest) error {
	if req.BookingID == "" {
		return ErrInvalidBookingID
	}
	if req.UserID == "" {
		return ErrInvalidUserID
	}

	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		return err
	}

	// Caller-asserted identity: the surrounding system vouches for the
	// user ID, the ledger only checks ownership.
	if booking.UserID != req.UserID {
		return ErrNotBookingOwner
	}

	if booking.Status == domain.BookingStatusCancelled {
		return ErrBookingAlreadyCancelled
	}

	cancelledAt := time.Now()
	err = s.bookingRepo.UpdateStatus(ctx, req.BookingID,
		domain.BookingStatusActive, domain.BookingStatusCancelled, cancelledAt)
	if err != nil {
		if err == repository.ErrNotFound {
			// Lost the race to another cancel.
			return ErrBookingAlreadyCancelled
		}
		return err
	}

	if err := s.catalog.RestoreSeats(ctx, booking.RideID, booking.SeatsBooked); err != nil {
		revertErr := s.bookingRepo.UpdateStatus(ctx, req.BookingID,
			domain.BookingStatusCancelled, domain.BookingStatusActive, time.Time{})
		if revertErr != nil {
			log.Printf("booking %s marked cancelled but restore of %d seats on ride %s failed and revert failed: restore=%v revert=%v",
				req.BookingID, booking.SeatsBooked, booking.RideID, err, revertErr)
		}
		return err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyBookingCancelled(ctx, booking, cancelledAt)
	}

	return nil
}

// BookingsForUser lists every booking made by a user, active and cancelled,
// in creation order.
func (s *BookingService) BookingsForUser(ctx context.Context, userID string) ([]*domain.Booking, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	return s.bookingRepo.GetByUser(ctx, userID)
}
