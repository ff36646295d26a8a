package repository

import (
	"context"
	"time"

	"carpool/internal/domain"
)

// BookingRepository defines the persistence operations for bookings.
type BookingRepository interface {
	// Create persists a new booking.
	Create(ctx context.Context, booking *domain.Booking) error

	// GetByID retrieves a booking by ID.
	GetByID(ctx context.Context, id string) (*domain.Booking, error)

	// GetByUser retrieves all bookings made by a user (any status),
	// in creation order.
	GetByUser(ctx context.Context, userID string) ([]*domain.Booking, error)

	// GetByRide retrieves all bookings on a ride (any status),
	// in creation order.
	GetByRide(ctx context.Context, rideID string) ([]*domain.Booking, error)

	// UpdateStatus transitions a booking from one status to another. The
	// transition only applies if the booking currently has the `from`
	// status; otherwise ErrNotFound is returned and nothing changes. This
	// compare-and-set is what makes a racing double-cancel lose cleanly.
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus, at time.Time) error
}
