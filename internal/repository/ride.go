package repository

import (
	"context"

	"carpool/internal/domain"
)

// RideRepository defines the persistence operations for rides.
type RideRepository interface {
	// Create persists a new ride.
	Create(ctx context.Context, ride *domain.Ride) error

	// GetByID retrieves a ride by ID.
	GetByID(ctx context.Context, id string) (*domain.Ride, error)

	// GetAll retrieves all rides in creation order.
	GetAll(ctx context.Context) ([]*domain.Ride, error)

	// FindByRoute retrieves rides matching source and destination exactly,
	// in creation order.
	FindByRoute(ctx context.Context, source, destination string) ([]*domain.Ride, error)

	// GetByOwner retrieves rides published by a user, in creation order.
	GetByOwner(ctx context.Context, ownerID string) ([]*domain.Ride, error)

	// UpdateSeatsRemaining writes the ride's seat counter. Callers are
	// responsible for serializing updates to the same ride; the value must
	// stay within [0, TotalSeats].
	UpdateSeatsRemaining(ctx context.Context, id string, remaining int) error
}
