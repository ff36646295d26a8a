package service

import (
	"context"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// QueryService is a stateless read-only projection over the catalog and the
// booking ledger. It adds no invariants of its own.
type QueryService struct {
	catalog  *CatalogService
	bookings *BookingService
	rideRepo repository.RideRepository
	userRepo repository.UserRepository
}

// NewQueryService creates a new QueryService.
func NewQueryService(
	catalog *CatalogService,
	bookings *BookingService,
	rideRepo repository.RideRepository,
	userRepo repository.UserRepository,
) *QueryService {
	return &QueryService{
		catalog:  catalog,
		bookings: bookings,
		rideRepo: rideRepo,
		userRepo: userRepo,
	}
}

// SearchRides lists rides, filtered by route when both source and
// destination are supplied. A partial filter is a validation error so a
// caller never silently gets the unfiltered list.
func (s *QueryService) SearchRides(ctx context.Context, source, destination string) ([]*domain.Ride, error) {
	if source == "" && destination == "" {
		return s.catalog.ListAll(ctx)
	}
	return s.catalog.FindByRoute(ctx, source, destination)
}

// RideByID retrieves a single ride.
func (s *QueryService) RideByID(ctx context.Context, rideID string) (*domain.Ride, error) {
	return s.catalog.RideByID(ctx, rideID)
}

// RidesForOwner lists rides published by a user, in creation order.
func (s *QueryService) RidesForOwner(ctx context.Context, ownerID string) ([]*domain.Ride, error) {
	if ownerID == "" {
		return nil, ErrInvalidUserID
	}
	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.rideRepo.GetByOwner(ctx, ownerID)
}

// BookingsForUser lists a user's booking history, both statuses.
func (s *QueryService) BookingsForUser(ctx context.Context, userID string) ([]*domain.Booking, error) {
	return s.bookings.BookingsForUser(ctx, userID)
}
