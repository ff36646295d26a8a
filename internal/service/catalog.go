package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// rideLocks hands out one mutex per ride ID so seat mutations on the same
// ride serialize while unrelated rides proceed independently. Locks are
// created lazily and never reclaimed; rides are never deleted, so the map
// grows with the catalog, which is also how the ride table behaves.
type rideLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newRideLocks() *rideLocks {
	return &rideLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *rideLocks) get(rideID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock, ok := l.locks[rideID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[rideID] = lock
	}
	return lock
}

// CatalogService owns the set of published rides and their seat inventory.
// ReserveSeats and RestoreSeats are the only paths that mutate a ride's
// seat counter, and each runs entirely under that ride's mutex, so the
// check-and-decrement is indivisible.
type CatalogService struct {
	rideRepo repository.RideRepository
	userRepo repository.UserRepository
	locks    *rideLocks
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(rideRepo repository.RideRepository, userRepo repository.UserRepository) *CatalogService {
	return &CatalogService{
		rideRepo: rideRepo,
		userRepo: userRepo,
		locks:    newRideLocks(),
	}
}

// PublishRequest contains the parameters for publishing a ride.
type PublishRequest struct {
	OwnerID     string
	Source      string
	Destination string
	Seats       int
	FarePerSeat int
}

// Publish validates and creates a new ride with its full capacity
// available. The ride is visible to search as soon as this returns.
func (s *CatalogService) Publish(ctx context.Context, req PublishRequest) (*domain.Ride, error) {
	if err := s.validatePublishRequest(req); err != nil {
		return nil, err
	}

	// The owner must be a registered user.
	if _, err := s.userRepo.GetByID(ctx, req.OwnerID); err != nil {
		return nil, err
	}

	ride := &domain.Ride{
		ID:             uuid.New().String(),
		OwnerID:        req.OwnerID,
		Source:         req.Source,
		Destination:    req.Destination,
		TotalSeats:     req.Seats,
		SeatsRemaining: req.Seats,
		FarePerSeat:    req.FarePerSeat,
		CreatedAt:      time.Now(),
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, err
	}

	return ride, nil
}

func (s *CatalogService) validatePublishRequest(req PublishRequest) error {
	if req.OwnerID == "" {
		return ErrInvalidOwnerID
	}
	if req.Source == "" || req.Destination == "" {
		return ErrInvalidRoute
	}
	if req.Seats <= 0 {
		return ErrInvalidSeatCount
	}
	if req.FarePerSeat <= 0 {
		return ErrInvalidFare
	}
	return nil
}

// ReserveSeats atomically checks and decrements a ride's seat counter.
// Returns ErrInsufficientSeats without mutating anything if fewer than
// count seats remain.
func (s *CatalogService) ReserveSeats(ctx context.Context, rideID string, count int) error {
	if rideID == "" {
		return ErrInvalidRideID
	}
	if count <= 0 {
		return ErrInvalidSeatCount
	}

	lock := s.locks.get(rideID)
	lock.Lock()
	defer lock.Unlock()

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return err
	}

	if ride.SeatsRemaining < count {
		return ErrInsufficientSeats
	}

	return s.rideRepo.UpdateSeatsRemaining(ctx, rideID, ride.SeatsRemaining-count)
}

// RestoreSeats atomically increments a ride's seat counter. A restore that
// would exceed capacity means reserve/restore bookkeeping broke somewhere
// upstream; it is logged and reported, and the counter is left untouched.
func (s *CatalogService) RestoreSeats(ctx context.Context, rideID string, count int) error {
	if rideID == "" {
		return ErrInvalidRideID
	}
	if count <= 0 {
		return ErrInvalidSeatCount
	}

	lock := s.locks.get(rideID)
	lock.Lock()
	defer lock.Unlock()

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return err
	}

	if ride.SeatsRemaining+count > ride.TotalSeats {
		log.Printf("seat accounting violation: ride=%s remaining=%d restore=%d capacity=%d",
			rideID, ride.SeatsRemaining, count, ride.TotalSeats)
		return ErrSeatAccounting
	}

	return s.rideRepo.UpdateSeatsRemaining(ctx, rideID, ride.SeatsRemaining+count)
}

// RideByID retrieves a single ride.
func (s *CatalogService) RideByID(ctx context.Context, rideID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	return s.rideRepo.GetByID(ctx, rideID)
}

// FindByRoute lists rides matching source and destination exactly, as
// supplied, in creation order.
func (s *CatalogService) FindByRoute(ctx context.Context, source, destination string) ([]*domain.Ride, error) {
	if source == "" || destination == "" {
		return nil, ErrInvalidRoute
	}
	return s.rideRepo.FindByRoute(ctx, source, destination)
}

// ListAll lists every published ride in creation order.
func (s *CatalogService) ListAll(ctx context.Context) ([]*domain.Ride, error) {
	return s.rideRepo.GetAll(ctx)
}
