package postgres

import (
	"context"
	"database/sql"
	"errors"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// RideRepository is a PostgreSQL implementation of repository.RideRepository.
type RideRepository struct {
	q Querier
}

// NewRideRepository creates a new PostgreSQL ride repository.
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{q: db}
}

// NewRideRepositoryWithTx creates a ride repository using a transaction.
func NewRideRepositoryWithTx(tx *sql.Tx) *RideRepository {
	return &RideRepository{q: tx}
}

const rideColumns = `id, owner_id, source, destination, total_seats, seats_remaining, fare_per_seat, created_at`

// Create persists a new ride.
func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	query := `
		INSERT INTO rides (id, owner_id, source, destination, total_seats, seats_remaining, fare_per_seat, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.q.ExecContext(ctx, query,
		ride.ID,
		ride.OwnerID,
		ride.Source,
		ride.Destination,
		ride.TotalSeats,
		ride.SeatsRemaining,
		ride.FarePerSeat,
		ride.CreatedAt,
	)
	return err
}

// GetByID retrieves a ride by ID.
func (r *RideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE id = $1`

	var ride domain.Ride
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&ride.ID,
		&ride.OwnerID,
		&ride.Source,
		&ride.Destination,
		&ride.TotalSeats,
		&ride.SeatsRemaining,
		&ride.FarePerSeat,
		&ride.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &ride, nil
}

// GetAll retrieves all rides in creation order.
func (r *RideRepository) GetAll(ctx context.Context) ([]*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides ORDER BY created_at, id`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return scanRides(rows)
}

// FindByRoute retrieves rides matching source and destination exactly.
// Backed by the (source, destination) index.
func (r *RideRepository) FindByRoute(ctx context.Context, source, destination string) ([]*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE source = $1 AND destination = $2 ORDER BY created_at, id`
	rows, err := r.q.QueryContext(ctx, query, source, destination)
	if err != nil {
		return nil, err
	}
	return scanRides(rows)
}

// GetByOwner retrieves rides published by a user.
func (r *RideRepository) GetByOwner(ctx context.Context, ownerID string) ([]*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE owner_id = $1 ORDER BY created_at, id`
	rows, err := r.q.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	return scanRides(rows)
}

// UpdateSeatsRemaining writes the ride's seat counter. The WHERE clause
// refuses values outside [0, total_seats] so a bug upstream can never drive
// the counter negative or past capacity at the storage layer either.
func (r *RideRepository) UpdateSeatsRemaining(ctx context.Context, id string, remaining int) error {
	query := `
		UPDATE rides SET seats_remaining = $1
		WHERE id = $2 AND $1 >= 0 AND $1 <= total_seats
	`
	result, err := r.q.ExecContext(ctx, query, remaining, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanRides(rows *sql.Rows) ([]*domain.Ride, error) {
	defer rows.Close()

	var rides []*domain.Ride
	for rows.Next() {
		var ride domain.Ride
		if err := rows.Scan(
			&ride.ID,
			&ride.OwnerID,
			&ride.Source,
			&ride.Destination,
			&ride.TotalSeats,
			&ride.SeatsRemaining,
			&ride.FarePerSeat,
			&ride.CreatedAt,
		); err != nil {
			return nil, err
		}
		rides = append(rides, &ride)
	}
	return rides, rows.Err()
}
