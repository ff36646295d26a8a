package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// BookingRepository is a PostgreSQL implementation of repository.BookingRepository.
type BookingRepository struct {
	q Querier
}

// NewBookingRepository creates a new PostgreSQL booking repository.
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{q: db}
}

// NewBookingRepositoryWithTx creates a booking repository using a transaction.
func NewBookingRepositoryWithTx(tx *sql.Tx) *BookingRepository {
	return &BookingRepository{q: tx}
}

const bookingColumns = `id, ride_id, user_id, seats_booked, total_fare, status, created_at, cancelled_at`

// Create persists a new booking.
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (id, ride_id, user_id, seats_booked, total_fare, status, created_at, cancelled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	var cancelledAt sql.NullTime
	if !booking.CancelledAt.IsZero() {
		cancelledAt = sql.NullTime{Time: booking.CancelledAt, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		booking.ID,
		booking.RideID,
		booking.UserID,
		booking.SeatsBooked,
		booking.TotalFare,
		booking.Status,
		booking.CreatedAt,
		cancelledAt,
	)
	return err
}

// GetByID retrieves a booking by ID.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return booking, nil
}

// GetByUser retrieves all bookings made by a user, any status.
// Backed by the user_id index.
func (r *BookingRepository) GetByUser(ctx context.Context, userID string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY created_at, id`
	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return scanBookings(rows)
}

// GetByRide retrieves all bookings on a ride, any status.
// Backed by the ride_id index.
func (r *BookingRepository) GetByRide(ctx context.Context, rideID string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ride_id = $1 ORDER BY created_at, id`
	rows, err := r.q.QueryContext(ctx, query, rideID)
	if err != nil {
		return nil, err
	}
	return scanBookings(rows)
}

// UpdateStatus transitions a booking between statuses with a conditional
// update. Zero rows affected means the booking is missing or no longer in
// the `from` status; either way the transition did not happen.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus, at time.Time) error {
	query := `UPDATE bookings SET status = $1, cancelled_at = $2 WHERE id = $3 AND status = $4`

	var cancelledAt sql.NullTime
	if to == domain.BookingStatusCancelled {
		cancelledAt = sql.NullTime{Time: at, Valid: true}
	}

	result, err := r.q.ExecContext(ctx, query, to, cancelledAt, id, from)
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

func scanBooking(row *sql.Row) (*domain.Booking, error) {
	var booking domain.Booking
	var cancelledAt sql.NullTime
	err := row.Scan(
		&booking.ID,
		&booking.RideID,
		&booking.UserID,
		&booking.SeatsBooked,
		&booking.TotalFare,
		&booking.Status,
		&booking.CreatedAt,
		&cancelledAt,
	)
	if err != nil {
		return nil, err
	}
	if cancelledAt.Valid {
		booking.CancelledAt = cancelledAt.Time
	}
	return &booking, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		var booking domain.Booking
		var cancelledAt sql.NullTime
		if err := rows.Scan(
			&booking.ID,
			&booking.RideID,
			&booking.UserID,
			&booking.SeatsBooked,
			&booking.TotalFare,
			&booking.Status,
			&booking.CreatedAt,
			&cancelledAt,
		); err != nil {
			return nil, err
		}
		if cancelledAt.Valid {
			booking.CancelledAt = cancelledAt.Time
		}
		bookings = append(bookings, &booking)
	}
	return bookings, rows.Err()
}
