package service

import "errors"

var (
	// ErrInvalidOwnerID is returned when the publishing owner ID is empty.
	ErrInvalidOwnerID = errors.New("invalid owner id")

	// ErrInvalidRoute is returned when source or destination is empty.
	ErrInvalidRoute = errors.New("source and destination are required")

	// ErrInvalidSeatCount is returned when a seat count is not positive.
	ErrInvalidSeatCount = errors.New("seat count must be greater than zero")

	// ErrInvalidFare is returned when the per-seat fare is not positive.
	ErrInvalidFare = errors.New("fare per seat must be greater than zero")

	// ErrInvalidUserID is returned when a user ID is empty.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrInvalidRideID is returned when a ride ID is empty.
	ErrInvalidRideID = errors.New("invalid ride id")

	// ErrInvalidBookingID is returned when a booking ID is empty.
	ErrInvalidBookingID = errors.New("invalid booking id")

	// ErrInvalidEmail is returned when an email is empty or malformed.
	ErrInvalidEmail = errors.New("invalid email")

	// ErrInvalidName is returned when a user name is empty.
	ErrInvalidName = errors.New("name is required")

	// ErrInsufficientSeats is returned when a ride does not have enough
	// seats remaining for the requested reservation.
	ErrInsufficientSeats = errors.New("not enough seats available")

	// ErrNotBookingOwner is returned when a user tries to cancel a booking
	// they do not own.
	ErrNotBookingOwner = errors.New("booking belongs to another user")

	// ErrBookingAlreadyCancelled is returned when cancelling a booking that
	// has already been cancelled.
	ErrBookingAlreadyCancelled = errors.New("booking already cancelled")

	// ErrSeatAccounting is returned when a seat restore would push the
	// counter past capacity. It signals a broken invariant, never a normal
	// caller mistake, and is always logged before being returned.
	ErrSeatAccounting = errors.New("seat accounting violation")
)
