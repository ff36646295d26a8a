package domain

import "time"

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "ACTIVE"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Booking represents a seat reservation on a ride. SeatsBooked and TotalFare
// are snapshotted at booking time and never change afterwards, including
// across cancellation. A booking transitions ACTIVE -> CANCELLED exactly
// once and is never physically deleted.
type Booking struct {
	ID          string
	RideID      string
	UserID      string
	SeatsBooked int
	TotalFare   int
	Status      BookingStatus
	CreatedAt   time.Time
	CancelledAt time.Time
}
