package domain

import "time"

// Ride represents a published seat offer. TotalSeats and FarePerSeat are
// fixed at creation; SeatsRemaining is the live inventory counter and is
// only ever mutated through the catalog's reserve/restore operations.
// Rides are never deleted, even when fully booked.
type Ride struct {
	ID             string
	OwnerID        string
	Source         string
	Destination    string
	TotalSeats     int
	SeatsRemaining int
	FarePerSeat    int
	CreatedAt      time.Time
}
