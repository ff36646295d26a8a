package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"carpool/internal/domain"
	"carpool/internal/repository"
	"carpool/internal/service"
)

func addRide(rideRepo *MockRideRepository, id string, seats, fare int) {
	rideRepo.AddRide(&domain.Ride{
		ID:             id,
		OwnerID:        "owner-1",
		Source:         "Delhi",
		Destination:    "Jaipur",
		TotalSeats:     seats,
		SeatsRemaining: seats,
		FarePerSeat:    fare,
		CreatedAt:      time.Now(),
	})
}

func TestBook_Succeeds_WithFareSnapshot(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	userRepo.AddUser(newUser("user-1"))
	rideRepo := NewMockRideRepository()
	addRide(rideRepo, "ride-1", 5, 500)
	bookingRepo := NewMockBookingRepository()

	catalog := service.NewCatalogService(rideRepo, userRepo)
	ledger := service.NewBookingService(bookingRepo, userRepo, catalog, nil)

	booking, err := ledger.Book(context.Background(), service.BookRequest{
		RideID: "ride-1", UserID: "user-1", Seats: 3,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if booking.TotalFare != 1500 {
		t.Errorf("expected total fare 1500 (3 x 500), got %d", booking.TotalFare)
	}
	if booking.Status != domain.BookingStatusActive {
		t.Errorf("expected ACTIVE status, got %s", booking.Status)
	}
	if got := rideRepo.SeatsRemaining("ride-1"); got != 2 {
		t.Errorf("expected 2 seats remaining, got %d", got)
	}
}

func TestBook_InsufficientSeats_Fails(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	userRepo.AddUser(newUser("user-1"))
	rideRepo := NewMockRideRepository()
	addRide(rideRepo, "ride-1", 2, 500)
	bookingRepo := NewMockBookingRepository()

	catalog := service.NewCatalogService(rideRepo, userRepo)
	ledger := service.NewBookingService(bookingRepo, userRepo, catalog, nil)

	_, err := ledger.Book(context.Background(), service.BookRequest{
		RideID: "ride-1", UserID: "user-1", Seats: 3,
	})
	if !errors.Is(err, service.ErrInsufficientSeats) {
		t.Fatalf("expected ErrInsufficientSeats, got %v", err)
	}

	// No mutation, no booking record.
	if got := rideRepo.SeatsRemaining("ride-1"); got != 2 {
		t.Errorf("expected seats unchanged at 2, got %d", got)
	}
	if bookingRepo.CountBookings() != 0 {
		t.Error("expected no booking record")
	}
}

func TestBook_UnknownRideOrUser_Fails(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	userRepo.AddUser(newUser("user-1"))
	rideRepo := NewMockRideRepository()
	addRide(rideRepo, "ride-1", 2, 500)
	bookingRepo := NewMockBookingRepository()

	catalog := service.NewCatalogService(rideRepo, userRepo)
	ledger := service.NewBookingService(bookingRepo, userRepo, catalog, nil)

	if _, err := ledger.Book(context.Background(), service.BookRequest{
		RideID: "no-such-ride", UserID: "user-1", Seats: 1,
	}); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown ride, got %v", err)
	}

	if _, err := ledger.Book(context.Background(), service.BookRequest{
		RideID: "ride-1", UserID: "no-such-user", Seats: 1,
	}); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown user, got %v", err)
	}

	if bookingRepo.CountBookings() != 0 {
		t.Error("expected no booking record")
	}
}

func TestBook_InvalidSeatCount_Fails(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	userRepo.AddUser(newUser("user-1"))
	rideRepo := NewMockRideRepository()
	addRide(rideRepo, "ride-1", 2, 500)
	bookingRepo := NewMockBookingRepository()

	catalog := service.NewCatalogService(rideRepo, userRepo)
	ledger := service.NewBookingService(bookingRepo, userRepo, catalog, nil)

	for _, seats := range []int{0, -2} {
		_, err := ledger.Book(context.Background(), service.BookRequest{
			RideID: "ride-1", UserID: "user-1", Seats: seats,
		})
		if !errors.Is(err, service.ErrInvalidSeatCount) {
			t.Errorf("seats=%d: expected ErrInvalidSeatCount, got %v", seats, err)
		}
	}
}

func TestBook_PersistFailure_RestoresSeats(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	userRepo.AddUser(newUser("user-1"))
	rideRepo := NewMockRideRepository()
	addRide(rideRepo, "ride-1", 5, 500)
	bookingRepo := NewMockBookingRepository()
	bookingRepo.CreateError = errors.New("write failed")

	catalog := service.NewCatalogService(rideRepo, userRepo)
	ledger := service.NewBookingService(bookingRepo, userRepo, catalog, nil)

	_, err := ledger.Book(context.Background(), service.BookRequest{
		RideID: "ride-1", UserID: "user-1", Seats: 3,
	})
	if err == nil {
		t.Fatal("expected error from booking persistence")
	}

	// All-or-nothing: the reservation must have been rolled back.
	if got := rideRepo.SeatsRemaining("ride-1"); got != 5 {
		t.Errorf("expected seats restored to 5, got %d", got)
	}
	if bookingRepo.CountBookings() != 0 {
		t.Error("expected no partial booking record")
	}
}
