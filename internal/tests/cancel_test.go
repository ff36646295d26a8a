package tests

import (
	"context"
	"errors"
	"testing"

	"carpool/internal/domain"
	"carpool/internal/repository"
	"carpool/internal/service"
)

// bookSeats is a test helper that books and fails the test on error.
func bookSeats(t *testing.T, ledger *service.BookingService, rideID, userID string, seats int) *domain.Booking {
	t.Helper()
	booking, err := ledger.Book(context.Background(), service.BookRequest{
		RideID: rideID, UserID: userID, Seats: seats,
	})
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}
	return booking
}

func TestCancel_RestoresSeats(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	userRepo.AddUser(newUser("user-1"))
	rideRepo := NewMockRideRepository()
	addRide(rideRepo, "ride-1", 5, 500)
	bookingRepo := NewMockBookingRepository()

	catalog := service.NewCatalogService(rideRepo, userRepo)
	ledger := service.NewBookingService(bookingRepo, userRepo, catalog, nil)

	booking := bookSeats(t, ledger, "ride-1", "user-1", 3)

	err := ledger.Cancel(context.Background(), service.CancelRequest{
		BookingID: booking.ID, UserID: "user-1",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if got := rideRepo.SeatsRemaining("ride-1"); got != 5 {
		t.Errorf("expected all 5 seats back, got %d", got)
	}

	stored := bookingRepo.GetBooking(booking.ID)
	if stored.Status != domain.BookingStatusCancelled {
		t.Errorf("expected CANCELLED status, got %s", stored.Status)
	}
	if stored.CancelledAt.IsZero() {
		t.Error("expected cancelled_at to be set")
	}

	// Fare is frozen at booking time and survives cancellation.
	if stored.TotalFare != 1500 {
		t.Errorf("expected total fare still 1500 after cancel, got %d", stored.TotalFare)
	}
}

func TestCancel_Twice_FailsSecondTime(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	userRepo.AddUser(newUser("user-1"))
	rideRepo := NewMockRideRepository()
	addRide(rideRepo, "ride-1", 5, 500)
	bookingRepo := NewMockBookingRepository()

	catalog := service.NewCatalogService(rideRepo, userRepo)
	ledger := service.NewBookingService(bookingRepo, userRepo, catalog, nil)

	booking := bookSeats(t, ledger, "ride-1", "user-1", 2)

	if err := ledger.Cancel(context.Background(), service.CancelRequest{
		BookingID: booking.ID, UserID: "user-1",
	}); err != nil {
		t.Fatalf("first cancel failed: %v", err)
	}

	err := ledger.Cancel(context.Background(), service.CancelRequest{
		BookingID: booking.ID, UserID: "user-1",
	})
	if !errors.Is(err, service.ErrBookingAlreadyCancelled) {
		t.Fatalf("expected ErrBookingAlreadyCancelled, got %v", err)
	}

	// Seats restored exactly once.
	if got := rideRepo.SeatsRemaining("ride-1"); got != 5 {
		t.Errorf("expected 5 seats remaining, got %d", got)
	}
}

func TestCancel_ByOtherUser_Fails(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	userRepo.AddUser(newUser("user-a"))
	userRepo.AddUser(newUser("user-b"))
	rideRepo := NewMockRideRepository()
	addRide(rideRepo, "ride-1", 5, 500)
	bookingRepo := NewMockBookingRepository()

	catalog := service.NewCatalogService(rideRepo, userRepo)
	ledger := service.NewBookingService(bookingRepo, userRepo, catalog, nil)

	booking := bookSeats(t, ledger, "ride-1", "user-a", 2)

	err := ledger.Cancel(context.Background(), service.CancelRequest{
		BookingID: booking.ID, UserID: "user-b",
	})
	if !errors.Is(err, service.ErrNotBookingOwner) {
		t.Fatalf("expected ErrNotBookingOwner, got %v", err)
	}

	// Nothing moved.
	if got := rideRepo.SeatsRemaining("ride-1"); got != 3 {
		t.Errorf("expected 3 seats remaining, got %d", got)
	}
	if bookingRepo.GetBooking(booking.ID).Status != domain.BookingStatusActive {
		t.Error("expected booking still ACTIVE")
	}
}

func TestCancel_UnknownBooking_Fails(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	userRepo.AddUser(newUser("user-1"))
	rideRepo := NewMockRideRepository()
	bookingRepo := NewMockBookingRepository()

	catalog := service.NewCatalogService(rideRepo, userRepo)
	ledger := service.NewBookingService(bookingRepo, userRepo, catalog, nil)

	err := ledger.Cancel(context.Background(), service.CancelRequest{
		BookingID: "no-such-booking", UserID: "user-1",
	})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCancel_RestoreFailure_RevertsStatus(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	userRepo.AddUser(newUser("user-1"))
	rideRepo := NewMockRideRepository()
	addRide(rideRepo, "ride-1", 5, 500)
	bookingRepo := NewMockBookingRepository()

	catalog := service.NewCatalogService(rideRepo, userRepo)
	ledger := service.NewBookingService(bookingRepo, userRepo, catalog, nil)

	booking := bookSeats(t, ledger, "ride-1", "user-1", 2)

	// Make the seat restore fail after the status flip.
	rideRepo.UpdateSeatsError = errors.New("storage stalled")

	err := ledger.Cancel(context.Background(), service.CancelRequest{
		BookingID: booking.ID, UserID: "user-1",
	})
	if err == nil {
		t.Fatal("expected cancel to surface the restore failure")
	}

	// No partial application: the booking must be back to ACTIVE since the
	// seats were never restored.
	stored := bookingRepo.GetBooking(booking.ID)
	if stored.Status != domain.BookingStatusActive {
		t.Errorf("expected booking reverted to ACTIVE, got %s", stored.Status)
	}
	if got := rideRepo.SeatsRemaining("ride-1"); got != 3 {
		t.Errorf("expected seats still 3, got %d", got)
	}
}
