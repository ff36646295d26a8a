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

func newQueryFixture() (*service.QueryService, *service.BookingService, *MockRideRepository) {
	userRepo := NewMockUserRepository()
	userRepo.AddUser(newUser("user-1"))
	userRepo.AddUser(newUser("user-2"))

	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(&domain.Ride{
		ID: "ride-1", OwnerID: "user-1", Source: "Delhi", Destination: "Jaipur",
		TotalSeats: 4, SeatsRemaining: 4, FarePerSeat: 500, CreatedAt: time.Now(),
	})
	rideRepo.AddRide(&domain.Ride{
		ID: "ride-2", OwnerID: "user-2", Source: "Delhi", Destination: "Agra",
		TotalSeats: 3, SeatsRemaining: 3, FarePerSeat: 400, CreatedAt: time.Now(),
	})
	rideRepo.AddRide(&domain.Ride{
		ID: "ride-3", OwnerID: "user-1", Source: "Delhi", Destination: "Jaipur",
		TotalSeats: 2, SeatsRemaining: 2, FarePerSeat: 600, CreatedAt: time.Now(),
	})

	bookingRepo := NewMockBookingRepository()
	catalog := service.NewCatalogService(rideRepo, userRepo)
	ledger := service.NewBookingService(bookingRepo, userRepo, catalog, nil)
	query := service.NewQueryService(catalog, ledger, rideRepo, userRepo)
	return query, ledger, rideRepo
}

func TestSearchRides_FiltersByRoute_InCreationOrder(t *testing.T) {
	t.Parallel()

	query, _, _ := newQueryFixture()

	rides, err := query.SearchRides(context.Background(), "Delhi", "Jaipur")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(rides) != 2 {
		t.Fatalf("expected 2 rides, got %d", len(rides))
	}
	if rides[0].ID != "ride-1" || rides[1].ID != "ride-3" {
		t.Errorf("expected creation order [ride-1 ride-3], got [%s %s]", rides[0].ID, rides[1].ID)
	}
}

func TestSearchRides_NoFilter_ListsAll(t *testing.T) {
	t.Parallel()

	query, _, _ := newQueryFixture()

	rides, err := query.SearchRides(context.Background(), "", "")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(rides) != 3 {
		t.Errorf("expected 3 rides, got %d", len(rides))
	}
}

func TestSearchRides_PartialFilter_Fails(t *testing.T) {
	t.Parallel()

	query, _, _ := newQueryFixture()

	if _, err := query.SearchRides(context.Background(), "Delhi", ""); !errors.Is(err, service.ErrInvalidRoute) {
		t.Errorf("expected ErrInvalidRoute, got %v", err)
	}
}

func TestSearchRides_IsCaseSensitive(t *testing.T) {
	t.Parallel()

	query, _, _ := newQueryFixture()

	rides, err := query.SearchRides(context.Background(), "delhi", "jaipur")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(rides) != 0 {
		t.Errorf("expected exact-match search to find nothing, got %d rides", len(rides))
	}
}

func TestBookingsForUser_IncludesCancelled_InCreationOrder(t *testing.T) {
	t.Parallel()

	query, ledger, _ := newQueryFixture()

	first := bookSeats(t, ledger, "ride-1", "user-2", 1)
	second := bookSeats(t, ledger, "ride-3", "user-2", 2)

	if err := ledger.Cancel(context.Background(), service.CancelRequest{
		BookingID: first.ID, UserID: "user-2",
	}); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	bookings, err := query.BookingsForUser(context.Background(), "user-2")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(bookings) != 2 {
		t.Fatalf("expected 2 bookings (cancelled included), got %d", len(bookings))
	}
	if bookings[0].ID != first.ID || bookings[1].ID != second.ID {
		t.Errorf("expected creation order [%s %s], got [%s %s]",
			first.ID, second.ID, bookings[0].ID, bookings[1].ID)
	}
	if bookings[0].Status != domain.BookingStatusCancelled {
		t.Errorf("expected first booking CANCELLED, got %s", bookings[0].Status)
	}
	if bookings[1].Status != domain.BookingStatusActive {
		t.Errorf("expected second booking ACTIVE, got %s", bookings[1].Status)
	}
}

func TestBookingsForUser_UnknownUser_Fails(t *testing.T) {
	t.Parallel()

	query, _, _ := newQueryFixture()

	if _, err := query.BookingsForUser(context.Background(), "ghost"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRidesForOwner_ListsOwnRidesOnly(t *testing.T) {
	t.Parallel()

	query, _, _ := newQueryFixture()

	rides, err := query.RidesForOwner(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(rides) != 2 {
		t.Fatalf("expected 2 rides, got %d", len(rides))
	}
	for _, r := range rides {
		if r.OwnerID != "user-1" {
			t.Errorf("expected only user-1 rides, got ride %s owned by %s", r.ID, r.OwnerID)
		}
	}
}

func TestSearchRides_ReflectsLiveSeatCounts(t *testing.T) {
	t.Parallel()

	query, ledger, rideRepo := newQueryFixture()

	bookSeats(t, ledger, "ride-1", "user-2", 3)

	rides, err := query.SearchRides(context.Background(), "Delhi", "Jaipur")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if rides[0].SeatsRemaining != 1 {
		t.Errorf("expected 1 seat remaining on ride-1, got %d", rides[0].SeatsRemaining)
	}
	if got := rideRepo.SeatsRemaining("ride-1"); got != 1 {
		t.Errorf("repository counter disagrees: %d", got)
	}
}
