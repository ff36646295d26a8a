package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"carpool/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationBookingConfirmed NotificationType = "BOOKING_CONFIRMED"
	NotificationBookingCancelled NotificationType = "BOOKING_CANCELLED"
	NotificationRidePublished    NotificationType = "RIDE_PUBLISHED"
)

// Notification represents a notification to be sent.
type Notification struct {
	Type        NotificationType
	RecipientID string
	Title       string
	Message     string
	Data        map[string]interface{}
	CreatedAt   time.Time
}

// NotificationService handles notification delivery.
type NotificationService struct {
	// In a real system, this would have:
	// - Push notification client (FCM, APNS)
	// - Email client (SendGrid)
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyBookingConfirmed notifies the booking user and the ride owner.
func (s *NotificationService) NotifyBookingConfirmed(ctx context.Context, booking *domain.Booking, ride *domain.Ride) error {
	s.send(ctx, Notification{
		Type:        NotificationBookingConfirmed,
		RecipientID: booking.UserID,
		Title:       "Booking Confirmed",
		Message:     fmt.Sprintf("Booked %d seat(s) from %s to %s for %d", booking.SeatsBooked, ride.Source, ride.Destination, booking.TotalFare),
		Data: map[string]interface{}{
			"booking_id": booking.ID,
			"ride_id":    booking.RideID,
			"total_fare": booking.TotalFare,
		},
		CreatedAt: booking.CreatedAt,
	})
	s.send(ctx, Notification{
		Type:        NotificationBookingConfirmed,
		RecipientID: ride.OwnerID,
		Title:       "Seats Booked",
		Message:     fmt.Sprintf("%d seat(s) booked on your ride %s -> %s", booking.SeatsBooked, ride.Source, ride.Destination),
		Data: map[string]interface{}{
			"booking_id":      booking.ID,
			"ride_id":         ride.ID,
			"seats_remaining": ride.SeatsRemaining - booking.SeatsBooked,
		},
		CreatedAt: booking.CreatedAt,
	})
	return nil
}

// NotifyBookingCancelled notifies the booking user that the cancellation
// went through and the seats were returned.
func (s *NotificationService) NotifyBookingCancelled(ctx context.Context, booking *domain.Booking, cancelledAt time.Time) error {
	s.send(ctx, Notification{
		Type:        NotificationBookingCancelled,
		RecipientID: booking.UserID,
		Title:       "Booking Cancelled",
		Message:     fmt.Sprintf("Cancelled booking of %d seat(s); fare was %d", booking.SeatsBooked, booking.TotalFare),
		Data: map[string]interface{}{
			"booking_id": booking.ID,
			"ride_id":    booking.RideID,
		},
		CreatedAt: cancelledAt,
	})
	return nil
}

// send delivers a notification. Currently logs; would integrate with
// push/email providers in production.
func (s *NotificationService) send(ctx context.Context, n Notification) {
	log.Printf("[NOTIFICATION] type=%s recipient=%s title=%q message=%q",
		n.Type, n.RecipientID, n.Title, n.Message)
}
