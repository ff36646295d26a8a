package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/domain"
	"carpool/internal/service"
)

// BookingHandler handles HTTP requests for bookings.
type BookingHandler struct {
	bookingService *service.BookingService
	query          *service.QueryService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService *service.BookingService, query *service.QueryService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService, query: query}
}

// CreateBookingRequest is the HTTP request body for booking seats.
type CreateBookingRequest struct {
	RideID string `json:"ride_id"`
	UserID string `json:"user_id"`
	Seats  int    `json:"seats"`
}

// BookingResponse is the HTTP response for booking data.
type BookingResponse struct {
	ID          string `json:"id"`
	RideID      string `json:"ride_id"`
	UserID      string `json:"user_id"`
	SeatsBooked int    `json:"seats_booked"`
	TotalFare   int    `json:"total_fare"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	CancelledAt string `json:"cancelled_at,omitempty"`
}

func bookingResponse(b *domain.Booking) BookingResponse {
	response := BookingResponse{
		ID:          b.ID,
		RideID:      b.RideID,
		UserID:      b.UserID,
		SeatsBooked: b.SeatsBooked,
		TotalFare:   b.TotalFare,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if !b.CancelledAt.IsZero() {
		response.CancelledAt = b.CancelledAt.Format("2006-01-02T15:04:05Z07:00")
	}
	return response
}

// Create handles POST /v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	booking, err := h.bookingService.Book(c.Request.Context(), service.BookRequest{
		RideID: req.RideID,
		UserID: req.UserID,
		Seats:  req.Seats,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, bookingResponse(booking))
}

// Cancel handles DELETE /v1/bookings/:id?user_id=
func (h *BookingHandler) Cancel(c *gin.Context) {
	bookingID := c.Param("id")
	userID := c.Query("user_id")

	err := h.bookingService.Cancel(c.Request.Context(), service.CancelRequest{
		BookingID: bookingID,
		UserID:    userID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListForUser handles GET /v1/users/:id/bookings
func (h *BookingHandler) ListForUser(c *gin.Context) {
	bookings, err := h.query.BookingsForUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		response = append(response, bookingResponse(b))
	}
	c.JSON(http.StatusOK, response)
}
