package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/domain"
	"carpool/internal/service"
)

// RideHandler handles HTTP requests for rides.
type RideHandler struct {
	catalog *service.CatalogService
	query   *service.QueryService
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(catalog *service.CatalogService, query *service.QueryService) *RideHandler {
	return &RideHandler{catalog: catalog, query: query}
}

// PublishRideRequest is the HTTP request body for publishing a ride.
type PublishRideRequest struct {
	OwnerID     string `json:"owner_id"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Seats       int    `json:"seats"`
	FarePerSeat int    `json:"fare_per_seat"`
}

// RideResponse is the HTTP response for ride data.
type RideResponse struct {
	ID             string `json:"id"`
	OwnerID        string `json:"owner_id"`
	Source         string `json:"source"`
	Destination    string `json:"destination"`
	TotalSeats     int    `json:"total_seats"`
	SeatsRemaining int    `json:"seats_remaining"`
	FarePerSeat    int    `json:"fare_per_seat"`
	CreatedAt      string `json:"created_at"`
}

func rideResponse(r *domain.Ride) RideResponse {
	return RideResponse{
		ID:             r.ID,
		OwnerID:        r.OwnerID,
		Source:         r.Source,
		Destination:    r.Destination,
		TotalSeats:     r.TotalSeats,
		SeatsRemaining: r.SeatsRemaining,
		FarePerSeat:    r.FarePerSeat,
		CreatedAt:      r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// Publish handles POST /v1/rides
func (h *RideHandler) Publish(c *gin.Context) {
	var req PublishRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ride, err := h.catalog.Publish(c.Request.Context(), service.PublishRequest{
		OwnerID:     req.OwnerID,
		Source:      req.Source,
		Destination: req.Destination,
		Seats:       req.Seats,
		FarePerSeat: req.FarePerSeat,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, rideResponse(ride))
}

// List handles GET /v1/rides with optional ?source= and ?destination=
// filters (exact match, as supplied).
func (h *RideHandler) List(c *gin.Context) {
	source := c.Query("source")
	destination := c.Query("destination")

	rides, err := h.query.SearchRides(c.Request.Context(), source, destination)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]RideResponse, 0, len(rides))
	for _, r := range rides {
		response = append(response, rideResponse(r))
	}
	c.JSON(http.StatusOK, response)
}

// GetRide handles GET /v1/rides/:id
func (h *RideHandler) GetRide(c *gin.Context) {
	ride, err := h.query.RideByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, rideResponse(ride))
}

// RidesForOwner handles GET /v1/users/:id/rides
func (h *RideHandler) RidesForOwner(c *gin.Context) {
	rides, err := h.query.RidesForOwner(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]RideResponse, 0, len(rides))
	for _, r := range rides {
		response = append(response, rideResponse(r))
	}
	c.JSON(http.StatusOK, response)
}
