package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"escapada/internal/domain"
	"escapada/internal/service"
)

// TripHandler handles HTTP requests for trips.
type TripHandler struct {
	tripService *service.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *service.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// TripItemRequest is one itinerary entry in the create request.
type TripItemRequest struct {
	ServiceID     string `json:"service_id"`
	DayNumber     int    `json:"day_number"`
	ScheduledTime string `json:"scheduled_time"`
	PlanB         bool   `json:"plan_b"`
}

// CreateTripRequest is the HTTP request body for assembling a trip.
type CreateTripRequest struct {
	TouristID string            `json:"tourist_id"`
	Adults    int               `json:"adults"`
	Children  int               `json:"children"`
	VATExempt bool              `json:"vat_exempt"`
	Items     []TripItemRequest `json:"items"`
}

// TripResponse is the HTTP response for trip operations.
type TripResponse struct {
	TripID     string             `json:"trip_id"`
	TouristID  string             `json:"tourist_id"`
	Status     string             `json:"status"`
	Adults     int                `json:"adults"`
	Children   int                `json:"children"`
	VATExempt  bool               `json:"vat_exempt"`
	TotalPrice float64            `json:"total_price"`
	Items      []TripItemResponse `json:"items,omitempty"`
}

// TripItemResponse is one itinerary entry in a trip response.
type TripItemResponse struct {
	ID            string `json:"id"`
	ServiceID     string `json:"service_id"`
	DayNumber     int    `json:"day_number"`
	ScheduledTime string `json:"scheduled_time"`
	PlanB         bool   `json:"plan_b"`
}

// Create handles POST /v1/trips
func (h *TripHandler) Create(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	items := make([]service.TripItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.TripItemRequest{
			ServiceID:     item.ServiceID,
			DayNumber:     item.DayNumber,
			ScheduledTime: item.ScheduledTime,
			PlanB:         item.PlanB,
		})
	}

	trip, err := h.tripService.CreateTrip(c.Request.Context(), service.CreateTripRequest{
		TouristID: req.TouristID,
		Adults:    req.Adults,
		Children:  req.Children,
		VATExempt: req.VATExempt,
		Items:     items,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toTripResponse(trip, nil))
}

// Get handles GET /v1/trips/:id
func (h *TripHandler) Get(c *gin.Context) {
	tripID := c.Param("id")

	trip, err := h.tripService.GetTrip(c.Request.Context(), tripID)
	if err != nil {
		respondError(c, err)
		return
	}

	items, err := h.tripService.GetTripItems(c.Request.Context(), tripID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip, items))
}

// GetActive handles GET /v1/trips/active?tourist_id=...
func (h *TripHandler) GetActive(c *gin.Context) {
	trip, err := h.tripService.GetActiveTrip(c.Request.Context(), c.Query("tourist_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if trip == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no active trip"})
		return
	}

	items, err := h.tripService.GetTripItems(c.Request.Context(), trip.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip, items))
}

// Cancel handles POST /v1/trips/:id/cancel
func (h *TripHandler) Cancel(c *gin.Context) {
	trip, err := h.tripService.CancelTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip, nil))
}

func toTripResponse(trip *domain.Trip, items []*domain.TripItem) TripResponse {
	response := TripResponse{
		TripID:     trip.ID,
		TouristID:  trip.TouristID,
		Status:     string(trip.Status),
		Adults:     trip.Adults,
		Children:   trip.Children,
		VATExempt:  trip.VATExempt,
		TotalPrice: trip.TotalPrice,
	}

	for _, item := range items {
		response.Items = append(response.Items, TripItemResponse{
			ID:            item.ID,
			ServiceID:     item.ServiceID,
			DayNumber:     item.DayNumber,
			ScheduledTime: item.ScheduledTime,
			PlanB:         item.PlanB,
		})
	}

	return response
}
