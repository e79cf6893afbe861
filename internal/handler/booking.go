package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"escapada/internal/domain"
	"escapada/internal/service"
)

// BookingHandler handles HTTP requests for bookings.
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// BookingResponse is the HTTP response for a booking.
type BookingResponse struct {
	ID            string  `json:"id"`
	TripID        string  `json:"trip_id"`
	ServiceID     string  `json:"service_id"`
	PartnerID     string  `json:"partner_id"`
	TouristID     string  `json:"tourist_id"`
	OrderCode     string  `json:"order_code"`
	ServicePrice  float64 `json:"service_price"`
	PlatformFee   float64 `json:"platform_fee"`
	PartnerNet    float64 `json:"partner_net"`
	Status        string  `json:"status"`
	ScheduledTime string  `json:"scheduled_time"`
	DayNumber     int     `json:"day_number"`
	RedeemedAt    string  `json:"redeemed_at,omitempty"`
}

// Get handles GET /v1/bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	booking, err := h.bookingService.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}

// GetAll handles GET /v1/bookings with a tourist_id or partner_id filter.
func (h *BookingHandler) GetAll(c *gin.Context) {
	var bookings []*domain.Booking
	var err error

	switch {
	case c.Query("tourist_id") != "":
		bookings, err = h.bookingService.ListByTourist(c.Request.Context(), c.Query("tourist_id"))
	case c.Query("partner_id") != "":
		bookings, err = h.bookingService.ListByPartner(c.Request.Context(), c.Query("partner_id"))
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "tourist_id or partner_id is required"})
		return
	}

	if err != nil {
		respondError(c, err)
		return
	}

	var response []BookingResponse
	for _, booking := range bookings {
		response = append(response, toBookingResponse(booking))
	}

	c.JSON(http.StatusOK, response)
}

// RedeemRequest is the HTTP request body for redeeming a booking.
type RedeemRequest struct {
	PartnerID string `json:"partner_id"`
}

// Redeem handles POST /v1/bookings/:id/redeem
func (h *BookingHandler) Redeem(c *gin.Context) {
	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	booking, err := h.bookingService.Redeem(c.Request.Context(), service.RedeemRequest{
		BookingID: c.Param("id"),
		PartnerID: req.PartnerID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}

func toBookingResponse(booking *domain.Booking) BookingResponse {
	response := BookingResponse{
		ID:            booking.ID,
		TripID:        booking.TripID,
		ServiceID:     booking.ServiceID,
		PartnerID:     booking.PartnerID,
		TouristID:     booking.TouristID,
		OrderCode:     booking.OrderCode,
		ServicePrice:  booking.ServicePrice,
		PlatformFee:   booking.PlatformFee,
		PartnerNet:    booking.PartnerNet,
		Status:        string(booking.Status),
		ScheduledTime: booking.ScheduledTime,
		DayNumber:     booking.DayNumber,
	}

	if !booking.RedeemedAt.IsZero() {
		response.RedeemedAt = booking.RedeemedAt.Format(time.RFC3339)
	}

	return response
}
