package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"escapada/internal/checkout"
	"escapada/internal/service"
)

// CheckoutHandler handles HTTP requests for the checkout flow.
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// CardCheckRequest is the HTTP request body for a BIN classification.
type CardCheckRequest struct {
	CardNumber string `json:"card_number"`
}

// CardCheckResponse is the HTTP response for a BIN classification.
type CardCheckResponse struct {
	Prefix  string `json:"prefix"`
	Foreign bool   `json:"foreign"`
}

// CardCheck handles POST /v1/checkout/card-check
func (h *CheckoutHandler) CardCheck(c *gin.Context) {
	var req CardCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	classification, err := h.checkoutService.ClassifyCard(c.Request.Context(), req.CardNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, CardCheckResponse{
		Prefix:  classification.Prefix,
		Foreign: classification.Foreign,
	})
}

// QuoteItemResponse is one priced line in a quote response.
type QuoteItemResponse struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
	Synthetic bool    `json:"synthetic,omitempty"`
}

// BenefitLineResponse is one fiscal benefit entry in a quote response.
type BenefitLineResponse struct {
	Title  string  `json:"title"`
	Saving float64 `json:"saving"`
	Label  string  `json:"label"`
}

// QuoteResponse is the HTTP response for a trip quote.
type QuoteResponse struct {
	TripID         string                `json:"trip_id"`
	Items          []QuoteItemResponse   `json:"items"`
	Subtotal       float64               `json:"subtotal"`
	Discount       float64               `json:"discount"`
	FinalTotal     float64               `json:"final_total"`
	Breakdown      []BenefitLineResponse `json:"breakdown,omitempty"`
	Deposit        float64               `json:"deposit"`
	Balance        float64               `json:"balance"`
	ForeignCard    bool                  `json:"foreign_card"`
	BenefitApplied bool                  `json:"benefit_applied"`
}

// Quote handles GET /v1/checkout/quote?trip_id=...&card_number=...
func (h *CheckoutHandler) Quote(c *gin.Context) {
	quote, err := h.checkoutService.QuoteTrip(c.Request.Context(), service.QuoteTripRequest{
		TripID:     c.Query("trip_id"),
		CardNumber: c.Query("card_number"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toQuoteResponse(quote))
}

// ConfirmRequest is the HTTP request body for committing a payment.
type ConfirmRequest struct {
	TripID     string `json:"trip_id"`
	CardNumber string `json:"card_number"`
}

// ConfirmResponse is the HTTP response for a committed payment.
type ConfirmResponse struct {
	TripID     string            `json:"trip_id"`
	OrderCode  string            `json:"order_code"`
	Bookings   []BookingResponse `json:"bookings"`
	Subtotal   float64           `json:"subtotal"`
	Discount   float64           `json:"discount"`
	FinalTotal float64           `json:"final_total"`
	Deposit    float64           `json:"deposit"`
	Balance    float64           `json:"balance"`
}

// Confirm handles POST /v1/checkout/confirm
func (h *CheckoutHandler) Confirm(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.checkoutService.ConfirmPayment(c.Request.Context(), service.ConfirmPaymentRequest{
		TripID:     req.TripID,
		CardNumber: req.CardNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	response := ConfirmResponse{
		TripID:     result.TripID,
		OrderCode:  result.OrderCode,
		Subtotal:   result.Subtotal,
		Discount:   result.Discount,
		FinalTotal: result.FinalTotal,
		Deposit:    result.Deposit,
		Balance:    result.Balance,
	}
	for _, booking := range result.Bookings {
		response.Bookings = append(response.Bookings, toBookingResponse(booking))
	}

	respondJSON(c, http.StatusCreated, response)
}

func toQuoteResponse(quote *service.TripQuote) QuoteResponse {
	response := QuoteResponse{
		TripID:         quote.TripID,
		Subtotal:       quote.Subtotal,
		Discount:       quote.Discount,
		FinalTotal:     quote.FinalTotal,
		Deposit:        quote.Deposit,
		Balance:        quote.Balance,
		ForeignCard:    quote.ForeignCard,
		BenefitApplied: quote.BenefitApplied,
	}

	response.Items = make([]QuoteItemResponse, 0, len(quote.Items))
	for _, item := range quote.Items {
		response.Items = append(response.Items, toQuoteItemResponse(item))
	}

	for _, line := range quote.Breakdown {
		response.Breakdown = append(response.Breakdown, BenefitLineResponse{
			Title:  line.Title,
			Saving: line.Saving,
			Label:  line.Label,
		})
	}

	return response
}

func toQuoteItemResponse(item checkout.PricedItem) QuoteItemResponse {
	return QuoteItemResponse{
		ID:        item.ID,
		Title:     item.Title,
		Price:     item.Price,
		Category:  string(item.Category),
		Synthetic: item.Synthetic,
	}
}
