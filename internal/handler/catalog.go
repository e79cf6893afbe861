package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"escapada/internal/domain"
	"escapada/internal/service"
)

// CatalogHandler handles HTTP requests for partner offerings.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// PublishServiceRequest is the HTTP request body for publishing an offering.
type PublishServiceRequest struct {
	PartnerID   string  `json:"partner_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

// ServiceResponse is the HTTP response for an offering.
type ServiceResponse struct {
	ID          string  `json:"id"`
	PartnerID   string  `json:"partner_id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

// Publish handles POST /v1/services
func (h *CatalogHandler) Publish(c *gin.Context) {
	var req PublishServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Title == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "title is required"})
		return
	}

	svc, err := h.catalogService.PublishService(c.Request.Context(), service.PublishServiceRequest{
		PartnerID:   req.PartnerID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    domain.ServiceCategory(req.Category),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toServiceResponse(svc))
}

// GetAll handles GET /v1/services with an optional partner_id filter.
func (h *CatalogHandler) GetAll(c *gin.Context) {
	services, err := h.catalogService.ListServices(c.Request.Context(), c.Query("partner_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var response []ServiceResponse
	for _, svc := range services {
		response = append(response, toServiceResponse(svc))
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /v1/services/:id
func (h *CatalogHandler) Get(c *gin.Context) {
	svc, err := h.catalogService.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toServiceResponse(svc))
}

func toServiceResponse(svc *domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:          svc.ID,
		PartnerID:   svc.PartnerID,
		Title:       svc.Title,
		Description: svc.Description,
		Price:       svc.Price,
		Category:    string(svc.Category),
	}
}
