package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"escapada/internal/domain"
	"escapada/internal/repository"
)

// ProfileHandler handles HTTP requests for accounts.
type ProfileHandler struct {
	profileRepo repository.ProfileRepository
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileRepo repository.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{profileRepo: profileRepo}
}

// RegisterRequest is the HTTP request body for profile registration.
type RegisterRequest struct {
	Role            string `json:"role"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	BusinessName    string `json:"business_name"`
	RUT             string `json:"rut"`
	BusinessAddress string `json:"business_address"`
	BusinessCity    string `json:"business_city"`
	BusinessPhone   string `json:"business_phone"`
}

// ProfileResponse is the HTTP response for profile data.
type ProfileResponse struct {
	ID           string `json:"id"`
	Role         string `json:"role"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	BusinessName string `json:"business_name,omitempty"`
	RUT          string `json:"rut,omitempty"`
	DisplayName  string `json:"display_name"`
}

// Register handles POST /v1/profiles/register
func (h *ProfileHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.FullName == "" || req.Email == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "full_name and email are required"})
		return
	}

	role := domain.Role(req.Role)
	if role != domain.RoleTourist && role != domain.RolePartner {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "role must be TOURIST or PARTNER"})
		return
	}

	// Check if the email is already registered
	existing, err := h.profileRepo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		respondError(c, err)
		return
	}

	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{
			"message": "Email already registered",
			"profile": toProfileResponse(existing),
		})
		return
	}

	profile := &domain.Profile{
		ID:              uuid.New().String(),
		Role:            role,
		FullName:        req.FullName,
		Email:           req.Email,
		BusinessName:    req.BusinessName,
		RUT:             req.RUT,
		BusinessAddress: req.BusinessAddress,
		BusinessCity:    req.BusinessCity,
		BusinessPhone:   req.BusinessPhone,
		CreatedAt:       time.Now(),
	}

	if err := h.profileRepo.Create(c.Request.Context(), profile); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toProfileResponse(profile))
}

// GetAll handles GET /v1/profiles
func (h *ProfileHandler) GetAll(c *gin.Context) {
	profiles, err := h.profileRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	var response []ProfileResponse
	for _, p := range profiles {
		response = append(response, toProfileResponse(p))
	}

	c.JSON(http.StatusOK, response)
}

func toProfileResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:           p.ID,
		Role:         string(p.Role),
		FullName:     p.FullName,
		Email:        p.Email,
		BusinessName: p.BusinessName,
		RUT:          p.RUT,
		DisplayName:  p.DisplayName(),
	}
}
