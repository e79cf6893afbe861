package domain

import "time"

// ServiceCategory tags a partner offering for fiscal-benefit purposes.
type ServiceCategory string

const (
	CategoryAccommodation ServiceCategory = "accommodation"
	CategoryGastronomy    ServiceCategory = "gastronomy"
	CategoryOutdoor       ServiceCategory = "outdoor"
	CategoryInsurance     ServiceCategory = "insurance"
)

// Service represents a bookable offering published by a partner.
// Price is per adult; children are charged at half rate at quote time.
type Service struct {
	ID          string
	PartnerID   string
	Title       string
	Description string
	Price       float64
	Category    ServiceCategory
	CreatedAt   time.Time
}
