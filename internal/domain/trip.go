package domain

import "time"

// TripStatus represents the current status of a trip itinerary.
type TripStatus string

const (
	TripStatusActive    TripStatus = "ACTIVE"
	TripStatusConfirmed TripStatus = "CONFIRMED"
	TripStatusCancelled TripStatus = "CANCELLED"
)

// Trip represents a tourist's assembled itinerary. TotalPrice is zero while
// the trip is active and is set to the discounted total at confirmation.
type Trip struct {
	ID         string
	TouristID  string
	Status     TripStatus
	Adults     int
	Children   int
	VATExempt  bool // trip-level tax exemption, independent of the card used
	TotalPrice float64
	CreatedAt  time.Time
}

// TripItem links one service into a trip's day plan.
type TripItem struct {
	ID            string
	TripID        string
	ServiceID     string
	DayNumber     int
	ScheduledTime string // "HH:MM", venue-local
	PlanB         bool   // weather-contingency guarantee requested
}
