package domain

import "time"

// BookingStatus represents the current status of a booking.
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusRedeemed  BookingStatus = "REDEEMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Booking is written once per partner line item when a trip is paid.
// PlatformFee and PartnerNet record the unrounded 15/85 split of the
// item price; the rounded trip-level deposit lives on the trip itself.
type Booking struct {
	ID            string
	TripID        string
	ServiceID     string
	PartnerID     string
	TouristID     string
	OrderCode     string
	ServicePrice  float64
	PlatformFee   float64
	PartnerNet    float64
	Status        BookingStatus
	ScheduledTime string
	DayNumber     int
	CreatedAt     time.Time
	RedeemedAt    time.Time
}
