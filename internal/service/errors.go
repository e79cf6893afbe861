package service

import "errors"

var (
	// ErrInvalidTouristID is returned when tourist ID is empty.
	ErrInvalidTouristID = errors.New("invalid tourist id")

	// ErrInvalidPartnerID is returned when partner ID is empty.
	ErrInvalidPartnerID = errors.New("invalid partner id")

	// ErrInvalidTripID is returned when trip ID is empty.
	ErrInvalidTripID = errors.New("invalid trip id")

	// ErrInvalidServiceID is returned when service ID is empty.
	ErrInvalidServiceID = errors.New("invalid service id")

	// ErrInvalidBookingID is returned when booking ID is empty.
	ErrInvalidBookingID = errors.New("invalid booking id")

	// ErrInvalidServicePrice is returned when a service is published with a negative price.
	ErrInvalidServicePrice = errors.New("invalid service price")

	// ErrInvalidPassengerCount is returned when adult or child counts are negative.
	ErrInvalidPassengerCount = errors.New("invalid passenger count")

	// ErrCardNumberTooShort is returned when fewer than 6 digits are supplied
	// for BIN classification.
	ErrCardNumberTooShort = errors.New("card number too short to classify")

	// ErrCardNumberInvalid is returned when a payment is confirmed with an
	// implausible card number.
	ErrCardNumberInvalid = errors.New("invalid card number")

	// ErrTripNotActive is returned when a checkout or cancellation targets a
	// trip that is not in ACTIVE state.
	ErrTripNotActive = errors.New("trip not active")

	// ErrCheckoutInFlight is returned when another payment attempt for the
	// same trip holds the checkout lock.
	ErrCheckoutInFlight = errors.New("checkout already in flight for this trip")

	// ErrBookingNotConfirmed is returned when redeeming a booking that is not
	// in CONFIRMED state.
	ErrBookingNotConfirmed = errors.New("booking not confirmed")

	// ErrBookingAlreadyRedeemed is returned when redeeming a booking twice.
	ErrBookingAlreadyRedeemed = errors.New("booking already redeemed")

	// ErrPartnerMismatch is returned when a partner redeems a booking that
	// belongs to another partner.
	ErrPartnerMismatch = errors.New("booking belongs to another partner")
)
