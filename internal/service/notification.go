package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"escapada/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationBookingConfirmed NotificationType = "BOOKING_CONFIRMED"
	NotificationBookingRedeemed  NotificationType = "BOOKING_REDEEMED"
	NotificationPaymentAborted   NotificationType = "PAYMENT_ABORTED"
)

// Notification represents a notification to be sent.
type Notification struct {
	Type        NotificationType
	RecipientID string
	Title       string
	Message     string
	Data        map[string]interface{}
	CreatedAt   time.Time
}

// NotificationService handles notification delivery. It stands in for the
// external email dispatcher: the checkout core only hands totals down, it
// never drives delivery itself.
type NotificationService struct{}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyBookingConfirmed sends the booking confirmation with the amounts
// the tourist needs: total, online deposit, and the at-venue balance.
func (s *NotificationService) NotifyBookingConfirmed(ctx context.Context, touristID, orderCode string, total, deposit, balance float64) error {
	notification := Notification{
		Type:        NotificationBookingConfirmed,
		RecipientID: touristID,
		Title:       "Booking Confirmed",
		Message:     fmt.Sprintf("Your trip %s is confirmed. Paid online: $%.2f. Due at the venue: $%.2f.", orderCode, deposit, balance),
		Data: map[string]interface{}{
			"order_code":        orderCode,
			"total_amount":      total,
			"deposit_amount":    deposit,
			"remaining_balance": balance,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyBookingRedeemed tells the tourist a partner redeemed their booking.
func (s *NotificationService) NotifyBookingRedeemed(ctx context.Context, booking *domain.Booking) error {
	notification := Notification{
		Type:        NotificationBookingRedeemed,
		RecipientID: booking.TouristID,
		Title:       "Booking Redeemed",
		Message:     fmt.Sprintf("Your booking %s was redeemed at the venue.", booking.OrderCode),
		Data: map[string]interface{}{
			"booking_id": booking.ID,
			"partner_id": booking.PartnerID,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyPaymentAborted tells the tourist their payment attempt was aborted
// before any booking was written.
func (s *NotificationService) NotifyPaymentAborted(ctx context.Context, touristID, tripID, reason string) error {
	notification := Notification{
		Type:        NotificationPaymentAborted,
		RecipientID: touristID,
		Title:       "Payment Not Processed",
		Message:     "Your payment could not be processed. No charge was made.",
		Data: map[string]interface{}{
			"trip_id": tripID,
			"reason":  reason,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// send delivers a notification (mock implementation).
func (s *NotificationService) send(ctx context.Context, notification Notification) error {
	// In a real deployment this hands off to the email provider; bookings
	// are already committed by the time delivery is attempted.
	log.Printf("[NOTIFICATION] Type=%s, Recipient=%s, Title=%s, Message=%s",
		notification.Type, notification.RecipientID, notification.Title, notification.Message)

	return nil
}
