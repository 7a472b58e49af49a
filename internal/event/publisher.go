// Package event publishes booking lifecycle events to a message broker.
// Publishing happens only after a successful commit and is best-effort: a
// broker failure is logged, never surfaced to the booking caller.
package event

import "context"

type BookingCreated struct {
	BookingID   int      `json:"bookingId"`
	UserID      int      `json:"userId"`
	ScreeningID int      `json:"screeningId"`
	SeatLabels  []string `json:"seats"`
	TotalPrice  float64  `json:"totalPrice"`
	CreatedAt   string   `json:"createdAt"`
}

type BookingCancelled struct {
	BookingID   int      `json:"bookingId"`
	UserID      int      `json:"userId"`
	ScreeningID int      `json:"screeningId"`
	SeatLabels  []string `json:"seats"`
	CancelledAt string   `json:"cancelledAt"`
}

type Publisher interface {
	PublishBookingCreated(ctx context.Context, event BookingCreated) error
	PublishBookingCancelled(ctx context.Context, event BookingCancelled) error
	Close() error
}
