// Package reservation implements the booking lifecycle on top of the seat
// ledger. The coordinator validates a request against the hall layout and
// delegates the atomic seat claim to the storage layer: a unique index on
// (screening_id, seat_label) checked at commit time is the only arbiter of
// who gets a seat, so two overlapping requests can never both succeed.
package reservation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/seatwise/reservation-api/internal/domain"
)

type Coordinator struct {
	bookings   domain.BookingRepository
	screenings domain.ScreeningRepository
	halls      domain.HallRepository
	logger     *slog.Logger
}

func NewCoordinator(
	bookings domain.BookingRepository,
	screenings domain.ScreeningRepository,
	halls domain.HallRepository,
	logger *slog.Logger) *Coordinator {

	return &Coordinator{
		bookings:   bookings,
		screenings: screenings,
		halls:      halls,
		logger:     logger,
	}
}

// CreateBooking claims the requested seats for the screening and persists the
// booking, all-or-nothing. Validation never mutates state; the seat claim
// itself runs in a single transaction and aborts on the first seat that is
// already booked.
func (c *Coordinator) CreateBooking(
	ctx context.Context,
	userID int,
	screeningID int,
	seatLabels []string) (*domain.Booking, error) {

	if len(seatLabels) == 0 {
		return nil, domain.InvalidBookingError{Reason: "at least one seat must be selected"}
	}

	seen := make(map[string]bool, len(seatLabels))
	for _, label := range seatLabels {
		if seen[label] {
			return nil, domain.InvalidBookingError{Reason: fmt.Sprintf("seat %q is selected more than once", label)}
		}
		seen[label] = true
	}

	screening, err := c.screenings.GetById(ctx, screeningID)
	if err != nil {
		return nil, err
	}

	layout, err := c.halls.GetSeatsLayout(ctx, screening.TheaterID, screening.HallID)
	if err != nil {
		return nil, err
	}

	for _, label := range seatLabels {
		if !layout.HasSeat(label) {
			return nil, domain.InvalidSeatError{Label: label}
		}
	}

	booking := &domain.Booking{
		UserID:      userID,
		ScreeningID: screeningID,
		SeatsNumber: len(seatLabels),
		Status:      domain.BookingStatusReserved,
		TotalPrice:  totalPrice(screening, layout, seatLabels),
		Seats:       make([]domain.SeatBooking, 0, len(seatLabels)),
	}

	for _, label := range seatLabels {
		booking.Seats = append(booking.Seats, domain.SeatBooking{
			ScreeningID: screeningID,
			SeatLabel:   label,
		})
	}

	err = c.bookings.Create(ctx, booking)
	if err != nil {
		return nil, err
	}

	c.logger.Info("booking created",
		"booking_id", booking.ID,
		"screening_id", screeningID,
		"seats", len(seatLabels),
	)

	return booking, nil
}

// CancelBooking deletes the booking and its seat ledger entries in one
// transaction, freeing the seats. A second cancel of the same booking reports
// domain.ErrRecordNotFound; callers treat that as already cancelled.
func (c *Coordinator) CancelBooking(ctx context.Context, bookingID int) (*domain.Booking, error) {
	booking, err := c.bookings.DeleteById(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	booking.Status = domain.BookingStatusCancelled

	c.logger.Info("booking cancelled",
		"booking_id", booking.ID,
		"screening_id", booking.ScreeningID,
		"seats", len(booking.Seats),
	)

	return booking, nil
}

func (c *Coordinator) GetSeatBooking(ctx context.Context, screeningID int, seatLabel string) (*domain.SeatBooking, error) {
	return c.bookings.GetSeatBooking(ctx, screeningID, seatLabel)
}

func (c *Coordinator) ListSeatsByBooking(ctx context.Context, bookingID int) ([]domain.SeatBooking, error) {
	return c.bookings.GetSeatsByBookingId(ctx, bookingID)
}

func (c *Coordinator) ListSeatsByScreening(ctx context.Context, screeningID int) ([]domain.SeatBooking, error) {
	return c.bookings.GetSeatsByScreeningId(ctx, screeningID)
}

func totalPrice(screening *domain.Screening, layout *domain.HallLayout, seatLabels []string) float64 {
	total := 0.0

	for _, label := range seatLabels {
		total += screening.BasePrice

		if seat := layout.SeatByLabel(label); seat != nil {
			total += seat.ExtraPrice
		}
	}

	return total
}
