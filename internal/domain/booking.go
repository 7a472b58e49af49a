package domain

import (
	"context"
	"time"
)

type BookingStatus string

const (
	BookingStatusReserved  BookingStatus = "reserved"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID          int
	UserID      int
	ScreeningID int
	SeatsNumber int
	Status      BookingStatus
	TotalPrice  float64
	Seats       []SeatBooking
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SeatBooking is one seat ledger entry. The pair (ScreeningID, SeatLabel) is
// unique across all live bookings; the database enforces it.
type SeatBooking struct {
	BookingID   int
	ScreeningID int
	SeatLabel   string
}

type BookingSummary struct {
	BookingID     int
	MovieTitle    string
	ScreeningDate time.Time
	TheaterName   string
	HallName      string
	SeatsNumber   int
	CreatedAt     time.Time
}

type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	DeleteById(ctx context.Context, bookingID int) (*Booking, error)
	GetSeatBooking(ctx context.Context, screeningID int, seatLabel string) (*SeatBooking, error)
	GetSeatsByBookingId(ctx context.Context, bookingID int) ([]SeatBooking, error)
	GetSeatsByScreeningId(ctx context.Context, screeningID int) ([]SeatBooking, error)
	GetSummariesByUserId(ctx context.Context, userID int, pagination Pagination) ([]BookingSummary, *Metadata, error)
}

// ReservationService owns the booking lifecycle: all mutation of the seat
// ledger goes through it.
type ReservationService interface {
	CreateBooking(ctx context.Context, userID, screeningID int, seatLabels []string) (*Booking, error)
	CancelBooking(ctx context.Context, bookingID int) (*Booking, error)
	GetSeatBooking(ctx context.Context, screeningID int, seatLabel string) (*SeatBooking, error)
	ListSeatsByBooking(ctx context.Context, bookingID int) ([]SeatBooking, error)
	ListSeatsByScreening(ctx context.Context, screeningID int) ([]SeatBooking, error)
}
