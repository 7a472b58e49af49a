// Package api defines the request and response shapes of the HTTP contract.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// ErrorResponse is the body of every non-validation error.
type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type CreateBookingRequest struct {
	SeatsNumber int      `json:"seatsNumber" validate:"required,min=1,max=10"`
	SeatIds     []string `json:"seatIds" validate:"required,min=1,max=10,dive,seat_label"`
}

type BookingResponse struct {
	Booking Booking `json:"booking"`
}

type Booking struct {
	Id          int             `json:"id"`
	ScreeningId int             `json:"screeningId"`
	SeatsNumber int             `json:"seatsNumber"`
	Status      string          `json:"status"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	Seats       []SeatBooking   `json:"seats"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type SeatBooking struct {
	BookingId   int    `json:"bookingId"`
	ScreeningId int    `json:"screeningId"`
	SeatId      string `json:"seatId"`
}

type SeatBookingListResponse struct {
	SeatBookings []SeatBooking `json:"seatBookings"`
}

type UserBookingsResponse struct {
	Bookings []BookingSummary `json:"bookings"`
	Metadata Metadata         `json:"metadata"`
}

type GetUserBookingsParams struct {
	Page     *int `validate:"omitempty,min=1"`
	PageSize *int `validate:"omitempty,min=1,max=50"`
}

type BookingSummary struct {
	Id          int       `json:"id"`
	MovieTitle  string    `json:"movieTitle"`
	TheaterName string    `json:"theaterName"`
	HallName    string    `json:"hallName"`
	Date        time.Time `json:"date"`
	SeatsNumber int       `json:"seatsNumber"`
	CreatedAt   time.Time `json:"createdAt"`
}

type SeatType string

const (
	Standard   SeatType = "Standard"
	VIP        SeatType = "VIP"
	Recliner   SeatType = "Recliner"
	Accessible SeatType = "Accessible"
)

type SeatMapResponse struct {
	ScreeningId int       `json:"screeningId"`
	TheaterId   int       `json:"theaterId"`
	HallId      int       `json:"hallId"`
	SeatRows    []SeatRow `json:"seatRows"`
}

type SeatRow struct {
	Row   int    `json:"row"`
	Seats []Seat `json:"seats"`
}

type Seat struct {
	Id         string          `json:"id"`
	Row        int             `json:"row"`
	Column     int             `json:"column"`
	Type       SeatType        `json:"type"`
	ExtraPrice decimal.Decimal `json:"extraPrice"`
	Available  bool            `json:"available"`
}

type ScreeningResponse struct {
	Id          int             `json:"id"`
	MovieTitle  string          `json:"movieTitle"`
	TheaterName string          `json:"theaterName"`
	HallName    string          `json:"hallName"`
	StartTime   time.Time       `json:"startTime"`
	Duration    int             `json:"duration"`
	BasePrice   decimal.Decimal `json:"basePrice"`
}

type CreateSeatHoldRequest struct {
	SeatIds []string `json:"seatIds" validate:"required,min=1,max=10,dive,seat_label"`
}

type SeatHoldResponse struct {
	HoldId      string   `json:"holdId"`
	ScreeningId int      `json:"screeningId"`
	SeatIds     []string `json:"seatIds"`
	HoldTime    int      `json:"holdTime"`
}
