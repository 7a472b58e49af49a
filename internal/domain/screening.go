package domain

import (
	"context"
	"time"
)

// Screening is a scheduled showing of a movie in a specific hall. It is
// reference data: bookings point at it, nothing in this service mutates it.
type Screening struct {
	ID          int
	MovieID     int
	TheaterID   int
	HallID      int
	StartTime   time.Time
	Duration    time.Duration
	BasePrice   float64
	MovieTitle  string
	TheaterName string
	HallName    string
}

type ScreeningRepository interface {
	GetById(ctx context.Context, screeningID int) (*Screening, error)
}
