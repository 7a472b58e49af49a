package domain

import "context"

type Seat struct {
	ID         int
	Row        int
	Col        int
	Label      string
	Type       string
	ExtraPrice float64
	Available  bool
}

// HallLayout is the seat grid of one hall. Seats are pre-sorted by row and
// column; grid positions without a seat are aisles.
type HallLayout struct {
	TheaterID int
	HallID    int
	Seats     []Seat
}

// Grid renders the layout as rows of seat labels with "" marking non-seat
// positions.
func (l *HallLayout) Grid() [][]string {
	maxRow, maxCol := 0, 0
	for _, s := range l.Seats {
		if s.Row > maxRow {
			maxRow = s.Row
		}
		if s.Col > maxCol {
			maxCol = s.Col
		}
	}

	grid := make([][]string, maxRow)
	for i := range grid {
		grid[i] = make([]string, maxCol)
	}

	for _, s := range l.Seats {
		grid[s.Row-1][s.Col-1] = s.Label
	}

	return grid
}

// HasSeat reports whether the hall contains a seat with the given label.
func (l *HallLayout) HasSeat(label string) bool {
	for _, s := range l.Seats {
		if s.Label == label {
			return true
		}
	}

	return false
}

// SeatByLabel returns the seat with the given label, or nil.
func (l *HallLayout) SeatByLabel(label string) *Seat {
	for i := range l.Seats {
		if l.Seats[i].Label == label {
			return &l.Seats[i]
		}
	}

	return nil
}

type HallRepository interface {
	GetSeatsLayout(ctx context.Context, theaterID, hallID int) (*HallLayout, error)
}
