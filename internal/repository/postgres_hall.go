package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seatwise/reservation-api/internal/domain"
)

type PostgresHallRepository struct {
	db *pgxpool.Pool
}

func NewPostgresHallRepository(db *pgxpool.Pool) *PostgresHallRepository {
	return &PostgresHallRepository{
		db: db,
	}
}

func (p *PostgresHallRepository) GetSeatsLayout(
	ctx context.Context,
	theaterID,
	hallID int) (*domain.HallLayout, error) {

	query := `
		SELECT se.id, se.seat_row, se.seat_col, se.label, se.seat_type, se.extra_price
		FROM seats se
		JOIN halls h ON se.hall_id = h.id
		WHERE h.theater_id = $1 AND se.hall_id = $2
		ORDER BY se.seat_row, se.seat_col
	`

	rows, err := p.db.Query(ctx, query, theaterID, hallID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	layout := domain.HallLayout{
		TheaterID: theaterID,
		HallID:    hallID,
	}

	for rows.Next() {
		var seat domain.Seat

		err = rows.Scan(
			&seat.ID,
			&seat.Row,
			&seat.Col,
			&seat.Label,
			&seat.Type,
			&seat.ExtraPrice,
		)
		if err != nil {
			return nil, err
		}

		seat.Available = true
		layout.Seats = append(layout.Seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(layout.Seats) == 0 {
		return nil, domain.ErrRecordNotFound
	}

	return &layout, nil
}
