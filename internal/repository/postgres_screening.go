package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seatwise/reservation-api/internal/domain"
)

type PostgresScreeningRepository struct {
	db *pgxpool.Pool
}

func NewPostgresScreeningRepository(db *pgxpool.Pool) *PostgresScreeningRepository {
	return &PostgresScreeningRepository{
		db: db,
	}
}

func (p *PostgresScreeningRepository) GetById(ctx context.Context, screeningID int) (*domain.Screening, error) {
	query := `
		SELECT
			s.id,
			s.movie_id,
			t.id,
			s.hall_id,
			s.start_time,
			s.duration_minutes,
			s.base_price,
			m.title,
			t.name,
			h.name
		FROM screenings s
		JOIN movies m ON s.movie_id = m.id
		JOIN halls h ON s.hall_id = h.id
		JOIN theaters t ON h.theater_id = t.id
		WHERE s.id = $1
	`

	var screening domain.Screening
	var durationMinutes int

	err := p.db.QueryRow(ctx, query, screeningID).Scan(
		&screening.ID,
		&screening.MovieID,
		&screening.TheaterID,
		&screening.HallID,
		&screening.StartTime,
		&durationMinutes,
		&screening.BasePrice,
		&screening.MovieTitle,
		&screening.TheaterName,
		&screening.HallName,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	screening.Duration = time.Duration(durationMinutes) * time.Minute

	return &screening, nil
}
