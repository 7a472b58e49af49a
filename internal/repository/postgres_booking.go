package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seatwise/reservation-api/internal/domain"
)

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

// Create persists the booking and its seat ledger entries in one transaction.
// Seats are inserted one by one in request order so that the first seat to
// collide with the unique index on (screening_id, seat_label) is the one
// reported back. A collision aborts the whole transaction.
func (p *PostgresBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO bookings (user_id, screening_id, seats_number, status, total_price)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at, updated_at
		`

		err := tx.QueryRow(
			ctx,
			query,
			booking.UserID,
			booking.ScreeningID,
			booking.SeatsNumber,
			booking.Status,
			booking.TotalPrice).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)

		if err != nil {
			return err
		}

		query = `
			INSERT INTO booking_seats (booking_id, screening_id, seat_label)
			VALUES ($1, $2, $3)
		`

		for i := range booking.Seats {
			booking.Seats[i].BookingID = booking.ID

			_, err = tx.Exec(ctx, query, booking.ID, booking.Seats[i].ScreeningID, booking.Seats[i].SeatLabel)
			if err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
					return domain.SeatConflictError{Label: booking.Seats[i].SeatLabel}
				}

				return err
			}
		}

		return nil
	})

	return translateContention(err)
}

// DeleteById removes the booking and, in the same transaction, all of its
// seat ledger entries. It returns a snapshot of the deleted booking so the
// caller can report which seats were freed.
func (p *PostgresBookingRepository) DeleteById(ctx context.Context, bookingID int) (*domain.Booking, error) {
	var booking domain.Booking

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			SELECT id, user_id, screening_id, seats_number, status, total_price, created_at, updated_at
			FROM bookings
			WHERE id = $1
			FOR UPDATE
		`

		err := tx.QueryRow(ctx, query, bookingID).Scan(
			&booking.ID,
			&booking.UserID,
			&booking.ScreeningID,
			&booking.SeatsNumber,
			&booking.Status,
			&booking.TotalPrice,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)

		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		rows, err := tx.Query(
			ctx,
			`DELETE FROM booking_seats WHERE booking_id = $1 RETURNING booking_id, screening_id, seat_label`,
			bookingID,
		)
		if err != nil {
			return err
		}

		booking.Seats, err = scanSeatBookings(rows)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, bookingID)

		return err
	})

	if err != nil {
		return nil, translateContention(err)
	}

	return &booking, nil
}

func (p *PostgresBookingRepository) GetSeatBooking(
	ctx context.Context,
	screeningID int,
	seatLabel string) (*domain.SeatBooking, error) {

	query := `
		SELECT booking_id, screening_id, seat_label
		FROM booking_seats
		WHERE screening_id = $1 AND seat_label = $2
	`

	var seatBooking domain.SeatBooking

	err := p.db.QueryRow(ctx, query, screeningID, seatLabel).Scan(
		&seatBooking.BookingID,
		&seatBooking.ScreeningID,
		&seatBooking.SeatLabel,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &seatBooking, nil
}

func (p *PostgresBookingRepository) GetSeatsByBookingId(
	ctx context.Context,
	bookingID int) ([]domain.SeatBooking, error) {

	query := `
		SELECT booking_id, screening_id, seat_label
		FROM booking_seats
		WHERE booking_id = $1
		ORDER BY seat_label
	`

	rows, err := p.db.Query(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}

	return scanSeatBookings(rows)
}

func (p *PostgresBookingRepository) GetSeatsByScreeningId(
	ctx context.Context,
	screeningID int) ([]domain.SeatBooking, error) {

	query := `
		SELECT booking_id, screening_id, seat_label
		FROM booking_seats
		WHERE screening_id = $1
		ORDER BY seat_label
	`

	rows, err := p.db.Query(ctx, query, screeningID)
	if err != nil {
		return nil, err
	}

	return scanSeatBookings(rows)
}

func (p *PostgresBookingRepository) GetSummariesByUserId(
	ctx context.Context,
	userID int,
	pagination domain.Pagination) ([]domain.BookingSummary, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			b.id,
			m.title,
			s.start_time,
			t.name,
			h.name,
			b.seats_number,
			b.created_at
		FROM bookings b
		JOIN screenings s ON b.screening_id = s.id
		JOIN movies m ON s.movie_id = m.id
		JOIN halls h ON s.hall_id = h.id
		JOIN theaters t ON h.theater_id = t.id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, userID, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	summaries := make([]domain.BookingSummary, 0)
	totalRecords := 0

	for rows.Next() {
		var summary domain.BookingSummary

		err := rows.Scan(
			&totalRecords,
			&summary.BookingID,
			&summary.MovieTitle,
			&summary.ScreeningDate,
			&summary.TheaterName,
			&summary.HallName,
			&summary.SeatsNumber,
			&summary.CreatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return summaries, metadata, nil
}

func scanSeatBookings(rows pgx.Rows) ([]domain.SeatBooking, error) {
	defer rows.Close()

	seatBookings := make([]domain.SeatBooking, 0)

	for rows.Next() {
		var seatBooking domain.SeatBooking

		err := rows.Scan(
			&seatBooking.BookingID,
			&seatBooking.ScreeningID,
			&seatBooking.SeatLabel,
		)

		if err != nil {
			return nil, err
		}

		seatBookings = append(seatBookings, seatBooking)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return seatBookings, nil
}

// translateContention maps storage-level contention to domain errors: a
// transaction that could not acquire its locks or commit within the
// configured bounds surfaces as a timeout, never as partial state.
func translateContention(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return domain.ErrBookingTimeout
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.LockNotAvailable, pgerrcode.QueryCanceled:
			return domain.ErrBookingTimeout
		case pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected:
			return domain.ErrEditConflict
		}
	}

	return err
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var txOptions pgx.TxOptions

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}
