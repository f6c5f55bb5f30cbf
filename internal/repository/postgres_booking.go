package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-booking-system/internal/domain"
)

type PostgresBookingLedger struct {
	db *pgxpool.Pool
}

func NewPostgresBookingLedger(db *pgxpool.Pool) *PostgresBookingLedger {
	return &PostgresBookingLedger{
		db: db,
	}
}

// Book inserts the booking record first, then reserves the seats, inside one
// transaction. The insert hits the (user_id, movie_id) uniqueness constraint
// before the inventory is touched, so a duplicate booking never moves a seat
// counter; a failed reservation rolls the record back, so a booking row
// never exists without its seats. No observer can read a state where the
// conservation identity does not hold.
func (p *PostgresBookingLedger) Book(ctx context.Context, booking *domain.Booking) error {
	booking.Reference = uuid.New()

	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO bookings (reference, user_id, movie_id, seat_count, total_price)
			SELECT $1, $2, $3, $4, m.ticket_price * $4
			FROM movies m
			WHERE m.id = $3
			RETURNING id, total_price, created_at
		`

		err := tx.QueryRow(
			ctx,
			query,
			booking.Reference,
			booking.UserID,
			booking.MovieID,
			booking.SeatCount).Scan(&booking.ID, &booking.TotalPrice, &booking.CreatedAt)

		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return domain.ErrDuplicateBooking
			}

			return err
		}

		return reserveSeats(ctx, tx, booking.MovieID, booking.SeatCount)
	})
}

// Cancel removes the booking record and releases its seats in one
// transaction, record first, so no concurrent booking can be accepted
// against seats that still belong to a live record.
func (p *PostgresBookingLedger) Cancel(ctx context.Context, userID, movieID int64) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var seatCount int

		query := `DELETE FROM bookings WHERE user_id = $1 AND movie_id = $2 RETURNING seat_count`

		err := tx.QueryRow(ctx, query, userID, movieID).Scan(&seatCount)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		return releaseSeats(ctx, tx, movieID, seatCount)
	})
}

func (p *PostgresBookingLedger) Get(ctx context.Context, userID, movieID int64) (*domain.Booking, error) {
	query := `SELECT id, reference, user_id, movie_id, seat_count, total_price, created_at
		FROM bookings
		WHERE user_id = $1 AND movie_id = $2`

	var booking domain.Booking

	err := p.db.QueryRow(ctx, query, userID, movieID).Scan(
		&booking.ID,
		&booking.Reference,
		&booking.UserID,
		&booking.MovieID,
		&booking.SeatCount,
		&booking.TotalPrice,
		&booking.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &booking, nil
}

func (p *PostgresBookingLedger) GetByReference(ctx context.Context, reference uuid.UUID) (*domain.BookingVerification, error) {
	query := `
		SELECT b.reference, m.title, m.showtime, b.seat_count, u.first_name || ' ' || u.last_name, b.created_at
		FROM bookings b
		JOIN movies m ON b.movie_id = m.id
		JOIN users u ON b.user_id = u.id
		WHERE b.reference = $1
	`

	var verification domain.BookingVerification

	err := p.db.QueryRow(ctx, query, reference).Scan(
		&verification.Reference,
		&verification.MovieTitle,
		&verification.Showtime,
		&verification.SeatCount,
		&verification.HolderName,
		&verification.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &verification, nil
}
