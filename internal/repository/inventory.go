package repository

import (
	"context"

	"github.com/metinatakli/movie-booking-system/internal/domain"
)

// The seat counters are only ever written through the two statements below.
// Each one checks and mutates in a single conditional UPDATE, so concurrent
// reservations and releases on the same movie serialize on the row without
// any read-check-write window, and house_full is recomputed from the
// resulting count in the same statement.

func reserveSeats(ctx context.Context, q querier, movieID int64, count int) error {
	query := `
		UPDATE movies
		SET available_seats = available_seats - $2,
			house_full = (available_seats - $2 = 0),
			updated_at = NOW(),
			version = version + 1
		WHERE id = $1 AND available_seats >= $2`

	tag, err := q.Exec(ctx, query, movieID, count)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return classifyRejectedSeatUpdate(ctx, q, movieID, domain.ErrInsufficientSeats)
	}

	return nil
}

func releaseSeats(ctx context.Context, q querier, movieID int64, count int) error {
	query := `
		UPDATE movies
		SET available_seats = available_seats + $2,
			house_full = (available_seats + $2 = 0),
			updated_at = NOW(),
			version = version + 1
		WHERE id = $1 AND available_seats + $2 <= total_seats`

	tag, err := q.Exec(ctx, query, movieID, count)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return classifyRejectedSeatUpdate(ctx, q, movieID, domain.ErrSeatsExceedCapacity)
	}

	return nil
}

// classifyRejectedSeatUpdate distinguishes a missing movie from a rejected
// counter change after a conditional update matched no row.
func classifyRejectedSeatUpdate(ctx context.Context, q querier, movieID int64, rejection error) error {
	var exists bool

	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM movies WHERE id = $1)`, movieID).Scan(&exists)
	if err != nil {
		return err
	}

	if !exists {
		return domain.ErrRecordNotFound
	}

	return rejection
}
