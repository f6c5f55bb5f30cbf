package domain

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Movie is the bookable resource. TotalSeats is immutable after creation;
// AvailableSeats and HouseFull are owned by the SeatInventory and must never
// be written through any other path.
type Movie struct {
	ID             int64
	Title          string
	Showtime       time.Time
	PosterUrl      string
	TrailerUrl     string
	TicketPrice    decimal.Decimal
	TotalSeats     int
	AvailableSeats int
	HouseFull      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Version        int
}

type MovieFilters struct {
	Page     int
	PageSize int
	Term     string
	Sort     string
}

func (f MovieFilters) SortColumn() string {
	return strings.TrimPrefix(f.Sort, "-")
}

func (f MovieFilters) SortDirection() string {
	if strings.HasPrefix(f.Sort, "-") {
		return "DESC"
	}

	return "ASC"
}

func (f MovieFilters) Limit() int {
	return f.PageSize
}

func (f MovieFilters) Offset() int {
	return (f.Page - 1) * f.PageSize
}

type MovieRepository interface {
	GetAll(ctx context.Context, filters MovieFilters) ([]*Movie, *Metadata, error)
	GetById(ctx context.Context, id int64) (*Movie, error)
	Create(ctx context.Context, movie *Movie) error
	Update(ctx context.Context, movie *Movie) error
	// Delete removes the movie together with its bookings and reviews in one
	// transactional unit. Seats are not released; the counters disappear with
	// the movie row.
	Delete(ctx context.Context, id int64) error
}

// SeatInventory guards a movie's seat counters against lost updates and
// oversell. Both operations are atomic with respect to any concurrent
// Reserve or Release on the same movie: the check and the counter write
// happen as one indivisible unit, and house_full is recomputed from the
// resulting count in the same unit.
type SeatInventory interface {
	// Reserve decrements available_seats by count if at least count seats
	// remain. It fails with ErrInsufficientSeats (no state change) otherwise,
	// or ErrRecordNotFound if the movie does not exist.
	Reserve(ctx context.Context, movieID int64, count int) error

	// Release returns count seats to the movie. A release that would push
	// available_seats above total_seats fails with ErrSeatsExceedCapacity
	// and leaves the counters untouched.
	Release(ctx context.Context, movieID int64, count int) error
}
