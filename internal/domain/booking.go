package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MinSeatsPerBooking = 1
	MaxSeatsPerBooking = 4
)

// Booking is a user's claim on seats for one movie. At most one booking per
// (user, movie) pair exists at any time; the ledger enforces this, not the
// seat math.
type Booking struct {
	ID         int64
	Reference  uuid.UUID
	UserID     int64
	MovieID    int64
	SeatCount  int
	TotalPrice decimal.Decimal
	CreatedAt  time.Time
}

// BookingVerification is the public view of a booking used for ticket checks
// at the door.
type BookingVerification struct {
	Reference  uuid.UUID
	MovieTitle string
	Showtime   time.Time
	SeatCount  int
	HolderName string
	CreatedAt  time.Time
}

// BookingLedger owns the booking collection and sequences seat reservation
// with booking-record creation so the two never diverge. For any movie,
// available_seats plus the seats held by its active bookings always equals
// total_seats, in every state an observer can read.
type BookingLedger interface {
	// Book records a booking for (booking.UserID, booking.MovieID) and
	// reserves booking.SeatCount seats as one atomic unit. It fails with
	// ErrDuplicateBooking if the pair already holds a booking (inventory
	// untouched), ErrInsufficientSeats if the movie cannot cover the seats,
	// or ErrRecordNotFound if the movie does not exist. On success the
	// booking's ID, Reference, TotalPrice and CreatedAt are populated.
	Book(ctx context.Context, booking *Booking) error

	// Cancel removes the pair's booking and releases its seats back to the
	// movie atomically. It fails with ErrRecordNotFound if no booking exists.
	Cancel(ctx context.Context, userID, movieID int64) error

	// Get returns the active booking for the pair, or ErrRecordNotFound.
	// Read-only; used by the review subsystem to gate eligibility.
	Get(ctx context.Context, userID, movieID int64) (*Booking, error)

	// GetByReference resolves a booking reference for ticket verification.
	GetByReference(ctx context.Context, reference uuid.UUID) (*BookingVerification, error)
}
