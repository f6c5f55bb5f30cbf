package domain

import "errors"

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrRecordNotFound    = errors.New("record not found")

	// Booking ledger outcomes. These are expected business rejections,
	// not system errors.
	ErrDuplicateBooking  = errors.New("an active booking already exists for this movie")
	ErrInsufficientSeats = errors.New("not enough seats available")
	ErrDuplicateReview   = errors.New("movie has already been reviewed by this user")

	// ErrSeatsExceedCapacity means a release would push available_seats past
	// total_seats. It indicates lost or double-counted bookings and must
	// surface loudly rather than be clamped away.
	ErrSeatsExceedCapacity = errors.New("seat release exceeds movie capacity")
)
