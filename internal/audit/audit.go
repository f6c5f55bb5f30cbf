// Package audit records booking lifecycle mutations on a side store so they
// can be traced after the fact without touching the transactional schema.
package audit

import (
	"context"

	"github.com/metinatakli/movie-booking-system/internal/domain"
)

type Trail interface {
	BookingCreated(ctx context.Context, booking domain.Booking) error
	BookingCancelled(ctx context.Context, userID, movieID int64) error
	MovieDeleted(ctx context.Context, movieID int64) error
}

// NoopTrail is used when no audit store is configured.
type NoopTrail struct{}

func (NoopTrail) BookingCreated(context.Context, domain.Booking) error { return nil }

func (NoopTrail) BookingCancelled(context.Context, int64, int64) error { return nil }

func (NoopTrail) MovieDeleted(context.Context, int64) error { return nil }
