package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/metinatakli/movie-booking-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockBookingLedger struct {
	mock.Mock
	domain.BookingLedger
}

func (m *MockBookingLedger) Book(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingLedger) Cancel(ctx context.Context, userID, movieID int64) error {
	args := m.Called(ctx, userID, movieID)
	return args.Error(0)
}

func (m *MockBookingLedger) Get(ctx context.Context, userID, movieID int64) (*domain.Booking, error) {
	args := m.Called(ctx, userID, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingLedger) GetByReference(ctx context.Context, reference uuid.UUID) (*domain.BookingVerification, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingVerification), args.Error(1)
}
