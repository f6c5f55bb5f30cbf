package mocks

import (
	"context"

	"github.com/metinatakli/movie-booking-system/internal/domain"
)

type MockReviewRepo struct {
	domain.ReviewRepository
	CreateFunc          func(ctx context.Context, review *domain.Review) error
	GetAllByMovieIdFunc func(ctx context.Context, movieID int64) ([]domain.ReviewSummary, error)
}

func (m *MockReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	return m.CreateFunc(ctx, review)
}

func (m *MockReviewRepo) GetAllByMovieId(ctx context.Context, movieID int64) ([]domain.ReviewSummary, error) {
	return m.GetAllByMovieIdFunc(ctx, movieID)
}
