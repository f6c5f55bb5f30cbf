package mocks

import (
	"context"

	"github.com/metinatakli/movie-booking-system/internal/domain"
)

type MockMovieRepo struct {
	domain.MovieRepository
	GetAllFunc  func(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, *domain.Metadata, error)
	GetByIdFunc func(ctx context.Context, id int64) (*domain.Movie, error)
	CreateFunc  func(ctx context.Context, movie *domain.Movie) error
	UpdateFunc  func(ctx context.Context, movie *domain.Movie) error
	DeleteFunc  func(ctx context.Context, id int64) error
}

func (m *MockMovieRepo) GetAll(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, *domain.Metadata, error) {
	return m.GetAllFunc(ctx, filters)
}

func (m *MockMovieRepo) GetById(ctx context.Context, id int64) (*domain.Movie, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockMovieRepo) Create(ctx context.Context, movie *domain.Movie) error {
	return m.CreateFunc(ctx, movie)
}

func (m *MockMovieRepo) Update(ctx context.Context, movie *domain.Movie) error {
	return m.UpdateFunc(ctx, movie)
}

func (m *MockMovieRepo) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

type MockSeatInventory struct {
	ReserveFunc func(ctx context.Context, movieID int64, count int) error
	ReleaseFunc func(ctx context.Context, movieID int64, count int) error
}

func (m *MockSeatInventory) Reserve(ctx context.Context, movieID int64, count int) error {
	return m.ReserveFunc(ctx, movieID, count)
}

func (m *MockSeatInventory) Release(ctx context.Context, movieID int64, count int) error {
	return m.ReleaseFunc(ctx, movieID, count)
}
