package domain

import (
	"context"
	"time"
)

type Review struct {
	ID        int64
	UserID    int64
	MovieID   int64
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// ReviewSummary is a review joined with the reviewer's display name.
type ReviewSummary struct {
	ReviewerName string
	Rating       int
	Comment      string
	CreatedAt    time.Time
}

type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error
	GetAllByMovieId(ctx context.Context, movieID int64) ([]ReviewSummary, error)
}
