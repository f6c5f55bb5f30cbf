package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-booking-system/internal/domain"
)

type PostgresReviewRepository struct {
	db *pgxpool.Pool
}

func NewPostgresReviewRepository(db *pgxpool.Pool) *PostgresReviewRepository {
	return &PostgresReviewRepository{
		db: db,
	}
}

func (p *PostgresReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `INSERT INTO reviews (user_id, movie_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := p.db.QueryRow(ctx,
		query,
		review.UserID,
		review.MovieID,
		review.Rating,
		review.Comment).Scan(&review.ID, &review.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return domain.ErrDuplicateReview
			case pgerrcode.ForeignKeyViolation:
				return domain.ErrRecordNotFound
			}
		}

		return err
	}

	return nil
}

func (p *PostgresReviewRepository) GetAllByMovieId(ctx context.Context, movieID int64) ([]domain.ReviewSummary, error) {
	query := `
		SELECT u.first_name || ' ' || u.last_name, r.rating, r.comment, r.created_at
		FROM reviews r
		JOIN users u ON r.user_id = u.id
		WHERE r.movie_id = $1
		ORDER BY r.rating DESC, r.created_at DESC
	`

	rows, err := p.db.Query(ctx, query, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]domain.ReviewSummary, 0)

	for rows.Next() {
		var review domain.ReviewSummary

		err := rows.Scan(
			&review.ReviewerName,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		reviews = append(reviews, review)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return reviews, nil
}
