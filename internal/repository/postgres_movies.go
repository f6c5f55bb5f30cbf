package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-booking-system/internal/domain"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) GetAll(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, *domain.Metadata, error) {
	query := fmt.Sprintf(`SELECT count(*) OVER(), id, title, showtime, poster_url, trailer_url,
			ticket_price, total_seats, available_seats, house_full, created_at, version
		FROM movies
		WHERE (to_tsvector('english', title) @@ plainto_tsquery('english', $1) OR $1 = '')
		ORDER BY %s %s, id ASC
		LIMIT $2 OFFSET $3`, filters.SortColumn(), filters.SortDirection())

	rows, err := p.db.Query(ctx, query, filters.Term, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	movies := []*domain.Movie{}

	for rows.Next() {
		var movie domain.Movie

		err := rows.Scan(
			&totalRecords,
			&movie.ID,
			&movie.Title,
			&movie.Showtime,
			&movie.PosterUrl,
			&movie.TrailerUrl,
			&movie.TicketPrice,
			&movie.TotalSeats,
			&movie.AvailableSeats,
			&movie.HouseFull,
			&movie.CreatedAt,
			&movie.Version,
		)

		if err != nil {
			return nil, nil, err
		}

		movies = append(movies, &movie)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filters.Page, filters.PageSize)

	return movies, metadata, nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id int64) (*domain.Movie, error) {
	query := `SELECT id, title, showtime, poster_url, trailer_url, ticket_price,
			total_seats, available_seats, house_full, created_at, updated_at, version
		FROM movies
		WHERE id = $1`

	var movie domain.Movie

	err := p.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Showtime,
		&movie.PosterUrl,
		&movie.TrailerUrl,
		&movie.TicketPrice,
		&movie.TotalSeats,
		&movie.AvailableSeats,
		&movie.HouseFull,
		&movie.CreatedAt,
		&movie.UpdatedAt,
		&movie.Version,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &movie, nil
}

func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	query := `INSERT INTO movies (title, showtime, poster_url, trailer_url, ticket_price, total_seats, available_seats)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id, available_seats, house_full, created_at, version`

	return p.db.QueryRow(ctx,
		query,
		movie.Title,
		movie.Showtime,
		movie.PosterUrl,
		movie.TrailerUrl,
		movie.TicketPrice,
		movie.TotalSeats).Scan(&movie.ID, &movie.AvailableSeats, &movie.HouseFull, &movie.CreatedAt, &movie.Version)
}

// Update writes movie metadata only. Seat counters belong to the inventory
// and are not touched here.
func (p *PostgresMovieRepository) Update(ctx context.Context, movie *domain.Movie) error {
	query := `UPDATE movies
		SET title = $1, showtime = $2, poster_url = $3, trailer_url = $4, ticket_price = $5,
			updated_at = NOW(), version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING version`

	err := p.db.QueryRow(ctx,
		query,
		movie.Title,
		movie.Showtime,
		movie.PosterUrl,
		movie.TrailerUrl,
		movie.TicketPrice,
		movie.ID,
		movie.Version).Scan(&movie.Version)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrRecordNotFound
		}

		return err
	}

	return nil
}

func (p *PostgresMovieRepository) Delete(ctx context.Context, id int64) error {
	// Bookings and reviews go with the movie via ON DELETE CASCADE. No seat
	// release happens: the counters disappear together with the row.
	tag, err := p.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresMovieRepository) Reserve(ctx context.Context, movieID int64, count int) error {
	return reserveSeats(ctx, p.db, movieID, count)
}

func (p *PostgresMovieRepository) Release(ctx context.Context, movieID int64, count int) error {
	return releaseSeats(ctx, p.db, movieID, count)
}
