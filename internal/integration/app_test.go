package integration_test

import (
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-booking-system/internal/app"
	"github.com/metinatakli/movie-booking-system/internal/domain"
	"github.com/metinatakli/movie-booking-system/internal/mailer"
	"github.com/metinatakli/movie-booking-system/internal/repository"
)

type TestApp struct {
	App    *app.Application
	DB     *pgxpool.Pool
	Mailer *mailer.MockMailer

	UserRepo      domain.UserRepository
	MovieRepo     domain.MovieRepository
	SeatInventory domain.SeatInventory
	BookingLedger domain.BookingLedger
	ReviewRepo    domain.ReviewRepository
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	mockMailer := &mailer.MockMailer{}

	application := app.NewApp(cfg, logger, db, redisClient, mockMailer, app.NewSessionManager(redisClient))

	movieRepo := repository.NewPostgresMovieRepository(db)

	return &TestApp{
		App:           application,
		DB:            db,
		Mailer:        mockMailer,
		UserRepo:      repository.NewPostgresUserRepository(db),
		MovieRepo:     movieRepo,
		SeatInventory: movieRepo,
		BookingLedger: repository.NewPostgresBookingLedger(db),
		ReviewRepo:    repository.NewPostgresReviewRepository(db),
	}, nil
}
