package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/exaring/otelpgx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-booking-system/internal/audit"
	"github.com/metinatakli/movie-booking-system/internal/domain"
	"github.com/metinatakli/movie-booking-system/internal/event"
	"github.com/metinatakli/movie-booking-system/internal/mailer"
	"github.com/metinatakli/movie-booking-system/internal/repository"
	appvalidator "github.com/metinatakli/movie-booking-system/internal/validator"
	"github.com/metinatakli/movie-booking-system/internal/vcs"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	version = vcs.Version()
)

type Application struct {
	config         Config
	logger         *slog.Logger
	db             *pgxpool.Pool
	redis          redis.UniversalClient
	validator      *validator.Validate
	mailer         mailer.Mailer
	sessionManager *scs.SessionManager
	auditTrail     audit.Trail
	events         event.Publisher
	metrics        metrics

	userRepo      domain.UserRepository
	movieRepo     domain.MovieRepository
	seatInventory domain.SeatInventory
	bookingLedger domain.BookingLedger
	reviewRepo    domain.ReviewRepository
}

type Config struct {
	Port             int
	Env              string
	DB               DBConfig
	Redis            RedisConfig
	SMTP             SMTPConfig
	Mongo            MongoConfig
	Rabbit           RabbitConfig
	OtelCollectorUrl string
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

type MongoConfig struct {
	URI      string
	Database string
}

type RabbitConfig struct {
	URL string
}

func Run() error {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 3000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", "", "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.Redis.URL, "redis-url", "", "Redis URL")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.SMTP.Host, "smtp-host", "sandbox.smtp.mailtrap.io", "SMTP host")
	flag.IntVar(&cfg.SMTP.Port, "smtp-port", 2525, "SMTP port")
	flag.StringVar(&cfg.SMTP.Username, "smtp-username", "", "SMTP username")
	flag.StringVar(&cfg.SMTP.Password, "smtp-password", "", "SMTP password")
	flag.StringVar(&cfg.SMTP.Sender, "smtp-sender", "CineX <no-reply@cinex.metinatakli.net>", "SMTP sender")

	flag.StringVar(&cfg.Mongo.URI, "mongo-uri", "", "MongoDB URI for the booking audit trail (optional)")
	flag.StringVar(&cfg.Mongo.Database, "mongo-db", "movie_booking", "MongoDB database name")

	flag.StringVar(&cfg.Rabbit.URL, "rabbit-url", "", "RabbitMQ URL for booking events (optional)")

	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector URL")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	app, cleanup, err := New(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", "error", err)
		return err
	}
	defer cleanup()

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	return app.serve()
}

// New wires the application from its configuration. The returned cleanup
// closes every connection New opened.
func New(cfg Config, logger *slog.Logger) (*Application, func(), error) {
	db, err := NewDatabasePool(cfg)
	if err != nil {
		return nil, nil, err
	}

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender)

	app := NewApp(cfg, logger, db, redisClient, smtpMailer, NewSessionManager(redisClient))

	closers := []func(){func() { _ = redisClient.Close() }, db.Close}
	cleanup := func() {
		for _, close := range closers {
			close()
		}
	}

	if cfg.Mongo.URI != "" {
		mongoClient, err := newMongoClient(cfg)
		if err != nil {
			cleanup()
			return nil, nil, err
		}

		app.auditTrail = audit.NewMongoTrail(mongoClient.Database(cfg.Mongo.Database))
		closers = append(closers, func() {
			if err := mongoClient.Disconnect(context.Background()); err != nil {
				logger.Error("failed to disconnect mongo client", "error", err)
			}
		})
	}

	if cfg.Rabbit.URL != "" {
		rabbitConn, err := amqp.Dial(cfg.Rabbit.URL)
		if err != nil {
			cleanup()
			return nil, nil, err
		}

		publisher, err := event.NewRabbitPublisher(rabbitConn)
		if err != nil {
			rabbitConn.Close()
			cleanup()
			return nil, nil, err
		}

		app.events = publisher
		closers = append(closers, func() {
			if err := rabbitConn.Close(); err != nil {
				logger.Error("failed to close rabbit connection", "error", err)
			}
		})
	}

	return app, cleanup, nil
}

// NewApp assembles an Application from already opened connections. The audit
// trail and event publisher start as no-ops and are upgraded by New when the
// optional backends are configured.
func NewApp(
	cfg Config,
	logger *slog.Logger,
	db *pgxpool.Pool,
	redisClient redis.UniversalClient,
	appMailer mailer.Mailer,
	sessionManager *scs.SessionManager,
) *Application {
	movieRepo := repository.NewPostgresMovieRepository(db)

	return &Application{
		config:         cfg,
		logger:         logger,
		db:             db,
		redis:          redisClient,
		validator:      appvalidator.NewValidator(),
		mailer:         appMailer,
		sessionManager: sessionManager,
		auditTrail:     audit.NoopTrail{},
		events:         event.NoopPublisher{},
		metrics:        newMetrics(),
		userRepo:       repository.NewPostgresUserRepository(db),
		movieRepo:      movieRepo,
		seatInventory:  movieRepo,
		bookingLedger:  repository.NewPostgresBookingLedger(db),
		reviewRepo:     repository.NewPostgresReviewRepository(db),
	}
}

func NewSessionManager(client *redis.Client) *scs.SessionManager {
	sessionManager := scs.New()

	sessionManager.Store = goredisstore.New(client)
	sessionManager.IdleTimeout = 20 * time.Minute
	sessionManager.Cookie.Name = "session_id"

	return sessionManager
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	if err := redisotel.InstrumentTracing(rdb); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func newMongoClient(cfg Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, err
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client, nil
}

func (app *Application) serve() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware("movie-booking-api", otelchi.WithChiRoutes(r)))
	r.Use(app.requestLogger)
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)

	r.Get("/health", app.GetHealth)

	r.Post("/users", app.RegisterUser)
	r.Post("/auth/login", app.Login)
	r.Post("/auth/logout", app.Logout)

	// Public: ticket checks at the door only hold a booking reference.
	r.Get("/bookings/{reference}", app.VerifyBooking)

	r.Group(func(r chi.Router) {
		r.Use(app.requireAuthentication)

		r.Get("/users/me", app.GetCurrentUser)

		r.Get("/movies", app.GetMovies)
		r.Get("/movies/{movieID}", app.GetMovie)

		r.Route("/movies/{movieID}/bookings", func(r chi.Router) {
			r.Post("/", app.CreateBooking)
			r.Delete("/", app.CancelBooking)
			r.Get("/", app.GetOwnBooking)
		})

		r.Route("/movies/{movieID}/reviews", func(r chi.Router) {
			r.Post("/", app.CreateReview)
			r.Get("/", app.GetMovieReviews)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(app.requireAuthentication, app.requireAdmin)

		r.Post("/movies", app.CreateMovie)
		r.Patch("/movies/{movieID}", app.UpdateMovie)
		r.Delete("/movies/{movieID}", app.DeleteMovie)
	})

	return r
}
