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
	"strconv"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/exaring/otelpgx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
	"github.com/seatwise/reservation-api/internal/domain"
	"github.com/seatwise/reservation-api/internal/event"
	"github.com/seatwise/reservation-api/internal/repository"
	"github.com/seatwise/reservation-api/internal/reservation"
	appvalidator "github.com/seatwise/reservation-api/internal/validator"
	"github.com/seatwise/reservation-api/internal/vcs"
)

const serviceName = "seatwise-reservation-api"

var (
	version = vcs.Version()
)

type Application struct {
	config         Config
	logger         *slog.Logger
	db             *pgxpool.Pool
	redis          redis.UniversalClient
	validator      *validator.Validate
	sessionManager *scs.SessionManager
	events         event.Publisher

	screeningRepo domain.ScreeningRepository
	hallRepo      domain.HallRepository
	bookingRepo   domain.BookingRepository

	reservations domain.ReservationService
}

type Config struct {
	Port             int
	Env              string
	OtelCollectorUrl string
	DB               DBConfig
	Redis            RedisConfig
	Broker           BrokerConfig
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

type BrokerConfig struct {
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

	flag.StringVar(&cfg.Broker.URL, "broker-url", "", "RabbitMQ URL (booking events are disabled when empty)")

	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector URL")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	validator := appvalidator.NewValidator()

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	var events event.Publisher
	if cfg.Broker.URL != "" {
		events, err = event.NewRabbitMQPublisher(cfg.Broker.URL)
		if err != nil {
			return err
		}
	} else {
		logger.Info("broker URL not set, booking events are disabled")
		events = event.NewNoopPublisher()
	}
	defer events.Close()

	screeningRepo := repository.NewPostgresScreeningRepository(db)
	hallRepo := repository.NewPostgresHallRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)

	coordinator := reservation.NewCoordinator(bookingRepo, screeningRepo, hallRepo, logger)

	app := NewApp(
		cfg,
		logger,
		db,
		redisClient,
		validator,
		NewSessionManager(redisClient),
		events,
		screeningRepo,
		hallRepo,
		bookingRepo,
		coordinator,
	)

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	return app.serve()
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	db *pgxpool.Pool,
	redisClient redis.UniversalClient,
	validator *validator.Validate,
	sessionManager *scs.SessionManager,
	events event.Publisher,
	screeningRepo domain.ScreeningRepository,
	hallRepo domain.HallRepository,
	bookingRepo domain.BookingRepository,
	reservations domain.ReservationService) *Application {

	return &Application{
		config:         cfg,
		logger:         logger,
		db:             db,
		redis:          redisClient,
		validator:      validator,
		sessionManager: sessionManager,
		events:         events,
		screeningRepo:  screeningRepo,
		hallRepo:       hallRepo,
		bookingRepo:    bookingRepo,
		reservations:   reservations,
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

	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)
	r.Use(app.ensureGuestUserSession)
	r.Use(app.loggerContext)

	r.Get("/healthcheck", app.GetHealth)

	r.Route("/screenings/{screeningId}", func(r chi.Router) {
		r.Get("/", app.withIntParam("screeningId", app.GetScreeningHandler))
		r.Get("/seats", app.withIntParam("screeningId", app.GetSeatMapByScreening))
		r.Get("/seat-bookings", app.withIntParam("screeningId", app.GetScreeningSeatBookingsHandler))
		r.Get("/seat-bookings/{seatId}", app.withIntParam("screeningId", app.GetSeatBookingHandler))
		r.Post("/holds", app.withIntParam("screeningId", app.CreateSeatHoldHandler))
		r.Delete("/holds", app.withIntParam("screeningId", app.DeleteSeatHoldHandler))

		r.With(app.requireAuthentication).
			Post("/bookings", app.withIntParam("screeningId", app.CreateBookingHandler))
	})

	r.With(app.requireAuthentication).Route("/bookings/{bookingId}", func(r chi.Router) {
		r.Delete("/", app.withIntParam("bookingId", app.CancelBookingHandler))
		r.Get("/seats", app.withIntParam("bookingId", app.GetBookingSeatsHandler))
	})

	r.With(app.requireAuthentication).Get("/users/me/bookings", app.GetUserBookingsHandler)

	return r
}

// withIntParam adapts a handler that takes a numeric URL parameter, rejecting
// non-numeric values before the handler runs.
func (app *Application) withIntParam(param string, next func(http.ResponseWriter, *http.Request, int)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, param))
		if err != nil {
			app.badRequestResponse(w, r, fmt.Errorf("%s must be an integer", param))
			return
		}

		next(w, r, id)
	}
}
