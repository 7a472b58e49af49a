package integration_test

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seatwise/reservation-api/internal/app"
	"github.com/seatwise/reservation-api/internal/event"
	"github.com/seatwise/reservation-api/internal/repository"
	"github.com/seatwise/reservation-api/internal/reservation"
	appvalidator "github.com/seatwise/reservation-api/internal/validator"
	"github.com/stretchr/testify/require"
)

type TestApp struct {
	App            *app.Application
	DB             *pgxpool.Pool
	SessionManager *scs.SessionManager
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	sessionManager := app.NewSessionManager(redisClient)

	screeningRepo := repository.NewPostgresScreeningRepository(db)
	hallRepo := repository.NewPostgresHallRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)

	coordinator := reservation.NewCoordinator(bookingRepo, screeningRepo, hallRepo, logger)

	application := app.NewApp(
		cfg,
		logger,
		db,
		redisClient,
		validator,
		sessionManager,
		event.NewNoopPublisher(),
		screeningRepo,
		hallRepo,
		bookingRepo,
		coordinator,
	)

	return &TestApp{
		App:            application,
		DB:             db,
		SessionManager: sessionManager,
	}, nil
}

func (a *TestApp) authenticatedUserCookies(t testing.TB, userID int) []http.Cookie {
	ctx, err := a.SessionManager.Load(context.Background(), "")
	require.NoError(t, err)

	a.SessionManager.Put(ctx, app.SessionKeyUserId.String(), userID)

	token, _, err := a.SessionManager.Commit(ctx)
	require.NoError(t, err)

	return []http.Cookie{{Name: "session_id", Value: token}}
}
