package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/seatwise/reservation-api/api"
	"github.com/seatwise/reservation-api/internal/domain"
)

const seatHoldTTL = 10 * time.Minute

var lockSeatsScript = redis.NewScript(`
    -- KEYS = seat lock keys (e.g., seat_lock:123:A1, seat_lock:123:A2 etc.)
    -- ARGV = [sessionID, ttl]

    for i=1, #KEYS do
        if redis.call("EXISTS", KEYS[i]) == 1 then
            return {err = "seat already locked"} -- Return an error indicator
        end
    end

    for i=1, #KEYS do
        redis.call("SET", KEYS[i], ARGV[1], "EX", ARGV[2])
    end

    return "OK"
`)

// seatHold is the Redis-persisted record of a temporary seat claim. It only
// delays competing holds; the booking transaction is still the final arbiter.
type seatHold struct {
	Id          string   `json:"id"`
	ScreeningID int      `json:"screeningId"`
	SeatIds     []string `json:"seatIds"`
}

func (app *Application) CreateSeatHoldHandler(w http.ResponseWriter, r *http.Request, screeningID int) {
	logger := app.contextGetLogger(r)

	if screeningID < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("screening ID must be greater than zero"))
		return
	}

	var input api.CreateSeatHoldRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	sessionID := app.sessionManager.Token(r.Context())
	holdId, err := app.redis.Get(r.Context(), holdSessionKey(sessionID)).Result()
	if err != nil && err != redis.Nil {
		logger.Error("failed to check for existing seat hold in redis", "error", err)
		app.serverErrorResponse(w, r, err)
		return
	}

	if holdId != "" {
		logger.Warn("seat hold attempt rejected: a hold already exists for this session")
		app.badRequestResponse(w, r, fmt.Errorf("cannot create new seat hold if a hold already exists in session"))
		return
	}

	screening, err := app.screeningRepo.GetById(r.Context(), screeningID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	layout, err := app.hallRepo.GetSeatsLayout(r.Context(), screening.TheaterID, screening.HallID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	for _, seatId := range input.SeatIds {
		if !layout.HasSeat(seatId) {
			logger.Warn("seat hold failed: one or more requested seat IDs do not exist for the screening", "requested_seats", input.SeatIds)
			app.notFoundResponse(w, r)
			return
		}
	}

	bookedSeats, err := app.reservations.ListSeatsByScreening(r.Context(), screeningID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	bookedSeatIds := make(map[string]bool, len(bookedSeats))
	for _, bs := range bookedSeats {
		bookedSeatIds[bs.SeatLabel] = true
	}

	for _, seatId := range input.SeatIds {
		if bookedSeatIds[seatId] {
			logger.Warn("seat hold conflict: user selected an already booked seat", "seat_id", seatId)
			app.editConflictResponseWithErr(w, r, fmt.Errorf("some of the selected seats are already booked"))
			return
		}
	}

	err = app.tryLockSeats(r.Context(), input.SeatIds, screeningID, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSeatAlreadyHeld):
			logger.Warn("seat hold conflict due to race condition: user selected an already held seat")
			app.editConflictResponseWithErr(w, r, fmt.Errorf("some of the selected seats are already held"))
		default:
			app.serverErrorResponse(w, r, fmt.Errorf("seats couldn't be acquired: %w", err))
		}

		return
	}

	hold, err := app.createSeatHold(r.Context(), input.SeatIds, screeningID, sessionID)
	if err != nil {
		logger.Error("seat hold creation process failed", "error", err)
		app.serverErrorResponse(w, r, fmt.Errorf("seat hold couldn't be created: %w", err))
		return
	}

	resp := api.SeatHoldResponse{
		HoldId:      hold.Id,
		ScreeningId: hold.ScreeningID,
		SeatIds:     hold.SeatIds,
		HoldTime:    int(seatHoldTTL.Seconds()),
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteSeatHoldHandler(w http.ResponseWriter, r *http.Request, screeningID int) {
	logger := app.contextGetLogger(r)

	if screeningID < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("screening ID must be greater than zero"))
		return
	}

	sessionID := app.sessionManager.Token(r.Context())

	holdId, err := app.redis.Get(r.Context(), holdSessionKey(sessionID)).Result()
	if err != nil && err != redis.Nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if holdId == "" {
		app.notFoundResponse(w, r)
		return
	}

	holdBytes, err := app.redis.Get(r.Context(), holdId).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// The session points to a hold that no longer exists, delete the session key
			logger.Warn("dangling hold session key found and cleaned up", "dangling_hold_id", holdId)
			app.redis.Del(r.Context(), holdSessionKey(sessionID))
			app.notFoundResponse(w, r)
			return
		}
		app.serverErrorResponse(w, r, err)
		return
	}

	var hold seatHold

	err = json.Unmarshal(holdBytes, &hold)
	if err != nil {
		logger.Error("failed to unmarshal seat hold from redis", "hold_id", holdId, "error", err)
		app.serverErrorResponse(w, r, err)
		return
	}

	if hold.ScreeningID != screeningID {
		logger.Warn(
			"seat hold deletion attempt with mismatched screening ID in URL",
			"hold_screening_id", hold.ScreeningID,
			"url_screening_id", screeningID,
		)
		app.notFoundResponse(w, r)
		return
	}

	pipe := app.redis.TxPipeline()

	for _, seatId := range hold.SeatIds {
		pipe.Del(r.Context(), seatLockKey(screeningID, seatId))
		pipe.SRem(r.Context(), seatSetKey(screeningID), seatId)
	}

	pipe.Del(r.Context(), holdId)
	pipe.Del(r.Context(), holdSessionKey(sessionID))

	_, err = pipe.Exec(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) tryLockSeats(ctx context.Context, seatIds []string, screeningID int, sessionID string) error {
	keys := make([]string, len(seatIds))
	for i, seatId := range seatIds {
		keys[i] = seatLockKey(screeningID, seatId)
	}

	err := lockSeatsScript.Run(ctx, app.redis, keys, sessionID, int(seatHoldTTL.Seconds())).Err()
	if err != nil {
		if redis.HasErrorPrefix(err, "seat already locked") {
			return domain.ErrSeatAlreadyHeld
		}

		return err
	}

	return nil
}

func (app *Application) createSeatHold(
	ctx context.Context,
	seatIds []string,
	screeningID int,
	sessionID string) (*seatHold, error) {

	hold := seatHold{
		Id:          uuid.NewString(),
		ScreeningID: screeningID,
		SeatIds:     seatIds,
	}

	holdBytes, err := json.Marshal(hold)
	if err != nil {
		app.releaseSeatLocks(ctx, screeningID, seatIds)
		return nil, err
	}

	holdPipe := app.redis.TxPipeline()

	seatIdInterfaces := make([]interface{}, len(seatIds))
	for i, seatId := range seatIds {
		seatIdInterfaces[i] = seatId
	}
	holdPipe.SAdd(ctx, seatSetKey(screeningID), seatIdInterfaces...)

	holdPipe.Set(ctx, holdSessionKey(sessionID), hold.Id, seatHoldTTL)
	holdPipe.Set(ctx, hold.Id, holdBytes, seatHoldTTL)

	_, err = holdPipe.Exec(ctx)
	if err != nil {
		app.releaseSeatLocks(ctx, screeningID, seatIds)
		return nil, err
	}

	return &hold, nil
}

func (app *Application) releaseSeatLocks(ctx context.Context, screeningID int, seatIds []string) {
	lockKeys := make([]string, len(seatIds))
	seatIdInterfaces := make([]interface{}, len(seatIds))

	for i, seatId := range seatIds {
		lockKeys[i] = seatLockKey(screeningID, seatId)
		seatIdInterfaces[i] = seatId
	}

	pipe := app.redis.TxPipeline()
	pipe.Del(ctx, lockKeys...)
	pipe.SRem(ctx, seatSetKey(screeningID), seatIdInterfaces...)

	_, err := pipe.Exec(ctx)
	if err != nil {
		app.logger.Error("failed to release seat locks", "error", err)
		return
	}
}

func holdSessionKey(sessionID string) string {
	return fmt.Sprintf("seat_hold:%s", sessionID)
}

func seatLockKey(screeningID int, seatId string) string {
	return fmt.Sprintf("seat_lock:%d:%s", screeningID, seatId)
}

func seatSetKey(screeningID int) string {
	return fmt.Sprintf("seat_locks:%d", screeningID)
}
