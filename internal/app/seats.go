package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/seatwise/reservation-api/api"
	"github.com/seatwise/reservation-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Redis Lua script to clean up expired seat locks and return currently valid locked seat labels.
var filterValidLockSeats = redis.NewScript(`
	local setKey = KEYS[1]
	local screeningId = ARGV[1]
	local cursor = "0"
	local batchSize = 100
	local expiredSeats = {}
	local validSeats = {}

	repeat
		local result = redis.call("SSCAN", setKey, cursor, "COUNT", batchSize)
		cursor = result[1]
		local seatIds = result[2]

		for _, seatId in ipairs(seatIds) do
			local lockKey = "seat_lock:" .. screeningId .. ":" .. seatId
			if redis.call("EXISTS", lockKey) == 0 then
				table.insert(expiredSeats, seatId)
			else
				table.insert(validSeats, seatId)
			end
		end
	until cursor == "0"

	if #expiredSeats > 0 then
		redis.call("SREM", setKey, unpack(expiredSeats))
	end

	return validSeats
`)

func (app *Application) GetSeatMapByScreening(
	w http.ResponseWriter,
	r *http.Request,
	screeningID int) {

	logger := app.contextGetLogger(r)

	if screeningID < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("screening ID must be greater than zero"))
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
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			logger.Warn("seat map not found for screening", "screening_id", screeningID)
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.updateSeatAvailability(r.Context(), screeningID, layout)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := toSeatMapResponse(screeningID, layout)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) updateSeatAvailability(ctx context.Context, screeningID int, layout *domain.HallLayout) error {
	cmd := filterValidLockSeats.Run(ctx, app.redis, []string{seatSetKey(screeningID)}, screeningID)
	heldSeatIds, err := cmd.StringSlice()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to run filterValidLockSeats script: %w", err)
	}

	bookedSeats, err := app.reservations.ListSeatsByScreening(ctx, screeningID)
	if err != nil {
		return fmt.Errorf("failed to get booked seats from DB: %w", err)
	}

	unavailableSeats := make(map[string]bool)

	for _, seatId := range heldSeatIds {
		unavailableSeats[seatId] = true
	}

	for _, seatBooking := range bookedSeats {
		unavailableSeats[seatBooking.SeatLabel] = true
	}

	for i := range layout.Seats {
		if unavailableSeats[layout.Seats[i].Label] {
			layout.Seats[i].Available = false
		}
	}

	return nil
}

func toSeatMapResponse(screeningID int, layout *domain.HallLayout) api.SeatMapResponse {
	return api.SeatMapResponse{
		ScreeningId: screeningID,
		TheaterId:   layout.TheaterID,
		HallId:      layout.HallID,
		SeatRows:    toSeatRows(layout.Seats),
	}
}

func toSeatRows(seats []domain.Seat) []api.SeatRow {
	// Seats are pre-sorted by Row,Column (ascending).
	// This allows us to process them in a single pass without additional sorting or mapping.

	var seatRows []api.SeatRow
	currentRow := api.SeatRow{Row: seats[0].Row}

	for _, v := range seats {
		if v.Row != currentRow.Row {
			seatRows = append(seatRows, currentRow)
			currentRow = api.SeatRow{Row: v.Row}
		}

		currentRow.Seats = append(currentRow.Seats, api.Seat{
			Id:         v.Label,
			Row:        v.Row,
			Column:     v.Col,
			ExtraPrice: decimal.NewFromFloat(v.ExtraPrice),
			Type:       api.SeatType(v.Type),
			Available:  v.Available,
		})
	}

	seatRows = append(seatRows, currentRow)

	return seatRows
}
