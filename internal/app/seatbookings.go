package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/seatwise/reservation-api/api"
	"github.com/seatwise/reservation-api/internal/domain"
)

func (app *Application) GetScreeningSeatBookingsHandler(w http.ResponseWriter, r *http.Request, screeningID int) {
	if screeningID < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("screening ID must be greater than zero"))
		return
	}

	seats, err := app.reservations.ListSeatsByScreening(r.Context(), screeningID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.SeatBookingListResponse{
		SeatBookings: toApiSeatBookings(seats),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetSeatBookingHandler(w http.ResponseWriter, r *http.Request, screeningID int) {
	if screeningID < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("screening ID must be greater than zero"))
		return
	}

	seatId := chi.URLParam(r, "seatId")

	seat, err := app.reservations.GetSeatBooking(r.Context(), screeningID, seatId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.SeatBooking{
		BookingId:   seat.BookingID,
		ScreeningId: seat.ScreeningID,
		SeatId:      seat.SeatLabel,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
