package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/seatwise/reservation-api/api"
	"github.com/seatwise/reservation-api/internal/domain"
	"github.com/shopspring/decimal"
)

func (app *Application) GetScreeningHandler(w http.ResponseWriter, r *http.Request, screeningID int) {
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

	resp := api.ScreeningResponse{
		Id:          screening.ID,
		MovieTitle:  screening.MovieTitle,
		TheaterName: screening.TheaterName,
		HallName:    screening.HallName,
		StartTime:   screening.StartTime,
		Duration:    int(screening.Duration / time.Minute),
		BasePrice:   decimal.NewFromFloat(screening.BasePrice),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
