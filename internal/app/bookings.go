package app

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/seatwise/reservation-api/api"
	"github.com/seatwise/reservation-api/internal/domain"
	"github.com/seatwise/reservation-api/internal/event"
	"github.com/shopspring/decimal"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

func (app *Application) CreateBookingHandler(w http.ResponseWriter, r *http.Request, screeningID int) {
	logger := app.contextGetLogger(r)

	if screeningID < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("screening ID must be greater than zero"))
		return
	}

	var input api.CreateBookingRequest

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

	if input.SeatsNumber != len(input.SeatIds) {
		app.badRequestResponse(w, r, fmt.Errorf("seatsNumber must match the number of seat IDs"))
		return
	}

	userID := app.contextGetUserId(r)

	booking, err := app.reservations.CreateBooking(r.Context(), userID, screeningID, input.SeatIds)
	if err != nil {
		var invalidBooking domain.InvalidBookingError
		var invalidSeat domain.InvalidSeatError
		var seatConflict domain.SeatConflictError

		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.As(err, &invalidBooking):
			app.badRequestResponse(w, r, invalidBooking)
		case errors.As(err, &invalidSeat):
			app.badRequestResponse(w, r, invalidSeat)
		case errors.As(err, &seatConflict):
			logger.Warn("booking conflict: seat already taken", "screening_id", screeningID, "seat_id", seatConflict.Label)
			app.editConflictResponseWithErr(w, r, seatConflict)
		case errors.Is(err, domain.ErrEditConflict):
			app.editConflictResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	// The booking is committed, so any leftover hold on these seats is stale.
	app.releaseSeatLocks(r.Context(), screeningID, input.SeatIds)

	app.publishBookingCreated(r, booking)

	resp := api.BookingResponse{
		Booking: toApiBooking(booking),
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CancelBookingHandler(w http.ResponseWriter, r *http.Request, bookingID int) {
	logger := app.contextGetLogger(r)

	if bookingID < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("booking ID must be greater than zero"))
		return
	}

	booking, err := app.reservations.CancelBooking(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			logger.Warn("cancellation attempt for unknown or already cancelled booking", "booking_id", bookingID)
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.publishBookingCancelled(r, booking)

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) GetBookingSeatsHandler(w http.ResponseWriter, r *http.Request, bookingID int) {
	if bookingID < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("booking ID must be greater than zero"))
		return
	}

	seats, err := app.reservations.ListSeatsByBooking(r.Context(), bookingID)
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

func (app *Application) GetUserBookingsHandler(w http.ResponseWriter, r *http.Request) {
	params := api.GetUserBookingsParams{}

	if page := r.URL.Query().Get("page"); page != "" {
		pageNum, err := strconv.Atoi(page)
		if err != nil {
			app.badRequestResponse(w, r, fmt.Errorf("page must be an integer"))
			return
		}
		params.Page = &pageNum
	}

	if pageSize := r.URL.Query().Get("pageSize"); pageSize != "" {
		pageSizeNum, err := strconv.Atoi(pageSize)
		if err != nil {
			app.badRequestResponse(w, r, fmt.Errorf("pageSize must be an integer"))
			return
		}
		params.PageSize = &pageSizeNum
	}

	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	pagination := domain.Pagination{Page: defaultPage, PageSize: defaultPageSize}
	if params.Page != nil {
		pagination.Page = *params.Page
	}
	if params.PageSize != nil {
		pagination.PageSize = *params.PageSize
	}

	userID := app.contextGetUserId(r)

	summaries, metadata, err := app.bookingRepo.GetSummariesByUserId(r.Context(), userID, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.UserBookingsResponse{
		Bookings: toApiBookingSummaries(summaries),
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) publishBookingCreated(r *http.Request, booking *domain.Booking) {
	e := event.BookingCreated{
		BookingID:   booking.ID,
		UserID:      booking.UserID,
		ScreeningID: booking.ScreeningID,
		SeatLabels:  seatLabels(booking.Seats),
		TotalPrice:  booking.TotalPrice,
		CreatedAt:   booking.CreatedAt.Format(time.RFC3339),
	}

	err := app.events.PublishBookingCreated(r.Context(), e)
	if err != nil {
		app.contextGetLogger(r).Error("failed to publish booking created event", "booking_id", booking.ID, "error", err)
	}
}

func (app *Application) publishBookingCancelled(r *http.Request, booking *domain.Booking) {
	e := event.BookingCancelled{
		BookingID:   booking.ID,
		UserID:      booking.UserID,
		ScreeningID: booking.ScreeningID,
		SeatLabels:  seatLabels(booking.Seats),
		CancelledAt: time.Now().Format(time.RFC3339),
	}

	err := app.events.PublishBookingCancelled(r.Context(), e)
	if err != nil {
		app.contextGetLogger(r).Error("failed to publish booking cancelled event", "booking_id", booking.ID, "error", err)
	}
}

func seatLabels(seats []domain.SeatBooking) []string {
	labels := make([]string, len(seats))
	for i, s := range seats {
		labels[i] = s.SeatLabel
	}

	return labels
}

func toApiBooking(booking *domain.Booking) api.Booking {
	return api.Booking{
		Id:          booking.ID,
		ScreeningId: booking.ScreeningID,
		SeatsNumber: booking.SeatsNumber,
		Status:      string(booking.Status),
		TotalPrice:  decimal.NewFromFloat(booking.TotalPrice),
		Seats:       toApiSeatBookings(booking.Seats),
		CreatedAt:   booking.CreatedAt,
	}
}

func toApiSeatBookings(seats []domain.SeatBooking) []api.SeatBooking {
	apiSeats := make([]api.SeatBooking, len(seats))

	for i, s := range seats {
		apiSeats[i] = api.SeatBooking{
			BookingId:   s.BookingID,
			ScreeningId: s.ScreeningID,
			SeatId:      s.SeatLabel,
		}
	}

	return apiSeats
}

func toApiBookingSummaries(summaries []domain.BookingSummary) []api.BookingSummary {
	apiSummaries := make([]api.BookingSummary, len(summaries))

	for i, s := range summaries {
		apiSummaries[i] = api.BookingSummary{
			Id:          s.BookingID,
			MovieTitle:  s.MovieTitle,
			TheaterName: s.TheaterName,
			HallName:    s.HallName,
			Date:        s.ScreeningDate,
			SeatsNumber: s.SeatsNumber,
			CreatedAt:   s.CreatedAt,
		}
	}

	return apiSummaries
}

func toApiMetadata(metadata *domain.Metadata) api.Metadata {
	if metadata == nil {
		return api.Metadata{}
	}

	return api.Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}
