package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/seatwise/reservation-api/api"
	"github.com/seatwise/reservation-api/internal/domain"
	"github.com/seatwise/reservation-api/internal/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SeatBookingsTestSuite struct {
	suite.Suite
	app          *Application
	reservations *mocks.MockReservationService
}

func (s *SeatBookingsTestSuite) SetupTest() {
	s.reservations = new(mocks.MockReservationService)

	s.app = newTestApplication(func(a *Application) {
		a.reservations = s.reservations
	})
}

func TestSeatBookingsSuite(t *testing.T) {
	suite.Run(t, new(SeatBookingsTestSuite))
}

func (s *SeatBookingsTestSuite) TestGetScreeningSeatBookingsHandler() {
	tests := []struct {
		name           string
		screeningID    int
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
		wantResponse   *api.SeatBookingListResponse
	}{
		{
			name:           "should fail when screening ID is zero or negative",
			screeningID:    0,
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "screening ID must be greater than zero",
		},
		{
			name:        "should fail on database error",
			screeningID: testScreeningID,
			setupMocks: func() {
				s.reservations.On("ListSeatsByScreening", mock.Anything, testScreeningID).
					Return(nil, fmt.Errorf("database error"))
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
		{
			name:        "should return an empty list when no seats are booked",
			screeningID: testScreeningID,
			setupMocks: func() {
				s.reservations.On("ListSeatsByScreening", mock.Anything, testScreeningID).
					Return([]domain.SeatBooking{}, nil)
			},
			wantStatus: http.StatusOK,
			wantResponse: &api.SeatBookingListResponse{
				SeatBookings: []api.SeatBooking{},
			},
		},
		{
			name:        "should list all booked seats of the screening",
			screeningID: testScreeningID,
			setupMocks: func() {
				s.reservations.On("ListSeatsByScreening", mock.Anything, testScreeningID).
					Return([]domain.SeatBooking{
						{BookingID: 42, ScreeningID: testScreeningID, SeatLabel: "1"},
						{BookingID: 43, ScreeningID: testScreeningID, SeatLabel: "4"},
					}, nil)
			},
			wantStatus: http.StatusOK,
			wantResponse: &api.SeatBookingListResponse{
				SeatBookings: []api.SeatBooking{
					{BookingId: 42, ScreeningId: testScreeningID, SeatId: "1"},
					{BookingId: 43, ScreeningId: testScreeningID, SeatId: "4"},
				},
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.reservations.AssertExpectations(s.T())

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			url := fmt.Sprintf("/screenings/%d/seat-bookings", tt.screeningID)
			w, r := executeRequest(s.T(), http.MethodGet, url, nil)
			s.app.GetScreeningSeatBookingsHandler(w, r, tt.screeningID)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantResponse != nil {
				var response api.SeatBookingListResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				s.Require().NoError(err, "Failed to decode response")

				diff := cmp.Diff(tt.wantResponse, &response)
				s.Empty(diff, "Response mismatch (-want +got):\n%s", diff)
			}

			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func (s *SeatBookingsTestSuite) TestGetSeatBookingHandler() {
	tests := []struct {
		name           string
		screeningID    int
		seatId         string
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
		wantResponse   *api.SeatBooking
	}{
		{
			name:           "should fail when screening ID is zero or negative",
			screeningID:    -1,
			seatId:         "1",
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "screening ID must be greater than zero",
		},
		{
			name:        "should fail when the seat is not booked",
			screeningID: testScreeningID,
			seatId:      "3",
			setupMocks: func() {
				s.reservations.On("GetSeatBooking", mock.Anything, testScreeningID, "3").
					Return(nil, domain.ErrRecordNotFound)
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
		{
			name:        "should return the booking holding the seat",
			screeningID: testScreeningID,
			seatId:      "2",
			setupMocks: func() {
				s.reservations.On("GetSeatBooking", mock.Anything, testScreeningID, "2").
					Return(&domain.SeatBooking{BookingID: 42, ScreeningID: testScreeningID, SeatLabel: "2"}, nil)
			},
			wantStatus: http.StatusOK,
			wantResponse: &api.SeatBooking{
				BookingId:   42,
				ScreeningId: testScreeningID,
				SeatId:      "2",
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.reservations.AssertExpectations(s.T())

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			url := fmt.Sprintf("/screenings/%d/seat-bookings/%s", tt.screeningID, tt.seatId)
			w, r := executeRequest(s.T(), http.MethodGet, url, nil)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("seatId", tt.seatId)
			r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

			s.app.GetSeatBookingHandler(w, r, tt.screeningID)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantResponse != nil {
				var response api.SeatBooking
				err := json.NewDecoder(w.Body).Decode(&response)
				s.Require().NoError(err, "Failed to decode response")

				diff := cmp.Diff(tt.wantResponse, &response)
				s.Empty(diff, "Response mismatch (-want +got):\n%s", diff)
			}

			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}
