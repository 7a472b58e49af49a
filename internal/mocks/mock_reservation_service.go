package mocks

import (
	"context"

	"github.com/seatwise/reservation-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockReservationService struct {
	mock.Mock
	domain.ReservationService
}

func (m *MockReservationService) CreateBooking(
	ctx context.Context,
	userID,
	screeningID int,
	seatLabels []string) (*domain.Booking, error) {

	args := m.Called(ctx, userID, screeningID, seatLabels)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockReservationService) CancelBooking(ctx context.Context, bookingID int) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockReservationService) GetSeatBooking(
	ctx context.Context,
	screeningID int,
	seatLabel string) (*domain.SeatBooking, error) {

	args := m.Called(ctx, screeningID, seatLabel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SeatBooking), args.Error(1)
}

func (m *MockReservationService) ListSeatsByBooking(ctx context.Context, bookingID int) ([]domain.SeatBooking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SeatBooking), args.Error(1)
}

func (m *MockReservationService) ListSeatsByScreening(ctx context.Context, screeningID int) ([]domain.SeatBooking, error) {
	args := m.Called(ctx, screeningID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SeatBooking), args.Error(1)
}
