package mocks

import (
	"context"

	"github.com/seatwise/reservation-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockHallRepo struct {
	mock.Mock
	domain.HallRepository
}

func (m *MockHallRepo) GetSeatsLayout(ctx context.Context, theaterID, hallID int) (*domain.HallLayout, error) {
	args := m.Called(ctx, theaterID, hallID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HallLayout), args.Error(1)
}
