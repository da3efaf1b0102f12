package session

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/radieske/betsim/internal/domain"
	"github.com/radieske/betsim/pkg/contracts/events"
)

type MockAPI struct{ mock.Mock }

func (m *MockAPI) ListGames(ctx context.Context, status domain.GameStatus) ([]domain.Game, error) {
	args := m.Called(ctx, status)
	games, _ := args.Get(0).([]domain.Game)
	return games, args.Error(1)
}

func (m *MockAPI) ListUserBets(ctx context.Context, userID string) ([]domain.Bet, error) {
	args := m.Called(ctx, userID)
	bets, _ := args.Get(0).([]domain.Bet)
	return bets, args.Error(1)
}

func (m *MockAPI) GetUserBalance(ctx context.Context, userID string) (domain.Balance, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Balance), args.Error(1)
}

func (m *MockAPI) CreateUser(ctx context.Context, username string, initial *decimal.Decimal) (domain.User, error) {
	args := m.Called(ctx, username, initial)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockAPI) PlaceBet(ctx context.Context, userID, gameID string, pick domain.Pick, stake decimal.Decimal) (domain.Bet, error) {
	args := m.Called(ctx, userID, gameID, pick, stake)
	return args.Get(0).(domain.Bet), args.Error(1)
}

type MockStore struct{ mock.Mock }

func (m *MockStore) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockStore) Set(ctx context.Context, key, value string) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *MockStore) Remove(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) PublishBetPlaced(ctx context.Context, e events.BetPlaced) error {
	return m.Called(ctx, e).Error(0)
}
