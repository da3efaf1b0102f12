package dto

import "github.com/shopspring/decimal"

type CreateUserRequest struct {
	Username string           `json:"username"`
	Balance  *decimal.Decimal `json:"balance,omitempty"`
}

type PlaceBetRequest struct {
	GameID    string          `json:"game_id"`
	BetType   string          `json:"bet_type"`
	Selection string          `json:"selection"`
	Stake     decimal.Decimal `json:"stake"`
}
