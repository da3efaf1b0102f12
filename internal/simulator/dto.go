package simulator

import (
	"github.com/shopspring/decimal"

	"github.com/radieske/betsim/internal/domain"
)

type createUserRequest struct {
	Username string           `json:"username"`
	Balance  *decimal.Decimal `json:"balance"`
}

type placeBetRequest struct {
	GameID    string          `json:"game_id"`
	BetType   string          `json:"bet_type"`
	Selection string          `json:"selection"`
	Stake     decimal.Decimal `json:"stake"`
}

// valores monetários saem como string com duas casas ("5000.00")
type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Balance  string `json:"balance"`
}

type balanceResponse struct {
	UserID  string `json:"user_id"`
	Balance string `json:"balance"`
}

type betResponse struct {
	ID              string            `json:"id"`
	UserID          string            `json:"user_id"`
	GameID          string            `json:"game_id"`
	BetType         domain.BetType    `json:"bet_type"`
	Selection       domain.Selection  `json:"selection"`
	Odds            string            `json:"odds"`
	Stake           string            `json:"stake"`
	PotentialPayout string            `json:"potential_payout"`
	Status          domain.BetStatus  `json:"status"`
	SettledAt       *domain.Timestamp `json:"settled_at"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// validationError imita o formato 422 de validação de payload
type validationError struct {
	Detail []validationIssue `json:"detail"`
}

type validationIssue struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Balance: u.Balance.StringFixed(2)}
}

func toBetResponse(b domain.Bet) betResponse {
	return betResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		GameID:          b.GameID,
		BetType:         b.BetType,
		Selection:       b.Selection,
		Odds:            b.Odds.StringFixed(2),
		Stake:           b.Stake.StringFixed(2),
		PotentialPayout: b.PotentialPayout.StringFixed(2),
		Status:          b.Status,
		SettledAt:       b.SettledAt,
	}
}
