package payout

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/radieske/betsim/internal/domain"
)

var (
	ErrZeroOdds         = errors.New("payout: american odds cannot be 0")
	ErrNonPositiveStake = errors.New("payout: stake must be greater than 0")
	hundred             = decimal.NewFromInt(100)
)

// Potential calcula o ganho líquido (sem devolução da stake) para odds americanas:
// odds >= 0: stake * odds / 100
// odds < 0:  stake * 100 / |odds|
func Potential(stake, american decimal.Decimal) (decimal.Decimal, error) {
	if !stake.IsPositive() {
		return decimal.Zero, ErrNonPositiveStake
	}
	if american.IsZero() {
		return decimal.Zero, ErrZeroOdds
	}
	if american.IsPositive() {
		return stake.Mul(american).Div(hundred), nil
	}
	return stake.Mul(hundred).Div(american.Abs()), nil
}

// PotentialCents é Potential arredondado em centavos, a forma gravada na aposta
func PotentialCents(stake, american decimal.Decimal) (decimal.Decimal, error) {
	p, err := Potential(stake, american)
	if err != nil {
		return decimal.Zero, err
	}
	return p.Round(2), nil
}

// Returns é o valor devolvido por uma aposta liquidada:
// won = stake + payout, push = stake, lost/pending = 0
func Returns(b domain.Bet) decimal.Decimal {
	switch b.Status {
	case domain.BetWon:
		return b.Stake.Add(b.PotentialPayout)
	case domain.BetPush:
		return b.Stake
	}
	return decimal.Zero
}
