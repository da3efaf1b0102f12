package odds

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrZeroOdds = errors.New("invalid american odds: cannot be 0")

var hundred = decimal.NewFromInt(100)

// ToDecimal converte odds americanas para decimais
// +150 -> 2.5, -150 -> 1.6667
func ToDecimal(american decimal.Decimal) (decimal.Decimal, error) {
	if american.IsZero() {
		return decimal.Zero, ErrZeroOdds
	}
	if american.IsPositive() {
		return american.Div(hundred).Add(decimal.NewFromInt(1)), nil
	}
	return hundred.Div(american.Abs()).Add(decimal.NewFromInt(1)), nil
}

// ImpliedProbability devolve a probabilidade implícita (0..1) das odds americanas
func ImpliedProbability(american decimal.Decimal) (decimal.Decimal, error) {
	dec, err := ToDecimal(american)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromInt(1).Div(dec), nil
}
