package domain

import (
	"errors"
	"fmt"
)

// ErrIllegalPick é retornado quando a seleção não é válida para o tipo de aposta
var ErrIllegalPick = errors.New("illegal selection for bet type")

// Side é o lado escolhido em moneyline e spread
type Side string

const (
	Home Side = "home"
	Away Side = "away"
)

// Direction é a escolha em over/under
type Direction string

const (
	Over  Direction = "over"
	Under Direction = "under"
)

// Pick é a escolha de uma aposta. Cada variante carrega apenas as seleções
// legais para o seu tipo: Moneyline e Spread aceitam Side, Total aceita Direction.
type Pick interface {
	BetType() BetType
	Selection() Selection
	isPick()
}

// Moneyline: quem vence o jogo
type Moneyline struct{ Side Side }

// Spread: lado que cobre a linha de handicap
type Spread struct{ Side Side }

// Total: soma dos placares acima ou abaixo da linha publicada
type Total struct{ Direction Direction }

func (Moneyline) BetType() BetType { return BetMoneyline }
func (p Moneyline) Selection() Selection { return Selection(p.Side) }
func (Moneyline) isPick() {}

func (Spread) BetType() BetType { return BetSpread }
func (p Spread) Selection() Selection { return Selection(p.Side) }
func (Spread) isPick() {}

func (Total) BetType() BetType { return BetOverUnder }
func (p Total) Selection() Selection { return Selection(p.Direction) }
func (Total) isPick() {}

// ParsePick monta um Pick a partir dos valores crus de bet_type e selection
func ParsePick(betType BetType, selection Selection) (Pick, error) {
	switch betType {
	case BetMoneyline, BetSpread:
		var side Side
		switch selection {
		case SelectHome:
			side = Home
		case SelectAway:
			side = Away
		default:
			return nil, fmt.Errorf("%w: %s cannot be %q", ErrIllegalPick, betType, selection)
		}
		if betType == BetMoneyline {
			return Moneyline{Side: side}, nil
		}
		return Spread{Side: side}, nil
	case BetOverUnder:
		switch selection {
		case SelectOver:
			return Total{Direction: Over}, nil
		case SelectUnder:
			return Total{Direction: Under}, nil
		}
		return nil, fmt.Errorf("%w: %s cannot be %q", ErrIllegalPick, betType, selection)
	}
	return nil, fmt.Errorf("%w: unknown bet type %q", ErrIllegalPick, betType)
}

// ValidPick verifica se um Pick construído manualmente tem valores conhecidos
func ValidPick(p Pick) bool {
	if p == nil {
		return false
	}
	_, err := ParsePick(p.BetType(), p.Selection())
	return err == nil
}
