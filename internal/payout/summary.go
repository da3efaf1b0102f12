package payout

import (
	"github.com/shopspring/decimal"

	"github.com/radieske/betsim/internal/domain"
)

// Summary agrega o desempenho histórico de apostas liquidadas
type Summary struct {
	Settled      int
	Wins         int
	Losses       int
	Pushes       int
	TotalStaked  decimal.Decimal
	TotalReturns decimal.Decimal
}

// Net é o lucro/prejuízo: retornos - total apostado
func (s Summary) Net() decimal.Decimal { return s.TotalReturns.Sub(s.TotalStaked) }

// WinRate = wins / (wins + losses); pushes não contam. Zero se não houver decisões.
func (s Summary) WinRate() decimal.Decimal {
	decided := s.Wins + s.Losses
	if decided == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(s.Wins)).Div(decimal.NewFromInt(int64(decided)))
}

// Summarize reduz as apostas liquidadas; pendentes são ignoradas.
// Somas de decimais são exatas, então o resultado não depende da ordem.
func Summarize(bets []domain.Bet) Summary {
	s := Summary{TotalStaked: decimal.Zero, TotalReturns: decimal.Zero}
	for _, b := range bets {
		if !b.Settled() {
			continue
		}
		s.Settled++
		s.TotalStaked = s.TotalStaked.Add(b.Stake)
		s.TotalReturns = s.TotalReturns.Add(Returns(b))
		switch b.Status {
		case domain.BetWon:
			s.Wins++
		case domain.BetLost:
			s.Losses++
		case domain.BetPush:
			s.Pushes++
		}
	}
	return s
}
