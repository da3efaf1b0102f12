package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Game representa um evento esportivo e o seu mercado.
// Campos de mercado são independentes e podem vir ausentes.
type Game struct {
	ID           string     `json:"id"`
	ExternalID   string     `json:"external_id"`
	HomeTeam     string     `json:"home_team"`
	AwayTeam     string     `json:"away_team"`
	CommenceTime Timestamp  `json:"commence_time"`
	Status       GameStatus `json:"status"`

	HomeMoneyline  Quote `json:"home_moneyline"`
	AwayMoneyline  Quote `json:"away_moneyline"`
	HomeSpread     Quote `json:"home_spread"`
	HomeSpreadOdds Quote `json:"home_spread_odds"`
	AwaySpread     Quote `json:"away_spread"`
	AwaySpreadOdds Quote `json:"away_spread_odds"`
	TotalPoints    Quote `json:"total_points"`
	OverOdds       Quote `json:"over_odds"`
	UnderOdds      Quote `json:"under_odds"`

	HomeScore *int `json:"home_score"`
	AwayScore *int `json:"away_score"`
}

// StatusLocked é o status de exibição de um jogo upcoming cujo horário já passou
const StatusLocked = "locked"

// Matchup no formato "Visitante @ Mandante"
func (g Game) Matchup() string { return g.AwayTeam + " @ " + g.HomeTeam }

// Locked indica que o horário de início passou e novas apostas não são aceitas
func (g Game) Locked(now time.Time) bool {
	return !g.CommenceTime.IsZero() && g.CommenceTime.Before(now)
}

// DisplayStatus devolve "locked" para jogos upcoming já iniciados, senão o status
func (g Game) DisplayStatus(now time.Time) string {
	if g.Status == GameUpcoming && g.Locked(now) {
		return StatusLocked
	}
	return string(g.Status)
}

// Bettable indica se o cliente deve oferecer a aposta para o jogo
func (g Game) Bettable(now time.Time) bool {
	return g.Status == GameUpcoming && !g.Locked(now)
}

func (g Game) HasScores() bool { return g.HomeScore != nil && g.AwayScore != nil }

// Consistent verifica a invariante: upcoming não tem placar, e placar implica status != upcoming
func (g Game) Consistent() bool {
	hasAny := g.HomeScore != nil || g.AwayScore != nil
	if g.Status == GameUpcoming {
		return !hasAny
	}
	return true
}

// QuoteFor devolve as odds publicadas correspondentes à escolha
func (g Game) QuoteFor(p Pick) Quote {
	switch v := p.(type) {
	case Moneyline:
		if v.Side == Home {
			return g.HomeMoneyline
		}
		if v.Side == Away {
			return g.AwayMoneyline
		}
	case Spread:
		if v.Side == Home {
			return g.HomeSpreadOdds
		}
		if v.Side == Away {
			return g.AwaySpreadOdds
		}
	case Total:
		if v.Direction == Over {
			return g.OverOdds
		}
		if v.Direction == Under {
			return g.UnderOdds
		}
	}
	return NoQuote
}

// LineFor devolve a linha (handicap ou total) da escolha; moneyline não tem linha
func (g Game) LineFor(p Pick) Quote {
	switch v := p.(type) {
	case Spread:
		if v.Side == Home {
			return g.HomeSpread
		}
		return g.AwaySpread
	case Total:
		return g.TotalPoints
	}
	return NoQuote
}

// Bet é uma aposta de um usuário em um jogo. Odds e PotentialPayout são
// snapshot do momento da aposta e nunca são recalculados a partir do mercado.
type Bet struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	GameID          string          `json:"game_id"`
	BetType         BetType         `json:"bet_type"`
	Selection       Selection       `json:"selection"`
	Odds            decimal.Decimal `json:"odds"`
	Stake           decimal.Decimal `json:"stake"`
	PotentialPayout decimal.Decimal `json:"potential_payout"`
	Status          BetStatus       `json:"status"`
	SettledAt       *Timestamp      `json:"settled_at"`
}

// Pick reconstrói a escolha tipada da aposta
func (b Bet) Pick() (Pick, error) { return ParsePick(b.BetType, b.Selection) }

func (b Bet) Settled() bool { return b.Status.Settled() }

// User é o dono das apostas; saldo é debitado pelo serviço
type User struct {
	ID       string          `json:"id"`
	Username string          `json:"username"`
	Balance  decimal.Decimal `json:"balance"`
}

// Balance é a resposta de GET /users/{id}/balance
type Balance struct {
	UserID  string          `json:"user_id"`
	Balance decimal.Decimal `json:"balance"`
}
