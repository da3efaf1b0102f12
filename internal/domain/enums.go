package domain

// GameStatus é o ciclo de vida de um jogo. Só o serviço remoto avança o status.
type GameStatus string

const (
	GameUpcoming   GameStatus = "upcoming"
	GameInProgress GameStatus = "in_progress"
	GameCompleted  GameStatus = "completed"
)

// Valid indica se o status é um dos valores conhecidos
func (s GameStatus) Valid() bool {
	switch s {
	case GameUpcoming, GameInProgress, GameCompleted:
		return true
	}
	return false
}

// BetType identifica o mercado da aposta
type BetType string

const (
	BetMoneyline BetType = "moneyline"
	BetSpread    BetType = "spread"
	BetOverUnder BetType = "over_under"
)

func (t BetType) Valid() bool {
	switch t {
	case BetMoneyline, BetSpread, BetOverUnder:
		return true
	}
	return false
}

// Label devolve o nome de exibição ("over/under" em vez de "over_under")
func (t BetType) Label() string {
	if t == BetOverUnder {
		return "over/under"
	}
	return string(t)
}

// Selection é o valor cru da escolha, como trafega no JSON.
// Combinações legais com BetType são garantidas por Pick.
type Selection string

const (
	SelectHome  Selection = "home"
	SelectAway  Selection = "away"
	SelectOver  Selection = "over"
	SelectUnder Selection = "under"
)

func (s Selection) Valid() bool {
	switch s {
	case SelectHome, SelectAway, SelectOver, SelectUnder:
		return true
	}
	return false
}

// BetStatus: pending -> {won | lost | push}, liquidado apenas pelo serviço
type BetStatus string

const (
	BetPending BetStatus = "pending"
	BetWon     BetStatus = "won"
	BetLost    BetStatus = "lost"
	BetPush    BetStatus = "push"
)

func (s BetStatus) Valid() bool {
	switch s {
	case BetPending, BetWon, BetLost, BetPush:
		return true
	}
	return false
}

// Settled indica se a aposta já saiu de pending
func (s BetStatus) Settled() bool {
	return s == BetWon || s == BetLost || s == BetPush
}
