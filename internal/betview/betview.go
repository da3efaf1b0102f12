// Package betview organiza coleções de apostas para as telas de apostas
// abertas e histórico. Nenhuma função altera os slices recebidos.
package betview

import (
	"sort"

	"github.com/radieske/betsim/internal/domain"
)

// GameGroup agrupa apostas pendentes de um mesmo jogo.
// Game é nil quando o jogo não está na coleção atual.
type GameGroup struct {
	GameID string
	Game   *domain.Game
	Bets   []domain.Bet
}

// View é a visão completa usada pelas telas de apostas
type View struct {
	Pending []GameGroup
	Settled []domain.Bet
}

// GameIndex indexa jogos por id
func GameIndex(games []domain.Game) map[string]*domain.Game {
	idx := make(map[string]*domain.Game, len(games))
	for i := range games {
		idx[games[i].ID] = &games[i]
	}
	return idx
}

// Partition separa pendentes de liquidadas preservando a ordem de entrada.
// Toda aposta cai em exatamente um dos dois lados.
func Partition(bets []domain.Bet) (pending, settled []domain.Bet) {
	pending = make([]domain.Bet, 0, len(bets))
	settled = make([]domain.Bet, 0, len(bets))
	for _, b := range bets {
		if b.Status == domain.BetPending {
			pending = append(pending, b)
			continue
		}
		settled = append(settled, b)
	}
	return pending, settled
}

// GroupPending agrupa apostas por game_id (ordem de primeira aparição dentro do grupo)
// e ordena os grupos pelo horário do jogo. Referências sem jogo vão para o fim,
// mantendo a ordem relativa entre si.
func GroupPending(bets []domain.Bet, games []domain.Game) []GameGroup {
	idx := GameIndex(games)

	groups := make([]GameGroup, 0)
	pos := make(map[string]int)
	for _, b := range bets {
		i, ok := pos[b.GameID]
		if !ok {
			i = len(groups)
			pos[b.GameID] = i
			groups = append(groups, GameGroup{GameID: b.GameID, Game: idx[b.GameID]})
		}
		groups[i].Bets = append(groups[i].Bets, b)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return commencesBefore(groups[i].Game, groups[j].Game)
	})
	return groups
}

// commencesBefore: jogo resolvido antes de não resolvido; dois não resolvidos são iguais
func commencesBefore(a, b *domain.Game) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	}
	return a.CommenceTime.Before(b.CommenceTime.Time)
}

// SortSettled devolve uma cópia ordenada por settled_at decrescente.
// settled_at nulo é igual a outro nulo e fica depois dos preenchidos.
func SortSettled(bets []domain.Bet) []domain.Bet {
	out := append([]domain.Bet(nil), bets...)
	sort.SliceStable(out, func(i, j int) bool {
		return settledAfter(out[i].SettledAt, out[j].SettledAt)
	})
	return out
}

func settledAfter(a, b *domain.Timestamp) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	}
	return a.After(b.Time)
}

// Board aplica partição, agrupamento e ordenação de uma vez
func Board(bets []domain.Bet, games []domain.Game) View {
	pending, settled := Partition(bets)
	return View{
		Pending: GroupPending(pending, games),
		Settled: SortSettled(settled),
	}
}

// SortGames devolve uma cópia dos jogos ordenada por horário de início
func SortGames(games []domain.Game) []domain.Game {
	out := append([]domain.Game(nil), games...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CommenceTime.Before(out[j].CommenceTime.Time)
	})
	return out
}
