package betview

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/betsim/internal/domain"
)

var base = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

func game(id string, offsetHours int) domain.Game {
	return domain.Game{ID: id, CommenceTime: domain.NewTimestamp(base.Add(time.Duration(offsetHours) * time.Hour))}
}

func bet(id, gameID string, status domain.BetStatus) domain.Bet {
	return domain.Bet{ID: id, GameID: gameID, Status: status}
}

func settledAt(b domain.Bet, offsetHours int) domain.Bet {
	ts := domain.NewTimestamp(base.Add(time.Duration(offsetHours) * time.Hour))
	b.SettledAt = &ts
	return b
}

func ids(bets []domain.Bet) []string {
	out := make([]string, 0, len(bets))
	for _, b := range bets {
		out = append(out, b.ID)
	}
	return out
}

func TestPartition(t *testing.T) {
	in := []domain.Bet{
		bet("1", "g1", domain.BetPending),
		bet("2", "g1", domain.BetWon),
		bet("3", "g2", domain.BetPending),
		bet("4", "g2", domain.BetPush),
		bet("5", "g3", domain.BetLost),
	}
	snapshot := append([]domain.Bet(nil), in...)

	pending, settled := Partition(in)

	assert.Equal(t, []string{"1", "3"}, ids(pending))
	assert.Equal(t, []string{"2", "4", "5"}, ids(settled))
	assert.Equal(t, snapshot, in, "input must not be mutated")
}

func TestGroupPending(t *testing.T) {
	games := []domain.Game{game("late", 10), game("early", 1), game("mid", 5)}
	in := []domain.Bet{
		bet("a", "late", domain.BetPending),
		bet("b", "ghost", domain.BetPending),
		bet("c", "early", domain.BetPending),
		bet("d", "late", domain.BetPending),
		bet("e", "mid", domain.BetPending),
		bet("f", "phantom", domain.BetPending),
		bet("g", "early", domain.BetPending),
	}

	groups := GroupPending(in, games)
	require.Len(t, groups, 5)

	got := make([]string, 0, len(groups))
	for _, g := range groups {
		got = append(got, g.GameID)
	}
	assert.Equal(t, []string{"early", "mid", "late", "ghost", "phantom"}, got)

	assert.Equal(t, []string{"c", "g"}, ids(groups[0].Bets))
	assert.Equal(t, []string{"a", "d"}, ids(groups[2].Bets))
	require.NotNil(t, groups[0].Game)
	assert.Nil(t, groups[3].Game)
	assert.Nil(t, groups[4].Game)
}

func TestGroupPending_EveryBetInExactlyOneGroup(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	games := []domain.Game{game("g0", 3), game("g1", 1), game("g2", 2)}

	in := make([]domain.Bet, 0, 60)
	for i := 0; i < 60; i++ {
		in = append(in, bet(fmt.Sprint(i), fmt.Sprintf("g%d", rng.Intn(5)), domain.BetPending))
	}

	groups := GroupPending(in, games)

	seen := map[string]int{}
	for _, g := range groups {
		for _, b := range g.Bets {
			assert.Equal(t, g.GameID, b.GameID)
			seen[b.ID]++
		}
	}
	assert.Len(t, seen, len(in))
	for id, n := range seen {
		assert.Equal(t, 1, n, "bet %s", id)
	}

	var last time.Time
	resolvedDone := false
	for _, g := range groups {
		if g.Game == nil {
			resolvedDone = true
			continue
		}
		assert.False(t, resolvedDone, "resolved group after unresolved one")
		assert.False(t, g.Game.CommenceTime.Before(last))
		last = g.Game.CommenceTime.Time
	}
}

func TestSortSettled(t *testing.T) {
	in := []domain.Bet{
		settledAt(bet("old", "g", domain.BetWon), 1),
		bet("null-1", "g", domain.BetLost),
		settledAt(bet("new", "g", domain.BetLost), 9),
		bet("null-2", "g", domain.BetPush),
		settledAt(bet("mid", "g", domain.BetPush), 4),
	}
	snapshot := append([]domain.Bet(nil), in...)

	out := SortSettled(in)

	assert.Equal(t, []string{"new", "mid", "old", "null-1", "null-2"}, ids(out))
	assert.Equal(t, snapshot, in)
}

func TestSortSettled_AllNull(t *testing.T) {
	in := []domain.Bet{bet("x", "g", domain.BetWon), bet("y", "g", domain.BetLost)}
	assert.NotPanics(t, func() {
		assert.Equal(t, []string{"x", "y"}, ids(SortSettled(in)))
	})
}

func TestSettledAfter_Consistent(t *testing.T) {
	a := domain.NewTimestamp(base)
	b := domain.NewTimestamp(base.Add(time.Hour))
	cases := [][2]*domain.Timestamp{{nil, nil}, {&a, nil}, {nil, &a}, {&a, &b}, {&b, &a}, {&a, &a}}
	for _, c := range cases {
		assert.False(t, settledAfter(c[0], c[1]) && settledAfter(c[1], c[0]), "comparator must be asymmetric")
	}
}

func TestBoard(t *testing.T) {
	games := []domain.Game{game("g2", 2), game("g1", 1)}
	in := []domain.Bet{
		bet("p1", "g2", domain.BetPending),
		settledAt(bet("s1", "g1", domain.BetWon), 1),
		bet("p2", "g1", domain.BetPending),
		settledAt(bet("s2", "g1", domain.BetLost), 3),
	}

	v := Board(in, games)

	require.Len(t, v.Pending, 2)
	assert.Equal(t, "g1", v.Pending[0].GameID)
	assert.Equal(t, "g2", v.Pending[1].GameID)
	assert.Equal(t, []string{"s2", "s1"}, ids(v.Settled))
}

func TestSortGames(t *testing.T) {
	games := []domain.Game{game("c", 3), game("a", 1), game("b", 2)}
	out := SortGames(games)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "c", out[2].ID)
	assert.Equal(t, "c", games[0].ID)
}
