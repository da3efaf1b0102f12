package payout

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/betsim/internal/domain"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPotential(t *testing.T) {
	tests := []struct {
		name  string
		stake string
		odds  string
		want  string
	}{
		{"favorite -150", "20", "-150", "13.33"},
		{"underdog +120", "20", "120", "24.00"},
		{"even money", "50", "100", "50.00"},
		{"standard juice", "110", "-110", "100.00"},
		{"big dog", "10", "450", "45.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PotentialCents(d(tt.stake), d(tt.odds))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestPotential_Errors(t *testing.T) {
	_, err := Potential(d("10"), decimal.Zero)
	assert.ErrorIs(t, err, ErrZeroOdds)

	_, err = Potential(decimal.Zero, d("-110"))
	assert.ErrorIs(t, err, ErrNonPositiveStake)

	_, err = PotentialCents(d("-5"), d("150"))
	assert.ErrorIs(t, err, ErrNonPositiveStake)
}

func TestPotential_MatchesFormula(t *testing.T) {
	for _, o := range []string{"-1000", "-250", "-101", "100", "101", "333", "2500"} {
		for _, s := range []string{"0.01", "1", "7.5", "20", "999.99"} {
			got, err := Potential(d(s), d(o))
			require.NoError(t, err)

			var want decimal.Decimal
			if d(o).Sign() >= 0 {
				want = d(s).Mul(d(o)).Div(hundred)
			} else {
				want = d(s).Mul(hundred).Div(d(o).Abs())
			}
			assert.True(t, want.Equal(got), "stake %s odds %s: got %s want %s", s, o, got, want)
		}
	}
}

func TestPotential_StrictlyIncreasingInStake(t *testing.T) {
	for _, o := range []string{"-300", "-110", "100", "250"} {
		prev := decimal.Zero
		for i := 1; i <= 200; i++ {
			got, err := Potential(decimal.NewFromInt(int64(i)), d(o))
			require.NoError(t, err)
			assert.True(t, got.GreaterThan(prev), "odds %s stake %d", o, i)
			prev = got
		}
	}
}

func TestReturns(t *testing.T) {
	won := domain.Bet{Status: domain.BetWon, Stake: d("10"), PotentialPayout: d("15")}
	lost := domain.Bet{Status: domain.BetLost, Stake: d("10"), PotentialPayout: d("15")}
	push := domain.Bet{Status: domain.BetPush, Stake: d("10"), PotentialPayout: d("20")}
	pending := domain.Bet{Status: domain.BetPending, Stake: d("10"), PotentialPayout: d("20")}

	assert.Equal(t, "25", Returns(won).String())
	assert.True(t, Returns(lost).IsZero())
	assert.Equal(t, "10", Returns(push).String())
	assert.True(t, Returns(pending).IsZero())
}

func TestSummarize(t *testing.T) {
	bets := []domain.Bet{
		{Stake: d("10"), Status: domain.BetWon, PotentialPayout: d("15")},
		{Stake: d("10"), Status: domain.BetLost, PotentialPayout: d("0")},
		{Stake: d("10"), Status: domain.BetPush, PotentialPayout: d("20")},
		{Stake: d("50"), Status: domain.BetPending, PotentialPayout: d("45")},
	}

	s := Summarize(bets)

	assert.Equal(t, 3, s.Settled)
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.Equal(t, 1, s.Pushes)
	assert.Equal(t, "30", s.TotalStaked.String())
	assert.Equal(t, "35", s.TotalReturns.String())
	assert.Equal(t, "5", s.Net().String())
	assert.Equal(t, "0.5", s.WinRate().String())
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Settled)
	assert.True(t, s.TotalStaked.IsZero())
	assert.True(t, s.Net().IsZero())
	assert.True(t, s.WinRate().IsZero())
}

func TestSummarize_PermutationInvariant(t *testing.T) {
	statuses := []domain.BetStatus{domain.BetWon, domain.BetLost, domain.BetPush, domain.BetPending}
	rng := rand.New(rand.NewSource(42))

	bets := make([]domain.Bet, 0, 40)
	for i := 0; i < 40; i++ {
		stake := decimal.NewFromInt(int64(rng.Intn(500) + 1)).Div(decimal.NewFromInt(4))
		bets = append(bets, domain.Bet{
			Stake:           stake,
			PotentialPayout: stake.Mul(d("0.91")).Round(2),
			Status:          statuses[rng.Intn(len(statuses))],
		})
	}
	want := Summarize(bets)

	for i := 0; i < 20; i++ {
		shuffled := append([]domain.Bet(nil), bets...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := Summarize(shuffled)
		assert.True(t, want.TotalStaked.Equal(got.TotalStaked))
		assert.True(t, want.TotalReturns.Equal(got.TotalReturns))
		assert.True(t, want.Net().Equal(got.Net()))
		assert.Equal(t, want.Wins, got.Wins)
		assert.Equal(t, want.Losses, got.Losses)
		assert.Equal(t, want.Pushes, got.Pushes)
	}
}
