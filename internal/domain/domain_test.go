package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gameJSON = `{
	"id": "g1",
	"external_id": "ext-1",
	"home_team": "Boston Celtics",
	"away_team": "Miami Heat",
	"commence_time": "2025-01-15T19:30:00",
	"status": "upcoming",
	"home_moneyline": "-150.00",
	"away_moneyline": 130,
	"home_spread": "-3.5",
	"home_spread_odds": "-110",
	"away_spread": "3.5",
	"away_spread_odds": "-110",
	"total_points": "215.5",
	"over_odds": "abc",
	"under_odds": null,
	"home_score": null,
	"away_score": null
}`

func TestGame_UnmarshalToleratesMixedQuotes(t *testing.T) {
	var g Game
	require.NoError(t, json.Unmarshal([]byte(gameJSON), &g))

	assert.Equal(t, "Miami Heat @ Boston Celtics", g.Matchup())
	assert.Equal(t, time.Date(2025, 1, 15, 19, 30, 0, 0, time.UTC), g.CommenceTime.Time)

	d, ok := g.HomeMoneyline.Decimal()
	require.True(t, ok)
	assert.Equal(t, "-150", d.String())

	d, ok = g.AwayMoneyline.Decimal()
	require.True(t, ok)
	assert.Equal(t, "130", d.String())

	assert.True(t, g.OverOdds.IsSet())
	_, ok = g.OverOdds.Decimal()
	assert.False(t, ok, "non numeric quote must read as absent")

	assert.False(t, g.UnderOdds.IsSet())
	assert.True(t, g.Consistent())
	assert.False(t, g.HasScores())
}

func TestGame_LockedAndDisplayStatus(t *testing.T) {
	start := time.Date(2025, 1, 15, 19, 30, 0, 0, time.UTC)
	g := Game{Status: GameUpcoming, CommenceTime: NewTimestamp(start)}

	assert.False(t, g.Locked(start.Add(-time.Minute)))
	assert.True(t, g.Bettable(start.Add(-time.Minute)))
	assert.Equal(t, "upcoming", g.DisplayStatus(start.Add(-time.Minute)))

	assert.True(t, g.Locked(start.Add(time.Minute)))
	assert.False(t, g.Bettable(start.Add(time.Minute)))
	assert.Equal(t, StatusLocked, g.DisplayStatus(start.Add(time.Minute)))

	g.Status = GameCompleted
	assert.Equal(t, "completed", g.DisplayStatus(start.Add(time.Hour)))
}

func TestGame_Consistent(t *testing.T) {
	score := 101
	assert.False(t, Game{Status: GameUpcoming, HomeScore: &score}.Consistent())
	assert.True(t, Game{Status: GameCompleted, HomeScore: &score, AwayScore: &score}.Consistent())
}

func TestGame_QuoteAndLineFor(t *testing.T) {
	var g Game
	require.NoError(t, json.Unmarshal([]byte(gameJSON), &g))

	assert.Equal(t, "-150.00", g.QuoteFor(Moneyline{Side: Home}).Raw())
	assert.Equal(t, "130", g.QuoteFor(Moneyline{Side: Away}).Raw())
	assert.Equal(t, "-110", g.QuoteFor(Spread{Side: Away}).Raw())
	assert.False(t, g.QuoteFor(Total{Direction: Under}).IsSet())

	assert.Equal(t, "-3.5", g.LineFor(Spread{Side: Home}).Raw())
	assert.Equal(t, "215.5", g.LineFor(Total{Direction: Over}).Raw())
	assert.False(t, g.LineFor(Moneyline{Side: Home}).IsSet())
}

func TestParsePick(t *testing.T) {
	tests := []struct {
		betType   BetType
		selection Selection
		want      Pick
		wantErr   bool
	}{
		{BetMoneyline, SelectHome, Moneyline{Side: Home}, false},
		{BetMoneyline, SelectAway, Moneyline{Side: Away}, false},
		{BetSpread, SelectHome, Spread{Side: Home}, false},
		{BetOverUnder, SelectOver, Total{Direction: Over}, false},
		{BetOverUnder, SelectUnder, Total{Direction: Under}, false},
		{BetMoneyline, SelectOver, nil, true},
		{BetSpread, SelectUnder, nil, true},
		{BetOverUnder, SelectHome, nil, true},
		{"parlay", SelectHome, nil, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.betType)+"_"+string(tt.selection), func(t *testing.T) {
			got, err := ParsePick(tt.betType, tt.selection)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrIllegalPick)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.betType, got.BetType())
			assert.Equal(t, tt.selection, got.Selection())
		})
	}
}

func TestValidPick(t *testing.T) {
	assert.True(t, ValidPick(Spread{Side: Away}))
	assert.False(t, ValidPick(Moneyline{Side: "over"}))
	assert.False(t, ValidPick(nil))
}

func TestBet_Unmarshal(t *testing.T) {
	raw := `{
		"id": "b1", "user_id": "u1", "game_id": "g1",
		"bet_type": "over_under", "selection": "under",
		"odds": "-110.00", "stake": "20.00", "potential_payout": "18.18",
		"status": "won", "settled_at": "2025-01-16T02:00:00Z"
	}`
	var b Bet
	require.NoError(t, json.Unmarshal([]byte(raw), &b))

	assert.True(t, b.Settled())
	assert.Equal(t, "18.18", b.PotentialPayout.StringFixed(2))
	require.NotNil(t, b.SettledAt)
	assert.Equal(t, 2, b.SettledAt.Hour())

	p, err := b.Pick()
	require.NoError(t, err)
	assert.Equal(t, Total{Direction: Under}, p)
}

func TestBet_UnmarshalNullSettledAt(t *testing.T) {
	var b Bet
	require.NoError(t, json.Unmarshal([]byte(`{"status":"pending","settled_at":null,"odds":"150","stake":"1","potential_payout":"1.5"}`), &b))
	assert.Nil(t, b.SettledAt)
	assert.False(t, b.Settled())
}

func TestQuote_MarshalRoundTrip(t *testing.T) {
	b, err := json.Marshal(struct {
		A Quote `json:"a"`
		B Quote `json:"b"`
	}{A: NewQuote("-110"), B: NoQuote})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"-110","b":null}`, string(b))
}

func TestParseTimestamp(t *testing.T) {
	ts, err := ParseTimestamp("2025-03-01T10:00:00.123456")
	require.NoError(t, err)
	assert.Equal(t, 123456000, ts.Nanosecond())

	ts, err = ParseTimestamp("2025-03-01T10:00:00-05:00")
	require.NoError(t, err)
	assert.Equal(t, 15, ts.UTC().Hour())

	_, err = ParseTimestamp("yesterday")
	assert.Error(t, err)
}
