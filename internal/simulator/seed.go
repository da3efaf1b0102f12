package simulator

import (
	"time"

	"github.com/radieske/betsim/internal/domain"
)

func q(v string) domain.Quote { return domain.NewQuote(v) }

func score(v int) *int { return &v }

// SeedGames devolve uma rodada de jogos da NBA relativa a now: três upcoming
// (um sem mercado de spread), um em andamento e um encerrado.
func SeedGames(now time.Time) []domain.Game {
	now = now.UTC().Truncate(time.Minute)
	return []domain.Game{
		{
			ExternalID:     "sim-lal-bos",
			HomeTeam:       "Boston Celtics",
			AwayTeam:       "Los Angeles Lakers",
			CommenceTime:   domain.NewTimestamp(now.Add(3 * time.Hour)),
			Status:         domain.GameUpcoming,
			HomeMoneyline:  q("-150"),
			AwayMoneyline:  q("130"),
			HomeSpread:     q("-3.5"),
			HomeSpreadOdds: q("-110"),
			AwaySpread:     q("3.5"),
			AwaySpreadOdds: q("-110"),
			TotalPoints:    q("224.5"),
			OverOdds:       q("-115"),
			UnderOdds:      q("-105"),
		},
		{
			ExternalID:     "sim-gsw-den",
			HomeTeam:       "Denver Nuggets",
			AwayTeam:       "Golden State Warriors",
			CommenceTime:   domain.NewTimestamp(now.Add(26 * time.Hour)),
			Status:         domain.GameUpcoming,
			HomeMoneyline:  q("-200"),
			AwayMoneyline:  q("170"),
			HomeSpread:     q("-5.5"),
			HomeSpreadOdds: q("-108"),
			AwaySpread:     q("5.5"),
			AwaySpreadOdds: q("-112"),
			TotalPoints:    q("231"),
			OverOdds:       q("-110"),
			UnderOdds:      q("-110"),
		},
		{
			ExternalID:    "sim-mia-nyk",
			HomeTeam:      "New York Knicks",
			AwayTeam:      "Miami Heat",
			CommenceTime:  domain.NewTimestamp(now.Add(50 * time.Hour)),
			Status:        domain.GameUpcoming,
			HomeMoneyline: q("120"),
			AwayMoneyline: q("-140"),
			TotalPoints:   q("210.5"),
			OverOdds:      q("-105"),
			UnderOdds:     q("-115"),
		},
		{
			ExternalID:     "sim-phx-dal",
			HomeTeam:       "Dallas Mavericks",
			AwayTeam:       "Phoenix Suns",
			CommenceTime:   domain.NewTimestamp(now.Add(-1 * time.Hour)),
			Status:         domain.GameInProgress,
			HomeMoneyline:  q("-125"),
			AwayMoneyline:  q("105"),
			HomeSpread:     q("-2"),
			HomeSpreadOdds: q("-110"),
			AwaySpread:     q("2"),
			AwaySpreadOdds: q("-110"),
			TotalPoints:    q("228.5"),
			OverOdds:       q("-110"),
			UnderOdds:      q("-110"),
			HomeScore:      score(54),
			AwayScore:      score(49),
		},
		{
			ExternalID:    "sim-chi-mil",
			HomeTeam:      "Milwaukee Bucks",
			AwayTeam:      "Chicago Bulls",
			CommenceTime:  domain.NewTimestamp(now.Add(-26 * time.Hour)),
			Status:        domain.GameCompleted,
			HomeMoneyline: q("-300"),
			AwayMoneyline: q("250"),
			TotalPoints:   q("226"),
			OverOdds:      q("-110"),
			UnderOdds:     q("-110"),
			HomeScore:     score(118),
			AwayScore:     score(104),
		},
	}
}
