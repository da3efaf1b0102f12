package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/radieske/betsim/internal/betview"
	"github.com/radieske/betsim/internal/domain"
	"github.com/radieske/betsim/internal/odds"
	"github.com/radieske/betsim/internal/payout"
	"github.com/radieske/betsim/pkg/contracts/events"
)

const timeLayout = "Mon Jan 2 15:04"

func money(d decimal.Decimal) string { return "$" + d.StringFixed(2) }

func signedMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "+$" + d.StringFixed(2)
}

func table(w io.Writer) *tabwriter.Writer { return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0) }

func renderGames(w io.Writer, games []domain.Game, now time.Time) {
	if len(games) == 0 {
		fmt.Fprintln(w, "no games")
		return
	}
	tw := table(w)
	fmt.Fprintln(tw, "ID\tMATCHUP\tSTART\tSTATUS\tBETS\tML AWAY/HOME\tSPREAD AWAY/HOME\tTOTAL O/U\tSCORE")
	for _, g := range games {
		score := ""
		if g.HasScores() {
			score = fmt.Sprintf("%d-%d", *g.AwayScore, *g.HomeScore)
		}
		bets := "closed"
		if g.Bettable(now) {
			bets = "open"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s / %s\t%s (%s) / %s (%s)\t%s %s/%s\t%s\n",
			g.ID,
			g.Matchup(),
			g.CommenceTime.Local().Format(timeLayout),
			g.DisplayStatus(now),
			bets,
			odds.Format(g.AwayMoneyline), odds.Format(g.HomeMoneyline),
			odds.FormatLine(g.AwaySpread, true), odds.Format(g.AwaySpreadOdds),
			odds.FormatLine(g.HomeSpread, true), odds.Format(g.HomeSpreadOdds),
			odds.FormatLine(g.TotalPoints, false), odds.Format(g.OverOdds), odds.Format(g.UnderOdds),
			score,
		)
	}
	_ = tw.Flush()
}

// pickLabel descreve a escolha com nome do time e linha quando o jogo é conhecido
func pickLabel(b domain.Bet, g *domain.Game) string {
	pick, err := b.Pick()
	if err != nil {
		return fmt.Sprintf("%s %s", b.BetType, b.Selection)
	}
	switch p := pick.(type) {
	case domain.Moneyline:
		return sideName(p.Side, g) + " ML"
	case domain.Spread:
		label := sideName(p.Side, g)
		if g != nil {
			label += " " + odds.FormatLine(g.LineFor(p), true)
		}
		return label
	case domain.Total:
		label := "Over"
		if p.Direction == domain.Under {
			label = "Under"
		}
		if g != nil {
			label += " " + odds.FormatLine(g.LineFor(p), false)
		}
		return label
	}
	return string(b.Selection)
}

func sideName(s domain.Side, g *domain.Game) string {
	if g == nil {
		return string(s)
	}
	if s == domain.Home {
		return g.HomeTeam
	}
	return g.AwayTeam
}

func renderOpenBets(w io.Writer, groups []betview.GameGroup) {
	if len(groups) == 0 {
		fmt.Fprintln(w, "no open bets")
		return
	}
	for _, grp := range groups {
		if grp.Game != nil {
			fmt.Fprintf(w, "%s  %s\n", grp.Game.Matchup(), grp.Game.CommenceTime.Local().Format(timeLayout))
		} else {
			fmt.Fprintf(w, "game %s\n", grp.GameID)
		}
		tw := table(w)
		for _, b := range grp.Bets {
			fmt.Fprintf(tw, "  %s\t%s\t%s\tstake %s\tto win %s\n",
				b.BetType.Label(), pickLabel(b, grp.Game), odds.FormatDecimal(b.Odds), money(b.Stake), money(b.PotentialPayout))
		}
		_ = tw.Flush()
	}
}

func renderHistory(w io.Writer, settled []domain.Bet, games map[string]*domain.Game, sum payout.Summary) {
	if len(settled) == 0 {
		fmt.Fprintln(w, "no settled bets")
	} else {
		tw := table(w)
		fmt.Fprintln(tw, "SETTLED\tGAME\tTYPE\tPICK\tODDS\tSTAKE\tRESULT\tRETURN")
		for _, b := range settled {
			when := "-"
			if b.SettledAt != nil {
				when = b.SettledAt.Local().Format(timeLayout)
			}
			g := games[b.GameID]
			matchup := "Unknown game"
			if g != nil {
				matchup = g.Matchup()
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				when, matchup, b.BetType.Label(), pickLabel(b, g), odds.FormatDecimal(b.Odds),
				money(b.Stake), b.Status, money(payout.Returns(b)))
		}
		_ = tw.Flush()
	}
	fmt.Fprintf(w, "\nstaked %s  returned %s  net %s\n", money(sum.TotalStaked), money(sum.TotalReturns), signedMoney(sum.Net()))
	fmt.Fprintf(w, "won %d  lost %d  push %d  win rate %s%%\n",
		sum.Wins, sum.Losses, sum.Pushes, sum.WinRate().Shift(2).StringFixed(1))
}

func renderPlaced(w io.Writer, b domain.Bet) {
	fmt.Fprintf(w, "bet %s placed: %s %s at %s%s, stake %s, to win %s\n",
		b.ID, b.BetType.Label(), b.Selection, odds.FormatDecimal(b.Odds), oddsDetail(b.Odds),
		money(b.Stake), money(b.PotentialPayout))
}

// oddsDetail: " (2.50 dec, 40.0% implied)"; vazio para odds 0
func oddsDetail(american decimal.Decimal) string {
	dec, err := odds.ToDecimal(american)
	if err != nil {
		return ""
	}
	p, err := odds.ImpliedProbability(american)
	if err != nil {
		return ""
	}
	return fmt.Sprintf(" (%s dec, %s%% implied)", dec.StringFixed(2), p.Shift(2).StringFixed(1))
}

func renderEvent(w io.Writer, e events.BetPlaced) {
	ts := time.UnixMilli(e.TsUnixMs).Local().Format(time.TimeOnly)
	fmt.Fprintf(w, "%s  bet %s user %s game %s  %s/%s  %s stake %s to win %s\n",
		ts, e.BetID, e.UserID, e.GameID, e.BetType, e.Selection, odds.FormatString(e.Odds), e.Stake, e.PotentialPayout)
}
