package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/radieske/betsim/internal/betview"
	"github.com/radieske/betsim/internal/domain"
	"github.com/radieske/betsim/internal/payout"
	"github.com/radieske/betsim/internal/publisher"
	"github.com/radieske/betsim/internal/session"
	"github.com/radieske/betsim/internal/shared/kafka"
	"github.com/radieske/betsim/internal/shared/metrics"
	"github.com/radieske/betsim/pkg/contracts/events"
)

var (
	errNoSession = errors.New("not logged in (run: betsim login <username>)")
	errClosed    = errors.New("game is not open for betting")
)

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parseFlags aceita flags antes ou depois dos posicionais
func parseFlags(fs *flag.FlagSet, args []string) ([]string, error) {
	var pos []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return pos, nil
		}
		pos = append(pos, args[0])
		args = args[1:]
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := newFlags("login")
	balance := fs.String("balance", "", "initial balance")
	pos, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 1 {
		return errors.New("usage: betsim login <username> [-balance 1000.00]")
	}

	var initial *decimal.Decimal
	if *balance != "" {
		v, err := decimal.NewFromString(*balance)
		if err != nil {
			return fmt.Errorf("invalid balance %q", *balance)
		}
		initial = &v
	}

	u, err := a.ctl.Login(ctx, pos[0], initial)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "logged in as %s (%s), balance %s\n", u.Username, u.ID, money(u.Balance))
	if err := a.ctl.LastError(); err != nil {
		fmt.Fprintf(a.out, "warning: session not saved: %v\n", err)
	}
	return nil
}

func (a *app) logout(ctx context.Context) error {
	if err := a.ctl.Logout(ctx); err != nil {
		fmt.Fprintf(a.out, "logged out (warning: %v)\n", err)
		return nil
	}
	fmt.Fprintln(a.out, "logged out")
	return nil
}

func (a *app) whoami() error {
	snap := a.ctl.Snapshot()
	if snap.State != session.Authenticated {
		fmt.Fprintln(a.out, "anonymous")
		return nil
	}
	fmt.Fprintf(a.out, "user %s\n", snap.UserID)
	if snap.HasBalance {
		fmt.Fprintf(a.out, "balance %s\n", money(snap.Balance))
	}
	pending, _ := betview.Partition(snap.Bets)
	fmt.Fprintf(a.out, "open bets %d\n", len(pending))
	return nil
}

func (a *app) games(ctx context.Context, args []string) error {
	fs := newFlags("games")
	status := fs.String("status", "", "upcoming|in_progress|completed")
	if _, err := parseFlags(fs, args); err != nil {
		return err
	}
	if *status != "" && !domain.GameStatus(*status).Valid() {
		return fmt.Errorf("invalid status %q", *status)
	}
	if err := a.ctl.RefreshGames(ctx, domain.GameStatus(*status)); err != nil {
		return err
	}
	renderGames(a.out, betview.SortGames(a.ctl.Snapshot().Games), time.Now())
	return nil
}

func (a *app) requireSession(res session.RefreshResult) (session.Snapshot, error) {
	snap := a.ctl.Snapshot()
	if snap.State != session.Authenticated {
		return snap, errNoSession
	}
	if err := res.Err(); err != nil {
		return snap, err
	}
	return snap, nil
}

func (a *app) balance(res session.RefreshResult) error {
	snap, err := a.requireSession(res)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, money(snap.Balance))
	return nil
}

// loadGames carrega os jogos de todos os status na sessão; a falha é avisada
// e a tela segue com os jogos que a sessão já conhecia
func (a *app) loadGames(ctx context.Context) []domain.Game {
	if err := a.ctl.RefreshAllGames(ctx); err != nil {
		fmt.Fprintf(a.out, "warning: games unavailable: %v\n", err)
	}
	return a.ctl.Snapshot().Games
}

func (a *app) bets(ctx context.Context, res session.RefreshResult) error {
	snap, err := a.requireSession(res)
	if err != nil {
		return err
	}
	view := betview.Board(snap.Bets, a.loadGames(ctx))
	renderOpenBets(a.out, view.Pending)
	return nil
}

func (a *app) history(ctx context.Context, res session.RefreshResult) error {
	snap, err := a.requireSession(res)
	if err != nil {
		return err
	}
	games := betview.GameIndex(a.loadGames(ctx))
	_, settled := betview.Partition(snap.Bets)
	renderHistory(a.out, betview.SortSettled(settled), games, payout.Summarize(snap.Bets))
	return nil
}

func (a *app) place(ctx context.Context, args []string) error {
	if len(args) != 4 {
		return errors.New("usage: betsim place <game-id> <bet-type> <selection> <stake>")
	}
	if !a.ctl.Authenticated() {
		return errNoSession
	}
	pick, err := domain.ParsePick(domain.BetType(args[1]), domain.Selection(args[2]))
	if err != nil {
		return err
	}
	stake, err := decimal.NewFromString(args[3])
	if err != nil {
		return fmt.Errorf("invalid stake %q", args[3])
	}

	// jogo conhecido e fechado nem chega ao serviço; desconhecido fica a cargo dele
	if err := a.ctl.RefreshAllGames(ctx); err != nil {
		a.log.Debug("games pre-check skipped", zap.Error(err))
		a.ctl.ClearError()
	} else if g, ok := a.ctl.Game(args[0]); ok && !g.Bettable(time.Now()) {
		return fmt.Errorf("%w: %s is %s", errClosed, g.Matchup(), g.DisplayStatus(time.Now()))
	}

	res, err := a.ctl.PlaceBet(ctx, session.PlaceBetInput{GameID: args[0], Pick: pick, Stake: stake})
	if err != nil {
		return err
	}
	renderPlaced(a.out, res.Bet)
	if err := res.Refresh.Err(); err != nil {
		fmt.Fprintf(a.out, "warning: bet placed but refresh failed: %v\n", err)
		return nil
	}
	fmt.Fprintf(a.out, "balance %s\n", money(a.ctl.Snapshot().Balance))
	return nil
}

func (a *app) watch(ctx context.Context, args []string) error {
	fs := newFlags("watch")
	interval := fs.Duration("interval", a.cfg.WatchInterval, "refresh interval")
	status := fs.String("status", string(domain.GameUpcoming), "game status filter")
	if _, err := parseFlags(fs, args); err != nil {
		return err
	}
	if *interval <= 0 {
		return fmt.Errorf("invalid interval %s", *interval)
	}

	if a.cfg.MetricsPort != "" {
		srv := metrics.StartMetricsServer(a.cfg.MetricsPort, a.api.Health)
		defer srv.Close()
		a.log.Info("metrics/health", zap.String("addr", srv.Addr))
	}

	a.ctl.Watch(ctx, *interval, domain.GameStatus(*status), func(s session.Snapshot) {
		fmt.Fprintf(a.out, "\n== %s ==\n", time.Now().Format(time.Kitchen))
		renderGames(a.out, betview.SortGames(s.Games), time.Now())
		if s.State == session.Authenticated {
			fmt.Fprintf(a.out, "balance %s\n", money(s.Balance))
		}
		if s.LastError != nil {
			fmt.Fprintf(a.out, "error: %v\n", s.LastError)
			a.ctl.ClearError()
		}
	})
	return nil
}

func (a *app) events(ctx context.Context) error {
	if a.cfg.KafkaBrokers == "" {
		return errors.New("KAFKA_BROKERS is not set")
	}
	r := kafka.NewReader(a.cfg.KafkaBrokers, a.cfg.TopicBetPlaced, "")
	defer r.Close()

	next := func(ctx context.Context) ([]byte, []byte, error) { return kafka.ReadNext(ctx, r) }
	fmt.Fprintf(a.out, "tailing %s\n", a.cfg.TopicBetPlaced)
	return publisher.Tail(ctx, next, a.log, func(e events.BetPlaced) error {
		renderEvent(a.out, e)
		return nil
	})
}
