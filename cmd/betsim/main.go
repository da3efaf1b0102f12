package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/betsim/internal/client"
	"github.com/radieske/betsim/internal/publisher"
	"github.com/radieske/betsim/internal/session"
	"github.com/radieske/betsim/internal/shared/config"
	"github.com/radieske/betsim/internal/shared/kafka"
	"github.com/radieske/betsim/internal/shared/logger"
	"github.com/radieske/betsim/internal/shared/metrics"
	"github.com/radieske/betsim/internal/store"
)

const usage = `usage: betsim <command> [args]

commands:
  login <username> [-balance 1000.00]   create a user and start a session
  logout                                end the session
  whoami                                show the current session
  games [-status upcoming]              list games
  balance                               show the current balance
  bets                                  open bets grouped by game
  history                               settled bets and totals
  place <game-id> <bet-type> <selection> <stake>
                                        place a bet (moneyline|spread|over_under, home|away|over|under)
  watch [-interval 30s] [-status upcoming]
                                        refresh games and session periodically
  events                                tail bet_placed events from Kafka
`

type app struct {
	cfg   config.Config
	log   *zap.Logger
	out   io.Writer
	api   *client.Client
	store store.Store
	pub   interface{ Close() error }
	ctl   *session.Controller
}

func main() {
	if len(os.Args) < 2 || os.Args[1] == "-h" || os.Args[1] == "help" {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	level := cfg.LogLevel
	if level == "" {
		level = "warn"
	}
	log, err := logger.New(cfg.ServiceName, cfg.Env, level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger init:", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, log, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	err = a.run(ctx, os.Args[1], os.Args[2:])
	a.close()
	switch {
	case errors.Is(err, flag.ErrHelp):
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	case err != nil:
		fmt.Fprintln(os.Stderr, errorLine(err))
		os.Exit(1)
	}
}

// errorLine formata o erro final; falhas do serviço levam o status HTTP
func errorLine(err error) string {
	if status := client.StatusOf(err); status != 0 {
		return fmt.Sprintf("error: %v (HTTP %d)", err, status)
	}
	return fmt.Sprintf("error: %v", err)
}

func newApp(ctx context.Context, cfg config.Config, log *zap.Logger, out io.Writer) (*app, error) {
	api := client.New(cfg.APIBaseURL,
		client.WithLogger(log),
		client.WithMetrics(metrics.NewClientMetrics(prometheus.DefaultRegisterer)),
	)
	api.HTTP.Timeout = cfg.HTTPTimeout

	st, err := store.Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	opts := []session.Option{session.WithLogger(log)}
	var pub interface{ Close() error } = publisher.Noop{}
	if cfg.KafkaBrokers != "" {
		kp := publisher.NewKafkaPublisher(kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetPlaced), cfg.TopicBetPlaced, log)
		if cfg.TopicBetPlacedDLQ != "" {
			kp.WithDLQ(kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetPlacedDLQ), cfg.TopicBetPlacedDLQ)
		}
		opts = append(opts, session.WithPublisher(kp))
		pub = kp
	}

	return &app{
		cfg:   cfg,
		log:   log,
		out:   out,
		api:   api,
		store: st,
		pub:   pub,
		ctl:   session.New(api, st, opts...),
	}, nil
}

func (a *app) close() {
	if err := a.pub.Close(); err != nil {
		a.log.Warn("close publisher", zap.Error(err))
	}
	if err := a.store.Close(); err != nil {
		a.log.Warn("close session store", zap.Error(err))
	}
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.logout(ctx)
	case "events":
		return a.events(ctx)
	}

	// os demais comandos partem da sessão persistida
	resumed, res, err := a.ctl.ResumeSession(ctx)
	if err != nil {
		return err
	}
	if resumed && !res.OK() {
		a.log.Debug("resume refresh incomplete", zap.Error(res.Err()))
	}

	switch cmd {
	case "whoami":
		return a.whoami()
	case "games":
		return a.games(ctx, args)
	case "balance":
		return a.balance(res)
	case "bets":
		return a.bets(ctx, res)
	case "history":
		return a.history(ctx, res)
	case "place":
		return a.place(ctx, args)
	case "watch":
		return a.watch(ctx, args)
	}
	return fmt.Errorf("unknown command %q\n\n%s", cmd, usage)
}
