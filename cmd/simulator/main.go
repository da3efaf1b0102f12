package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/radieske/betsim/internal/shared/config"
	"github.com/radieske/betsim/internal/shared/logger"
	"github.com/radieske/betsim/internal/shared/metrics"
	"github.com/radieske/betsim/internal/simulator"
)

func main() {
	cfg := config.LoadFor("simulator")

	log, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	balance, err := decimal.NewFromString(cfg.DefaultBalance)
	if err != nil {
		log.Fatal("invalid DEFAULT_BALANCE", zap.String("value", cfg.DefaultBalance), zap.Error(err))
	}

	games := simulator.SeedGames(time.Now())
	sim := simulator.New(
		simulator.WithLogger(log),
		simulator.WithMetrics(metrics.NewSimulatorMetrics(prometheus.DefaultRegisterer)),
		simulator.WithDefaultBalance(balance),
		simulator.WithGames(games),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// metrics/health
	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, nil)
	log.Info("metrics/health", zap.String("addr", metricsSrv.Addr))

	apiSrv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           sim.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = apiSrv.Shutdown(shutdownCtx)
		_ = metricsSrv.Shutdown(shutdownCtx)
	}()

	log.Info("simulator listening", zap.String("addr", apiSrv.Addr), zap.Int("games", len(games)))
	if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("api", zap.Error(err))
	}
	log.Info("simulator stopped")
}
