package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/betsim/internal/domain"
	"github.com/radieske/betsim/internal/publisher"
)

// publish nunca altera o resultado da aposta; falhas só são logadas
func (c *Controller) publish(ctx context.Context, bet domain.Bet) {
	if c.pub == nil {
		return
	}
	if err := c.pub.PublishBetPlaced(ctx, publisher.BetPlacedEvent(bet)); err != nil {
		c.log.Warn("publish bet_placed failed", zap.String("bet_id", bet.ID), zap.Error(err))
	}
}

// Watch atualiza jogos (e saldo/apostas, se logado) a cada intervalo e
// entrega um Snapshot após cada rodada, começando imediatamente.
// Retorna quando o ctx termina.
func (c *Controller) Watch(ctx context.Context, interval time.Duration, status domain.GameStatus, onTick func(Snapshot)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		c.tick(ctx, status)
		if ctx.Err() != nil {
			return
		}
		onTick(c.Snapshot())

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (c *Controller) tick(ctx context.Context, status domain.GameStatus) {
	if err := c.RefreshGames(ctx, status); err != nil {
		c.log.Debug("watch: games refresh failed", zap.Error(err))
	}
	if !c.Authenticated() {
		return
	}
	if res, err := c.Refresh(ctx); err == nil && !res.OK() {
		c.log.Debug("watch: session refresh failed", zap.Error(res.Err()))
	}
}
