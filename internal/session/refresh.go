package session

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/radieske/betsim/internal/domain"
)

// RefreshResult separa o resultado de cada busca da atualização de saldo+apostas.
// Stale indica que a sessão mudou durante a busca e nada foi aplicado.
type RefreshResult struct {
	BalanceErr error
	BetsErr    error
	Stale      bool
}

func (r RefreshResult) OK() bool { return r.BalanceErr == nil && r.BetsErr == nil }

// Err junta as duas falhas; nil quando ambas as buscas deram certo
func (r RefreshResult) Err() error { return errors.Join(r.BalanceErr, r.BetsErr) }

// Refresh busca saldo e apostas em paralelo e espera as duas respostas.
// Cada resultado bem-sucedido é aplicado mesmo que o outro falhe.
func (c *Controller) Refresh(ctx context.Context) (RefreshResult, error) {
	c.mu.Lock()
	epoch, userID := c.epoch, c.userID
	c.mu.Unlock()
	if userID == "" {
		return RefreshResult{}, ErrNotAuthenticated
	}

	var (
		wg      sync.WaitGroup
		balance domain.Balance
		bets    []domain.Bet
		res     RefreshResult
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		balance, res.BalanceErr = c.api.GetUserBalance(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		bets, res.BetsErr = c.api.ListUserBets(ctx, userID)
	}()
	wg.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		res.Stale = true
		c.log.Debug("discarding stale refresh", zap.String("user_id", userID))
		return res, nil
	}
	if res.BalanceErr == nil {
		c.balance = balance.Balance
		c.hasBalance = true
	}
	if res.BetsErr == nil {
		c.bets = bets
	}
	if err := res.Err(); err != nil {
		c.lastErr = err
	}
	return res, nil
}

// PlaceBetInput é o formulário de aposta
type PlaceBetInput struct {
	GameID string
	Pick   domain.Pick
	Stake  decimal.Decimal
}

// PlaceResult separa a aposta aceita (resultado principal) da atualização
// de saldo e apostas feita em seguida (resultado secundário).
type PlaceResult struct {
	Bet     domain.Bet
	Refresh RefreshResult
}

// Applied indica que a aposta foi aceita e o estado local já a reflete
func (r PlaceResult) Applied() bool { return r.Bet.ID != "" && r.Refresh.OK() && !r.Refresh.Stale }

// PlaceBet envia a aposta e, só depois da resposta, atualiza saldo e apostas
// em paralelo. Uma recusa deixa o estado intacto e volta como erro; falhas da
// atualização ficam em PlaceResult.Refresh e em LastError.
func (c *Controller) PlaceBet(ctx context.Context, in PlaceBetInput) (PlaceResult, error) {
	userID := c.UserID()
	if userID == "" {
		return PlaceResult{}, ErrNotAuthenticated
	}

	bet, err := c.api.PlaceBet(ctx, userID, in.GameID, in.Pick, in.Stake)
	if err != nil {
		c.setError(err)
		c.log.Info("bet rejected", zap.String("user_id", userID), zap.String("game_id", in.GameID), zap.Error(err))
		return PlaceResult{}, err
	}
	c.log.Info("bet placed", zap.String("bet_id", bet.ID), zap.String("user_id", userID))

	c.publish(ctx, bet)

	res, err := c.Refresh(ctx)
	if err != nil {
		// sessão encerrada entre a aposta e a atualização
		res = RefreshResult{Stale: true}
	}
	if !res.OK() {
		c.log.Warn("refresh after bet failed", zap.String("bet_id", bet.ID), zap.Error(res.Err()))
	}
	return PlaceResult{Bet: bet, Refresh: res}, nil
}
