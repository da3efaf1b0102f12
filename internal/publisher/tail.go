package publisher

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/radieske/betsim/pkg/contracts/events"
)

// NextFunc devolve a próxima mensagem (key, value); ver kafka.ReadNext
type NextFunc func(ctx context.Context) (key []byte, value []byte, err error)

// Tail lê eventos bet_placed até o ctx terminar. Mensagens que não decodificam
// são logadas e ignoradas; fn devolvendo erro encerra a leitura.
func Tail(ctx context.Context, next NextFunc, log *zap.Logger, fn func(events.BetPlaced) error) error {
	for {
		_, value, err := next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		var e events.BetPlaced
		if err := json.Unmarshal(value, &e); err != nil {
			log.Warn("skipping malformed bet_placed", zap.Error(err))
			continue
		}
		if err := fn(e); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
}

// ErrStop encerra o Tail sem erro
var ErrStop = errors.New("stop tail")
