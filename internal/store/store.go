// Package store guarda o identificador de sessão (e outros pares chave/valor
// pequenos) fora do processo. Todos os backends têm a mesma semântica:
// Get de chave ausente devolve ok=false sem erro, Remove de chave ausente não falha.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/radieske/betsim/internal/shared/cache"
	"github.com/radieske/betsim/internal/shared/config"
	"github.com/radieske/betsim/internal/shared/db"
)

var ErrUnknownBackend = errors.New("store: unknown backend")

// Store é a capacidade chave/valor injetada na sessão
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Open escolhe o backend por cfg.SessionStore
func Open(ctx context.Context, cfg config.Config, log *zap.Logger) (Store, error) {
	switch cfg.SessionStore {
	case "", "file":
		log.Debug("session store", zap.String("backend", "file"), zap.String("path", cfg.SessionFile))
		return NewFile(cfg.SessionFile), nil
	case "memory":
		return NewMemory(), nil
	case "redis":
		rdb, err := cache.ConnectRedis(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, fmt.Errorf("session store: %w", err)
		}
		log.Debug("session store", zap.String("backend", "redis"), zap.String("addr", cfg.RedisAddr))
		return NewRedis(rdb), nil
	case "postgres":
		pg, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("session store: %w", err)
		}
		s := NewPostgres(pg)
		if err := s.Migrate(ctx); err != nil {
			_ = pg.Close()
			return nil, fmt.Errorf("session store: %w", err)
		}
		log.Debug("session store", zap.String("backend", "postgres"))
		return s, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.SessionStore)
}
