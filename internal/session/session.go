// Package session mantém o estado da sessão do apostador: quem está logado,
// saldo, apostas e jogos conhecidos. Todo acesso remoto passa pela API
// injetada e o id do usuário persiste na Store injetada.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/radieske/betsim/internal/domain"
	"github.com/radieske/betsim/pkg/contracts/events"
)

// UserIDKey é a chave do id persistido na Store
const UserIDKey = "userId"

var ErrNotAuthenticated = errors.New("session: not authenticated")

// API são as operações remotas usadas pela sessão
type API interface {
	ListGames(ctx context.Context, status domain.GameStatus) ([]domain.Game, error)
	ListUserBets(ctx context.Context, userID string) ([]domain.Bet, error)
	GetUserBalance(ctx context.Context, userID string) (domain.Balance, error)
	CreateUser(ctx context.Context, username string, initial *decimal.Decimal) (domain.User, error)
	PlaceBet(ctx context.Context, userID, gameID string, pick domain.Pick, stake decimal.Decimal) (domain.Bet, error)
}

// Store é o armazenamento chave/valor do id da sessão
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Publisher recebe eventos de aposta aceita
type Publisher interface {
	PublishBetPlaced(ctx context.Context, e events.BetPlaced) error
}

type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Snapshot é uma cópia do estado; alterar seus slices não afeta o Controller
type Snapshot struct {
	State      State
	UserID     string
	Username   string
	Balance    decimal.Decimal
	HasBalance bool
	Bets       []domain.Bet
	Games      []domain.Game
	LastError  error
}

type Controller struct {
	api   API
	store Store
	pub   Publisher
	log   *zap.Logger

	mu sync.Mutex

	// epoch muda a cada login/logout; resultados de uma época antiga são descartados
	epoch      uint64
	userID     string
	username   string
	balance    decimal.Decimal
	hasBalance bool
	bets       []domain.Bet
	games      []domain.Game
	lastErr    error
}

type Option func(*Controller)

func WithLogger(l *zap.Logger) Option { return func(c *Controller) { c.log = l } }

// WithPublisher liga a emissão de bet_placed depois de apostas aceitas
func WithPublisher(p Publisher) Option { return func(c *Controller) { c.pub = p } }

func New(api API, store Store, opts ...Option) *Controller {
	c := &Controller{api: api, store: store, log: zap.NewNop()}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller) stateLocked() State {
	if c.userID == "" {
		return Anonymous
	}
	return Authenticated
}

func (c *Controller) Authenticated() bool { return c.State() == Authenticated }

func (c *Controller) UserID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userID
}

// LastError é a última falha vista pela sessão, pronta para exibição
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Controller) ClearError() {
	c.mu.Lock()
	c.lastErr = nil
	c.mu.Unlock()
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		State:      c.stateLocked(),
		UserID:     c.userID,
		Username:   c.username,
		Balance:    c.balance,
		HasBalance: c.hasBalance,
		Bets:       append([]domain.Bet(nil), c.bets...),
		Games:      append([]domain.Game(nil), c.games...),
		LastError:  c.lastErr,
	}
}

func (c *Controller) setError(err error) {
	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()
}

// Login cria o usuário e passa para Authenticated. Em falha o estado anterior
// é mantido. Falha ao persistir o id não desfaz o login: fica em LastError.
func (c *Controller) Login(ctx context.Context, username string, initial *decimal.Decimal) (domain.User, error) {
	u, err := c.api.CreateUser(ctx, username, initial)
	if err != nil {
		c.setError(err)
		c.log.Info("login failed", zap.String("username", username), zap.Error(err))
		return domain.User{}, err
	}

	c.mu.Lock()
	c.epoch++
	c.userID = u.ID
	c.username = u.Username
	c.balance = u.Balance
	c.hasBalance = true
	c.bets = nil
	c.lastErr = nil
	c.mu.Unlock()

	if err := c.store.Set(ctx, UserIDKey, u.ID); err != nil {
		c.setError(err)
		c.log.Warn("persist session failed", zap.String("user_id", u.ID), zap.Error(err))
	}

	c.log.Info("logged in", zap.String("user_id", u.ID), zap.String("username", u.Username))
	return u, nil
}

// Logout limpa todo o estado, sem chamada remota. O estado é limpo mesmo
// quando a remoção do id persistido falha; o erro é devolvido para informação.
func (c *Controller) Logout(ctx context.Context) error {
	c.mu.Lock()
	c.epoch++
	userID := c.userID
	c.userID = ""
	c.username = ""
	c.balance = decimal.Zero
	c.hasBalance = false
	c.bets = nil
	c.games = nil
	c.lastErr = nil
	c.mu.Unlock()

	if err := c.store.Remove(ctx, UserIDKey); err != nil {
		c.log.Warn("remove persisted session failed", zap.Error(err))
		return err
	}
	c.log.Info("logged out", zap.String("user_id", userID))
	return nil
}

// ResumeSession restaura a sessão persistida e busca saldo e apostas.
// resumed=false quando não havia id salvo.
func (c *Controller) ResumeSession(ctx context.Context) (resumed bool, res RefreshResult, err error) {
	id, ok, err := c.store.Get(ctx, UserIDKey)
	if err != nil {
		c.setError(err)
		return false, RefreshResult{}, err
	}
	if !ok || id == "" {
		return false, RefreshResult{}, nil
	}

	c.mu.Lock()
	c.epoch++
	c.userID = id
	c.username = ""
	c.hasBalance = false
	c.bets = nil
	c.lastErr = nil
	c.mu.Unlock()

	res, err = c.Refresh(ctx)
	return true, res, err
}

// RefreshGames substitui a coleção de jogos; status vazio não filtra.
// Funciona também sem login.
func (c *Controller) RefreshGames(ctx context.Context, status domain.GameStatus) error {
	games, err := c.api.ListGames(ctx, status)
	if err != nil {
		c.setError(err)
		return err
	}
	c.mu.Lock()
	c.games = games
	c.mu.Unlock()
	return nil
}

// RefreshAllGames substitui a coleção pelos jogos de todos os status.
// Uma falha em qualquer status mantém a coleção anterior e fica em LastError.
func (c *Controller) RefreshAllGames(ctx context.Context) error {
	var all []domain.Game
	for _, st := range []domain.GameStatus{domain.GameUpcoming, domain.GameInProgress, domain.GameCompleted} {
		games, err := c.api.ListGames(ctx, st)
		if err != nil {
			c.setError(err)
			c.log.Info("list games failed", zap.String("status", string(st)), zap.Error(err))
			return err
		}
		all = append(all, games...)
	}
	c.mu.Lock()
	c.games = all
	c.mu.Unlock()
	return nil
}

// Game procura um jogo na coleção conhecida
func (c *Controller) Game(id string) (domain.Game, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, g := range c.games {
		if g.ID == id {
			return g, true
		}
	}
	return domain.Game{}, false
}
