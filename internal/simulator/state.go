package simulator

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/radieske/betsim/internal/domain"
	"github.com/radieske/betsim/internal/payout"
)

var (
	ErrUserExists   = errors.New("Username already exists")
	ErrUserNotFound = errors.New("User not found")
	ErrGameNotFound = errors.New("Game not found")
	ErrBetNotFound  = errors.New("Bet not found")
	ErrBadStake     = errors.New("Stake must be greater than 0")
	ErrStakeCents   = errors.New("Stake must have at most 2 decimal places")
	ErrBadBalance   = errors.New("Balance cannot be negative")
	ErrNotUpcoming  = errors.New("Cannot bet on a game that has already started or completed")
	ErrStarted      = errors.New("Game has already started")
	ErrBadUsername  = errors.New("Username is required")
)

// InsufficientBalanceError carrega os valores usados na mensagem do serviço
type InsufficientBalanceError struct {
	Available decimal.Decimal
	Required  decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("Insufficient balance. Available: $%s, Required: $%s",
		e.Available.StringFixed(2), e.Required.StringFixed(2))
}

// OddsUnavailableError: o mercado da escolha não tem odds publicadas
type OddsUnavailableError struct {
	BetType   domain.BetType
	Selection domain.Selection
}

func (e *OddsUnavailableError) Error() string {
	return fmt.Sprintf("Odds not available for %s - %s", e.BetType, e.Selection)
}

type user struct {
	domain.User
	bets []string // ids em ordem de criação
}

// state guarda usuários, jogos e apostas em memória
type state struct {
	mu sync.RWMutex

	users     map[string]*user
	usernames map[string]string
	games     map[string]domain.Game
	bets      map[string]*domain.Bet
}

func newState() *state {
	return &state{
		users:     make(map[string]*user),
		usernames: make(map[string]string),
		games:     make(map[string]domain.Game),
		bets:      make(map[string]*domain.Bet),
	}
}

func (s *state) addGame(g domain.Game) domain.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	s.games[g.ID] = g
	return g
}

func (s *state) listGames(status domain.GameStatus) []domain.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Game, 0, len(s.games))
	for _, g := range s.games {
		if g.Status == status {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CommenceTime.Equal(out[j].CommenceTime.Time) {
			return out[i].ID < out[j].ID
		}
		return out[i].CommenceTime.Before(out[j].CommenceTime.Time)
	})
	return out
}

func (s *state) createUser(username string, balance decimal.Decimal) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.User{}, ErrBadUsername
	}
	if balance.IsNegative() {
		return domain.User{}, ErrBadBalance
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.usernames[username]; ok {
		return domain.User{}, ErrUserExists
	}
	u := &user{User: domain.User{ID: uuid.NewString(), Username: username, Balance: balance}}
	s.users[u.ID] = u
	s.usernames[username] = u.ID
	return u.User, nil
}

func (s *state) balance(userID string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return decimal.Zero, ErrUserNotFound
	}
	return u.Balance, nil
}

// userBets devolve as apostas mais recentes primeiro, limitadas a limit
func (s *state) userBets(userID string, limit int) ([]domain.Bet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	out := make([]domain.Bet, 0, len(u.bets))
	for i := len(u.bets) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *s.bets[u.bets[i]])
	}
	return out, nil
}

// placeBet aplica as validações na mesma ordem do serviço real e debita o saldo
func (s *state) placeBet(now time.Time, userID, gameID string, pick domain.Pick, betType domain.BetType, selection domain.Selection, stake decimal.Decimal) (domain.Bet, error) {
	if !stake.IsPositive() {
		return domain.Bet{}, ErrBadStake
	}
	// valores monetários guardados em centavos
	if !stake.Equal(stake.Round(2)) {
		return domain.Bet{}, ErrStakeCents
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return domain.Bet{}, ErrUserNotFound
	}
	if u.Balance.LessThan(stake) {
		return domain.Bet{}, &InsufficientBalanceError{Available: u.Balance, Required: stake}
	}
	g, ok := s.games[gameID]
	if !ok {
		return domain.Bet{}, ErrGameNotFound
	}
	if g.Status != domain.GameUpcoming {
		return domain.Bet{}, ErrNotUpcoming
	}
	if !g.CommenceTime.After(now) {
		return domain.Bet{}, ErrStarted
	}

	// combinação ilegal (ex.: moneyline/over) cai aqui, como no serviço real
	var quote domain.Quote
	if pick != nil {
		quote = g.QuoteFor(pick)
	}
	american, ok := quote.Decimal()
	if !ok {
		return domain.Bet{}, &OddsUnavailableError{BetType: betType, Selection: selection}
	}

	potential, err := payout.PotentialCents(stake, american)
	if err != nil {
		return domain.Bet{}, &OddsUnavailableError{BetType: betType, Selection: selection}
	}

	b := &domain.Bet{
		ID:              uuid.NewString(),
		UserID:          userID,
		GameID:          gameID,
		BetType:         betType,
		Selection:       selection,
		Odds:            american,
		Stake:           stake,
		PotentialPayout: potential,
		Status:          domain.BetPending,
	}
	u.Balance = u.Balance.Sub(stake)
	u.bets = append(u.bets, b.ID)
	s.bets[b.ID] = b
	return *b, nil
}

// settle marca o resultado e credita o retorno (stake+ganho, ou stake no push)
func (s *state) settle(betID string, status domain.BetStatus, at time.Time) (domain.Bet, error) {
	if !status.Settled() {
		return domain.Bet{}, fmt.Errorf("settle %s: status %q is not final", betID, status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bets[betID]
	if !ok {
		return domain.Bet{}, ErrBetNotFound
	}
	if b.Settled() {
		return *b, nil
	}
	b.Status = status
	ts := domain.NewTimestamp(at.UTC())
	b.SettledAt = &ts
	if u, ok := s.users[b.UserID]; ok {
		u.Balance = u.Balance.Add(payout.Returns(*b))
	}
	return *b, nil
}
