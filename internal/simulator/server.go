// Package simulator é uma implementação em memória do serviço remoto de
// apostas, usada em desenvolvimento local e nos testes do cliente e da sessão.
package simulator

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/radieske/betsim/internal/domain"
	"github.com/radieske/betsim/internal/shared/metrics"
)

// limite do histórico devolvido por GET /users/{id}/bets
const historyLimit = 50

type Server struct {
	state *state

	log            *zap.Logger
	metrics        *metrics.SimulatorMetrics
	now            func() time.Time
	defaultBalance decimal.Decimal
}

type Option func(*Server)

func WithLogger(l *zap.Logger) Option { return func(s *Server) { s.log = l } }

func WithMetrics(m *metrics.SimulatorMetrics) Option { return func(s *Server) { s.metrics = m } }

// WithClock troca o relógio usado na checagem de jogo travado
func WithClock(now func() time.Time) Option { return func(s *Server) { s.now = now } }

func WithDefaultBalance(d decimal.Decimal) Option { return func(s *Server) { s.defaultBalance = d } }

// WithGames carrega jogos iniciais; sem essa opção o servidor começa vazio
func WithGames(games []domain.Game) Option {
	return func(s *Server) {
		for _, g := range games {
			s.state.addGame(g)
		}
	}
}

func New(opts ...Option) *Server {
	s := &Server{
		state:          newState(),
		log:            zap.NewNop(),
		now:            time.Now,
		defaultBalance: decimal.RequireFromString("1000.00"),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// AddGame inclui um jogo (id gerado se vazio) e devolve o jogo gravado
func (s *Server) AddGame(g domain.Game) domain.Game { return s.state.addGame(g) }

// Settle liquida uma aposta e credita o retorno ao usuário.
// Existe para testes e para o modo local; não há liquidação automática.
func (s *Server) Settle(betID string, status domain.BetStatus) (domain.Bet, error) {
	return s.state.settle(betID, status, s.now())
}

// Router monta as rotas HTTP do serviço
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/health", s.health)
	r.Get("/games", s.listGames)
	r.Post("/users", s.createUser)
	r.Get("/users/{userID}/balance", s.getBalance)
	r.Get("/users/{userID}/bets", s.listBets)
	r.Post("/bets", s.placeBet)
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", chimiddleware.GetReqID(r.Context())),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Detail: msg})
}

func writeInvalid(w http.ResponseWriter, msg string, loc ...string) {
	writeJSON(w, http.StatusUnprocessableEntity, validationError{
		Detail: []validationIssue{{Loc: loc, Msg: msg, Type: "value_error"}},
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// listGames sem filtro devolve só os upcoming, como o serviço real
func (s *Server) listGames(w http.ResponseWriter, r *http.Request) {
	status := domain.GameUpcoming
	if v := r.URL.Query().Get("status"); v != "" {
		status = domain.GameStatus(v)
		if !status.Valid() {
			writeInvalid(w, "Input should be 'upcoming', 'in_progress' or 'completed'", "query", "status")
			return
		}
	}
	writeJSON(w, http.StatusOK, s.state.listGames(status))
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalid(w, "JSON decode error", "body")
		return
	}
	balance := s.defaultBalance
	if req.Balance != nil {
		balance = *req.Balance
	}
	u, err := s.state.createUser(req.Username, balance)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	s.metrics.UserCreated()
	s.log.Info("user created", zap.String("user_id", u.ID), zap.String("username", u.Username))
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (s *Server) getBalance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUserID(w, r)
	if !ok {
		return
	}
	bal, err := s.state.balance(id)
	if err != nil {
		writeDetail(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{UserID: id, Balance: bal.StringFixed(2)})
}

func (s *Server) listBets(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUserID(w, r)
	if !ok {
		return
	}
	bets, err := s.state.userBets(id, historyLimit)
	if err != nil {
		writeDetail(w, http.StatusNotFound, err.Error())
		return
	}
	out := make([]betResponse, 0, len(bets))
	for _, b := range bets {
		out = append(out, toBetResponse(b))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) placeBet(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeInvalid(w, "Field required", "query", "user_id")
		return
	}
	if _, err := uuid.Parse(userID); err != nil {
		writeInvalid(w, "Input should be a valid UUID", "query", "user_id")
		return
	}

	var req placeBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalid(w, "JSON decode error", "body")
		return
	}
	if _, err := uuid.Parse(req.GameID); err != nil {
		writeInvalid(w, "Input should be a valid UUID", "body", "game_id")
		return
	}
	betType := domain.BetType(req.BetType)
	if !betType.Valid() {
		writeInvalid(w, "Input should be 'moneyline', 'spread' or 'over_under'", "body", "bet_type")
		return
	}
	selection := domain.Selection(req.Selection)
	if !selection.Valid() {
		writeInvalid(w, "Input should be 'home', 'away', 'over' or 'under'", "body", "selection")
		return
	}

	// combinações ilegais seguem adiante e são recusadas por falta de odds
	pick, _ := domain.ParsePick(betType, selection)

	bet, err := s.state.placeBet(s.now(), userID, req.GameID, pick, betType, selection, req.Stake)
	if err != nil {
		s.metrics.Rejected(rejectReason(err))
		s.log.Info("bet rejected", zap.String("user_id", userID), zap.String("game_id", req.GameID), zap.Error(err))
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	s.metrics.Placed(string(bet.BetType))
	s.log.Info("bet placed",
		zap.String("bet_id", bet.ID),
		zap.String("user_id", bet.UserID),
		zap.String("game_id", bet.GameID),
		zap.String("stake", bet.Stake.StringFixed(2)),
	)
	writeJSON(w, http.StatusOK, toBetResponse(bet))
}

func pathUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "userID")
	if _, err := uuid.Parse(id); err != nil {
		writeInvalid(w, "Input should be a valid UUID", "path", "user_id")
		return "", false
	}
	return id, true
}

func rejectReason(err error) string {
	var insufficient *InsufficientBalanceError
	var unavailable *OddsUnavailableError
	switch {
	case errors.As(err, &insufficient):
		return "insufficient_balance"
	case errors.As(err, &unavailable):
		return "odds_unavailable"
	case errors.Is(err, ErrBadStake), errors.Is(err, ErrStakeCents):
		return "stake"
	case errors.Is(err, ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, ErrGameNotFound):
		return "game_not_found"
	case errors.Is(err, ErrNotUpcoming), errors.Is(err, ErrStarted):
		return "locked"
	}
	return "other"
}
