// Package client fala com o serviço remoto de apostas via HTTP/JSON.
// Não há retry nem cache: cada operação é uma ida e volta, e toda falha
// sai como *Error.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/radieske/betsim/internal/client/dto"
	"github.com/radieske/betsim/internal/domain"
	"github.com/radieske/betsim/internal/shared/metrics"
)

// Nomes das operações (labels de métricas e Error.Op)
const (
	OpListGames      = "list_games"
	OpListUserBets   = "list_user_bets"
	OpGetUserBalance = "get_user_balance"
	OpCreateUser     = "create_user"
	OpPlaceBet       = "place_bet"
	OpHealth         = "health"
)

// limite de leitura do corpo de resposta
const maxBody = 4 << 20

type Client struct {
	BaseURL string
	HTTP    *http.Client

	log     *zap.Logger
	metrics *metrics.ClientMetrics
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.HTTP = h } }

func WithLogger(l *zap.Logger) Option { return func(c *Client) { c.log = l } }

func WithMetrics(m *metrics.ClientMetrics) Option { return func(c *Client) { c.metrics = m } }

func New(base string, opts ...Option) *Client {
	c := &Client{
		BaseURL: strings.TrimRight(base, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ListGames lista jogos; status vazio não envia filtro
func (c *Client) ListGames(ctx context.Context, status domain.GameStatus) ([]domain.Game, error) {
	path := "/games"
	if status != "" {
		path += "?" + url.Values{"status": {string(status)}}.Encode()
	}
	var out []domain.Game
	if err := c.do(ctx, OpListGames, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListUserBets(ctx context.Context, userID string) ([]domain.Bet, error) {
	var out []domain.Bet
	if err := c.do(ctx, OpListUserBets, http.MethodGet, "/users/"+url.PathEscape(userID)+"/bets", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetUserBalance(ctx context.Context, userID string) (domain.Balance, error) {
	var out domain.Balance
	if err := c.do(ctx, OpGetUserBalance, http.MethodGet, "/users/"+url.PathEscape(userID)+"/balance", nil, &out); err != nil {
		return domain.Balance{}, err
	}
	return out, nil
}

// CreateUser cria o usuário; initial nil deixa o serviço aplicar o saldo padrão
func (c *Client) CreateUser(ctx context.Context, username string, initial *decimal.Decimal) (domain.User, error) {
	req := dto.CreateUserRequest{Username: username, Balance: initial}
	var out domain.User
	if err := c.do(ctx, OpCreateUser, http.MethodPost, "/users", req, &out); err != nil {
		return domain.User{}, err
	}
	return out, nil
}

// PlaceBet envia a aposta; a validação de saldo, mercado e seleção é do serviço
func (c *Client) PlaceBet(ctx context.Context, userID, gameID string, pick domain.Pick, stake decimal.Decimal) (domain.Bet, error) {
	if !domain.ValidPick(pick) {
		return domain.Bet{}, &Error{Op: OpPlaceBet, Kind: KindRejected, Message: domain.ErrIllegalPick.Error(), Err: domain.ErrIllegalPick}
	}
	req := dto.PlaceBetRequest{
		GameID:    gameID,
		BetType:   string(pick.BetType()),
		Selection: string(pick.Selection()),
		Stake:     stake,
	}
	path := "/bets?" + url.Values{"user_id": {userID}}.Encode()
	var out domain.Bet
	if err := c.do(ctx, OpPlaceBet, http.MethodPost, path, req, &out); err != nil {
		return domain.Bet{}, err
	}
	return out, nil
}

// Health consulta GET /health
func (c *Client) Health(ctx context.Context) error {
	var out dto.HealthResponse
	return c.do(ctx, OpHealth, http.MethodGet, "/health", nil, &out)
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) (err error) {
	start := time.Now()
	outcome := metrics.OutcomeOK
	defer func() {
		var ce *Error
		if errors.As(err, &ce) {
			switch ce.Kind {
			case KindRejected:
				outcome = metrics.OutcomeRejected
			case KindServer:
				outcome = metrics.OutcomeServer
			default:
				outcome = metrics.OutcomeTransport
			}
		}
		c.metrics.Observe(op, outcome, time.Since(start))
		c.log.Debug("remote call",
			zap.String("op", op),
			zap.String("method", method),
			zap.String("path", path),
			zap.String("outcome", outcome),
			zap.Duration("elapsed", time.Since(start)),
		)
	}()

	var body io.Reader
	if in != nil {
		b, mErr := json.Marshal(in)
		if mErr != nil {
			return transportError(op, mErr)
		}
		body = bytes.NewReader(b)
	}

	req, rErr := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if rErr != nil {
		return transportError(op, rErr)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, dErr := c.HTTP.Do(req)
	if dErr != nil {
		return transportError(op, dErr)
	}
	defer res.Body.Close()

	raw, readErr := io.ReadAll(io.LimitReader(res.Body, maxBody))
	if readErr != nil {
		return transportError(op, readErr)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		var e dto.ErrorResponse
		if json.Unmarshal(raw, &e) == nil {
			return statusError(op, res.StatusCode, e.Message())
		}
		return statusError(op, res.StatusCode, "")
	}

	if out == nil {
		return nil
	}
	if uErr := json.Unmarshal(raw, out); uErr != nil {
		return transportError(op, uErr)
	}
	return nil
}
