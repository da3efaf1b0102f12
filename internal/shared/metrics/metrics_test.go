package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewClientMetrics(reg)

	m.Observe("place_bet", OutcomeOK, 10*time.Millisecond)
	m.Observe("place_bet", OutcomeRejected, 5*time.Millisecond)
	m.Observe("place_bet", OutcomeRejected, 5*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("place_bet", OutcomeOK)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues("place_bet", OutcomeRejected)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Duration))
}

func TestClientMetrics_NilSafe(t *testing.T) {
	var m *ClientMetrics
	assert.NotPanics(t, func() { m.Observe("x", OutcomeOK, time.Second) })

	var s *SimulatorMetrics
	assert.NotPanics(t, func() {
		s.Placed("moneyline")
		s.Rejected("stake")
		s.UserCreated()
	})
}

func TestSimulatorMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSimulatorMetrics(reg)

	m.Placed("spread")
	m.Rejected("insufficient_balance")
	m.UserCreated()
	m.UserCreated()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.BetsPlaced.WithLabelValues("spread")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BetsRejected.WithLabelValues("insufficient_balance")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.UsersCreated))
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewClientMetrics(reg).Observe("health", OutcomeOK, time.Millisecond)

	var healthy atomic.Bool
	healthy.Store(true)
	srv := httptest.NewServer(Handler(reg, func(ctx context.Context) error {
		if healthy.Load() {
			return nil
		}
		return errors.New("api down")
	}))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	healthy.Store(false)
	res, err = http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
	assert.Contains(t, string(body), "api down")

	res, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(res.Body)
	res.Body.Close()
	assert.True(t, strings.Contains(string(body), "betsim_client_requests_total"))
}
