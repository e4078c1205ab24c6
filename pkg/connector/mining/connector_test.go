package mining

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minerops/internal/model"
	"minerops/pkg/config"
)

// stubTransport routes requests to a handler and counts every call.
type stubTransport struct {
	mu      sync.Mutex
	calls   int
	handler func(req *http.Request) (*http.Response, error)
}

func (s *stubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.handler(req)
}

func (s *stubTransport) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func jsonResponse(status int, body string) (*http.Response, error) {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}, nil
}

func TestForcedMockMakesNoNetworkCalls(t *testing.T) {
	stub := &stubTransport{handler: func(req *http.Request) (*http.Response, error) {
		t.Errorf("unexpected network call to %s", req.URL)
		return jsonResponse(http.StatusOK, `{}`)
	}}

	c := New(config.MiningConfig{
		APIURL:   "https://api.example.com",
		APIKey:   "org-key",
		Software: "nicehash",
		UseMock:  true,
	})
	c.transport = stub

	stats := c.GetStats(context.Background())

	assert.Equal(t, model.SourceMock, stats.Source)
	assert.Equal(t, 5, stats.ActiveGPUs)
	assert.Equal(t, "ETH", stats.ActiveCoin)
	assert.Len(t, stats.GPUs, 5)
	assert.Greater(t, stats.TotalHashrate, 0.0)
	assert.Greater(t, stats.TotalEarnings24h, 0.0)
	assert.Equal(t, 0, stub.callCount())
}

func TestMissingCredentialsForceMock(t *testing.T) {
	c := New(config.MiningConfig{APIURL: "https://api.example.com", Software: "nicehash"})
	require.NoError(t, c.Initialize(context.Background()))
	assert.Equal(t, model.SourceMock, c.Mode())
}

func TestInitializationFailureDegradesToMock(t *testing.T) {
	stub := &stubTransport{handler: func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusInternalServerError, `{"error":"boom"}`)
	}}

	c := New(config.MiningConfig{
		APIURL:   "https://api.example.com",
		APIKey:   "org-key",
		Software: "nicehash",
	})
	c.transport = stub

	err := c.Initialize(context.Background())
	assert.Error(t, err)
	assert.Equal(t, model.SourceMock, c.Mode())

	// Subsequent fetches serve mock data without further failures.
	before := stub.callCount()
	stats := c.GetStats(context.Background())
	assert.Equal(t, model.SourceMock, stats.Source)
	assert.NotEmpty(t, stats.GPUs)
	assert.Equal(t, before, stub.callCount())
}

func TestLiveStatsAggregation(t *testing.T) {
	const rigsBody = `{
		"rigs": [
			{"devices": [
				{"name": "RTX 3080", "status": "MINING", "powerUsage": 320, "speedAccepted": 97.0, "temperature": 65, "fanSpeed": 70},
				{"name": "RTX 3060", "status": "STOPPED", "powerUsage": 0, "speedAccepted": 0, "temperature": 30, "fanSpeed": 0}
			]},
			{"devices": [
				{"name": "RTX 4090", "status": "MINING", "powerUsage": 420, "speedAccepted": 130.0, "temperature": 68, "fanSpeed": 75}
			]}
		]
	}`
	const coinsBody = `{
		"coins": {
			"Bitcoin": {"tag": "BTC", "name": "Bitcoin", "algorithm": "SHA-256", "exchange_rate": 67500.25, "exchange_rate_vol": 1.2, "estimated_rewards": 0.0001, "btc_revenue": 0.5, "nethash": 1000000}
		}
	}`

	stub := &stubTransport{handler: func(req *http.Request) (*http.Response, error) {
		if strings.Contains(req.URL.Path, "/rigs") {
			return jsonResponse(http.StatusOK, rigsBody)
		}
		return jsonResponse(http.StatusOK, coinsBody)
	}}

	c := New(config.MiningConfig{
		APIURL:   "https://api.example.com",
		APIKey:   "org-key",
		Software: "nicehash",
		CoinsURL: "https://coins.example.com/coins.json",
	})
	c.transport = stub

	require.NoError(t, c.Initialize(context.Background()))
	stats := c.GetStats(context.Background())

	assert.Equal(t, model.SourceLive, stats.Source)
	assert.Equal(t, 2, stats.ActiveGPUs)
	assert.InDelta(t, 227.0, stats.TotalHashrate, 1e-9)
	assert.InDelta(t, 740.0, stats.TotalPower, 1e-9)
	assert.Equal(t, "BTC", stats.ActiveCoin)
	require.Len(t, stats.GPUs, 2)
	assert.InDelta(t, 97.0/320.0, stats.GPUs[0].Efficiency, 1e-9)

	coin := stats.CoinsData["BTC"]
	assert.Equal(t, "SHA-256", coin.Algorithm)
	assert.InDelta(t, 0.5/1000000, coin.RewardPerHashrate, 1e-15)
	assert.InDelta(t, 0.0007, coin.EstimatedEarnings.Week, 1e-9)
	assert.InDelta(t, stats.TotalHashrate*coin.RewardPerHashrate*24, stats.TotalEarnings24h, 1e-12)
}

func TestLiveFetchFailureFallsBackToMock(t *testing.T) {
	probed := false
	stub := &stubTransport{handler: func(req *http.Request) (*http.Response, error) {
		if !probed {
			probed = true
			return jsonResponse(http.StatusOK, `{"rigs": []}`)
		}
		return jsonResponse(http.StatusBadGateway, `upstream down`)
	}}

	c := New(config.MiningConfig{
		APIURL:   "https://api.example.com",
		APIKey:   "org-key",
		Software: "nicehash",
	})
	c.transport = stub

	require.NoError(t, c.Initialize(context.Background()))
	assert.Equal(t, model.SourceLive, c.Mode())

	stats := c.GetStats(context.Background())
	assert.Equal(t, model.SourceMock, stats.Source)
	assert.NotEmpty(t, stats.GPUs)
	// A transient fetch failure does not flip the connector mode.
	assert.Equal(t, model.SourceLive, c.Mode())
}

func TestStartStopMining(t *testing.T) {
	c := New(config.MiningConfig{UseMock: true})

	start := c.StartMining(context.Background(), 42)
	assert.Equal(t, "success", start.Status)
	assert.Equal(t, 42, start.ConfigID)
	assert.Contains(t, start.Message, "42")

	stop := c.StopMining(context.Background(), 42)
	assert.Equal(t, "success", stop.Status)
	assert.Equal(t, 42, stop.ConfigID)
}

func TestGetGPUStatsMatchesSnapshot(t *testing.T) {
	c := New(config.MiningConfig{UseMock: true})
	gpus := c.GetGPUStats(context.Background())
	require.Len(t, gpus, 5)
	for _, gpu := range gpus {
		assert.NotEmpty(t, gpu.Model)
		assert.Greater(t, gpu.Efficiency, 0.0)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	c := New(config.MiningConfig{UseMock: true})
	require.NoError(t, c.Initialize(context.Background()))
	c.Close()
	c.Close()
	assert.Equal(t, model.SourceMock, c.Mode())
}
