// Package rental wraps the GPU rental marketplace API. Read operations
// degrade to the shared catalog when the marketplace is unreachable;
// rent and cancel are financial operations and report failure instead
// of synthesizing success.
package rental

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"minerops/internal/model"
	"minerops/pkg/config"
	"minerops/pkg/logger"
)

const requestTimeout = 10 * time.Second

// Connector talks to the rental marketplace API.
type Connector struct {
	cfg config.RentalConfig

	mu      sync.Mutex
	client  *http.Client
	ready   bool
	useMock bool

	// transport overrides the default transport; used by tests.
	transport http.RoundTripper
}

// New creates a rental connector. Missing credentials force mock mode.
func New(cfg config.RentalConfig) *Connector {
	return &Connector{
		cfg:     cfg,
		useMock: cfg.UseMock || cfg.APIURL == "" || cfg.APIKey == "",
	}
}

// Initialize probes the marketplace status endpoint. On failure the
// connector degrades to mock mode and stays usable.
func (c *Connector) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initializeLocked(ctx)
}

func (c *Connector) initializeLocked(ctx context.Context) error {
	if c.ready {
		return nil
	}

	c.client = &http.Client{
		Timeout:   requestTimeout,
		Transport: c.transport,
	}

	if c.useMock {
		logger.Infof("rental connector: using mock data")
		c.ready = true
		return nil
	}

	if err := c.probe(ctx, c.cfg.APIURL+"/api/v1/status"); err != nil {
		logger.Errorf("rental connector: marketplace unreachable, degrading to mock data: %v", err)
		c.useMock = true
		c.ready = true
		return fmt.Errorf("rental connector initialization: %w", err)
	}

	logger.Infof("rental connector: connected to %s", c.cfg.APIURL)
	c.ready = true
	return nil
}

func (c *Connector) ensureInitialized(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ready {
		_ = c.initializeLocked(ctx)
	}
}

// Close releases the HTTP client. Safe to call repeatedly.
func (c *Connector) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		c.client.CloseIdleConnections()
		c.client = nil
		c.ready = false
		logger.Infof("rental connector: closed")
	}
}

// Mode reports the current data source, live or mock.
func (c *Connector) Mode() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.useMock {
		return model.SourceMock
	}
	return model.SourceLive
}

// GetAvailability lists GPU stock on the marketplace. Never fails.
func (c *Connector) GetAvailability(ctx context.Context) []model.GPUAvailability {
	c.ensureInitialized(ctx)

	if c.Mode() == model.SourceMock {
		return mockAvailability()
	}

	rows, err := c.fetchAvailability(ctx)
	if err != nil {
		logger.Errorf("rental connector: availability fetch failed, serving mock data: %v", err)
		return mockAvailability()
	}
	return rows
}

// GetPricing lists the marketplace price list. Never fails.
func (c *Connector) GetPricing(ctx context.Context) []model.GPUPricing {
	c.ensureInitialized(ctx)

	if c.Mode() == model.SourceMock {
		return mockPricing()
	}

	rows, err := c.fetchPricing(ctx)
	if err != nil {
		logger.Errorf("rental connector: pricing fetch failed, serving mock data: %v", err)
		return mockPricing()
	}
	return rows
}

// GetProfitability asks the marketplace for offers and trends covering
// the given GPU models (all models when empty). Never fails.
func (c *Connector) GetProfitability(ctx context.Context, models []string) model.RentalProfitability {
	c.ensureInitialized(ctx)

	if c.Mode() == model.SourceMock {
		return mockProfitability(models)
	}

	result, err := c.fetchProfitability(ctx, models)
	if err != nil {
		logger.Errorf("rental connector: profitability fetch failed, serving mock data: %v", err)
		return mockProfitability(models)
	}
	return result
}

// Rent rents one GPU for the given duration. A failed remote call
// yields an error receipt, never a synthetic rental.
func (c *Connector) Rent(ctx context.Context, gpuModel string, hours int) model.RentalReceipt {
	c.ensureInitialized(ctx)

	if hours < 1 {
		return errorReceipt("invalid rental duration", fmt.Errorf("duration must be at least 1 hour, got %d", hours))
	}

	if c.Mode() == model.SourceMock {
		return mockRent(gpuModel, hours)
	}

	receipt, err := c.submitRental(ctx, gpuModel, hours)
	if err != nil {
		logger.Errorf("rental connector: rent request failed: %v", err)
		return errorReceipt(fmt.Sprintf("failed to rent %s", gpuModel), err)
	}
	return receipt
}

// CancelRental cancels an active rental. A failed remote call yields an
// error result.
func (c *Connector) CancelRental(ctx context.Context, rentalID string) model.ActionResult {
	c.ensureInitialized(ctx)

	if c.Mode() == model.SourceMock {
		return mockCancel(rentalID)
	}

	if err := c.submitCancellation(ctx, rentalID); err != nil {
		logger.Errorf("rental connector: cancellation failed: %v", err)
		return model.ActionResult{
			Status:    "error",
			Message:   fmt.Sprintf("failed to cancel rental %s", rentalID),
			Error:     err.Error(),
			Timestamp: time.Now(),
		}
	}

	return model.ActionResult{
		Status:    "success",
		Message:   fmt.Sprintf("rental %s cancelled", rentalID),
		Timestamp: time.Now(),
	}
}

func errorReceipt(message string, err error) model.RentalReceipt {
	return model.RentalReceipt{
		Status:  "error",
		Message: message,
		Error:   err.Error(),
	}
}

type availabilityResponse struct {
	GPUs []struct {
		Model     string `json:"model"`
		Available int    `json:"available"`
		Total     int    `json:"total"`
	} `json:"gpus"`
}

type pricingResponse struct {
	Pricing []model.GPUPricing `json:"pricing"`
}

type profitabilityResponse struct {
	Rentals        []model.RentalOffer          `json:"rentals"`
	MarketTrends   map[string]model.MarketTrend `json:"market_trends"`
	Recommendation string                       `json:"recommendation"`
}

type rentResponse struct {
	RentalID       string                `json:"rental_id"`
	PricePerHour   float64               `json:"price_per_hour"`
	ConnectionInfo *model.ConnectionInfo `json:"connection_info"`
}

func (c *Connector) fetchAvailability(ctx context.Context) ([]model.GPUAvailability, error) {
	var resp availabilityResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/gpus/available", nil, &resp); err != nil {
		return nil, err
	}

	now := time.Now()
	rows := make([]model.GPUAvailability, 0, len(resp.GPUs))
	for _, gpu := range resp.GPUs {
		rows = append(rows, model.GPUAvailability{
			GPUModel:    gpu.Model,
			Available:   gpu.Available,
			Total:       gpu.Total,
			LastUpdated: now,
		})
	}
	return rows, nil
}

func (c *Connector) fetchPricing(ctx context.Context) ([]model.GPUPricing, error) {
	var resp pricingResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/gpus/pricing", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Pricing, nil
}

func (c *Connector) fetchProfitability(ctx context.Context, models []string) (model.RentalProfitability, error) {
	payload := map[string]interface{}{"gpu_models": models}

	var resp profitabilityResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/profitability", payload, &resp); err != nil {
		return model.RentalProfitability{}, err
	}

	return model.RentalProfitability{
		Rentals:        resp.Rentals,
		MarketTrends:   resp.MarketTrends,
		Recommendation: resp.Recommendation,
		Source:         model.SourceLive,
	}, nil
}

func (c *Connector) submitRental(ctx context.Context, gpuModel string, hours int) (model.RentalReceipt, error) {
	payload := map[string]interface{}{
		"gpu_model":      gpuModel,
		"duration_hours": hours,
	}

	var resp rentResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/gpus/rent", payload, &resp); err != nil {
		return model.RentalReceipt{}, err
	}

	start := time.Now()
	return model.RentalReceipt{
		Status:         "success",
		Message:        fmt.Sprintf("rented %s for %d hours", gpuModel, hours),
		RentalID:       resp.RentalID,
		GPUModel:       gpuModel,
		DurationHours:  hours,
		StartTime:      start,
		EndTime:        start.Add(time.Duration(hours) * time.Hour),
		PricePerHour:   resp.PricePerHour,
		TotalCost:      resp.PricePerHour * float64(hours),
		ConnectionInfo: resp.ConnectionInfo,
	}, nil
}

func (c *Connector) submitCancellation(ctx context.Context, rentalID string) error {
	return c.doRequest(ctx, http.MethodDelete, "/api/v1/gpus/rentals/"+rentalID, nil, nil)
}

func (c *Connector) probe(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status check returned %d", resp.StatusCode)
	}
	return nil
}

// doRequest performs one authenticated call and decodes the JSON
// response into out when out is non-nil.
func (c *Connector) doRequest(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.APIURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.Lock()
	client := c.client
	c.mu.Unlock()
	if client == nil {
		return fmt.Errorf("connector is closed")
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("rental API error (status %d): %s", resp.StatusCode, string(data))
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}
