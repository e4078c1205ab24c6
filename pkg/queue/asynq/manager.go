// Package asynq wraps the background task queue. The queue carries
// refresh tasks: on-demand requests to re-sample a connector and
// persist the result, decoupled from the HTTP request that asked.
package asynq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"minerops/pkg/config"
	"minerops/pkg/logger"

	"github.com/hibiken/asynq"
)

const (
	// TypeRefresh re-samples one connector scope and persists it.
	TypeRefresh = "snapshot:refresh"
)

// RefreshPayload names the connector scope to refresh: mining, energy
// or rental.
type RefreshPayload struct {
	Scope string `json:"scope"`
}

// Manager queue manager
type Manager struct {
	client *asynq.Client
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewManager creates queue manager
func NewManager(cfg *config.Config) (*Manager, error) {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: cfg.Queue.Concurrency,
			Queues: map[string]int{
				"default": 10,
			},
			RetryDelayFunc: func(n int, err error, task *asynq.Task) time.Duration {
				return time.Duration(n) * time.Second
			},
		},
	)

	mux := asynq.NewServeMux()

	return &Manager{
		client: client,
		server: server,
		mux:    mux,
	}, nil
}

// EnqueueRefresh enqueues a refresh for one connector scope. The same
// scope enqueued twice before processing collapses into one task.
func (m *Manager) EnqueueRefresh(ctx context.Context, scope string) error {
	payload, err := json.Marshal(RefreshPayload{Scope: scope})
	if err != nil {
		return fmt.Errorf("failed to marshal refresh payload: %w", err)
	}

	task := asynq.NewTask(TypeRefresh, payload)

	opts := []asynq.Option{
		asynq.TaskID("refresh:" + scope),
		asynq.Timeout(time.Duration(config.GlobalConfig.Queue.TaskTimeout) * time.Second),
		asynq.MaxRetry(config.GlobalConfig.Queue.MaxRetry),
	}

	info, err := m.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			logger.Infof("refresh already queued, scope: %s", scope)
			return nil
		}
		return fmt.Errorf("failed to enqueue refresh: %w", err)
	}

	logger.Infof("refresh enqueued, scope: %s, queue: %s", scope, info.Queue)
	return nil
}

// RegisterHandler registers task handler
func (m *Manager) RegisterHandler(pattern string, handler asynq.Handler) {
	m.mux.Handle(pattern, handler)
}

// Start starts queue processor
func (m *Manager) Start() error {
	logger.Infof("starting queue server")
	return m.server.Start(m.mux)
}

// Stop stops queue processor
func (m *Manager) Stop() {
	logger.Infof("stopping queue server")
	m.server.Stop()
	m.server.Shutdown()
}

// Close closes client
func (m *Manager) Close() error {
	return m.client.Close()
}

// GetPendingTaskCount retrieves pending task count
func (m *Manager) GetPendingTaskCount() (int, error) {
	inspector := asynq.NewInspector(asynq.RedisClientOpt{
		Addr:     config.GlobalConfig.Redis.Addr,
		Password: config.GlobalConfig.Redis.Password,
		DB:       config.GlobalConfig.Redis.DB,
	})
	defer inspector.Close()

	stats, err := inspector.GetQueueInfo("default")
	if err != nil {
		return 0, err
	}

	return stats.Pending, nil
}
