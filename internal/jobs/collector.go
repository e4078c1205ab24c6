package jobs

import (
	"context"
	"time"

	"minerops/internal/service"
)

// Collector periodically samples all connectors and persists the
// results through the collector service.
type Collector struct {
	svc      *service.CollectorService
	interval time.Duration
}

// NewCollector creates the collector job.
func NewCollector(svc *service.CollectorService, interval time.Duration) *Collector {
	return &Collector{svc: svc, interval: interval}
}

// Name implements Job.
func (c *Collector) Name() string {
	return "sample-collector"
}

// Interval implements Job.
func (c *Collector) Interval() time.Duration {
	return c.interval
}

// Run implements Job.
func (c *Collector) Run(ctx context.Context) error {
	return c.svc.SampleAll(ctx)
}
