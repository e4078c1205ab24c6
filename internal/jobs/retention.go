package jobs

import (
	"context"
	"time"

	"minerops/pkg/logger"
	"minerops/pkg/store/mysql"
)

// Retention prunes sample history past the retention window. Runs at
// aligned hour boundaries so pruning load is predictable.
type Retention struct {
	repo *mysql.Repository
	keep time.Duration
}

// NewRetention creates the retention job.
func NewRetention(repo *mysql.Repository, keep time.Duration) *Retention {
	return &Retention{repo: repo, keep: keep}
}

// Name implements Job.
func (r *Retention) Name() string {
	return "sample-retention"
}

// Interval implements Job.
func (r *Retention) Interval() time.Duration {
	return time.Hour
}

// AlignToInterval implements AlignedJob.
func (r *Retention) AlignToInterval() bool {
	return true
}

// Run implements Job.
func (r *Retention) Run(ctx context.Context) error {
	cutoff := time.Now().Add(-r.keep)

	stats, err := r.repo.MiningStat.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}
	samples, err := r.repo.EnergySample.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}

	if stats > 0 || samples > 0 {
		logger.Infof("retention: pruned %d mining stats, %d energy samples", stats, samples)
	}
	return nil
}
