package main

import (
	"time"

	"minerops/internal/jobs"
	"minerops/pkg/logger"
)

// retentionKeep is how much sample history stays in MySQL.
const retentionKeep = 30 * 24 * time.Hour

// initJobs initializes the background task manager and registers the
// periodic jobs.
func (app *Application) initJobs() error {
	app.jobsManager = jobs.NewManager(app.ctx)

	if app.config.Collector.Enabled {
		interval := time.Duration(app.config.Collector.Interval) * time.Second
		if interval <= 0 {
			interval = 5 * time.Minute
		}
		app.jobsManager.Register(jobs.NewCollector(app.collectorService, interval))
		logger.Infof("sample collector registered, interval: %v", interval)
	} else {
		logger.Infof("sample collector disabled")
	}

	app.jobsManager.Register(jobs.NewRetention(app.mysqlRepo, retentionKeep))

	return nil
}
