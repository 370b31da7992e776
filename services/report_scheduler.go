package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ReportScheduler runs the recurring maintenance jobs: warming the class
// report cache before the school day and keeping the audit trail bounded.
type ReportScheduler struct {
	cron        *cron.Cron
	performance *PerformanceService
	logArchive  *LogArchiveService
}

func NewReportScheduler(performance *PerformanceService) *ReportScheduler {
	return &ReportScheduler{
		cron:        cron.New(),
		performance: performance,
		logArchive:  NewLogArchiveService(),
	}
}

// Start registers the jobs and launches the cron loop.
func (rs *ReportScheduler) Start() {
	// Warm report caches before lessons start
	if _, err := rs.cron.AddFunc("0 6 * * *", func() {
		rs.performance.RefreshAll(context.Background())
	}); err != nil {
		logrus.WithError(err).Error("Failed to schedule report refresh")
	}

	// Drain the audit write-behind queue
	if _, err := rs.cron.AddFunc("@every 30m", func() {
		if err := rs.logArchive.FlushCachedLogs(); err != nil {
			logrus.WithError(err).Debug("Audit log flush skipped")
		}
	}); err != nil {
		logrus.WithError(err).Error("Failed to schedule audit log flush")
	}

	// Archive audit logs older than 90 days
	if _, err := rs.cron.AddFunc("30 2 * * 0", func() {
		if err := rs.logArchive.ArchiveOldLogs(90 * 24 * time.Hour); err != nil {
			logrus.WithError(err).Warn("Audit log archiving failed")
		}
	}); err != nil {
		logrus.WithError(err).Error("Failed to schedule audit log archiving")
	}

	rs.cron.Start()
	logrus.Info("Report scheduler started")
}

// Stop halts the cron loop, letting running jobs finish.
func (rs *ReportScheduler) Stop() {
	ctx := rs.cron.Stop()
	<-ctx.Done()
}
