package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// scheduledRunTimeout bounds one unattended run.
const scheduledRunTimeout = time.Hour

// Scheduler triggers synchronizations on a cron schedule.
type Scheduler struct {
	cron    *cron.Cron
	service *Service
	logger  *zap.Logger
	spec    string
}

// NewScheduler creates a scheduler for the standard 5-field cron spec.
// Overlapping ticks are skipped while a run is still going.
func NewScheduler(service *Service, spec string, logger *zap.Logger) (*Scheduler, error) {
	cl := cronLogger{logger: logger.Sugar()}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	s := &Scheduler{cron: c, service: service, logger: logger, spec: spec}
	if _, err := c.AddFunc(spec, s.runOnce); err != nil {
		return nil, fmt.Errorf("invalid sync schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start begins running scheduled jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Sync scheduler started", zap.String("schedule", s.spec), zap.Time("next_run", s.Next()))
}

// Stop stops the scheduler. The returned context is done once a running job finishes.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// Next returns the next scheduled run time.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Schedule.Next(time.Now())
}

func (s *Scheduler) runOnce() {
	s.logger.Info("Scheduled catalog synchronization triggered")
	if _, err := s.service.RunWithTimeout(scheduledRunTimeout); err != nil {
		// Already logged with details by the service
		s.logger.Warn("Scheduled synchronization did not complete", zap.Error(err))
	}
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	logger *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}
