// Package notifier runs the saved search check on a cron schedule.
package notifier

import (
	"context"
	"fmt"
	"sync"

	"github.com/Abraxas-365/hirematch/pkg/logx"
	"github.com/Abraxas-365/hirematch/recruitment/savedsearch"
	"github.com/robfig/cron/v3"
)

// Checker runs one batch check over the active saved searches
type Checker interface {
	CheckSavedSearches(ctx context.Context, dryRun bool) (*savedsearch.CheckReport, error)
}

// Scheduler wraps robfig/cron and manages the check loop
type Scheduler struct {
	cron         *cron.Cron
	checker      Checker
	spec         string
	runOnStartup bool

	// a slow run is skipped by the next tick instead of overlapping
	mu      sync.Mutex
	running bool
}

// New creates a Scheduler firing on spec, e.g. "@every 1h"
func New(checker Checker, spec string, runOnStartup bool) *Scheduler {
	return &Scheduler{
		cron:         cron.New(),
		checker:      checker,
		spec:         spec,
		runOnStartup: runOnStartup,
	}
}

// Start registers the job and starts the scheduler. When configured it also
// runs one check immediately so pending matches go out without waiting for
// the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	logx.Infof("[scheduler] cron started, spec: %s", s.spec)

	if s.runOnStartup {
		go s.RunOnce(ctx)
	}
	return nil
}

// Stop shuts the scheduler down and waits for a running check to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logx.Info("[scheduler] cron stopped")
}

// RunOnce performs a single check. It returns false when a check was
// already in progress.
func (s *Scheduler) RunOnce(ctx context.Context) bool {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		logx.Warn("[scheduler] previous check still running, skipping tick")
		return false
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	logx.Info("[scheduler] saved search check started")

	report, err := s.checker.CheckSavedSearches(ctx, false)
	if err != nil {
		logx.Errorf("[scheduler] saved search check failed: %v", err)
		return true
	}

	logx.Infow("[scheduler] saved search check complete",
		"checked", report.Checked,
		"notified", len(report.Results)-report.Failures,
		"failures", report.Failures,
		"total_matches", report.Total,
	)
	return true
}
