// Package scheduler runs the billing-cycle maintenance job. Spend counters
// are reset outside the engine; scoring only ever reads them.
package scheduler

import (
	"time"

	"github.com/crediwise/crediwise/internal/repository"
	"github.com/crediwise/crediwise/internal/utils/email"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler owns the cron runner for periodic jobs.
type Scheduler struct {
	repo   *repository.Repository
	sender *email.Sender
	log    *logrus.Logger
	cron   *cron.Cron
}

// NewScheduler initializes a new scheduler
func NewScheduler(repo *repository.Repository, sender *email.Sender, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		repo:   repo,
		sender: sender,
		log:    log,
		cron:   cron.New(),
	}
}

// Start registers the daily billing-cycle job and begins scheduling.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@daily", s.runCycleReset); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("Scheduler started")
	return nil
}

// Stop halts the cron runner, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("Scheduler stopped")
}

// runCycleReset zeroes the monthly spend of every instrument whose billing
// cycle closes today and mails each owner a cycle summary. Email failures
// are logged and skipped; the reset itself already happened.
func (s *Scheduler) runCycleReset() {
	day := time.Now().Day()
	resets, err := s.repo.ResetCyclesForDay(day)
	if err != nil {
		s.log.Errorf("Billing cycle reset failed for day %d: %v", day, err)
		return
	}
	if len(resets) == 0 {
		return
	}

	s.log.Infof("Reset %d billing cycles for day %d", len(resets), day)
	for _, r := range resets {
		if err := s.sender.SendCycleSummary(r.UserEmail, r.UserName, r.InstrumentName, r.ClosedSpend); err != nil {
			s.log.Errorf("Cycle summary for instrument %d not sent: %v", r.InstrumentID, err)
		}
	}
}
