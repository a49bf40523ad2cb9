package services

import (
	"context"
	"time"

	waLog "go.mau.fi/whatsmeow/util/log"
)

// Scheduler runs the daily maintenance pass: mark overdue members, then
// dispatch reminders to whoever ended up overdue. It fires once per day
// at the configured local hour.
type Scheduler struct {
	recon     *Reconciler
	reminders *ReminderService
	hour      int
	log       waLog.Logger
	now       func() time.Time
}

func NewScheduler(recon *Reconciler, reminders *ReminderService, hour int, log waLog.Logger) *Scheduler {
	if hour < 0 || hour > 23 {
		hour = 9
	}
	return &Scheduler{
		recon:     recon,
		reminders: reminders,
		hour:      hour,
		log:       log.Sub("Scheduler"),
		now:       time.Now,
	}
}

// Start launches the daily loop. It returns immediately; the loop stops
// when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Scheduler) run(ctx context.Context) {
	for {
		next := NextRun(s.now(), s.hour)
		s.log.Infof("next run at %s", next.Format(time.RFC3339))

		timer := time.NewTimer(next.Sub(s.now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			s.log.Infof("scheduler stopped")
			return
		case <-timer.C:
		}

		s.runOnce(ctx)
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	s.recon.RunQuiet(ctx)
	report := s.reminders.RemindOverdue(ctx, "scheduled")
	s.log.Infof("daily run complete: %d sent, %d skipped, %d failed",
		report.Sent, report.Skipped, report.Failed)
}

// NextRun returns the next occurrence of the given local hour strictly
// after now.
func NextRun(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
