package services

import (
	"context"
	"time"

	"github.com/gymtrack/gymtrack-api/internal/app/repositories"
	waLog "go.mau.fi/whatsmeow/util/log"
)

// Reconciler brings every member's payment status in line with the clock.
// Members whose due date has passed and who have not paid become Overdue; a
// Paid member is never touched, nor is the Active/Inactive axis.
type Reconciler struct {
	repo repositories.MemberRepository
	log  waLog.Logger
	now  func() time.Time
}

func NewReconciler(repo repositories.MemberRepository, log waLog.Logger) *Reconciler {
	return &Reconciler{repo: repo, log: log, now: time.Now}
}

// Run performs the bulk status normalization and returns the number of
// members flagged. The update is idempotent: a second run changes nothing.
func (r *Reconciler) Run(ctx context.Context) (int64, error) {
	changed, err := r.repo.MarkOverdue(ctx, r.now().UTC())
	if err != nil {
		return 0, err
	}
	if changed > 0 && r.log != nil {
		r.log.Infof("marked %d member(s) as Overdue", changed)
	}
	return changed, nil
}

// RunQuiet is the advisory form used on background and read paths: the error
// is logged and swallowed so the caller never fails because of it.
func (r *Reconciler) RunQuiet(ctx context.Context) {
	if _, err := r.Run(ctx); err != nil && r.log != nil {
		r.log.Warnf("overdue reconciliation failed: %v", err)
	}
}
