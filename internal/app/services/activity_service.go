package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/gymtrack/gymtrack-api/internal/app/repositories"
	"github.com/gymtrack/gymtrack-api/internal/domain/activity"
	waLog "go.mau.fi/whatsmeow/util/log"
)

type ActivityService struct {
	repo repositories.ActivityRepository
	log  waLog.Logger
}

func NewActivityService(repo repositories.ActivityRepository, log waLog.Logger) *ActivityService {
	return &ActivityService{repo: repo, log: log}
}

// Record appends a best-effort audit note. A storage failure is logged and
// swallowed: the note must never fail the mutation it describes.
func (s *ActivityService) Record(ctx context.Context, action, performedBy string) {
	entry := &activity.Entry{
		ID:          uuid.NewString(),
		Action:      action,
		PerformedBy: performedBy,
		Timestamp:   time.Now().UTC(),
	}
	if err := s.repo.Append(ctx, entry); err != nil && s.log != nil {
		s.log.Warnf("activity note dropped action=%q err=%v", action, err)
	}
}

func (s *ActivityService) List(ctx context.Context) ([]*activity.Entry, error) {
	return s.repo.List(ctx)
}
