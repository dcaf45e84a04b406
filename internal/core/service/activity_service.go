package service

import (
	"context"
	"time"

	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/ports"
)

// ActivityService writes audit records to the activity repository.
type ActivityService struct {
	repo ports.ActivityRepository
}

func NewActivityService(repo ports.ActivityRepository) *ActivityService {
	return &ActivityService{repo: repo}
}

func (s *ActivityService) Process(ctx context.Context, activity domain.Activity) error {
	if activity.At.IsZero() {
		activity.At = time.Now().UTC()
	}
	return s.repo.InsertActivity(ctx, &activity)
}

// NopRecorder discards audit records. Used when no audit store is configured.
type NopRecorder struct{}

func (NopRecorder) Record(domain.Activity) {}

// NopHistory reports no activity. Used when no audit store is configured.
type NopHistory struct{}

func (NopHistory) Recent(context.Context, uint, int) ([]domain.Activity, error) { return nil, nil }
