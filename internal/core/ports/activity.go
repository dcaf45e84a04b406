package ports

import (
	"context"

	"github.com/csemotors/dealership/internal/core/domain"
)

// ActivityRepository appends audit records.
type ActivityRepository interface {
	InsertActivity(ctx context.Context, activity *domain.Activity) error
}

// ActivityService persists a single audit record.
type ActivityService interface {
	Process(ctx context.Context, activity domain.Activity) error
}

// ActivityRecorder accepts audit records without blocking the caller.
type ActivityRecorder interface {
	Record(activity domain.Activity)
}

// ActivityHistory reads an account's most recent audit records.
type ActivityHistory interface {
	Recent(ctx context.Context, accountID uint, limit int) ([]domain.Activity, error)
}
