package assessment

import (
	"context"

	"github.com/google/uuid"
)

// AssessmentRepository stores assessment records. ListByUser and ListRecent
// return records ordered by CompletedAt, newest first. GetByID returns
// ErrNotFound when no row exists.
type AssessmentRepository interface {
	Create(ctx context.Context, r *AssessmentRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*AssessmentRecord, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*AssessmentRecord, int, error)
	ListRecent(ctx context.Context, userID uuid.UUID, n int) ([]*AssessmentRecord, error)
}

type CrisisLogRepository interface {
	Create(ctx context.Context, l *CrisisLog) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*CrisisLog, int, error)
}

// DashboardCache holds computed dashboards. Each user has a version that
// Invalidate bumps. Get returns the current version with the cached value,
// or a nil dashboard on a miss. Set stores d only while the version still
// equals the one Get returned, so a dashboard built before a write is never
// cached after it.
type DashboardCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*Dashboard, int64, error)
	Set(ctx context.Context, userID uuid.UUID, version int64, d *Dashboard) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// ConsentChecker reports whether a user has agreed to data processing.
type ConsentChecker interface {
	HasConsented(ctx context.Context, userID uuid.UUID) (bool, error)
}
