package repository

import (
	"context"

	"posgate/internal/model"
	"posgate/internal/projection"

	"gorm.io/gorm"
)

const activityLogSQL = `
SELECT username, action, details, timestamp
FROM activity_log
ORDER BY timestamp DESC
LIMIT 100`

// ActivityRepository reads the audit log and appends the entries the activity
// worker records for API-created sales.
type ActivityRepository interface {
	ListRecent(ctx context.Context) ([]projection.Record, error)
	Append(ctx context.Context, entry *model.ActivityLogEntry) error
}

type activityRepo struct{ db *gorm.DB }

func NewActivityRepository(db *gorm.DB) ActivityRepository { return &activityRepo{db: db} }

func (r *activityRepo) ListRecent(ctx context.Context) ([]projection.Record, error) {
	rows, err := r.db.WithContext(ctx).Raw(activityLogSQL).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return projection.Rows(rows)
}

func (r *activityRepo) Append(ctx context.Context, entry *model.ActivityLogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
