package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/juraijvu/learnms/internal/model"
	"github.com/juraijvu/learnms/internal/repository/base"
)

type ActivityRepository struct {
	*base.Repository
}

func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{Repository: base.NewRepository(pool)}
}

func (r *ActivityRepository) Create(ctx context.Context, entry *model.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (user_id, action, detail)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.QueryRow(ctx, query, entry.UserID, entry.Action, entry.Detail).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("create activity log: %w", err)
	}

	return nil
}

func (r *ActivityRepository) ListByUserID(ctx context.Context, userID int64, limit int) ([]*model.ActivityLog, error) {
	query := `
		SELECT id, user_id, action, detail, created_at
		FROM activity_logs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()

	var entries []*model.ActivityLog
	for rows.Next() {
		var entry model.ActivityLog
		err := rows.Scan(&entry.ID, &entry.UserID, &entry.Action, &entry.Detail, &entry.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}

// PurgeOlderThan deletes entries past the retention cutoff and returns how
// many were removed. Called by the background sweeper.
func (r *ActivityRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM activity_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge activity logs: %w", err)
	}
	return affected, nil
}
