package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/field-activity-service/internal/domain"
)

// ActivityRepository encapsulates activity persistence. Activities are
// immutable once stored; there are no update or delete operations.
type ActivityRepository interface {
	Insert(ctx context.Context, activity *domain.Activity) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Activity, error)
	CountByType(ctx context.Context, activityType domain.ActivityType) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]domain.RecentActivity, error)
}

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository returns a Postgres-backed implementation.
func NewActivityRepository(pool *pgxpool.Pool) ActivityRepository {
	return &activityRepository{pool: pool}
}

// Insert stores the activity. The id and timestamp are assigned by the
// store at insertion time and written back into the struct.
func (r *activityRepository) Insert(ctx context.Context, activity *domain.Activity) error {
	const query = `
        INSERT INTO activities (user_id, type, payload, lat, lng)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	payload, err := json.Marshal(activity.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	return r.pool.QueryRow(ctx, query,
		activity.UserID,
		activity.Type,
		payload,
		activity.Lat,
		activity.Lng,
	).Scan(&activity.ID, &activity.CreatedAt)
}

func (r *activityRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Activity, error) {
	const query = `
        SELECT id, user_id, type, payload, lat, lng, created_at
        FROM activities WHERE user_id=$1
        ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanActivities(rows)
}

func (r *activityRepository) CountByType(ctx context.Context, activityType domain.ActivityType) (int64, error) {
	const query = `SELECT COUNT(*) FROM activities WHERE type=$1`

	var count int64
	if err := r.pool.QueryRow(ctx, query, activityType).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *activityRepository) ListRecent(ctx context.Context, limit int) ([]domain.RecentActivity, error) {
	const query = `
        SELECT u.username, a.type, a.created_at, a.lat, a.lng
        FROM activities a
        JOIN users u ON u.id = a.user_id
        ORDER BY a.created_at DESC
        LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RecentActivity
	for rows.Next() {
		var entry domain.RecentActivity
		if err := rows.Scan(
			&entry.Username,
			&entry.Type,
			&entry.Timestamp,
			&entry.Lat,
			&entry.Lng,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func scanActivities(rows pgx.Rows) ([]domain.Activity, error) {
	var result []domain.Activity
	for rows.Next() {
		var activity domain.Activity
		var payload []byte
		if err := rows.Scan(
			&activity.ID,
			&activity.UserID,
			&activity.Type,
			&payload,
			&activity.Lat,
			&activity.Lng,
			&activity.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(payload, &activity.Payload); err != nil {
			return nil, fmt.Errorf("unmarshal payload: %w", err)
		}
		result = append(result, activity)
	}
	return result, rows.Err()
}
