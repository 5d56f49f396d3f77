package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/umeshgupta05/SmartPathAI/internal/model"
)

// UpsertActivity adds learning hours to a user's activity row for the given
// day, creating the row when the day has no activity yet. The score, when
// non-zero, replaces the stored one.
func (r *Repository) UpsertActivity(ctx context.Context, userID int64, day time.Time, hours float64, score int) error {
	day = model.DateOnly(day)

	update := `
		UPDATE user_activities
		SET learning_hours = learning_hours + :1,
			score = CASE WHEN :2 > 0 THEN :3 ELSE score END
		WHERE user_id = :4 AND activity_date = :5
	`

	result, err := r.db.ExecContext(ctx, update, hours, score, score, userID, day)
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows > 0 {
		return nil
	}

	insert := `
		INSERT INTO user_activities (user_id, learning_hours, score, activity_date, created_at)
		VALUES (:1, :2, :3, :4, :5)
	`

	_, err = r.db.ExecContext(ctx, insert, userID, hours, score, day, time.Now().UTC())
	if err != nil {
		// Concurrent insert for the same day - fold into the existing row.
		if isUniqueViolation(err) {
			_, err = r.db.ExecContext(ctx, update, hours, score, score, userID, day)
		}
		if err != nil {
			return fmt.Errorf("failed to insert activity: %w", err)
		}
	}

	return nil
}

// ListRecentActivities returns a user's latest activity rows, newest first.
func (r *Repository) ListRecentActivities(ctx context.Context, userID int64, limit int) ([]model.UserActivity, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, learning_hours, score, activity_date, created_at
		FROM user_activities
		WHERE user_id = :1
		ORDER BY activity_date DESC
		FETCH FIRST %d ROWS ONLY
	`, limit)

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []model.UserActivity
	for rows.Next() {
		var a model.UserActivity
		if err := rows.Scan(&a.ID, &a.UserID, &a.LearningHours, &a.Score, &a.Date, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	return activities, nil
}

// ListActivityDates returns every day a user was active, newest first.
// Used for streak computation.
func (r *Repository) ListActivityDates(ctx context.Context, userID int64) ([]time.Time, error) {
	query := `
		SELECT activity_date
		FROM user_activities
		WHERE user_id = :1
		ORDER BY activity_date DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan activity date: %w", err)
		}
		dates = append(dates, model.DateOnly(d))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list activity dates: %w", err)
	}

	return dates, nil
}
