package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/umeshgupta05/SmartPathAI/internal/model"
)

// CreateQuizResult records one graded quiz attempt.
func (r *Repository) CreateQuizResult(ctx context.Context, result *model.QuizResult) error {
	query := `
		INSERT INTO quiz_results (user_id, score, created_at)
		VALUES (:1, :2, :3)
	`

	result.CreatedAt = time.Now().UTC()

	if _, err := r.db.ExecContext(ctx, query, result.UserID, result.Score, result.CreatedAt); err != nil {
		return fmt.Errorf("failed to create quiz result: %w", err)
	}

	return nil
}

// CountQuizResults returns how many quiz attempts a user has recorded.
func (r *Repository) CountQuizResults(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM quiz_results WHERE user_id = :1`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count quiz results: %w", err)
	}
	return count, nil
}

// BestQuizScore returns a user's highest quiz score, or 0 with no error when
// the user has no attempts.
func (r *Repository) BestQuizScore(ctx context.Context, userID int64) (int, error) {
	query := `
		SELECT score
		FROM quiz_results
		WHERE user_id = :1
		ORDER BY score DESC
		FETCH FIRST 1 ROWS ONLY
	`

	var score int
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&score)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get best quiz score: %w", err)
	}
	return score, nil
}
