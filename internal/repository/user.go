package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/umeshgupta05/SmartPathAI/internal/model"
)

// Common errors for user repository operations.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already exists")
)

const userColumns = `id, name, email, password_hash, interests, preferences,
	performance, completed_courses, earned_certifications, created_at, last_login`

// CreateUser inserts a new user profile. The id is assigned by the
// auto-increment trigger; the created row is read back so the caller gets it.
func (r *Repository) CreateUser(ctx context.Context, user *model.UserProfile) error {
	query := `
		INSERT INTO user_profiles
			(name, email, password_hash, interests, preferences, performance,
			 completed_courses, earned_certifications, created_at)
		VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9)
	`

	user.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.InterestsRaw,
		user.PreferencesRaw,
		user.PerformanceRaw,
		user.CompletedCoursesRaw,
		user.EarnedCertificationsRaw,
		user.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	created, err := r.GetUserByEmail(ctx, user.Email)
	if err != nil {
		return fmt.Errorf("failed to read back created user: %w", err)
	}
	user.ID = created.ID

	return nil
}

// GetUserByEmail retrieves a user profile by email address.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.UserProfile, error) {
	query := `SELECT ` + userColumns + ` FROM user_profiles WHERE email = :1`

	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

// GetUserByID retrieves a user profile by id.
func (r *Repository) GetUserByID(ctx context.Context, id int64) (*model.UserProfile, error) {
	query := `SELECT ` + userColumns + ` FROM user_profiles WHERE id = :1`

	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// UpdateUser persists the mutable profile fields.
func (r *Repository) UpdateUser(ctx context.Context, user *model.UserProfile) error {
	query := `
		UPDATE user_profiles
		SET name = :1,
			interests = :2,
			preferences = :3,
			performance = :4,
			completed_courses = :5,
			earned_certifications = :6
		WHERE id = :7
	`

	result, err := r.db.ExecContext(ctx, query,
		user.Name,
		user.InterestsRaw,
		user.PreferencesRaw,
		user.PerformanceRaw,
		user.CompletedCoursesRaw,
		user.EarnedCertificationsRaw,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdateLastLogin stamps the user's last successful login time.
func (r *Repository) UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error {
	query := `UPDATE user_profiles SET last_login = :1 WHERE id = :2`

	if _, err := r.db.ExecContext(ctx, query, at.UTC(), userID); err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

func (r *Repository) scanUser(row *sql.Row) (*model.UserProfile, error) {
	var user model.UserProfile
	var interests, preferences, performance, completed, earned sql.NullString
	var lastLogin sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&interests,
		&preferences,
		&performance,
		&completed,
		&earned,
		&user.CreatedAt,
		&lastLogin,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.InterestsRaw = interests.String
	user.PreferencesRaw = preferences.String
	user.PerformanceRaw = performance.String
	user.CompletedCoursesRaw = completed.String
	user.EarnedCertificationsRaw = earned.String
	if lastLogin.Valid {
		t := lastLogin.Time
		user.LastLogin = &t
	}

	return &user, nil
}
