package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/umeshgupta05/SmartPathAI/internal/model"
)

// ErrCourseExists is returned when a course title is already stored.
var ErrCourseExists = errors.New("course already exists")

// CreateCourse inserts one course. AI generation repeats titles across
// users, so a unique violation maps to ErrCourseExists for callers to skip.
func (r *Repository) CreateCourse(ctx context.Context, course *model.Course) error {
	query := `
		INSERT INTO courses (title, short_intro, skills, category, duration, rating, site, url)
		VALUES (:1, :2, :3, :4, :5, :6, :7, :8)
	`

	_, err := r.db.ExecContext(ctx, query,
		course.Title,
		course.ShortIntro,
		course.Skills,
		course.Category,
		course.Duration,
		course.Rating,
		course.Site,
		course.URL,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrCourseExists
		}
		return fmt.Errorf("failed to create course: %w", err)
	}

	return nil
}

// SaveCourses inserts a batch of courses, skipping ones already stored.
func (r *Repository) SaveCourses(ctx context.Context, courses []model.Course) error {
	for i := range courses {
		if err := r.CreateCourse(ctx, &courses[i]); err != nil && !errors.Is(err, ErrCourseExists) {
			return err
		}
	}
	return nil
}

// ListCourses returns up to limit stored courses in insertion order.
func (r *Repository) ListCourses(ctx context.Context, limit int) ([]model.Course, error) {
	query := fmt.Sprintf(`
		SELECT id, title, short_intro, skills, category, duration, rating, site, url
		FROM courses
		ORDER BY id
		FETCH FIRST %d ROWS ONLY
	`, limit)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	return courses, nil
}

// HasCourses reports whether any course is stored.
func (r *Repository) HasCourses(ctx context.Context) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM courses`).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to count courses: %w", err)
	}
	return count > 0, nil
}

func scanCourse(rows *sql.Rows) (*model.Course, error) {
	var course model.Course
	var shortIntro, skills, category, duration, rating, site, url sql.NullString

	err := rows.Scan(
		&course.ID,
		&course.Title,
		&shortIntro,
		&skills,
		&category,
		&duration,
		&rating,
		&site,
		&url,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan course: %w", err)
	}

	course.ShortIntro = shortIntro.String
	course.Skills = skills.String
	course.Category = category.String
	course.Duration = duration.String
	course.Rating = rating.String
	course.Site = site.String
	course.URL = url.String

	return &course, nil
}
