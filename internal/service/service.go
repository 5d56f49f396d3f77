// Package service provides business logic for the application.
package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/umeshgupta05/SmartPathAI/internal/model"
)

// UserStore is the persistence surface user flows need.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.UserProfile) error
	GetUserByEmail(ctx context.Context, email string) (*model.UserProfile, error)
	UpdateUser(ctx context.Context, user *model.UserProfile) error
	UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error
}

// CourseStore is the persistence surface for courses.
type CourseStore interface {
	SaveCourses(ctx context.Context, courses []model.Course) error
	ListCourses(ctx context.Context, limit int) ([]model.Course, error)
	HasCourses(ctx context.Context) (bool, error)
}

// CertificationStore is the persistence surface for certifications.
type CertificationStore interface {
	SaveCertifications(ctx context.Context, certs []model.Certification) error
	ListCertifications(ctx context.Context, limit int) ([]model.Certification, error)
}

// QuizStore is the persistence surface for quiz attempts.
type QuizStore interface {
	CreateQuizResult(ctx context.Context, result *model.QuizResult) error
	CountQuizResults(ctx context.Context, userID int64) (int, error)
	BestQuizScore(ctx context.Context, userID int64) (int, error)
}

// ActivityStore is the persistence surface for daily activity rows.
type ActivityStore interface {
	UpsertActivity(ctx context.Context, userID int64, day time.Time, hours float64, score int) error
	ListRecentActivities(ctx context.Context, userID int64, limit int) ([]model.UserActivity, error)
	ListActivityDates(ctx context.Context, userID int64) ([]time.Time, error)
}

// Generator produces AI content. Implemented by genai.Client.
type Generator interface {
	GenerateCourses(ctx context.Context, interests []string, count int) ([]model.Course, error)
	GenerateCertifications(ctx context.Context, interests []string, count int) ([]model.Certification, error)
	GenerateQuiz(ctx context.Context, topic string, count int) (*model.Quiz, error)
	Chat(ctx context.Context, message, userName string, interests []string) (string, error)
}

// RecommendationCache caches generated recommendations per interest set.
type RecommendationCache interface {
	GetCourses(ctx context.Context, interests []string) ([]model.Course, error)
	SetCourses(ctx context.Context, interests []string, courses []model.Course) error
	GetCertifications(ctx context.Context, interests []string) ([]model.Certification, error)
	SetCertifications(ctx context.Context, interests []string, certs []model.Certification) error
}

// ProfileCache invalidates cached user profiles after writes.
type ProfileCache interface {
	DeleteUserProfile(ctx context.Context, email string) error
}

// injectionChars matches characters stripped from free-text input.
var injectionChars = regexp.MustCompile(`[<>"']`)

// sanitizeText trims whitespace and strips basic HTML/script-injection
// characters from user input.
func sanitizeText(value string) string {
	return injectionChars.ReplaceAllString(strings.TrimSpace(value), "")
}

// sanitizeList sanitizes every entry and drops ones left empty.
func sanitizeList(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if s := sanitizeText(v); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	return cleaned
}

var emailRegex = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
