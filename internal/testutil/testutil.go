// Package testutil holds helpers shared by integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/umeshgupta05/SmartPathAI/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestUser creates a user profile with sensible defaults and a unique email.
func NewTestUser(t testing.TB, prefix string) *model.UserProfile {
	t.Helper()
	user := &model.UserProfile{
		Name:         "Test Learner",
		Email:        UniqueEmail(prefix),
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=4$dGVzdHNhbHQ$dGVzdGhhc2g",
	}
	user.SetInterests([]string{"AI", "Data Science"})
	user.SetPreferences(model.DefaultPreferences())
	user.SetPerformance(model.DefaultPerformance())
	user.SetCompletedCourses(nil)
	user.SetEarnedCertifications(nil)
	return user
}

// NewTestCourse creates a course with a unique title.
func NewTestCourse(t testing.TB, prefix string) *model.Course {
	t.Helper()
	return &model.Course{
		Title:      fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano()),
		ShortIntro: "A test course.",
		Skills:     "Testing",
		Category:   "Programming",
		Duration:   "4 weeks",
		Rating:     "4.5",
		Site:       "Coursera",
		URL:        "https://example.com/course",
	}
}

// UniqueEmail generates a unique email address for tests.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}
