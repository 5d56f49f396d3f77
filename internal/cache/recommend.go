package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/umeshgupta05/SmartPathAI/internal/auth"
	"github.com/umeshgupta05/SmartPathAI/internal/model"
)

const (
	// recommendCoursePrefix is the Redis key prefix for AI course recommendations.
	recommendCoursePrefix = "recommend:courses:"
	// recommendCertPrefix is the Redis key prefix for AI certification recommendations.
	recommendCertPrefix = "recommend:certs:"
	// recommendTTL bounds how long generated recommendations are reused.
	// Interests change rarely, so an hour saves most generation calls.
	recommendTTL = time.Hour
)

// interestsKey derives a stable cache key from a learner's interest tags.
// Tags are hashed so arbitrary user input never becomes a raw Redis key.
func interestsKey(interests []string) string {
	return auth.QuickHash(strings.ToLower(strings.Join(interests, ",")))
}

// GetCourses retrieves cached course recommendations for a set of interests.
// Returns ErrCacheMiss when absent or unreadable.
func (c *Cache) GetCourses(ctx context.Context, interests []string) ([]model.Course, error) {
	key := recommendCoursePrefix + interestsKey(interests)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, ErrCacheMiss
	}

	var courses []model.Course
	if err := json.Unmarshal(data, &courses); err != nil {
		return nil, ErrCacheMiss
	}
	return courses, nil
}

// SetCourses caches generated course recommendations for a set of interests.
func (c *Cache) SetCourses(ctx context.Context, interests []string, courses []model.Course) error {
	key := recommendCoursePrefix + interestsKey(interests)

	data, err := json.Marshal(courses)
	if err != nil {
		return fmt.Errorf("marshal courses: %w", err)
	}

	return c.client.Set(ctx, key, data, recommendTTL).Err()
}

// GetCertifications retrieves cached certification recommendations.
// Returns ErrCacheMiss when absent or unreadable.
func (c *Cache) GetCertifications(ctx context.Context, interests []string) ([]model.Certification, error) {
	key := recommendCertPrefix + interestsKey(interests)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, ErrCacheMiss
	}

	var certs []model.Certification
	if err := json.Unmarshal(data, &certs); err != nil {
		return nil, ErrCacheMiss
	}
	return certs, nil
}

// SetCertifications caches generated certification recommendations.
func (c *Cache) SetCertifications(ctx context.Context, interests []string, certs []model.Certification) error {
	key := recommendCertPrefix + interestsKey(interests)

	data, err := json.Marshal(certs)
	if err != nil {
		return fmt.Errorf("marshal certifications: %w", err)
	}

	return c.client.Set(ctx, key, data, recommendTTL).Err()
}
