package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/umeshgupta05/SmartPathAI/internal/model"
)

const (
	// userCachePrefix is the Redis key prefix for cached user profiles.
	userCachePrefix = "user:profile:"
	// userCacheTTL is the time-to-live for cached profiles. Kept short so
	// writes from other instances converge quickly.
	userCacheTTL = 5 * time.Minute
)

// cachedProfile is the wire form of a user profile in Redis. The nested
// JSON blobs are carried verbatim.
type cachedProfile struct {
	ID                      int64      `json:"id"`
	Name                    string     `json:"name"`
	Email                   string     `json:"email"`
	PasswordHash            string     `json:"password_hash"`
	InterestsRaw            string     `json:"interests"`
	PreferencesRaw          string     `json:"preferences"`
	PerformanceRaw          string     `json:"performance"`
	CompletedCoursesRaw     string     `json:"completed_courses"`
	EarnedCertificationsRaw string     `json:"earned_certifications"`
	CreatedAt               time.Time  `json:"created_at"`
	LastLogin               *time.Time `json:"last_login,omitempty"`
}

// GetUserProfile retrieves a cached profile by email.
// Returns nil if not found (cache miss).
func (c *Cache) GetUserProfile(ctx context.Context, email string) (*model.UserProfile, error) {
	key := userCachePrefix + email

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// Cache miss is not an error
		return nil, nil //nolint:nilerr
	}

	var cached cachedProfile
	if err := json.Unmarshal(data, &cached); err != nil {
		// Corrupted cache entry - treat as miss
		return nil, nil //nolint:nilerr
	}

	return &model.UserProfile{
		ID:                      cached.ID,
		Name:                    cached.Name,
		Email:                   cached.Email,
		PasswordHash:            cached.PasswordHash,
		InterestsRaw:            cached.InterestsRaw,
		PreferencesRaw:          cached.PreferencesRaw,
		PerformanceRaw:          cached.PerformanceRaw,
		CompletedCoursesRaw:     cached.CompletedCoursesRaw,
		EarnedCertificationsRaw: cached.EarnedCertificationsRaw,
		CreatedAt:               cached.CreatedAt,
		LastLogin:               cached.LastLogin,
	}, nil
}

// SetUserProfile caches a user profile keyed by email.
func (c *Cache) SetUserProfile(ctx context.Context, user *model.UserProfile) error {
	key := userCachePrefix + user.Email

	cached := cachedProfile{
		ID:                      user.ID,
		Name:                    user.Name,
		Email:                   user.Email,
		PasswordHash:            user.PasswordHash,
		InterestsRaw:            user.InterestsRaw,
		PreferencesRaw:          user.PreferencesRaw,
		PerformanceRaw:          user.PerformanceRaw,
		CompletedCoursesRaw:     user.CompletedCoursesRaw,
		EarnedCertificationsRaw: user.EarnedCertificationsRaw,
		CreatedAt:               user.CreatedAt,
		LastLogin:               user.LastLogin,
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("marshal user profile: %w", err)
	}

	return c.client.Set(ctx, key, data, userCacheTTL).Err()
}

// DeleteUserProfile removes a cached profile. Called after any write to the
// profile so the next authenticated request reads fresh data.
func (c *Cache) DeleteUserProfile(ctx context.Context, email string) error {
	key := userCachePrefix + email
	return c.client.Del(ctx, key).Err()
}
