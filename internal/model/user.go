// Package model defines domain entities for the application.
package model

import (
	"encoding/json"
	"time"
)

// Preferences captures how a learner wants content delivered.
type Preferences struct {
	Pace          string `json:"pace"`
	ContentFormat string `json:"content_format"`
}

// DefaultPreferences returns the preferences assigned to new profiles.
func DefaultPreferences() Preferences {
	return Preferences{Pace: "Moderate", ContentFormat: "Video"}
}

// ActivityPoint is one day of learning activity inside a performance blob.
type ActivityPoint struct {
	Date          string  `json:"date"`
	LearningHours float64 `json:"learning_hours"`
	Score         int     `json:"score"`
}

// SkillProgress tracks per-skill completion inside a performance blob.
type SkillProgress struct {
	Skill    string `json:"skill"`
	Progress int    `json:"progress"`
}

// Performance aggregates a learner's tracked metrics.
type Performance struct {
	LearningHours  float64         `json:"learning_hours"`
	AverageScore   float64         `json:"average_score"`
	SkillsMastered int             `json:"skills_mastered"`
	RecentActivity []ActivityPoint `json:"recent_activity"`
	SkillProgress  []SkillProgress `json:"skill_progress"`
}

// DefaultPerformance returns a zeroed performance record with non-nil
// slices, so it serializes as empty arrays rather than null.
func DefaultPerformance() Performance {
	return Performance{
		RecentActivity: []ActivityPoint{},
		SkillProgress:  []SkillProgress{},
	}
}

// UserProfile is a learner account. The flexible nested data (interests,
// preferences, performance, completion lists) is stored as JSON text in the
// *Raw fields and read through the typed accessors, which fall back to
// defaults when a blob is missing or corrupt.
type UserProfile struct {
	ID                      int64
	Name                    string
	Email                   string
	PasswordHash            string
	InterestsRaw            string
	PreferencesRaw          string
	PerformanceRaw          string
	CompletedCoursesRaw     string
	EarnedCertificationsRaw string
	CreatedAt               time.Time
	LastLogin               *time.Time
}

// Interests returns the learner's interest tags.
func (u *UserProfile) Interests() []string {
	return decodeStringList(u.InterestsRaw)
}

// SetInterests replaces the learner's interest tags.
func (u *UserProfile) SetInterests(interests []string) {
	u.InterestsRaw = encodeStringList(interests)
}

// Preferences returns the learner's delivery preferences.
func (u *UserProfile) Preferences() Preferences {
	var p Preferences
	if err := json.Unmarshal([]byte(u.PreferencesRaw), &p); err != nil || p == (Preferences{}) {
		return DefaultPreferences()
	}
	if p.Pace == "" {
		p.Pace = DefaultPreferences().Pace
	}
	if p.ContentFormat == "" {
		p.ContentFormat = DefaultPreferences().ContentFormat
	}
	return p
}

// SetPreferences replaces the learner's delivery preferences.
func (u *UserProfile) SetPreferences(p Preferences) {
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	u.PreferencesRaw = string(data)
}

// Performance returns the learner's tracked metrics.
func (u *UserProfile) Performance() Performance {
	p := DefaultPerformance()
	if err := json.Unmarshal([]byte(u.PerformanceRaw), &p); err != nil {
		return DefaultPerformance()
	}
	if p.RecentActivity == nil {
		p.RecentActivity = []ActivityPoint{}
	}
	if p.SkillProgress == nil {
		p.SkillProgress = []SkillProgress{}
	}
	return p
}

// SetPerformance replaces the learner's tracked metrics.
func (u *UserProfile) SetPerformance(p Performance) {
	if p.RecentActivity == nil {
		p.RecentActivity = []ActivityPoint{}
	}
	if p.SkillProgress == nil {
		p.SkillProgress = []SkillProgress{}
	}
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	u.PerformanceRaw = string(data)
}

// CompletedCourses returns the titles of courses the learner has finished.
func (u *UserProfile) CompletedCourses() []string {
	return decodeStringList(u.CompletedCoursesRaw)
}

// SetCompletedCourses replaces the completed course list.
func (u *UserProfile) SetCompletedCourses(titles []string) {
	u.CompletedCoursesRaw = encodeStringList(titles)
}

// EarnedCertifications returns the certifications the learner has earned.
func (u *UserProfile) EarnedCertifications() []string {
	return decodeStringList(u.EarnedCertificationsRaw)
}

// SetEarnedCertifications replaces the earned certification list.
func (u *UserProfile) SetEarnedCertifications(names []string) {
	u.EarnedCertificationsRaw = encodeStringList(names)
}

func decodeStringList(raw string) []string {
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil || list == nil {
		return []string{}
	}
	return list
}

func encodeStringList(list []string) string {
	if list == nil {
		list = []string{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "[]"
	}
	return string(data)
}
