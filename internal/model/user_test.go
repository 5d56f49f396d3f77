package model

import (
	"strings"
	"testing"
)

func TestUserProfile_InterestsRoundTrip(t *testing.T) {
	u := &UserProfile{}

	u.SetInterests([]string{"Go", "Databases"})

	got := u.Interests()
	if len(got) != 2 || got[0] != "Go" || got[1] != "Databases" {
		t.Errorf("unexpected interests: %v", got)
	}
}

func TestUserProfile_BlobFallbacks(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"not json", "oops"},
		{"wrong type", `{"a":1}`},
		{"null", "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &UserProfile{
				InterestsRaw:   tt.raw,
				PreferencesRaw: tt.raw,
				PerformanceRaw: tt.raw,
			}

			if got := u.Interests(); got == nil || len(got) != 0 {
				t.Errorf("Interests() = %v, want empty non-nil slice", got)
			}

			prefs := u.Preferences()
			if prefs.Pace != "Moderate" || prefs.ContentFormat != "Video" {
				t.Errorf("Preferences() = %+v, want defaults", prefs)
			}

			perf := u.Performance()
			if perf.RecentActivity == nil || perf.SkillProgress == nil {
				t.Error("Performance() slices must be non-nil")
			}
			if perf.LearningHours != 0 || perf.SkillsMastered != 0 {
				t.Errorf("Performance() = %+v, want zeroed", perf)
			}
		})
	}
}

func TestUserProfile_PreferencesPartialBlob(t *testing.T) {
	u := &UserProfile{PreferencesRaw: `{"pace":"Fast"}`}

	prefs := u.Preferences()
	if prefs.Pace != "Fast" {
		t.Errorf("Pace = %q, want Fast", prefs.Pace)
	}
	if prefs.ContentFormat != "Video" {
		t.Errorf("missing field should default, got %q", prefs.ContentFormat)
	}
}

func TestUserProfile_PerformanceSerializesEmptyArrays(t *testing.T) {
	u := &UserProfile{}

	u.SetPerformance(Performance{LearningHours: 2})

	if strings.Contains(u.PerformanceRaw, "null") {
		t.Errorf("nil slices must encode as [], got %s", u.PerformanceRaw)
	}
}

func TestCourse_Clamp(t *testing.T) {
	c := &Course{
		Title:  strings.Repeat("x", MaxCourseTitleLen+50),
		Skills: strings.Repeat("s", MaxCourseSkillsLen+1),
	}

	c.Clamp()

	if len(c.Title) != MaxCourseTitleLen {
		t.Errorf("Title length = %d, want %d", len(c.Title), MaxCourseTitleLen)
	}
	if len(c.Skills) != MaxCourseSkillsLen {
		t.Errorf("Skills length = %d, want %d", len(c.Skills), MaxCourseSkillsLen)
	}
	if c.Category != "General" || c.Duration != "Self-paced" || c.Site != "Online" {
		t.Errorf("blank fields not defaulted: %+v", c)
	}
}

func TestCertification_Clamp(t *testing.T) {
	c := &Certification{}

	c.Clamp()

	if c.Name != "Untitled" || c.Difficulty != "Beginner" {
		t.Errorf("blank fields not defaulted: %+v", c)
	}
}
