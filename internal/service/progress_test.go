package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/umeshgupta05/SmartPathAI/internal/model"
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestComputeStreak(t *testing.T) {
	today := day("2026-08-25")

	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{"no activity", nil, 0},
		{"active today only", []string{"2026-08-25"}, 1},
		{"three consecutive ending today", []string{"2026-08-25", "2026-08-24", "2026-08-23"}, 3},
		{"streak ended yesterday", []string{"2026-08-24", "2026-08-23"}, 2},
		{"gap breaks streak", []string{"2026-08-25", "2026-08-23", "2026-08-22"}, 1},
		{"old activity only", []string{"2026-08-10"}, 1},
		{"gap after old start", []string{"2026-08-10", "2026-08-08"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates := make([]time.Time, len(tt.dates))
			for i, s := range tt.dates {
				dates[i] = day(s)
			}
			if got := computeStreak(dates, today); got != tt.want {
				t.Errorf("computeStreak(%v) = %d, want %d", tt.dates, got, tt.want)
			}
		})
	}
}

// profiles is the interface type so a nil literal stays a nil interface and
// the service's no-cache guard applies.
func newProgressService(users UserStore, courses *fakeCourseStore, activities *fakeActivityStore, quizzes *fakeQuizStore, profiles ProfileCache) *ProgressService {
	return NewProgressService(users, courses, activities, quizzes, nil, profiles, testLogger())
}

func TestProgressService_Dashboard(t *testing.T) {
	user := newTestUser(t)
	user.SetCompletedCourses([]string{"A Course"})
	user.SetEarnedCertifications([]string{"OCA", "AWS SAA"})

	courses := &fakeCourseStore{courses: sampleCourses(7)}
	svc := newProgressService(newFakeUserStore(), courses, &fakeActivityStore{}, &fakeQuizStore{}, nil)

	dash, err := svc.Dashboard(context.Background(), user)
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}

	if dash.CurrentCourse != "B Course" {
		t.Errorf("current course = %q, want first unfinished", dash.CurrentCourse)
	}
	if dash.CompletedCourses != 1 || dash.Certifications != 2 {
		t.Errorf("counts = %d/%d, want 1/2", dash.CompletedCourses, dash.Certifications)
	}
	// 1 course * 25 + 2 certs * 25
	if dash.OverallProgress != 75 {
		t.Errorf("progress = %d, want 75", dash.OverallProgress)
	}
	if len(dash.RecommendedCourses) != 5 {
		t.Errorf("recommended = %d courses, want 5", len(dash.RecommendedCourses))
	}
	for _, c := range dash.RecommendedCourses {
		if c.Title == "A Course" {
			t.Error("completed course recommended")
		}
	}
}

func TestProgressService_Dashboard_ProgressCapped(t *testing.T) {
	user := newTestUser(t)
	user.SetCompletedCourses([]string{"a", "b", "c"})
	user.SetEarnedCertifications([]string{"x", "y", "z"})

	svc := newProgressService(newFakeUserStore(), &fakeCourseStore{}, &fakeActivityStore{}, &fakeQuizStore{}, nil)

	dash, err := svc.Dashboard(context.Background(), user)
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}
	if dash.OverallProgress != 100 {
		t.Errorf("progress = %d, want capped at 100", dash.OverallProgress)
	}
	if dash.CurrentCourse != "No active course" {
		t.Errorf("current course = %q with empty catalogue", dash.CurrentCourse)
	}
}

func TestProgressService_LearningPath(t *testing.T) {
	user := newTestUser(t)
	user.SetCompletedCourses([]string{"A Course", "C Course"})

	courses := &fakeCourseStore{courses: sampleCourses(3)}
	svc := newProgressService(newFakeUserStore(), courses, &fakeActivityStore{}, &fakeQuizStore{}, nil)

	path, err := svc.LearningPath(context.Background(), user)
	if err != nil {
		t.Fatalf("LearningPath failed: %v", err)
	}

	if len(path.Courses) != 3 {
		t.Fatalf("got %d entries, want 3", len(path.Courses))
	}
	if path.Courses[0].Status != "Completed" || path.Courses[1].Status != "In Progress" {
		t.Errorf("statuses = %q/%q", path.Courses[0].Status, path.Courses[1].Status)
	}
	if path.Stats.Total != 3 || path.Stats.Completed != 2 {
		t.Errorf("stats = %+v", path.Stats)
	}
	// round(2/3*100) = 67
	if path.Stats.Progress != 67 {
		t.Errorf("progress = %d, want 67", path.Stats.Progress)
	}
}

func TestProgressService_MarkCompleted(t *testing.T) {
	store := newFakeUserStore()
	user := newTestUser(t)
	store.users[user.Email] = user

	activities := &fakeActivityStore{}
	profiles := &fakeProfileCache{}
	svc := newProgressService(store, &fakeCourseStore{}, activities, &fakeQuizStore{}, profiles)

	if err := svc.MarkCompleted(context.Background(), user, "Practical Go"); err != nil {
		t.Fatalf("MarkCompleted failed: %v", err)
	}

	if got := user.CompletedCourses(); len(got) != 1 || got[0] != "Practical Go" {
		t.Errorf("completed = %v", got)
	}

	perf := user.Performance()
	if perf.LearningHours != 2 {
		t.Errorf("learning hours = %v, want 2", perf.LearningHours)
	}
	if perf.SkillsMastered != 1 {
		t.Errorf("skills mastered = %d, want 1", perf.SkillsMastered)
	}

	if len(activities.records) != 1 || activities.records[0].Hours != 2 {
		t.Errorf("activity records = %+v", activities.records)
	}
	if len(profiles.deleted) == 0 {
		t.Error("cached profile not invalidated")
	}
}

func TestProgressService_MarkCompleted_Idempotent(t *testing.T) {
	store := newFakeUserStore()
	user := newTestUser(t)
	user.SetCompletedCourses([]string{"Practical Go"})
	store.users[user.Email] = user

	activities := &fakeActivityStore{}
	svc := newProgressService(store, &fakeCourseStore{}, activities, &fakeQuizStore{}, nil)

	if err := svc.MarkCompleted(context.Background(), user, "Practical Go"); err != nil {
		t.Fatalf("MarkCompleted failed: %v", err)
	}

	if store.updates != 0 {
		t.Error("re-marking a completed course should not write")
	}
	if len(activities.records) != 0 {
		t.Error("re-marking a completed course should not add activity")
	}
	if perf := user.Performance(); perf.LearningHours != 0 {
		t.Errorf("hours changed on re-mark: %v", perf.LearningHours)
	}
}

func TestProgressService_MarkCompleted_TitleRequired(t *testing.T) {
	svc := newProgressService(newFakeUserStore(), &fakeCourseStore{}, &fakeActivityStore{}, &fakeQuizStore{}, nil)

	err := svc.MarkCompleted(context.Background(), newTestUser(t), "   ")
	if !errors.Is(err, ErrTitleRequired) {
		t.Errorf("expected ErrTitleRequired, got %v", err)
	}
}

func TestProgressService_MarkCertificationEarned(t *testing.T) {
	store := newFakeUserStore()
	user := newTestUser(t)
	store.users[user.Email] = user

	svc := newProgressService(store, &fakeCourseStore{}, &fakeActivityStore{}, &fakeQuizStore{}, nil)

	if err := svc.MarkCertificationEarned(context.Background(), user, "OCA"); err != nil {
		t.Fatalf("MarkCertificationEarned failed: %v", err)
	}
	if err := svc.MarkCertificationEarned(context.Background(), user, "OCA"); err != nil {
		t.Fatalf("second MarkCertificationEarned failed: %v", err)
	}

	if got := user.EarnedCertifications(); len(got) != 1 {
		t.Errorf("earned = %v, want single entry", got)
	}
	if store.updates != 1 {
		t.Errorf("updates = %d, want 1", store.updates)
	}
}

func TestProgressService_Performance(t *testing.T) {
	user := newTestUser(t)
	perf := user.Performance()
	perf.LearningHours = 10
	perf.AverageScore = 72.5
	user.SetPerformance(perf)
	user.SetCompletedCourses([]string{"A", "B"})
	user.SetEarnedCertifications([]string{"OCA"})

	activities := &fakeActivityStore{
		recent: []model.UserActivity{
			{Date: day("2026-08-25"), LearningHours: 2, Score: 80},
			{Date: day("2026-08-24"), LearningHours: 1, Score: 60},
		},
		dates: []time.Time{day("2026-08-25"), day("2026-08-24")},
	}
	quizzes := &fakeQuizStore{results: []model.QuizResult{
		{UserID: 1, Score: 60},
		{UserID: 1, Score: 85},
		{UserID: 2, Score: 99},
	}}

	svc := newProgressService(newFakeUserStore(), &fakeCourseStore{}, activities, quizzes, nil)
	svc.now = func() time.Time { return day("2026-08-25") }

	report, err := svc.Performance(context.Background(), user)
	if err != nil {
		t.Fatalf("Performance failed: %v", err)
	}

	if report.LearningHours != 10 || report.AverageScore != 72.5 {
		t.Errorf("stored metrics lost: %+v", report.Performance)
	}
	if report.Streak != 2 {
		t.Errorf("streak = %d, want 2", report.Streak)
	}
	if report.QuizzesTaken != 2 {
		t.Errorf("quizzes taken = %d, want 2 (other users excluded)", report.QuizzesTaken)
	}
	if report.BestScore != 85 {
		t.Errorf("best score = %d, want 85", report.BestScore)
	}
	if report.CompletedCourses != 2 || report.EarnedCertifications != 1 {
		t.Errorf("completion counts = %d/%d", report.CompletedCourses, report.EarnedCertifications)
	}

	// Recent activity must come back oldest first for charting.
	if len(report.RecentActivity) != 2 {
		t.Fatalf("recent activity = %d points", len(report.RecentActivity))
	}
	if report.RecentActivity[0].Date != "2026-08-24" {
		t.Errorf("recent activity not chronological: %+v", report.RecentActivity)
	}
}
