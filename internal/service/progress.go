package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/umeshgupta05/SmartPathAI/internal/model"
)

// ErrTitleRequired is returned when a completion request names no course or
// certification.
var ErrTitleRequired = errors.New("title is required")

const (
	// progressPerItem is the dashboard progress credit for each completed
	// course or earned certification, capped at 100.
	progressPerItem = 25
	// recentActivityDays is how many days of activity the performance view shows.
	recentActivityDays = 7
	// hoursPerCourse is the learning-hours credit for finishing a course.
	hoursPerCourse = 2
)

// Dashboard is the summary shown on the landing page after login.
type Dashboard struct {
	CurrentCourse      string         `json:"currentCourse"`
	CompletedCourses   int            `json:"completedCourses"`
	Certifications     int            `json:"certifications"`
	OverallProgress    int            `json:"overallProgress"`
	RecommendedCourses []model.Course `json:"recommendedCourses"`
}

// LearningPathEntry is one course on a learner's path.
type LearningPathEntry struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Skills      string `json:"skills"`
	Category    string `json:"category"`
	Duration    string `json:"duration"`
	Status      string `json:"status"`
	URL         string `json:"url"`
}

// LearningPathStats summarises path completion.
type LearningPathStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Progress  int `json:"progress"`
}

// LearningPath is the ordered course list with completion stats.
type LearningPath struct {
	Courses []LearningPathEntry `json:"courses"`
	Stats   LearningPathStats   `json:"stats"`
}

// PerformanceReport is the learner's tracked metrics plus derived stats.
type PerformanceReport struct {
	model.Performance
	Streak               int `json:"streak"`
	QuizzesTaken         int `json:"quizzes_taken"`
	BestScore            int `json:"best_score"`
	CompletedCourses     int `json:"completed_courses"`
	EarnedCertifications int `json:"earned_certifications"`
}

// ProgressService tracks course completion, certifications and performance.
type ProgressService struct {
	users      UserStore
	courses    CourseStore
	activities ActivityStore
	quizzes    QuizStore
	recs       *RecommendationService
	profiles   ProfileCache
	logger     *slog.Logger
	now        func() time.Time
}

// NewProgressService creates a new ProgressService.
func NewProgressService(users UserStore, courses CourseStore, activities ActivityStore, quizzes QuizStore, recs *RecommendationService, profiles ProfileCache, logger *slog.Logger) *ProgressService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressService{
		users:      users,
		courses:    courses,
		activities: activities,
		quizzes:    quizzes,
		recs:       recs,
		profiles:   profiles,
		logger:     logger,
		now:        time.Now,
	}
}

// Dashboard assembles the landing-page summary for a learner.
func (s *ProgressService) Dashboard(ctx context.Context, user *model.UserProfile) (*Dashboard, error) {
	if s.recs != nil {
		s.recs.EnsureSeedData(ctx, user.Interests())
	}

	courses, err := s.courses.ListCourses(ctx, fallbackListLimit)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	completed := toSet(user.CompletedCourses())
	earned := user.EarnedCertifications()

	currentCourse := "No active course"
	recommended := []model.Course{}
	for _, course := range courses {
		if completed[course.Title] {
			continue
		}
		if currentCourse == "No active course" {
			currentCourse = course.Title
		}
		if len(recommended) < RecommendedCourseCount {
			recommended = append(recommended, course)
		}
	}

	progress := min(100, len(completed)*progressPerItem+len(earned)*progressPerItem)

	return &Dashboard{
		CurrentCourse:      currentCourse,
		CompletedCourses:   len(completed),
		Certifications:     len(earned),
		OverallProgress:    progress,
		RecommendedCourses: recommended,
	}, nil
}

// LearningPath lists every stored course with the learner's completion status.
func (s *ProgressService) LearningPath(ctx context.Context, user *model.UserProfile) (*LearningPath, error) {
	if s.recs != nil {
		s.recs.EnsureSeedData(ctx, user.Interests())
	}

	courses, err := s.courses.ListCourses(ctx, fallbackListLimit)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	completed := toSet(user.CompletedCourses())

	entries := make([]LearningPathEntry, 0, len(courses))
	done := 0
	for _, course := range courses {
		status := "In Progress"
		if completed[course.Title] {
			status = "Completed"
			done++
		}
		entries = append(entries, LearningPathEntry{
			Title:       course.Title,
			Description: course.ShortIntro,
			Skills:      course.Skills,
			Category:    course.Category,
			Duration:    course.Duration,
			Status:      status,
			URL:         course.URL,
		})
	}

	stats := LearningPathStats{Total: len(courses), Completed: done}
	if stats.Total > 0 {
		stats.Progress = int(math.Round(float64(done) / float64(stats.Total) * 100))
	}

	return &LearningPath{Courses: entries, Stats: stats}, nil
}

// MarkCompleted records a finished course: it joins the completed list,
// earns learning-hours and skill credit, and counts toward today's streak.
// Marking an already-completed course is a no-op.
func (s *ProgressService) MarkCompleted(ctx context.Context, user *model.UserProfile, courseTitle string) error {
	title := sanitizeText(courseTitle)
	if title == "" {
		return ErrTitleRequired
	}

	completed := user.CompletedCourses()
	for _, t := range completed {
		if t == title {
			return nil
		}
	}

	user.SetCompletedCourses(append(completed, title))

	perf := user.Performance()
	perf.LearningHours += hoursPerCourse
	perf.SkillsMastered++
	user.SetPerformance(perf)

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	s.invalidateProfile(ctx, user.Email)

	if err := s.activities.UpsertActivity(ctx, user.ID, s.now(), hoursPerCourse, 0); err != nil {
		// Completion already persisted; streak credit is best-effort.
		s.logger.Warn("failed to record completion activity", slog.String("error", err.Error()))
	}

	return nil
}

// MarkCertificationEarned adds a certification to the learner's earned list.
func (s *ProgressService) MarkCertificationEarned(ctx context.Context, user *model.UserProfile, title string) error {
	title = sanitizeText(title)
	if title == "" {
		return ErrTitleRequired
	}

	earned := user.EarnedCertifications()
	for _, t := range earned {
		if t == title {
			return nil
		}
	}

	user.SetEarnedCertifications(append(earned, title))

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	s.invalidateProfile(ctx, user.Email)

	return nil
}

// Performance assembles the learner's metrics: stored performance blob plus
// recent activity, streak, quiz stats and completion counts.
func (s *ProgressService) Performance(ctx context.Context, user *model.UserProfile) (*PerformanceReport, error) {
	report := &PerformanceReport{Performance: user.Performance()}

	recent, err := s.activities.ListRecentActivities(ctx, user.ID, recentActivityDays)
	if err != nil {
		return nil, fmt.Errorf("list recent activities: %w", err)
	}
	if len(recent) > 0 {
		// Rows arrive newest first; the chart wants chronological order.
		points := make([]model.ActivityPoint, 0, len(recent))
		for i := len(recent) - 1; i >= 0; i-- {
			points = append(points, model.ActivityPoint{
				Date:          recent[i].Date.Format(time.DateOnly),
				LearningHours: recent[i].LearningHours,
				Score:         recent[i].Score,
			})
		}
		report.RecentActivity = points
	}

	dates, err := s.activities.ListActivityDates(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list activity dates: %w", err)
	}
	report.Streak = computeStreak(dates, model.DateOnly(s.now()))

	report.QuizzesTaken, err = s.quizzes.CountQuizResults(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("count quiz results: %w", err)
	}
	report.BestScore, err = s.quizzes.BestQuizScore(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("best quiz score: %w", err)
	}

	report.CompletedCourses = len(user.CompletedCourses())
	report.EarnedCertifications = len(user.EarnedCertifications())

	return report, nil
}

// computeStreak counts consecutive active days ending today (or at the most
// recent active day, when today has no activity yet). Dates must be calendar
// days sorted newest first.
func computeStreak(dates []time.Time, today time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	expected := today
	if dates[0].Before(today) {
		expected = dates[0]
	}

	streak := 0
	for _, d := range dates {
		if d.Equal(expected) {
			streak++
			expected = expected.AddDate(0, 0, -1)
		} else if d.Before(expected) {
			break
		}
	}
	return streak
}

func (s *ProgressService) invalidateProfile(ctx context.Context, email string) {
	if s.profiles == nil {
		return
	}
	if err := s.profiles.DeleteUserProfile(ctx, email); err != nil {
		s.logger.Warn("failed to invalidate cached profile", slog.String("error", err.Error()))
	}
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
