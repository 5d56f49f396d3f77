package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/umeshgupta05/SmartPathAI/internal/model"
)

const (
	// quizQuestionCount is how many questions a generated quiz carries.
	quizQuestionCount = 5
	// quizTopicInterestLimit caps how many interests flavour the topic.
	quizTopicInterestLimit = 3
	// defaultQuizTopic is used when no course suggests a topic.
	defaultQuizTopic = "General Programming"
	// hoursPerQuiz is the learning-hours credit for finishing a quiz.
	hoursPerQuiz = 1
)

// QuizService generates quizzes and grades submitted answers.
type QuizService struct {
	users      UserStore
	courses    CourseStore
	quizzes    QuizStore
	activities ActivityStore
	gen        Generator
	profiles   ProfileCache
	logger     *slog.Logger
	now        func() time.Time
}

// NewQuizService creates a new QuizService.
func NewQuizService(users UserStore, courses CourseStore, quizzes QuizStore, activities ActivityStore, gen Generator, profiles ProfileCache, logger *slog.Logger) *QuizService {
	if logger == nil {
		logger = slog.Default()
	}
	return &QuizService{
		users:      users,
		courses:    courses,
		quizzes:    quizzes,
		activities: activities,
		gen:        gen,
		profiles:   profiles,
		logger:     logger,
		now:        time.Now,
	}
}

// Generate builds a quiz about the learner's current course, flavoured by
// their interests. Generation failures degrade to an empty quiz rather than
// an error, so the UI can offer a retry.
func (s *QuizService) Generate(ctx context.Context, user *model.UserProfile) *model.Quiz {
	topic := s.deriveTopic(ctx, user)

	quiz, err := s.gen.GenerateQuiz(ctx, topic, quizQuestionCount)
	if err != nil {
		s.logger.Warn("quiz generation failed", slog.String("error", err.Error()))
		return &model.Quiz{Topic: "General", Questions: []model.QuizQuestion{}}
	}
	if quiz.Questions == nil {
		quiz.Questions = []model.QuizQuestion{}
	}
	quiz.ID = ulid.Make().String()

	return quiz
}

// deriveTopic picks the learner's first unfinished course as the quiz topic,
// defaulting to general programming, and appends up to three interests.
func (s *QuizService) deriveTopic(ctx context.Context, user *model.UserProfile) string {
	topic := defaultQuizTopic

	courses, err := s.courses.ListCourses(ctx, fallbackListLimit)
	if err != nil {
		s.logger.Warn("could not list courses for quiz topic", slog.String("error", err.Error()))
	} else {
		completed := toSet(user.CompletedCourses())
		for _, course := range courses {
			if !completed[course.Title] {
				topic = course.Title
				break
			}
		}
	}

	interests := user.Interests()
	if len(interests) > 0 {
		if len(interests) > quizTopicInterestLimit {
			interests = interests[:quizTopicInterestLimit]
		}
		topic = fmt.Sprintf("%s focusing on %s", topic, strings.Join(interests, ", "))
	}

	return topic
}

// Grade scores submitted answers against the quiz's answer key, records the
// attempt, and folds the score into the learner's running average. An empty
// answer key scores 0 without recording anything.
func (s *QuizService) Grade(ctx context.Context, user *model.UserProfile, answers, correctAnswers map[string]string) (int, error) {
	total := len(correctAnswers)
	if total == 0 {
		return 0, nil
	}

	correct := 0
	for question, want := range correctAnswers {
		if answers[question] == want {
			correct++
		}
	}
	score := int(float64(correct) / float64(total) * 100)

	if err := s.quizzes.CreateQuizResult(ctx, &model.QuizResult{UserID: user.ID, Score: score}); err != nil {
		return 0, fmt.Errorf("record quiz result: %w", err)
	}

	count, err := s.quizzes.CountQuizResults(ctx, user.ID)
	if err != nil {
		return 0, fmt.Errorf("count quiz results: %w", err)
	}
	if count < 1 {
		count = 1
	}

	perf := user.Performance()
	perf.AverageScore = round1((perf.AverageScore*float64(count-1) + float64(score)) / float64(count))
	user.SetPerformance(perf)

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return 0, fmt.Errorf("update user: %w", err)
	}
	if s.profiles != nil {
		if err := s.profiles.DeleteUserProfile(ctx, user.Email); err != nil {
			s.logger.Warn("failed to invalidate cached profile", slog.String("error", err.Error()))
		}
	}

	if err := s.activities.UpsertActivity(ctx, user.ID, s.now(), hoursPerQuiz, score); err != nil {
		s.logger.Warn("failed to record quiz activity", slog.String("error", err.Error()))
	}

	return score, nil
}

// round1 rounds to one decimal place.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
