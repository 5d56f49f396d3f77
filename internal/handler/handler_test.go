package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/umeshgupta05/SmartPathAI/internal/auth"
	"github.com/umeshgupta05/SmartPathAI/internal/model"
	"github.com/umeshgupta05/SmartPathAI/internal/repository"
	"github.com/umeshgupta05/SmartPathAI/internal/service"
)

// ============================================================================
// Fakes
// ============================================================================

type memUserStore struct {
	users  map[string]*model.UserProfile
	nextID int64
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]*model.UserProfile)}
}

func (m *memUserStore) CreateUser(ctx context.Context, user *model.UserProfile) error {
	if _, ok := m.users[user.Email]; ok {
		return repository.ErrEmailExists
	}
	m.nextID++
	user.ID = m.nextID
	clone := *user
	m.users[user.Email] = &clone
	return nil
}

func (m *memUserStore) GetUserByEmail(ctx context.Context, email string) (*model.UserProfile, error) {
	user, ok := m.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (m *memUserStore) UpdateUser(ctx context.Context, user *model.UserProfile) error {
	clone := *user
	m.users[user.Email] = &clone
	return nil
}

func (m *memUserStore) UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error {
	return nil
}

type memCourseStore struct {
	courses []model.Course
}

func (m *memCourseStore) SaveCourses(ctx context.Context, courses []model.Course) error {
	m.courses = append(m.courses, courses...)
	return nil
}

func (m *memCourseStore) ListCourses(ctx context.Context, limit int) ([]model.Course, error) {
	if len(m.courses) > limit {
		return m.courses[:limit], nil
	}
	return m.courses, nil
}

func (m *memCourseStore) HasCourses(ctx context.Context) (bool, error) {
	return len(m.courses) > 0, nil
}

type memCertStore struct {
	certs []model.Certification
}

func (m *memCertStore) SaveCertifications(ctx context.Context, certs []model.Certification) error {
	m.certs = append(m.certs, certs...)
	return nil
}

func (m *memCertStore) ListCertifications(ctx context.Context, limit int) ([]model.Certification, error) {
	return m.certs, nil
}

type memQuizStore struct {
	results []model.QuizResult
}

func (m *memQuizStore) CreateQuizResult(ctx context.Context, result *model.QuizResult) error {
	m.results = append(m.results, *result)
	return nil
}

func (m *memQuizStore) CountQuizResults(ctx context.Context, userID int64) (int, error) {
	count := 0
	for _, r := range m.results {
		if r.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (m *memQuizStore) BestQuizScore(ctx context.Context, userID int64) (int, error) {
	best := 0
	for _, r := range m.results {
		if r.UserID == userID && r.Score > best {
			best = r.Score
		}
	}
	return best, nil
}

type memActivityStore struct{}

func (memActivityStore) UpsertActivity(ctx context.Context, userID int64, day time.Time, hours float64, score int) error {
	return nil
}

func (memActivityStore) ListRecentActivities(ctx context.Context, userID int64, limit int) ([]model.UserActivity, error) {
	return nil, nil
}

func (memActivityStore) ListActivityDates(ctx context.Context, userID int64) ([]time.Time, error) {
	return nil, nil
}

type stubGenerator struct {
	courses []model.Course
	certs   []model.Certification
	quiz    *model.Quiz
	reply   string
}

func (s *stubGenerator) GenerateCourses(ctx context.Context, interests []string, count int) ([]model.Course, error) {
	return s.courses, nil
}

func (s *stubGenerator) GenerateCertifications(ctx context.Context, interests []string, count int) ([]model.Certification, error) {
	return s.certs, nil
}

func (s *stubGenerator) GenerateQuiz(ctx context.Context, topic string, count int) (*model.Quiz, error) {
	return s.quiz, nil
}

func (s *stubGenerator) Chat(ctx context.Context, message, userName string, interests []string) (string, error) {
	return s.reply, nil
}

// ============================================================================
// Setup
// ============================================================================

type testEnv struct {
	handler *Handler
	users   *memUserStore
	courses *memCourseStore
	gen     *stubGenerator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	users := newMemUserStore()
	courses := &memCourseStore{}
	certs := &memCertStore{}
	quizzes := &memQuizStore{}
	activities := memActivityStore{}
	gen := &stubGenerator{
		quiz:  &model.Quiz{Topic: "Go", Questions: []model.QuizQuestion{}},
		reply: "Hello!",
	}

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	userSvc := service.NewUserService(users, nil, tokens, logger)
	recSvc := service.NewRecommendationService(courses, certs, gen, nil, logger)
	progressSvc := service.NewProgressService(users, courses, activities, quizzes, recSvc, nil, logger)
	quizSvc := service.NewQuizService(users, courses, quizzes, activities, gen, nil, logger)
	chatSvc := service.NewChatService(gen, logger)

	return &testEnv{
		handler: New(userSvc, recSvc, progressSvc, quizSvc, chatSvc, logger),
		users:   users,
		courses: courses,
		gen:     gen,
	}
}

func (e *testEnv) signedInUser(t *testing.T) *model.UserProfile {
	t.Helper()
	user := &model.UserProfile{ID: 1, Name: "Priya", Email: "priya@example.com"}
	user.SetInterests([]string{"AI"})
	user.SetPreferences(model.DefaultPreferences())
	user.SetPerformance(model.DefaultPerformance())
	user.SetCompletedCourses(nil)
	user.SetEarnedCertifications(nil)
	e.users.users[user.Email] = user
	return user
}

func doRequest(t *testing.T, fn http.HandlerFunc, method, target, body string, user *model.UserProfile) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if user != nil {
		req = req.WithContext(auth.ContextWithUser(req.Context(), user))
	}

	rec := httptest.NewRecorder()
	fn(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("response not JSON: %v\n%s", err, rec.Body.String())
	}
}

func messageOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, rec, &body)
	return body.Message
}

// ============================================================================
// Root and auth
// ============================================================================

func TestHello(t *testing.T) {
	env := newTestEnv(t)

	rec := doRequest(t, env.handler.Hello, http.MethodGet, "/", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := messageOf(t, rec); got != "SmartPathAI backend is running" {
		t.Errorf("message = %q", got)
	}
}

func TestAuth_SignUp(t *testing.T) {
	env := newTestEnv(t)

	body := `{"signup":true,"name":"Priya","email":"priya@example.com","password":"secret123","interests":["AI"]}`
	rec := doRequest(t, env.handler.Auth, http.MethodPost, "/api/auth", body, nil)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Message string `json:"message"`
		Token   string `json:"token"`
		User    struct {
			Name      string   `json:"name"`
			Email     string   `json:"email"`
			Interests []string `json:"interests"`
		} `json:"user"`
	}
	decodeBody(t, rec, &resp)

	if resp.Message != "Account created successfully" {
		t.Errorf("message = %q", resp.Message)
	}
	if resp.Token == "" {
		t.Error("no token in response")
	}
	if resp.User.Email != "priya@example.com" || len(resp.User.Interests) != 1 {
		t.Errorf("user = %+v", resp.User)
	}
}

func TestAuth_SignUp_Validation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantMessage string
	}{
		{
			"missing credentials",
			`{"signup":true,"name":"Priya"}`,
			http.StatusBadRequest,
			"Email and password are required",
		},
		{
			"bad email",
			`{"signup":true,"name":"Priya","email":"nope","password":"secret123"}`,
			http.StatusBadRequest,
			"Please provide a valid email address",
		},
		{
			"short name",
			`{"signup":true,"name":"P","email":"p@example.com","password":"secret123"}`,
			http.StatusBadRequest,
			"Name must be at least 2 characters",
		},
		{
			"short password",
			`{"signup":true,"name":"Priya","email":"p@example.com","password":"12345"}`,
			http.StatusBadRequest,
			"Password must be at least 6 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, env.handler.Auth, http.MethodPost, "/api/auth", tt.body, nil)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := messageOf(t, rec); got != tt.wantMessage {
				t.Errorf("message = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestAuth_SignUp_Duplicate(t *testing.T) {
	env := newTestEnv(t)

	body := `{"signup":true,"name":"Priya","email":"priya@example.com","password":"secret123"}`
	doRequest(t, env.handler.Auth, http.MethodPost, "/api/auth", body, nil)
	rec := doRequest(t, env.handler.Auth, http.MethodPost, "/api/auth", body, nil)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if got := messageOf(t, rec); got != "An account with this email already exists" {
		t.Errorf("message = %q", got)
	}
}

func TestAuth_LoginFlow(t *testing.T) {
	env := newTestEnv(t)

	signup := `{"signup":true,"name":"Priya","email":"priya@example.com","password":"secret123"}`
	doRequest(t, env.handler.Auth, http.MethodPost, "/api/auth", signup, nil)

	login := `{"email":"priya@example.com","password":"secret123"}`
	rec := doRequest(t, env.handler.Auth, http.MethodPost, "/api/auth", login, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	decodeBody(t, rec, &resp)
	if resp.Message != "Login successful" || resp.Token == "" {
		t.Errorf("resp = %+v", resp)
	}

	wrong := `{"email":"priya@example.com","password":"wrongpass"}`
	rec = doRequest(t, env.handler.Auth, http.MethodPost, "/api/auth", wrong, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if got := messageOf(t, rec); got != "Invalid email or password" {
		t.Errorf("message = %q", got)
	}
}

// ============================================================================
// Profile
// ============================================================================

func TestGetProfile(t *testing.T) {
	env := newTestEnv(t)
	user := env.signedInUser(t)

	rec := doRequest(t, env.handler.GetProfile, http.MethodGet, "/api/profile", "", user)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Name        string   `json:"name"`
		Email       string   `json:"email"`
		Interests   []string `json:"interests"`
		Preferences struct {
			Pace          string `json:"pace"`
			ContentFormat string `json:"content_format"`
		} `json:"preferences"`
	}
	decodeBody(t, rec, &resp)

	if resp.Name != "Priya" || resp.Email != "priya@example.com" {
		t.Errorf("identity = %q/%q", resp.Name, resp.Email)
	}
	if resp.Preferences.Pace != "Moderate" {
		t.Errorf("pace = %q", resp.Preferences.Pace)
	}
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	user := env.signedInUser(t)

	body := `{"name":"Priya S","interests":["Cloud"],"preferences":{"pace":"Fast"}}`
	rec := doRequest(t, env.handler.UpdateProfile, http.MethodPut, "/api/profile", body, user)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if got := messageOf(t, rec); got != "Profile updated successfully" {
		t.Errorf("message = %q", got)
	}

	stored := env.users.users[user.Email]
	if stored.Name != "Priya S" {
		t.Errorf("name = %q", stored.Name)
	}
	if got := stored.Interests(); len(got) != 1 || got[0] != "Cloud" {
		t.Errorf("interests = %v", got)
	}
	if prefs := stored.Preferences(); prefs.Pace != "Fast" || prefs.ContentFormat != "Video" {
		t.Errorf("preferences = %+v", prefs)
	}
}

// ============================================================================
// Dashboard, courses, progress
// ============================================================================

func TestDashboard(t *testing.T) {
	env := newTestEnv(t)
	user := env.signedInUser(t)
	user.SetCompletedCourses([]string{"Course 1"})
	env.courses.courses = []model.Course{
		{Title: "Course 1"}, {Title: "Course 2"}, {Title: "Course 3"},
	}

	rec := doRequest(t, env.handler.Dashboard, http.MethodGet, "/api/dashboard", "", user)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		CurrentCourse      string           `json:"currentCourse"`
		CompletedCourses   int              `json:"completedCourses"`
		OverallProgress    int              `json:"overallProgress"`
		RecommendedCourses []map[string]any `json:"recommendedCourses"`
	}
	decodeBody(t, rec, &resp)

	if resp.CurrentCourse != "Course 2" {
		t.Errorf("currentCourse = %q", resp.CurrentCourse)
	}
	if resp.CompletedCourses != 1 || resp.OverallProgress != 25 {
		t.Errorf("counts = %d/%d", resp.CompletedCourses, resp.OverallProgress)
	}
	if len(resp.RecommendedCourses) != 2 {
		t.Fatalf("recommended = %d", len(resp.RecommendedCourses))
	}
	// Display format uses capitalised keys.
	if _, ok := resp.RecommendedCourses[0]["Title"]; !ok {
		t.Errorf("course keys = %v", resp.RecommendedCourses[0])
	}
}

func TestRecommendCourses_DisplayKeys(t *testing.T) {
	env := newTestEnv(t)
	user := env.signedInUser(t)
	env.gen.courses = []model.Course{{
		Title: "Practical Go", ShortIntro: "Build services.", Skills: "Go",
		Category: "Programming", Duration: "6 weeks", Rating: "4.7",
		Site: "Coursera", URL: "https://example.com",
	}}

	rec := doRequest(t, env.handler.RecommendCourses, http.MethodGet, "/api/recommend_courses", "", user)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp []map[string]string
	decodeBody(t, rec, &resp)
	if len(resp) != 1 {
		t.Fatalf("got %d courses", len(resp))
	}
	for _, key := range []string{"Title", "Short Intro", "Skills", "Category", "Duration", "Rating", "Site", "URL"} {
		if _, ok := resp[0][key]; !ok {
			t.Errorf("missing key %q in %v", key, resp[0])
		}
	}
}

func TestMarkCompleted(t *testing.T) {
	env := newTestEnv(t)
	user := env.signedInUser(t)

	rec := doRequest(t, env.handler.MarkCompleted, http.MethodPost, "/api/mark_completed", `{"courseTitle":"Practical Go"}`, user)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if got := messageOf(t, rec); got != "Course marked as completed" {
		t.Errorf("message = %q", got)
	}

	rec = doRequest(t, env.handler.MarkCompleted, http.MethodPost, "/api/mark_completed", `{}`, user)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for missing title", rec.Code)
	}
	if got := messageOf(t, rec); got != "courseTitle is required" {
		t.Errorf("message = %q", got)
	}
}

func TestUserProgress(t *testing.T) {
	env := newTestEnv(t)
	user := env.signedInUser(t)
	user.SetCompletedCourses([]string{"A", "B"})

	rec := doRequest(t, env.handler.UserProgress, http.MethodGet, "/api/user_progress", "", user)

	var resp struct {
		CompletedCourses []string `json:"completed_courses"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.CompletedCourses) != 2 {
		t.Errorf("completed = %v", resp.CompletedCourses)
	}
}

// ============================================================================
// Certifications
// ============================================================================

func TestEarnedCertifications_EmptyIsArray(t *testing.T) {
	env := newTestEnv(t)
	user := env.signedInUser(t)

	rec := doRequest(t, env.handler.EarnedCertifications, http.MethodGet, "/api/earned_certifications", "", user)
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("body = %s, want []", body)
	}
}

func TestMarkCertificationCompleted(t *testing.T) {
	env := newTestEnv(t)
	user := env.signedInUser(t)

	rec := doRequest(t, env.handler.MarkCertificationCompleted, http.MethodPost, "/api/mark_certification_completed", `{"title":"OCA"}`, user)
	if got := messageOf(t, rec); got != "Certification marked as completed" {
		t.Errorf("message = %q", got)
	}

	rec = doRequest(t, env.handler.MarkCertificationCompleted, http.MethodPost, "/api/mark_certification_completed", `{}`, user)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// ============================================================================
// Quiz and chat
// ============================================================================

func TestGenerateQuiz(t *testing.T) {
	env := newTestEnv(t)
	user := env.signedInUser(t)
	env.gen.quiz = &model.Quiz{
		Topic: "Go",
		Questions: []model.QuizQuestion{
			{Question: "q1", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a"},
		},
	}

	rec := doRequest(t, env.handler.GenerateQuiz, http.MethodGet, "/api/generate_quiz", "", user)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		QuizID    string `json:"quiz_id"`
		Topic     string `json:"topic"`
		Questions []any  `json:"questions"`
	}
	decodeBody(t, rec, &resp)
	if resp.QuizID == "" {
		t.Error("quiz_id not assigned")
	}
	if len(resp.Questions) != 1 {
		t.Errorf("questions = %d", len(resp.Questions))
	}
}

func TestCheckAnswers(t *testing.T) {
	env := newTestEnv(t)
	user := env.signedInUser(t)

	body := `{"answers":{"q1":"a","q2":"x"},"correct_answers":{"q1":"a","q2":"b"}}`
	rec := doRequest(t, env.handler.CheckAnswers, http.MethodPost, "/api/check_answers", body, user)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Score int `json:"score"`
	}
	decodeBody(t, rec, &resp)
	if resp.Score != 50 {
		t.Errorf("score = %d, want 50", resp.Score)
	}
}

func TestCheckAnswers_EmptyKey(t *testing.T) {
	env := newTestEnv(t)
	user := env.signedInUser(t)

	rec := doRequest(t, env.handler.CheckAnswers, http.MethodPost, "/api/check_answers", `{}`, user)

	var resp struct {
		Score int `json:"score"`
	}
	decodeBody(t, rec, &resp)
	if rec.Code != http.StatusOK || resp.Score != 0 {
		t.Errorf("status/score = %d/%d, want 200/0", rec.Code, resp.Score)
	}
}

func TestChatbot(t *testing.T) {
	env := newTestEnv(t)
	user := env.signedInUser(t)
	env.gen.reply = "Try the Go tour."

	rec := doRequest(t, env.handler.Chatbot, http.MethodPost, "/api/chatbot", `{"message":"How do I start?"}`, user)

	var resp struct {
		Response string `json:"response"`
	}
	decodeBody(t, rec, &resp)
	if resp.Response != "Try the Go tour." {
		t.Errorf("response = %q", resp.Response)
	}
}

func TestChatbot_EmptyMessage(t *testing.T) {
	env := newTestEnv(t)
	user := env.signedInUser(t)

	rec := doRequest(t, env.handler.Chatbot, http.MethodPost, "/api/chatbot", `{"message":"  "}`, user)

	var resp struct {
		Response string `json:"response"`
	}
	decodeBody(t, rec, &resp)
	if rec.Code != http.StatusOK || resp.Response != "Please enter a message." {
		t.Errorf("status/response = %d/%q", rec.Code, resp.Response)
	}
}
