// Package dto defines the JSON request and response shapes of the API.
// Response field names match what the frontend consumes, including the
// capitalised course keys.
package dto

import (
	"github.com/umeshgupta05/SmartPathAI/internal/model"
)

// MessageResponse is the uniform envelope for status and error messages.
type MessageResponse struct {
	Message string `json:"message"`
}

// AuthRequest is the combined signup/login request body.
type AuthRequest struct {
	Signup    bool     `json:"signup"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Interests []string `json:"interests"`
}

// AuthUser is the user summary returned after signup or login.
type AuthUser struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Interests []string `json:"interests"`
}

// AuthResponse is returned after a successful signup or login.
type AuthResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    AuthUser `json:"user"`
}

// NewAuthResponse builds an AuthResponse for a user.
func NewAuthResponse(message, token string, user *model.UserProfile) AuthResponse {
	return AuthResponse{
		Message: message,
		Token:   token,
		User: AuthUser{
			Name:      user.Name,
			Email:     user.Email,
			Interests: user.Interests(),
		},
	}
}

// ProfileResponse is the GET /api/profile body.
type ProfileResponse struct {
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Interests   []string          `json:"interests"`
	Preferences model.Preferences `json:"preferences"`
}

// UpdateProfileRequest is the PUT /api/profile body. Absent fields leave the
// stored value untouched.
type UpdateProfileRequest struct {
	Name        string              `json:"name"`
	Interests   []string            `json:"interests"`
	Preferences *PreferencesRequest `json:"preferences"`
}

// PreferencesRequest carries preference updates.
type PreferencesRequest struct {
	Pace          string `json:"pace"`
	ContentFormat string `json:"content_format"`
}

// CourseResponse is one recommended course in the API's display format.
type CourseResponse struct {
	Title      string `json:"Title"`
	ShortIntro string `json:"Short Intro"`
	Skills     string `json:"Skills"`
	Category   string `json:"Category"`
	Duration   string `json:"Duration"`
	Rating     string `json:"Rating"`
	Site       string `json:"Site"`
	URL        string `json:"URL"`
}

// NewCourseResponse converts a course to its display format.
func NewCourseResponse(c model.Course) CourseResponse {
	return CourseResponse{
		Title:      c.Title,
		ShortIntro: c.ShortIntro,
		Skills:     c.Skills,
		Category:   c.Category,
		Duration:   c.Duration,
		Rating:     c.Rating,
		Site:       c.Site,
		URL:        c.URL,
	}
}

// NewCourseResponseList converts a course slice, never returning nil so the
// body serializes as [] rather than null.
func NewCourseResponseList(courses []model.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, NewCourseResponse(c))
	}
	return out
}

// CertificationResponse is one recommended certification.
type CertificationResponse struct {
	Name        string `json:"name"`
	Difficulty  string `json:"difficulty"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// NewCertificationResponseList converts a certification slice.
func NewCertificationResponseList(certs []model.Certification) []CertificationResponse {
	out := make([]CertificationResponse, 0, len(certs))
	for _, c := range certs {
		out = append(out, CertificationResponse{
			Name:        c.Name,
			Difficulty:  c.Difficulty,
			Description: c.Description,
			Link:        c.Link,
		})
	}
	return out
}

// DashboardResponse is the GET /api/dashboard body.
type DashboardResponse struct {
	CurrentCourse      string           `json:"currentCourse"`
	CompletedCourses   int              `json:"completedCourses"`
	Certifications     int              `json:"certifications"`
	OverallProgress    int              `json:"overallProgress"`
	RecommendedCourses []CourseResponse `json:"recommendedCourses"`
}

// UserProgressResponse is the GET /api/user_progress body.
type UserProgressResponse struct {
	CompletedCourses []string `json:"completed_courses"`
}

// MarkCompletedRequest is the POST /api/mark_completed body.
type MarkCompletedRequest struct {
	CourseTitle string `json:"courseTitle"`
}

// MarkCertificationRequest is the POST /api/mark_certification_completed body.
type MarkCertificationRequest struct {
	Title string `json:"title"`
}

// CheckAnswersRequest is the POST /api/check_answers body. Both maps key by
// question text; the client sends back the answer key it received with the
// generated quiz.
type CheckAnswersRequest struct {
	Answers        map[string]string `json:"answers"`
	CorrectAnswers map[string]string `json:"correct_answers"`
}

// ScoreResponse is the POST /api/check_answers result.
type ScoreResponse struct {
	Score int `json:"score"`
}

// ChatRequest is the POST /api/chatbot body.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the POST /api/chatbot result.
type ChatResponse struct {
	Response string `json:"response"`
}
