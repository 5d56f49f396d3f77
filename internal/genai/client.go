// Package genai is a client for the Google Gemini generateContent API.
// All generation methods request structured JSON output and decode it into
// domain types. Failures are returned as errors so callers can fall back to
// stored data.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/umeshgupta05/SmartPathAI/internal/model"
)

const (
	defaultBaseURL        = "https://generativelanguage.googleapis.com"
	defaultModel          = "gemini-2.5-flash"
	defaultMaxRetries     = 3
	defaultInitialBackoff = 10 * time.Second

	// ClientTimeout is the total request timeout.
	ClientTimeout = 60 * time.Second
	// DialTimeout is the connection timeout.
	DialTimeout = 10 * time.Second
	// TLSHandshakeTimeout is the TLS negotiation timeout.
	TLSHandshakeTimeout = 10 * time.Second
)

// ErrEmptyResponse is returned when the API answers without any candidate text.
var ErrEmptyResponse = errors.New("genai: empty response")

// Config holds the Gemini client settings.
type Config struct {
	// APIKey authenticates requests. Required.
	APIKey string
	// Model is the generation model name. Defaults to gemini-2.5-flash.
	Model string
	// BaseURL overrides the API endpoint. Used by tests.
	BaseURL string
	// HTTPClient overrides the default HTTP client.
	HTTPClient *http.Client
	// Logger receives retry and failure events. Defaults to slog.Default().
	Logger *slog.Logger
	// MaxRetries bounds rate-limit retries. Defaults to 3.
	MaxRetries int
	// InitialBackoff is the first retry delay when the server does not
	// suggest one. Defaults to 10s; tests shrink it.
	InitialBackoff time.Duration
}

// Client calls the Gemini generateContent endpoint.
type Client struct {
	apiKey         string
	model          string
	baseURL        string
	httpClient     *http.Client
	logger         *slog.Logger
	maxRetries     int
	initialBackoff time.Duration
}

// NewClient creates a Gemini client from explicit configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("genai: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = newHTTPClient()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = defaultInitialBackoff
	}

	return &Client{
		apiKey:         cfg.APIKey,
		model:          cfg.Model,
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:     cfg.HTTPClient,
		logger:         cfg.Logger,
		maxRetries:     cfg.MaxRetries,
		initialBackoff: cfg.InitialBackoff,
	}, nil
}

// newHTTPClient creates an HTTP client configured for generation calls,
// which can take tens of seconds on large prompts.
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: ClientTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   DialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout: TLSHandshakeTimeout,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// Wire types for the generateContent request and response.

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string         `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// generate performs a single generateContent call with rate-limit retries
// and returns the first candidate's text.
func (c *Client) generate(ctx context.Context, prompt string, cfg *generationConfig) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: cfg,
	})
	if err != nil {
		return "", fmt.Errorf("genai: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)

	delay := c.initialBackoff
	for attempt := 0; ; attempt++ {
		text, retryable, err := c.doRequest(ctx, url, body)
		if err == nil {
			return text, nil
		}
		if !retryable || attempt >= c.maxRetries {
			return "", err
		}

		wait := delay
		if suggested, ok := suggestedDelay(err.Error()); ok {
			wait = suggested
		}
		c.logger.Info("gemini rate limited, retrying",
			slog.Duration("wait", wait),
			slog.Int("attempt", attempt+1),
			slog.Int("max_retries", c.maxRetries),
		)
		if err := sleepContext(ctx, wait); err != nil {
			return "", err
		}
		delay = min(delay*2, maxBackoff)
	}
}

// doRequest performs one HTTP round trip. The second return value reports
// whether the failure was a rate limit worth retrying.
func (c *Client) doRequest(ctx context.Context, url string, body []byte) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("genai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("genai: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", false, fmt.Errorf("genai: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := fmt.Errorf("genai: status %d: %s", resp.StatusCode, respBody)
		return "", isRateLimited(resp.StatusCode, string(respBody)), apiErr
	}

	var decoded generateResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return "", false, fmt.Errorf("genai: decode response: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", false, ErrEmptyResponse
	}

	text := decoded.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", false, ErrEmptyResponse
	}
	return text, false, nil
}

// GenerateCourses asks Gemini for count course recommendations tailored to
// the given interests.
func (c *Client) GenerateCourses(ctx context.Context, interests []string, count int) ([]model.Course, error) {
	interestStr := joinInterests(interests, "general programming and technology")
	prompt := fmt.Sprintf(
		"You are an expert career and education adviser. "+
			"Generate exactly %d real, currently available online courses "+
			"for someone interested in: %s.",
		count, interestStr,
	)

	text, err := c.generate(ctx, prompt, &generationConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   courseListSchema,
	})
	if err != nil {
		return nil, err
	}

	var result struct {
		Courses []model.Course `json:"courses"`
	}
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("genai: decode courses: %w", err)
	}
	if len(result.Courses) > count {
		result.Courses = result.Courses[:count]
	}
	for i := range result.Courses {
		result.Courses[i].Clamp()
	}
	return result.Courses, nil
}

// GenerateCertifications asks Gemini for count certification recommendations.
func (c *Client) GenerateCertifications(ctx context.Context, interests []string, count int) ([]model.Certification, error) {
	interestStr := joinInterests(interests, "general technology")
	prompt := fmt.Sprintf(
		"You are an expert career adviser. "+
			"Recommend exactly %d real, industry-recognised certifications "+
			"for someone interested in: %s.",
		count, interestStr,
	)

	text, err := c.generate(ctx, prompt, &generationConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   certificationListSchema,
	})
	if err != nil {
		return nil, err
	}

	var result struct {
		Certifications []model.Certification `json:"certifications"`
	}
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("genai: decode certifications: %w", err)
	}
	if len(result.Certifications) > count {
		result.Certifications = result.Certifications[:count]
	}
	for i := range result.Certifications {
		result.Certifications[i].Clamp()
	}
	return result.Certifications, nil
}

// GenerateQuiz asks Gemini for a multiple-choice quiz about a topic.
func (c *Client) GenerateQuiz(ctx context.Context, topic string, count int) (*model.Quiz, error) {
	prompt := fmt.Sprintf(
		"You are an expert quiz master. "+
			"Create exactly %d multiple-choice questions about: %s. "+
			"Each question must have exactly 4 options.",
		count, topic,
	)

	text, err := c.generate(ctx, prompt, &generationConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   quizSchema,
	})
	if err != nil {
		return nil, err
	}

	var quiz model.Quiz
	if err := json.Unmarshal([]byte(text), &quiz); err != nil {
		return nil, fmt.Errorf("genai: decode quiz: %w", err)
	}
	return &quiz, nil
}

// Chat returns a conversational reply to a student message. Name and
// interests, when present, are folded into the prompt for personalisation.
func (c *Client) Chat(ctx context.Context, message, userName string, interests []string) (string, error) {
	var contextParts []string
	if userName != "" {
		contextParts = append(contextParts, fmt.Sprintf("The student's name is %s.", userName))
	}
	if len(interests) > 0 {
		contextParts = append(contextParts, fmt.Sprintf("Their interests are: %s.", strings.Join(interests, ", ")))
	}

	prompt := fmt.Sprintf(
		"You are SmartPathAI, a friendly and helpful AI learning assistant. "+
			"Keep answers concise (2-3 sentences). %s\n\nStudent says: %s",
		strings.Join(contextParts, " "), message,
	)

	text, err := c.generate(ctx, prompt, nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func joinInterests(interests []string, fallback string) string {
	if len(interests) == 0 {
		return fallback
	}
	return strings.Join(interests, ", ")
}
