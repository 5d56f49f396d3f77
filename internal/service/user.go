package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/umeshgupta05/SmartPathAI/internal/auth"
	"github.com/umeshgupta05/SmartPathAI/internal/model"
	"github.com/umeshgupta05/SmartPathAI/internal/repository"
)

// User service errors.
var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrNameTooShort       = errors.New("name too short")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const (
	minNameLength     = 2
	minPasswordLength = 6
)

// dummyHash is verified against when login hits an unknown email, so the
// request costs a real argon2 comparison either way and response timing
// does not reveal whether the account exists.
const dummyHash = "$argon2id$v=19$m=65536,t=3,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// UserService handles signup, login and profile updates.
type UserService struct {
	users    UserStore
	profiles ProfileCache
	tokens   *auth.TokenManager
	logger   *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore, profiles ProfileCache, tokens *auth.TokenManager, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		users:    users,
		profiles: profiles,
		tokens:   tokens,
		logger:   logger,
	}
}

// SignUpInput defines input for creating an account.
type SignUpInput struct {
	Name      string
	Email     string
	Password  string
	Interests []string
}

// SignUp validates input, creates the account and returns the new profile
// with a session token.
func (s *UserService) SignUp(ctx context.Context, input SignUpInput) (*model.UserProfile, string, error) {
	email := strings.ToLower(sanitizeText(input.Email))
	password := sanitizeText(input.Password)

	if email == "" || password == "" {
		return nil, "", ErrMissingCredentials
	}
	if !isValidEmail(email) {
		return nil, "", ErrInvalidEmail
	}

	name := sanitizeText(input.Name)
	if utf8.RuneCountInString(name) < minNameLength {
		return nil, "", ErrNameTooShort
	}
	if len(password) < minPasswordLength {
		return nil, "", ErrPasswordTooShort
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.UserProfile{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		LastLogin:    &now,
	}
	user.SetInterests(sanitizeList(input.Interests))
	user.SetPreferences(model.DefaultPreferences())
	user.SetPerformance(model.DefaultPerformance())
	user.SetCompletedCourses(nil)
	user.SetEarnedCertifications(nil)

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

// Login verifies credentials, stamps last_login and returns a session token.
func (s *UserService) Login(ctx context.Context, email, password string) (*model.UserProfile, string, error) {
	email = strings.ToLower(sanitizeText(email))
	password = sanitizeText(password)

	if email == "" || password == "" {
		return nil, "", ErrMissingCredentials
	}
	if !isValidEmail(email) {
		return nil, "", ErrInvalidEmail
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			auth.VerifyPassword(password, dummyHash) //nolint:errcheck
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("get user: %w", err)
	}

	match, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil || !match {
		return nil, "", ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		// Login still succeeds; the stamp is best-effort.
		s.logger.Warn("failed to update last login", slog.String("error", err.Error()))
	}
	user.LastLogin = &now
	s.invalidateProfile(ctx, user.Email)

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

// UpdateProfileInput defines the mutable profile fields. Nil slices and
// pointers leave the current value untouched.
type UpdateProfileInput struct {
	Name        string
	Interests   []string
	Preferences *model.Preferences
}

// UpdateProfile applies the given changes to the user's profile.
func (s *UserService) UpdateProfile(ctx context.Context, user *model.UserProfile, input UpdateProfileInput) error {
	if name := sanitizeText(input.Name); name != "" {
		user.Name = name
	}

	if input.Interests != nil {
		user.SetInterests(sanitizeList(input.Interests))
	}

	if input.Preferences != nil {
		prefs := user.Preferences()
		if pace := sanitizeText(input.Preferences.Pace); pace != "" {
			prefs.Pace = pace
		}
		if format := sanitizeText(input.Preferences.ContentFormat); format != "" {
			prefs.ContentFormat = format
		}
		user.SetPreferences(prefs)
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	s.invalidateProfile(ctx, user.Email)

	return nil
}

func (s *UserService) invalidateProfile(ctx context.Context, email string) {
	if s.profiles == nil {
		return
	}
	if err := s.profiles.DeleteUserProfile(ctx, email); err != nil {
		s.logger.Warn("failed to invalidate cached profile", slog.String("error", err.Error()))
	}
}
