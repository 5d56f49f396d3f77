package service

import (
	"context"
	"log/slog"

	"github.com/umeshgupta05/SmartPathAI/internal/model"
)

const (
	// RecommendedCourseCount is how many courses one generation call asks for.
	RecommendedCourseCount = 5
	// RecommendedCertCount is how many certifications one generation call asks for.
	RecommendedCertCount = 3
	// fallbackListLimit bounds DB reads when generation is unavailable.
	fallbackListLimit = 50
)

// RecommendationService produces course and certification recommendations,
// generating them with AI and persisting new ones for offline fallback.
type RecommendationService struct {
	courses CourseStore
	certs   CertificationStore
	gen     Generator
	cache   RecommendationCache
	logger  *slog.Logger
}

// NewRecommendationService creates a new RecommendationService.
func NewRecommendationService(courses CourseStore, certs CertificationStore, gen Generator, cache RecommendationCache, logger *slog.Logger) *RecommendationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecommendationService{
		courses: courses,
		certs:   certs,
		gen:     gen,
		cache:   cache,
		logger:  logger,
	}
}

// RecommendCourses returns courses tailored to the given interests. Freshly
// generated results are cached and persisted; when generation fails, stored
// courses are returned instead.
func (s *RecommendationService) RecommendCourses(ctx context.Context, interests []string) ([]model.Course, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetCourses(ctx, interests); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	generated, err := s.gen.GenerateCourses(ctx, interests, RecommendedCourseCount)
	if err == nil && len(generated) > 0 {
		if err := s.courses.SaveCourses(ctx, generated); err != nil {
			s.logger.Warn("could not persist generated courses", slog.String("error", err.Error()))
		}
		if s.cache != nil {
			if err := s.cache.SetCourses(ctx, interests, generated); err != nil {
				s.logger.Warn("could not cache generated courses", slog.String("error", err.Error()))
			}
		}
		return generated, nil
	}
	if err != nil {
		s.logger.Warn("course generation failed, serving stored courses", slog.String("error", err.Error()))
	}

	return s.courses.ListCourses(ctx, fallbackListLimit)
}

// RecommendCertifications mirrors RecommendCourses for certifications.
func (s *RecommendationService) RecommendCertifications(ctx context.Context, interests []string) ([]model.Certification, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetCertifications(ctx, interests); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	generated, err := s.gen.GenerateCertifications(ctx, interests, RecommendedCertCount)
	if err == nil && len(generated) > 0 {
		if err := s.certs.SaveCertifications(ctx, generated); err != nil {
			s.logger.Warn("could not persist generated certifications", slog.String("error", err.Error()))
		}
		if s.cache != nil {
			if err := s.cache.SetCertifications(ctx, interests, generated); err != nil {
				s.logger.Warn("could not cache generated certifications", slog.String("error", err.Error()))
			}
		}
		return generated, nil
	}
	if err != nil {
		s.logger.Warn("certification generation failed, serving stored certifications", slog.String("error", err.Error()))
	}

	return s.certs.ListCertifications(ctx, fallbackListLimit)
}

// EnsureSeedData generates and stores an initial batch of courses and
// certifications when the tables are still empty, so dashboard cards have
// something to show for a brand-new deployment.
func (s *RecommendationService) EnsureSeedData(ctx context.Context, interests []string) {
	has, err := s.courses.HasCourses(ctx)
	if err != nil {
		s.logger.Warn("could not check stored courses", slog.String("error", err.Error()))
		return
	}
	if !has {
		generated, err := s.gen.GenerateCourses(ctx, interests, RecommendedCourseCount)
		if err != nil {
			s.logger.Warn("seed course generation failed", slog.String("error", err.Error()))
		} else if err := s.courses.SaveCourses(ctx, generated); err != nil {
			s.logger.Warn("could not persist seed courses", slog.String("error", err.Error()))
		}
	}

	certs, err := s.certs.ListCertifications(ctx, 1)
	if err != nil {
		s.logger.Warn("could not check stored certifications", slog.String("error", err.Error()))
		return
	}
	if len(certs) == 0 {
		generated, err := s.gen.GenerateCertifications(ctx, interests, RecommendedCertCount)
		if err != nil {
			s.logger.Warn("seed certification generation failed", slog.String("error", err.Error()))
		} else if err := s.certs.SaveCertifications(ctx, generated); err != nil {
			s.logger.Warn("could not persist seed certifications", slog.String("error", err.Error()))
		}
	}
}
