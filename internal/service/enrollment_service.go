package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/safestep/safestep-api/internal/models"
	"github.com/safestep/safestep-api/internal/repository"
	appErrors "github.com/safestep/safestep-api/pkg/errors"
)

type enrollmentRepository interface {
	Enroll(ctx context.Context, userID, trainingID string) (*models.Enrollment, error)
	ListForUser(ctx context.Context, userID string) ([]models.UserEnrollment, error)
}

// EnrollmentService fronts the enrollment engine. All capacity and
// uniqueness enforcement happens atomically inside the repository
// transaction; this layer maps outcomes to client-facing failures. None of
// the failures are retried: each is final for the request that caused it.
type EnrollmentService struct {
	repo   enrollmentRepository
	logger *zap.Logger
}

// NewEnrollmentService constructs EnrollmentService.
func NewEnrollmentService(repo enrollmentRepository, logger *zap.Logger) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, logger: logger}
}

// Enroll registers the user for a training event, enforcing the capacity
// ceiling and the one-active-enrollment-per-pair rule.
func (s *EnrollmentService) Enroll(ctx context.Context, userID, trainingID string) (*models.Enrollment, error) {
	if userID == "" || trainingID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "user and training required")
	}

	enrollment, err := s.repo.Enroll(ctx, userID, trainingID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTrainingMissing):
			return nil, appErrors.ErrTrainingNotFound
		case errors.Is(err, repository.ErrCapacityReached):
			return nil, appErrors.ErrTrainingFull
		case errors.Is(err, repository.ErrDuplicateEnrollment):
			return nil, appErrors.ErrAlreadyEnrolled
		default:
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enroll")
		}
	}

	s.logger.Info("user enrolled",
		zap.String("user_id", userID),
		zap.String("training_id", trainingID),
		zap.String("enrollment_id", enrollment.ID),
	)
	return enrollment, nil
}

// ListForUser returns the trainings a user is enrolled in, newest first.
func (s *EnrollmentService) ListForUser(ctx context.Context, userID string) ([]models.UserEnrollment, error) {
	enrollments, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
	}
	return enrollments, nil
}
