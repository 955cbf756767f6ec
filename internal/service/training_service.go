package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/safestep/safestep-api/internal/models"
	appErrors "github.com/safestep/safestep-api/pkg/errors"
)

const dateLayout = "2006-01-02"

type trainingRepository interface {
	Create(ctx context.Context, training *models.TrainingEvent) error
	List(ctx context.Context) ([]models.TrainingEvent, error)
	FindByID(ctx context.Context, id string) (*models.TrainingEvent, error)
}

// CreateTrainingRequest describes a new training event.
type CreateTrainingRequest struct {
	Title     string   `json:"title" validate:"required"`
	StartDate string   `json:"start_date" validate:"required"`
	EndDate   string   `json:"end_date" validate:"required"`
	Trainer   string   `json:"trainer" validate:"required"`
	Location  string   `json:"location" validate:"required"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Capacity  int      `json:"capacity" validate:"required,gt=0"`
}

// TrainingService manages the training catalog.
type TrainingService struct {
	repo      trainingRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTrainingService constructs TrainingService.
func NewTrainingService(repo trainingRepository, validate *validator.Validate, logger *zap.Logger) *TrainingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrainingService{repo: repo, validator: validate, logger: logger}
}

// Create validates and persists a new training event. New events start
// active with zero enrollments.
func (s *TrainingService) Create(ctx context.Context, req CreateTrainingRequest) (*models.TrainingEvent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "title, start_date, end_date, trainer, location and a positive capacity are required")
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid start_date, expected YYYY-MM-DD")
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid end_date, expected YYYY-MM-DD")
	}
	if endDate.Before(startDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end_date must not precede start_date")
	}

	training := &models.TrainingEvent{
		Title:     req.Title,
		StartDate: startDate,
		EndDate:   endDate,
		Trainer:   req.Trainer,
		Location:  req.Location,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Capacity:  req.Capacity,
		Status:    models.TrainingStatusActive,
	}
	if err := s.repo.Create(ctx, training); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create training")
	}

	s.logger.Info("training created", zap.String("training_id", training.ID), zap.Int("capacity", training.Capacity))
	return training, nil
}

// List returns the catalog ordered by start date descending.
func (s *TrainingService) List(ctx context.Context) ([]models.TrainingEvent, error) {
	trainings, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list trainings")
	}
	return trainings, nil
}

// Get returns a single training event.
func (s *TrainingService) Get(ctx context.Context, id string) (*models.TrainingEvent, error) {
	training, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrTrainingNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load training")
	}
	return training, nil
}
