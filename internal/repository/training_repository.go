package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/safestep/safestep-api/internal/models"
)

// TrainingRepository handles persistence of training events.
type TrainingRepository struct {
	db *sqlx.DB
}

// NewTrainingRepository constructs the repository.
func NewTrainingRepository(db *sqlx.DB) *TrainingRepository {
	return &TrainingRepository{db: db}
}

const trainingColumns = `id, title, start_date, end_date, trainer, location, latitude, longitude, capacity, enrolled, status, created_at`

// Create persists a new training event starting empty and active.
func (r *TrainingRepository) Create(ctx context.Context, training *models.TrainingEvent) error {
	if training.ID == "" {
		training.ID = uuid.NewString()
	}
	if training.Status == "" {
		training.Status = models.TrainingStatusActive
	}
	if training.CreatedAt.IsZero() {
		training.CreatedAt = time.Now().UTC()
	}
	training.Enrolled = 0

	const query = `INSERT INTO training_events (id, title, start_date, end_date, trainer, location, latitude, longitude, capacity, enrolled, status, created_at)
        VALUES (:id, :title, :start_date, :end_date, :trainer, :location, :latitude, :longitude, :capacity, :enrolled, :status, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, training); err != nil {
		return fmt.Errorf("create training: %w", err)
	}
	return nil
}

// List returns every training event ordered by start date descending.
// No pagination: acceptable for catalog sizes in scope.
func (r *TrainingRepository) List(ctx context.Context) ([]models.TrainingEvent, error) {
	query := fmt.Sprintf(`SELECT %s FROM training_events ORDER BY start_date DESC`, trainingColumns)
	var trainings []models.TrainingEvent
	if err := r.db.SelectContext(ctx, &trainings, query); err != nil {
		return nil, fmt.Errorf("list trainings: %w", err)
	}
	return trainings, nil
}

// FindByID returns a training event by identifier.
func (r *TrainingRepository) FindByID(ctx context.Context, id string) (*models.TrainingEvent, error) {
	query := fmt.Sprintf(`SELECT %s FROM training_events WHERE id = $1 LIMIT 1`, trainingColumns)
	var training models.TrainingEvent
	if err := r.db.GetContext(ctx, &training, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find training by id: %w", err)
	}
	return &training, nil
}

// Totals returns the training count and the sum of enrolled seats.
func (r *TrainingRepository) Totals(ctx context.Context) (trainings int, participants int, err error) {
	const query = `SELECT COUNT(*), COALESCE(SUM(enrolled), 0) FROM training_events`
	if err := r.db.QueryRowxContext(ctx, query).Scan(&trainings, &participants); err != nil {
		return 0, 0, fmt.Errorf("training totals: %w", err)
	}
	return trainings, participants, nil
}
