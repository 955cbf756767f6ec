package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/safestep/safestep-api/internal/models"
)

// Outcomes of the enroll transaction the service layer maps to client-facing
// failures.
var (
	ErrTrainingMissing     = errors.New("training not found")
	ErrCapacityReached     = errors.New("training capacity reached")
	ErrDuplicateEnrollment = errors.New("enrollment already exists")
)

// EnrollmentRepository owns the enrollment ledger and the capacity-controlled
// enroll transaction.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Enroll registers a user to a training event as one atomic unit. The
// training row is locked for the duration of the transaction, so the
// capacity check and the counter increment cannot interleave with a
// concurrent enroll for the same training. The partial unique index on
// (user_id, training_id) backstops the duplicate check.
func (r *EnrollmentRepository) Enroll(ctx context.Context, userID, trainingID string) (*models.Enrollment, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin enroll tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var seat struct {
		Capacity int `db:"capacity"`
		Enrolled int `db:"enrolled"`
	}
	const lockQuery = `SELECT capacity, enrolled FROM training_events WHERE id = $1 FOR UPDATE`
	if err := tx.GetContext(ctx, &seat, lockQuery, trainingID); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTrainingMissing
		}
		return nil, fmt.Errorf("lock training: %w", err)
	}

	if seat.Enrolled >= seat.Capacity {
		return nil, ErrCapacityReached
	}

	var exists int
	const existsQuery = `SELECT 1 FROM enrollments WHERE user_id = $1 AND training_id = $2 AND status <> $3 LIMIT 1`
	err = tx.GetContext(ctx, &exists, existsQuery, userID, trainingID, models.EnrollmentStatusCancelled)
	if err == nil {
		return nil, ErrDuplicateEnrollment
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("check existing enrollment: %w", err)
	}

	enrollment := &models.Enrollment{
		ID:             uuid.NewString(),
		UserID:         userID,
		TrainingID:     trainingID,
		Status:         models.EnrollmentStatusActive,
		EnrollmentDate: time.Now().UTC(),
	}
	const insertQuery = `INSERT INTO enrollments (id, user_id, training_id, status, enrollment_date)
        VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.ExecContext(ctx, insertQuery, enrollment.ID, enrollment.UserID, enrollment.TrainingID, enrollment.Status, enrollment.EnrollmentDate); err != nil {
		if IsUniqueViolation(err) {
			return nil, ErrDuplicateEnrollment
		}
		return nil, fmt.Errorf("insert enrollment: %w", err)
	}

	const incrementQuery = `UPDATE training_events SET enrolled = enrolled + 1 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, incrementQuery, trainingID); err != nil {
		return nil, fmt.Errorf("increment enrolled: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit enroll tx: %w", err)
	}
	return enrollment, nil
}

// ListForUser returns the trainings a user is enrolled in, newest start date
// first, with the enrollment date alongside.
func (r *EnrollmentRepository) ListForUser(ctx context.Context, userID string) ([]models.UserEnrollment, error) {
	const query = `SELECT te.id, te.title, te.start_date, te.end_date, te.trainer, te.location, te.latitude, te.longitude,
        te.capacity, te.enrolled, te.status, te.created_at, e.enrollment_date
        FROM training_events te
        JOIN enrollments e ON te.id = e.training_id
        WHERE e.user_id = $1 AND e.status <> $2
        ORDER BY te.start_date DESC`
	var enrollments []models.UserEnrollment
	if err := r.db.SelectContext(ctx, &enrollments, query, userID, models.EnrollmentStatusCancelled); err != nil {
		return nil, fmt.Errorf("list user enrollments: %w", err)
	}
	return enrollments, nil
}
