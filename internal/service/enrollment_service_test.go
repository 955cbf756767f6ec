package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safestep/safestep-api/internal/models"
	"github.com/safestep/safestep-api/internal/repository"
	appErrors "github.com/safestep/safestep-api/pkg/errors"
)

// fakeEnrollmentRepo mirrors the transactional guarantees of the real
// repository: the mutex stands in for the row lock, so a capacity check and
// the increment happen as one step.
type fakeEnrollmentRepo struct {
	mu       sync.Mutex
	capacity map[string]int
	enrolled map[string]int
	taken    map[string]bool
	history  map[string][]models.UserEnrollment
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{
		capacity: map[string]int{},
		enrolled: map[string]int{},
		taken:    map[string]bool{},
		history:  map[string][]models.UserEnrollment{},
	}
}

func (r *fakeEnrollmentRepo) addTraining(id string, capacity int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.capacity[id] = capacity
}

func (r *fakeEnrollmentRepo) Enroll(_ context.Context, userID, trainingID string) (*models.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	capacity, ok := r.capacity[trainingID]
	if !ok {
		return nil, repository.ErrTrainingMissing
	}
	if r.enrolled[trainingID] >= capacity {
		return nil, repository.ErrCapacityReached
	}
	pair := userID + "/" + trainingID
	if r.taken[pair] {
		return nil, repository.ErrDuplicateEnrollment
	}

	r.taken[pair] = true
	r.enrolled[trainingID]++
	enrollment := &models.Enrollment{
		ID:             uuid.NewString(),
		UserID:         userID,
		TrainingID:     trainingID,
		Status:         models.EnrollmentStatusActive,
		EnrollmentDate: time.Now().UTC(),
	}
	r.history[userID] = append(r.history[userID], models.UserEnrollment{
		TrainingEvent:  models.TrainingEvent{ID: trainingID, Capacity: capacity},
		EnrollmentDate: enrollment.EnrollmentDate,
	})
	return enrollment, nil
}

func (r *fakeEnrollmentRepo) ListForUser(_ context.Context, userID string) ([]models.UserEnrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.history[userID], nil
}

func TestEnrollMapsRepositoryOutcomes(t *testing.T) {
	repo := newFakeEnrollmentRepo()
	repo.addTraining("t1", 1)
	svc := NewEnrollmentService(repo, nil)
	ctx := context.Background()

	_, err := svc.Enroll(ctx, "u1", "missing")
	assert.Equal(t, appErrors.ErrTrainingNotFound.Code, appErrors.FromError(err).Code)

	enrollment, err := svc.Enroll(ctx, "u1", "t1")
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentStatusActive, enrollment.Status)

	_, err = svc.Enroll(ctx, "u1", "t1")
	assert.Equal(t, appErrors.ErrAlreadyEnrolled.Code, appErrors.FromError(err).Code)

	_, err = svc.Enroll(ctx, "u2", "t1")
	assert.Equal(t, appErrors.ErrTrainingFull.Code, appErrors.FromError(err).Code)
}

func TestEnrollRequiresIdentity(t *testing.T) {
	svc := NewEnrollmentService(newFakeEnrollmentRepo(), nil)

	_, err := svc.Enroll(context.Background(), "", "t1")
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestEnrollConcurrentCapacityCeiling(t *testing.T) {
	repo := newFakeEnrollmentRepo()
	repo.addTraining("t1", 1)
	svc := NewEnrollmentService(repo, nil)

	const contenders = 20
	var wg sync.WaitGroup
	results := make(chan error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := svc.Enroll(context.Background(), fmt.Sprintf("user-%d", n), "t1")
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	var wins, full int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case appErrors.FromError(err).Code == appErrors.ErrTrainingFull.Code:
			full++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, contenders-1, full)
	assert.Equal(t, 1, repo.enrolled["t1"])
}

func TestListForUserWrapsRepositoryErrors(t *testing.T) {
	svc := NewEnrollmentService(failingEnrollmentRepo{}, nil)

	_, err := svc.ListForUser(context.Background(), "u1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

type failingEnrollmentRepo struct{}

func (failingEnrollmentRepo) Enroll(context.Context, string, string) (*models.Enrollment, error) {
	return nil, errors.New("connection reset")
}

func (failingEnrollmentRepo) ListForUser(context.Context, string) ([]models.UserEnrollment, error) {
	return nil, errors.New("connection reset")
}
