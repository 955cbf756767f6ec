package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safestep/safestep-api/internal/models"
	appErrors "github.com/safestep/safestep-api/pkg/errors"
)

type fakeTrainingRepo struct {
	mu     sync.Mutex
	events map[string]*models.TrainingEvent
	order  []string
}

func newFakeTrainingRepo() *fakeTrainingRepo {
	return &fakeTrainingRepo{events: map[string]*models.TrainingEvent{}}
}

func (r *fakeTrainingRepo) Create(_ context.Context, training *models.TrainingEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if training.ID == "" {
		training.ID = uuid.NewString()
	}
	training.Enrolled = 0
	r.events[training.ID] = training
	r.order = append(r.order, training.ID)
	return nil
}

func (r *fakeTrainingRepo) List(_ context.Context) ([]models.TrainingEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.TrainingEvent, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.events[id])
	}
	return out, nil
}

func (r *fakeTrainingRepo) FindByID(_ context.Context, id string) (*models.TrainingEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	training, ok := r.events[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return training, nil
}

func validTrainingReq() CreateTrainingRequest {
	return CreateTrainingRequest{
		Title:     "Flood Response Basics",
		StartDate: "2026-09-10",
		EndDate:   "2026-09-12",
		Trainer:   "R. Nair",
		Location:  "Chennai",
		Capacity:  30,
	}
}

func TestCreateTraining(t *testing.T) {
	svc := NewTrainingService(newFakeTrainingRepo(), nil, nil)

	training, err := svc.Create(context.Background(), validTrainingReq())
	require.NoError(t, err)
	assert.NotEmpty(t, training.ID)
	assert.Equal(t, 0, training.Enrolled)
	assert.Equal(t, models.TrainingStatusActive, training.Status)
	assert.Equal(t, "2026-09-10", training.StartDate.Format(dateLayout))
}

func TestCreateTrainingValidation(t *testing.T) {
	svc := NewTrainingService(newFakeTrainingRepo(), nil, nil)
	ctx := context.Background()

	cases := map[string]func(*CreateTrainingRequest){
		"missing title":     func(r *CreateTrainingRequest) { r.Title = "" },
		"zero capacity":     func(r *CreateTrainingRequest) { r.Capacity = 0 },
		"negative capacity": func(r *CreateTrainingRequest) { r.Capacity = -5 },
		"bad start date":    func(r *CreateTrainingRequest) { r.StartDate = "10-09-2026" },
		"bad end date":      func(r *CreateTrainingRequest) { r.EndDate = "soon" },
		"end before start":  func(r *CreateTrainingRequest) { r.EndDate = "2026-09-01" },
		"missing trainer":   func(r *CreateTrainingRequest) { r.Trainer = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validTrainingReq()
			mutate(&req)
			_, err := svc.Create(ctx, req)
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
		})
	}
}

func TestGetTrainingNotFound(t *testing.T) {
	svc := NewTrainingService(newFakeTrainingRepo(), nil, nil)

	_, err := svc.Get(context.Background(), "nope")
	assert.Equal(t, appErrors.ErrTrainingNotFound.Code, appErrors.FromError(err).Code)
}

func TestGetTraining(t *testing.T) {
	repo := newFakeTrainingRepo()
	svc := NewTrainingService(repo, nil, nil)

	created, err := svc.Create(context.Background(), validTrainingReq())
	require.NoError(t, err)

	fetched, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, fetched.Title)
}
