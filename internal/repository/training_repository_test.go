package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safestep/safestep-api/internal/models"
)

func TestTrainingCreateStartsEmpty(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTrainingRepository(db)

	mock.ExpectExec("INSERT INTO training_events").WillReturnResult(sqlmock.NewResult(1, 1))

	training := &models.TrainingEvent{
		Title:     "Earthquake Drill",
		StartDate: time.Now().AddDate(0, 0, 7),
		EndDate:   time.Now().AddDate(0, 0, 8),
		Trainer:   "S. Rao",
		Location:  "Delhi",
		Capacity:  40,
		Enrolled:  99, // must be reset on create
	}
	require.NoError(t, repo.Create(context.Background(), training))
	assert.NotEmpty(t, training.ID)
	assert.Equal(t, 0, training.Enrolled)
	assert.Equal(t, models.TrainingStatusActive, training.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainingListOrdering(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTrainingRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "title", "start_date", "end_date", "trainer", "location", "latitude", "longitude", "capacity", "enrolled", "status", "created_at"}).
		AddRow("t2", "Later", now.AddDate(0, 2, 0), now.AddDate(0, 2, 1), "A", "X", nil, nil, 10, 0, string(models.TrainingStatusActive), now).
		AddRow("t1", "Sooner", now, now.AddDate(0, 0, 1), "B", "Y", nil, nil, 10, 0, string(models.TrainingStatusActive), now)
	mock.ExpectQuery("SELECT (.+) FROM training_events ORDER BY start_date DESC").WillReturnRows(rows)

	trainings, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, trainings, 2)
	assert.Equal(t, "Later", trainings[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainingTotals(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTrainingRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\), COALESCE\(SUM\(enrolled\), 0\) FROM training_events`).
		WillReturnRows(sqlmock.NewRows([]string{"count", "coalesce"}).AddRow(4, 57))

	trainings, participants, err := repo.Totals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, trainings)
	assert.Equal(t, 57, participants)
	assert.NoError(t, mock.ExpectationsWereMet())
}
