package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/safestep/safestep-api/internal/models"
	appErrors "github.com/safestep/safestep-api/pkg/errors"
)

type trainingTotalsReader interface {
	Totals(ctx context.Context) (trainings int, participants int, err error)
}

// DashboardConfig carries the static dashboard figures.
type DashboardConfig struct {
	StatesCovered int
	ActiveAlerts  int
}

// DashboardService derives read-only summary figures from the catalog.
type DashboardService struct {
	trainings trainingTotalsReader
	logger    *zap.Logger
	cfg       DashboardConfig
}

// NewDashboardService constructs DashboardService.
func NewDashboardService(trainings trainingTotalsReader, logger *zap.Logger, cfg DashboardConfig) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{trainings: trainings, logger: logger, cfg: cfg}
}

// Stats returns the dashboard summary. The states-covered and active-alerts
// figures come straight from configuration.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	trainings, participants, err := s.trainings.Totals(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute stats")
	}

	return &models.DashboardStats{
		TotalTrainings:    trainings,
		TotalParticipants: participants,
		StatesCovered:     s.cfg.StatesCovered,
		ActiveAlerts:      s.cfg.ActiveAlerts,
	}, nil
}
