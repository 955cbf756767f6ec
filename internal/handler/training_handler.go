package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safestep/safestep-api/internal/models"
	"github.com/safestep/safestep-api/internal/service"
	appErrors "github.com/safestep/safestep-api/pkg/errors"
	"github.com/safestep/safestep-api/pkg/response"
)

type trainingService interface {
	Create(ctx context.Context, req service.CreateTrainingRequest) (*models.TrainingEvent, error)
	List(ctx context.Context) ([]models.TrainingEvent, error)
	Get(ctx context.Context, id string) (*models.TrainingEvent, error)
}

// TrainingHandler wires the training catalog to HTTP endpoints.
type TrainingHandler struct {
	service trainingService
}

// NewTrainingHandler constructs the handler.
func NewTrainingHandler(svc trainingService) *TrainingHandler {
	return &TrainingHandler{service: svc}
}

// List returns the full catalog, newest start date first.
func (h *TrainingHandler) List(c *gin.Context) {
	trainings, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if trainings == nil {
		trainings = []models.TrainingEvent{}
	}
	response.OK(c, http.StatusOK, response.Fields{"trainings": trainings})
}

// Create registers a new training event.
func (h *TrainingHandler) Create(c *gin.Context) {
	var req service.CreateTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid training payload"))
		return
	}

	training, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, response.Fields{
		"message":     "Training created successfully",
		"training_id": training.ID,
	})
}

// Get returns one training event by id.
func (h *TrainingHandler) Get(c *gin.Context) {
	training, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, response.Fields{"training": training})
}
