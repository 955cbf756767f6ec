package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safestep/safestep-api/internal/middleware"
	"github.com/safestep/safestep-api/internal/models"
	appErrors "github.com/safestep/safestep-api/pkg/errors"
	"github.com/safestep/safestep-api/pkg/response"
)

type enrollmentService interface {
	Enroll(ctx context.Context, userID, trainingID string) (*models.Enrollment, error)
	ListForUser(ctx context.Context, userID string) ([]models.UserEnrollment, error)
}

// EnrollmentHandler wires the enrollment engine to HTTP endpoints. Both
// routes sit behind the session guard, so the handler only ever sees an
// already-resolved identity.
type EnrollmentHandler struct {
	service enrollmentService
}

// NewEnrollmentHandler constructs the handler.
func NewEnrollmentHandler(svc enrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: svc}
}

// Enroll registers the current user for the training in the path.
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if _, err := h.service.Enroll(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, response.Fields{"message": "Enrolled successfully"})
}

// ListMine returns the current user's enrollments.
func (h *EnrollmentHandler) ListMine(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	enrollments, err := h.service.ListForUser(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if enrollments == nil {
		enrollments = []models.UserEnrollment{}
	}
	response.OK(c, http.StatusOK, response.Fields{"enrollments": enrollments})
}
