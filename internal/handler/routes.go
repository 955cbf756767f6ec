package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safestep/safestep-api/pkg/config"
)

// Guards bundles the session middlewares so the route table stays
// declarative.
type Guards struct {
	Require  gin.HandlerFunc
	Optional gin.HandlerFunc
}

// RegisterRoutes mounts the API under the configured prefix. Browsing the
// catalog and the auth entry points are public; every other route requires a
// resolved session.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, guards Guards, auth *AuthHandler, trainings *TrainingHandler, enrollments *EnrollmentHandler, dashboard *DashboardHandler) {
	api := r.Group(cfg.APIPrefix)

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api.POST("/auth/register", auth.Register)
	api.POST("/auth/login", auth.Login)
	api.POST("/auth/logout", guards.Require, auth.Logout)
	api.GET("/auth/check", guards.Optional, auth.Check)

	api.GET("/trainings", trainings.List)
	api.POST("/trainings", guards.Require, trainings.Create)
	api.GET("/trainings/:id", trainings.Get)
	api.POST("/trainings/:id/enroll", guards.Require, enrollments.Enroll)

	api.GET("/user/enrollments", guards.Require, enrollments.ListMine)
	api.GET("/dashboard/stats", guards.Require, dashboard.Stats)
}
