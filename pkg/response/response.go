package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/safestep/safestep-api/pkg/errors"
)

// Fields carries the endpoint-specific parts of a success envelope.
type Fields map[string]interface{}

// OK sends a success envelope with the given status and extra fields.
func OK(c *gin.Context, status int, fields Fields) {
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(status, body)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, fields Fields) {
	OK(c, http.StatusCreated, fields)
}

// Error sends a failure envelope derived from the error's HTTP mapping.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, gin.H{"success": false, "message": appErr.Message})
}
