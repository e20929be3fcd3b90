package utils

import "github.com/gin-gonic/gin"

// ErrorResponse writes a plain-text error body, matching the surface the
// frontend already consumes.
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.String(statusCode, "%s", message)
}

// SuccessResponse writes the payload as bare JSON.
func SuccessResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}
