package middleware

import (
	"errors"
	"net/http"

	"menurecs/utils"

	"github.com/gin-gonic/gin"
)

// ErrorHandlerMiddleware maps errors collected during request handling to
// responses: tagged CustomErrors get the status of their kind, anything
// else is an internal server error.
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err

			var customErr *utils.CustomError
			if errors.As(err, &customErr) {
				utils.ErrorResponse(c, customErr.Kind.HTTPStatus(), customErr.Message)
				return
			}

			utils.ErrorResponse(c, http.StatusInternalServerError, "Internal Server Error")
		}
	}
}
