package middleware

import (
	"errors"
	"net/http"

	"nextcareer-backend/internal/delivery/http/response"
	"nextcareer-backend/pkg/apperror"
	"nextcareer-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler maps errors appended to the Gin context onto the JSON
// envelope. AppErrors carry their own status code; anything else is
// logged server-side and reported as a generic 500 so internals never
// leak to clients.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				if appErr.Code == http.StatusInternalServerError {
					logger.Log.Error("Internal server error",
						"path", c.FullPath(), "error", appErr.Err)
				}
				response.Error(c, appErr.Code, appErr.Message, nil)
			} else {
				logger.Log.Error("Unhandled error",
					"path", c.FullPath(), "error", err)
				response.Error(c, http.StatusInternalServerError,
					"An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}
