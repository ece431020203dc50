package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "kukkaro/internal/errors"
	"kukkaro/internal/logger"
)

// ErrorHandler returns a Gin middleware that converts errors set on the Gin
// context into JSON error responses of the form {"error": msg, "code": code}.
// Internal causes are logged; they are echoed to the client as "details"
// only on 500 responses and only when exposeDetails is set.
func ErrorHandler(exposeDetails bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		// Process the last error (most relevant in a middleware chain)
		err := c.Errors.Last().Err

		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			appErr = apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if appErr.Internal != nil {
			logger.Get().Errorw("request failed",
				"code", appErr.Code,
				"message", appErr.Message,
				"internal", appErr.Internal.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"request_id", c.GetString(requestIDKey),
			)
		}

		body := gin.H{
			"error": appErr.Message,
			"code":  appErr.Code,
		}
		if exposeDetails && appErr.StatusCode >= 500 && appErr.Internal != nil {
			body["details"] = appErr.Internal.Error()
		}
		c.JSON(appErr.StatusCode, body)
	}
}
