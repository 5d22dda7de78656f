package middleware

import (
	"github.com/gin-gonic/gin"
	ierr "github.com/pathways-hq/pathways/internal/errors"
)

// ErrorHandler converts errors pushed onto the gin context into the
// standard error envelope. Handlers call c.Error and return; this
// middleware owns the response shape and status code.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		c.JSON(ierr.HTTPStatusFromErr(err), ierr.NewErrorResponse(err))
	}
}
