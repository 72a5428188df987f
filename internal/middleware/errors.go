package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/graindesk/internal/domain/dto"
	"github.com/guttosm/graindesk/internal/logger"
)

// ErrorHandler turns errors attached with c.Error into a 500 ErrorResponse
// when the handler did not write a response itself.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	last := c.Errors.Last()
	logger.L().Error().
		Str("request_id", c.GetString(RequestIDKey)).
		Err(last.Err).
		Msg("unhandled request error")
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", last.Err))
}

// AbortWithError stops the chain and writes status with an ErrorResponse body.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	c.Header("Content-Type", "application/json; charset=utf-8")
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
