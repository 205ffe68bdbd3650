package middleware

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swarakshak/vidhaan/internal/infrastructure/monitoring/logging"
	"github.com/swarakshak/vidhaan/pkg/errors"
)

// errorBody is the uniform JSON shape for error responses.
type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorHandler maps errors attached to the gin context onto JSON responses.
// AppError codes choose the HTTP status; anything else becomes a 500.
// Refusal outcomes never reach this path, they are well-formed answers.
func ErrorHandler(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		body := errorBody{
			Code:      string(errors.ErrCodeInternal),
			Message:   "internal server error",
			RequestID: GetRequestID(c),
		}
		status := http.StatusInternalServerError

		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			status = errors.HTTPStatusForCode(appErr.Code)
			body.Code = string(appErr.Code)
			body.Message = appErr.Message
			body.Detail = appErr.Detail
		}

		if status >= 500 {
			log.Error("request error",
				logging.String("path", c.Request.URL.Path),
				logging.String("request_id", body.RequestID),
				logging.Err(err),
			)
		}

		c.JSON(status, body)
	}
}
