/*
Package response Unified API response handling.

HTTP status mapping lives here and in pkg/errors; the domain and
application layers never see status codes. Error responses expose the
error code, a user-facing message and, for validation failures, the
field/message pairs. Internal details (stacks, wrapped errors) go to the
log only.
*/
package response

import (
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/juanpineyrob/dscommerce/domain/shared"
	"github.com/juanpineyrob/dscommerce/pkg/errors"
	"github.com/juanpineyrob/dscommerce/pkg/logger"
)

// RequestIDKey gin context key for request id propagation.
const RequestIDKey = "request_id"

// Response generic response envelope.
type Response struct {
	Success   bool                  `json:"success"`
	Data      interface{}           `json:"data,omitempty"`
	Error     string                `json:"error,omitempty"` // error code, not details
	Code      int                   `json:"code"`
	Message   string                `json:"message"`
	Fields    []shared.FieldMessage `json:"fields,omitempty"` // validation violations
	RequestID string                `json:"request_id,omitempty"`
}

// GetRequestID reads the request id set by the middleware.
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}

func captureStack(skip int) []string {
	var pcs [16]uintptr
	n := runtime.Callers(skip, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var stack []string
	for i := 0; i < 5; i++ {
		frame, more := frames.Next()
		if frame.Function != "" {
			stack = append(stack, frame.Function)
		}
		if !more {
			break
		}
	}
	return stack
}

// HandleError handles framework-level errors such as payload binding
// failures.
func HandleError(c *gin.Context, err error, message string, code int) {
	requestID := GetRequestID(c)

	logger.Error(message,
		zap.String("request_id", requestID),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Int("status", code),
		zap.Error(err))

	c.JSON(code, &Response{
		Success:   false,
		Error:     string(errors.CodeBadRequest),
		Message:   message,
		Code:      code,
		RequestID: requestID,
	})
}

// HandleAppError translates an application/domain error into its HTTP
// response. The full error chain and the stack captured at the error's
// origin are logged; the client sees only code, message and, for
// validation errors, the field violations.
func HandleAppError(c *gin.Context, err error) {
	requestID := GetRequestID(c)

	appErr := errors.FromDomainError(err)
	httpStatus := appErr.HTTPStatusCode()
	stack := extractStack(err)

	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("error_code", string(appErr.Code)),
		zap.Int("http_status", httpStatus),
		zap.Strings("stack", stack),
	}
	if appErr.Err != nil {
		fields = append(fields, zap.Error(appErr.Err))
	}
	logger.Error(appErr.Message, fields...)

	userMessage := appErr.Message
	if appErr.Code == errors.CodeInternal {
		userMessage = "internal server error"
	}

	c.JSON(httpStatus, &Response{
		Success:   false,
		Error:     string(appErr.Code),
		Message:   userMessage,
		Code:      httpStatus,
		Fields:    appErr.Fields,
		RequestID: requestID,
	})
}

// extractStack prefers the stack captured where the error occurred; when
// the error carries none, the handling point is captured as a fallback.
func extractStack(err error) []string {
	if stacker, ok := err.(shared.Stacker); ok {
		if stack := stacker.Stack(); len(stack) > 0 {
			return stack
		}
	}
	if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
		if inner := unwrapper.Unwrap(); inner != nil {
			if stacker, ok := inner.(shared.Stacker); ok {
				if stack := stacker.Stack(); len(stack) > 0 {
					return stack
				}
			}
		}
	}
	return captureStack(4)
}

// HandleSuccess 200 OK.
func HandleSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, &Response{
		Success:   true,
		Data:      data,
		Message:   message,
		Code:      http.StatusOK,
		RequestID: GetRequestID(c),
	})
}

// HandleCreated 201 Created.
func HandleCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, &Response{
		Success:   true,
		Data:      data,
		Message:   message,
		Code:      http.StatusCreated,
		RequestID: GetRequestID(c),
	})
}

// HandleNoContent 204 No Content.
func HandleNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
