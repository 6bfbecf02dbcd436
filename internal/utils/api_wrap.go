package utils

import (
	"net/http"

	"smartrubbish/internal/apperrors"
	"smartrubbish/internal/sentry"

	"github.com/gin-gonic/gin"
)

const TraceIDKey = "trace_id"

type APIResponse struct {
	Status    string      `json:"status"`
	Code      int         `json:"code"`
	ErrorCode string      `json:"error_code,omitempty"`
	Message   string      `json:"message,omitempty"`
	TraceID   string      `json:"trace_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	return c.GetString(TraceIDKey)
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	RespondStatus(c, http.StatusOK, data, message)
}

func RespondStatus(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, errorCode, message string) {
	c.AbortWithStatusJSON(code, APIResponse{
		Status:    "error",
		Code:      code,
		ErrorCode: errorCode,
		Message:   message,
		TraceID:   traceID(c),
	})
}

// StatusFor maps an error code to its HTTP status.
func StatusFor(code string) int {
	switch code {
	case apperrors.CodeInvalidEmail, apperrors.CodeInvalidPassword, apperrors.CodeInvalidName,
		apperrors.CodeInvalidUser, apperrors.CodeInvalidType, apperrors.CodeInvalidDescription,
		apperrors.CodeInvalidLocation, apperrors.CodeInvalidStatus, apperrors.CodeInvalidTransition:
		return http.StatusBadRequest
	case apperrors.CodeUserExists, apperrors.CodeDuplicateReport:
		return http.StatusConflict
	case apperrors.CodeInvalidCredentials:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// HandleServiceError writes the error envelope. Messages of coded errors are returned verbatim.
func HandleServiceError(c *gin.Context, err error) {
	code := apperrors.CodeOf(err)
	if code == "" {
		sentry.CaptureErrorWithContext(c, err, "Unknown error")
		RespondError(c, http.StatusInternalServerError, "", "Internal server error")
		return
	}
	status := StatusFor(code)
	if status == http.StatusInternalServerError {
		sentry.CaptureErrorWithContext(c, err, "Service error")
	}
	RespondError(c, status, code, apperrors.MessageOf(err))
}
