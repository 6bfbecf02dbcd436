package apperrors

import "errors"

// Error codes surfaced to callers. Messages are user-facing and returned verbatim by the API.
const (
	CodeInvalidEmail       = "INVALID_EMAIL"
	CodeInvalidPassword    = "INVALID_PASSWORD"
	CodeInvalidName        = "INVALID_NAME"
	CodeUserExists         = "USER_EXISTS"
	CodeStorage            = "STORAGE_ERROR"
	CodeSave               = "SAVE_ERROR"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeLogin              = "LOGIN_ERROR"
	CodeRegister           = "REGISTER_ERROR"

	CodeInvalidUser        = "INVALID_USER"
	CodeInvalidType        = "INVALID_TYPE"
	CodeInvalidDescription = "INVALID_DESCRIPTION"
	CodeInvalidLocation    = "INVALID_LOCATION"
	CodeDuplicateReport    = "DUPLICATE_REPORT"
	CodeSaveReport         = "SAVE_REPORT_ERROR"
	CodeInvalidStatus      = "INVALID_STATUS"
	CodeInvalidTransition  = "INVALID_TRANSITION"

	CodeStorageRead   = "STORAGE_READ_ERROR"
	CodeStorageWrite  = "STORAGE_WRITE_ERROR"
	CodeQuotaExceeded = "QUOTA_EXCEEDED"
	CodeStorageDelete = "STORAGE_DELETE_ERROR"
	CodeMigration     = "MIGRATION_ERROR"

	CodeNotification       = "NOTIFICATION_ERROR"
	CodeNotificationRead   = "NOTIFICATION_READ_ERROR"
	CodeNotificationUpdate = "NOTIFICATION_UPDATE_ERROR"
)

// Error is the tagged error returned by every store-backed operation.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// CodeOf returns the code of err when it is (or wraps) an *Error, "" otherwise.
func CodeOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// Is reports whether err carries the given code.
func Is(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}

// MessageOf returns the user-facing message, falling back to err.Error().
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
