package errors

import (
	"net/http"

	"playground/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}

	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails returns a copy carrying details. The copy still matches the original with errors.Is.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Is matches any BaseError with the same error code, so copies made by WithDetails compare equal.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// Error kinds shared by every flow.
var (
	ErrBadRequest = NewBaseError(
		http.StatusBadRequest,
		"BAD_REQUEST",
		"invalid field name or data format",
		"",
	)

	ErrDuplicate = NewBaseError(
		http.StatusConflict,
		"DUPLICATE",
		"duplicate entry",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"resource not found",
		"",
	)

	// ErrNoContent means the target exists but the update changed nothing.
	ErrNoContent = NewBaseError(
		http.StatusNoContent,
		"NO_CONTENT",
		"nothing was changed",
		"",
	)

	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"authentication required",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"access denied",
		"",
	)

	ErrRequestTimeout = NewBaseError(
		http.StatusRequestTimeout,
		"REQUEST_TIMEOUT",
		"database request timed out",
		"",
	)

	ErrServerUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"SERVER_UNAVAILABLE",
		"database connection error",
		"",
	)

	ErrUpstreamAuth = NewBaseError(
		http.StatusBadGateway,
		"UPSTREAM_AUTH_ERROR",
		"oauth provider rejected the request",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)
)

// Registration and verification errors.
var (
	ErrMissingFields = NewBaseError(
		http.StatusBadRequest,
		"MISSING_FIELDS",
		"required fields are missing",
		"",
	)

	ErrEmailExists = NewBaseError(
		http.StatusConflict,
		"EMAIL_EXISTS",
		"email is already registered",
		"",
	)

	ErrUserIDExists = NewBaseError(
		http.StatusConflict,
		"USER_ID_EXISTS",
		"user id is already taken",
		"",
	)

	ErrSocialAlreadyLinked = NewBaseError(
		http.StatusConflict,
		"SOCIAL_ALREADY_LINKED",
		"already registered social account",
		"",
	)

	ErrSettingsExist = NewBaseError(
		http.StatusConflict,
		"SETTINGS_EXIST",
		"settings are already saved",
		"",
	)

	ErrUnregistered = NewBaseError(
		http.StatusNotFound,
		"UNREGISTERED",
		"unregistered",
		"",
	)

	ErrCodeExpired = NewBaseError(
		http.StatusNotFound,
		"CODE_EXPIRED",
		"expired",
		"",
	)

	ErrCodeMismatch = NewBaseError(
		http.StatusBadRequest,
		"CODE_MISMATCH",
		"bad request",
		"",
	)

	ErrMailDelivery = NewBaseError(
		http.StatusServiceUnavailable,
		"MAIL_DELIVERY_FAILED",
		"failed to send verification email",
		"",
	)

	ErrImageUpload = NewBaseError(
		http.StatusBadRequest,
		"IMAGE_UPLOAD_FAILED",
		"failed to upload profile image",
		"",
	)
)

// Login and token errors.
var (
	ErrUnverified = NewBaseError(
		http.StatusForbidden,
		"UNAUTHENTICATED",
		"unauthenticated",
		"",
	)

	ErrWrongPassword = NewBaseError(
		http.StatusBadRequest,
		"WRONG_PASSWORD",
		"wrongpassword",
		"",
	)

	ErrTokenExpired = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_EXPIRED",
		"token has expired",
		"",
	)

	ErrTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_INVALID",
		"invalid token",
		"",
	)

	ErrSessionNotFound = NewBaseError(
		http.StatusForbidden,
		"SESSION_NOT_FOUND",
		"login session has no refresh token",
		"",
	)

	ErrUnsupportedProvider = NewBaseError(
		http.StatusBadRequest,
		"UNSUPPORTED_PROVIDER",
		"unsupported social provider",
		"",
	)

	ErrInvalidState = NewBaseError(
		http.StatusBadRequest,
		"INVALID_STATE",
		"malformed oauth state",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
