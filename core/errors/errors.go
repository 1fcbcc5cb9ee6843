package errors

import "fmt"

// ErrorCode is a stable, machine-readable application error code.
type ErrorCode string

const (
	ErrInternalServer     ErrorCode = "INTERNAL_SERVER_ERROR"
	ErrInvalidInput       ErrorCode = "INVALID_INPUT"
	ErrInvalidRequestData ErrorCode = "INVALID_REQUEST_DATA"
	ErrUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrForbidden          ErrorCode = "FORBIDDEN"
	ErrNotFound           ErrorCode = "NOT_FOUND"
	ErrAlreadyExists      ErrorCode = "ALREADY_EXISTS"
	ErrGetFailed          ErrorCode = "GET_FAILED"
	ErrCreateFailed       ErrorCode = "CREATE_FAILED"
	ErrDeleteFailed       ErrorCode = "DELETE_FAILED"

	ErrTokenExpired               ErrorCode = "TOKEN_EXPIRED"
	ErrInvalidTokenFormat         ErrorCode = "INVALID_TOKEN_FORMAT"
	ErrMissingAuthorizationHeader ErrorCode = "MISSING_AUTHORIZATION_HEADER"

	// ErrAdapterFailure marks a degraded calendar source. It is recorded as a
	// diagnostic on the response, never surfaced as a request failure.
	ErrAdapterFailure ErrorCode = "ADAPTER_FAILURE"

	// ErrTenantScopeViolation marks an adapter returning rows outside the
	// requested user/tenant scope. Always a programming defect in the adapter.
	ErrTenantScopeViolation ErrorCode = "TENANT_SCOPE_VIOLATION"
)

// AppError is the error type exchanged between layers.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New returns a plain AppError with the internal server code.
func New(message string) *AppError {
	return NewAppError(ErrInternalServer, message, nil)
}
