// Package errors provides custom error types for the Hearth API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Home & membership errors.
var (
	ErrHomeNotFound      = &AppError{Code: "HOME_NOT_FOUND", Message: "Home not found", StatusCode: http.StatusNotFound}
	ErrNotHomeOwner      = &AppError{Code: "NOT_HOME_OWNER", Message: "Only the home owner may perform this action", StatusCode: http.StatusForbidden}
	ErrNotHomeMember     = &AppError{Code: "NOT_HOME_MEMBER", Message: "User is not a member of this home", StatusCode: http.StatusForbidden}
	ErrMemberNotFound    = &AppError{Code: "MEMBER_NOT_FOUND", Message: "Home member not found", StatusCode: http.StatusNotFound}
	ErrAlreadyMember     = &AppError{Code: "ALREADY_MEMBER", Message: "User is already a member of this home", StatusCode: http.StatusConflict}
	ErrInviteNotPending  = &AppError{Code: "INVITE_NOT_PENDING", Message: "Invitation has already been answered", StatusCode: http.StatusConflict}
	ErrSelfInvite        = &AppError{Code: "SELF_INVITE", Message: "The home owner cannot be invited as a member", StatusCode: http.StatusBadRequest}
)

// Finance errors.
var (
	ErrFinanceNotFound       = &AppError{Code: "FINANCE_NOT_FOUND", Message: "Finance record not found", StatusCode: http.StatusNotFound}
	ErrInvalidAmount         = &AppError{Code: "INVALID_AMOUNT", Message: "Amount must be a positive number", StatusCode: http.StatusBadRequest}
	ErrInvalidPaymentMonths  = &AppError{Code: "INVALID_PAYMENT_MONTHS", Message: "Payment months must be a positive integer", StatusCode: http.StatusBadRequest}
	ErrVisibilityNotMember   = &AppError{Code: "VISIBILITY_NOT_MEMBER", Message: "Visibility list references a user who is not an accepted home member", StatusCode: http.StatusBadRequest}
	ErrMissingBalancePeriod  = &AppError{Code: "MISSING_BALANCE_PERIOD", Message: "Both month and year are required for a balance query", StatusCode: http.StatusBadRequest}
	ErrInvalidBalancePeriod  = &AppError{Code: "INVALID_BALANCE_PERIOD", Message: "Month must be between 1 and 12", StatusCode: http.StatusBadRequest}
)
