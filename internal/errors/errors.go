// Package errors provides custom error types for the debttrack API.
// All service-layer errors should use AppError so that responses stay
// consistent and never leak internal details to clients.
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

// Account errors.
var (
	ErrAccountNotFound = &AppError{Code: "ACCOUNT_NOT_FOUND", Message: "Account not found", StatusCode: http.StatusNotFound}
	ErrAccountInUse    = &AppError{Code: "ACCOUNT_IN_USE", Message: "Account is referenced by a debt", StatusCode: http.StatusConflict}
)

// Debt errors.
var (
	ErrDebtNotFound       = &AppError{Code: "DEBT_NOT_FOUND", Message: "Debt not found", StatusCode: http.StatusNotFound}
	ErrDebtAccountTaken   = &AppError{Code: "DEBT_ACCOUNT_TAKEN", Message: "Account already has a debt attached", StatusCode: http.StatusConflict}
	ErrImmutableOriginal  = &AppError{Code: "IMMUTABLE_ORIGINAL_AMOUNT", Message: "Original amount cannot be changed once set", StatusCode: http.StatusBadRequest}
	ErrInvalidDebtAccount = &AppError{Code: "INVALID_DEBT_ACCOUNT", Message: "Debts can only be attached to credit or loan accounts", StatusCode: http.StatusBadRequest}
)

// Ledger errors. Payments and revenue are append-only: there is no edit,
// corrections are recorded as new entries.
var (
	ErrPaymentNotFound = &AppError{Code: "PAYMENT_NOT_FOUND", Message: "Payment not found", StatusCode: http.StatusNotFound}
	ErrRevenueNotFound = &AppError{Code: "REVENUE_NOT_FOUND", Message: "Revenue not found", StatusCode: http.StatusNotFound}
	ErrOverAllocated   = &AppError{Code: "OVER_ALLOCATED", Message: "Revenue allocations exceed 100 percent", StatusCode: http.StatusBadRequest}
)

// Goal errors.
var (
	ErrGoalNotFound     = &AppError{Code: "GOAL_NOT_FOUND", Message: "Goal not found", StatusCode: http.StatusNotFound}
	ErrGoalLinkExists   = &AppError{Code: "GOAL_LINK_EXISTS", Message: "Account is already linked to this goal", StatusCode: http.StatusConflict}
	ErrGoalLinkNotFound = &AppError{Code: "GOAL_LINK_NOT_FOUND", Message: "Account is not linked to this goal", StatusCode: http.StatusNotFound}
)

// Category errors.
var (
	ErrCategoryNotFound = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrCategoryInUse    = &AppError{Code: "CATEGORY_IN_USE", Message: "Category is used by existing records", StatusCode: http.StatusConflict}
)

// Projection errors.
var (
	ErrInvalidProjectionConfig = &AppError{Code: "INVALID_PROJECTION_CONFIG", Message: "Invalid projection configuration", StatusCode: http.StatusBadRequest}
)
