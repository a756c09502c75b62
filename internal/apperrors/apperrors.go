// Package apperrors defines the stable error codes surfaced by the API.
// Services return these; handlers map them to HTTP responses. Anything that
// is not an *AppError is reported as Uncategorized without leaking detail.
package apperrors

import (
	"errors"
	"net/http"
)

// AppError carries a stable numeric code, a human-readable message and the
// HTTP status it maps to at the boundary.
type AppError struct {
	Code    int
	Message string
	Status  int
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return e.Message
}

var (
	ErrUncategorized   = &AppError{Code: 9999, Message: "uncategorized error", Status: http.StatusInternalServerError}
	ErrUnauthorized    = &AppError{Code: 1101, Message: "you do not have permission", Status: http.StatusForbidden}
	ErrUserNotFound    = &AppError{Code: 1203, Message: "user does not exist", Status: http.StatusNotFound}
	ErrShopNotFound    = &AppError{Code: 1300, Message: "shop does not exist", Status: http.StatusNotFound}
	ErrProductNotFound = &AppError{Code: 1500, Message: "product does not exist", Status: http.StatusBadRequest}
	ErrCartEmpty       = &AppError{Code: 1600, Message: "cart is empty", Status: http.StatusBadRequest}
	ErrItemNotInCart   = &AppError{Code: 1601, Message: "cart item does not exist", Status: http.StatusBadRequest}
	ErrOrderNotFound   = &AppError{Code: 1700, Message: "order does not exist", Status: http.StatusBadRequest}
	ErrAddressNotFound = &AppError{Code: 1801, Message: "address does not exist", Status: http.StatusBadRequest}
	ErrInvalidValue    = &AppError{Code: 1900, Message: "invalid value", Status: http.StatusBadRequest}
)

// From extracts the *AppError from err's chain, falling back to
// ErrUncategorized so callers always get a mappable error.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrUncategorized
}
