package domain

import "errors"

// Domain errors. Handlers recognize these with errors.Is and map them to
// transport status codes; anything else falls through to a generic 500.
var (
	ErrNotFound                = errors.New("resource not found")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrForbidden               = errors.New("forbidden")
	ErrForbiddenGlobalCategory = errors.New("global categories cannot be modified")
	ErrForbiddenCategory       = errors.New("category belongs to another user")
	ErrInvalidName             = errors.New("invalid name")
	ErrInvalidAmount           = errors.New("amount must be greater than zero")
	ErrCategoryNotFound        = errors.New("category not found")
	ErrCategoryTypeMismatch    = errors.New("category type does not match record type")
	ErrHasLinkedRecords        = errors.New("category has linked records")
	ErrEmailAlreadyExists      = errors.New("email already registered")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrUserNotFound            = errors.New("user not found")
	ErrInvalidCategoryType     = errors.New("invalid category type")
	ErrInvalidRecurrence       = errors.New("invalid recurrence period")
	ErrInternalError           = errors.New("internal error")
)
