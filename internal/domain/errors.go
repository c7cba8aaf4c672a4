package domain

import "errors"

// Domain errors
var (
	ErrNotFound             = errors.New("resource not found")
	ErrResourceNotPersisted = errors.New("resource has no server-assigned id")
	ErrCategoryRequired     = errors.New("category is required")
	ErrInvalidAmount        = errors.New("invalid amount")
)

// MinNameLength is the shortest name the REST API accepts
const MinNameLength = 2
