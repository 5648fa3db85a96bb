package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidState          = errors.New("invalid state")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
