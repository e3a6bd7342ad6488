package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")
	// unique constraint violation
	ErrConflict = errors.New("conflict")
	// cart row is no longer ACTIVE (lost a checkout race)
	ErrCartNotActive = errors.New("cart not active")
)
