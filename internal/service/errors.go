package service

import "errors"

// Update, delete and image operations report failures through these sentinels so the
// HTTP layer can tell a missing car from a bad request from an internal fault.
var (
	ErrNotFound   = errors.New("car not found")
	ErrValidation = errors.New("validation failed")
	ErrNoStorage  = errors.New("image storage is not configured")
)
