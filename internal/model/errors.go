package model

import "errors"

// Common errors used across the application
var (
	// Account errors
	ErrEmailExists        = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotFound    = errors.New("account not found")

	// Session errors
	ErrNoSession = errors.New("no active session")

	// Task errors
	ErrNoAccountID   = errors.New("account id is required")
	ErrEmptyTaskText = errors.New("task text must not be empty")
)
