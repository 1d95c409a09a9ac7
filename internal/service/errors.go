package service

import "errors"

// Common service errors
var (
	// ErrNoEvents is returned when every sheet came back empty
	ErrNoEvents = errors.New("no events found in any sheet")

	// ErrEventNotFound is returned when an event ID is not in the current snapshot
	ErrEventNotFound = errors.New("event not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrRefreshInProgress is returned when a manual refresh overlaps a running one
	ErrRefreshInProgress = errors.New("refresh already in progress")
)
