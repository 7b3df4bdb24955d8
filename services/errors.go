package services

import "errors"

// Shared errors returned across services.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrMatchNotFound = errors.New("match not found")

	ErrMatchAlreadyFinished = errors.New("match result already recorded")
	ErrInvalidScore         = errors.New("scores must be non-negative")
	ErrPredictionLocked     = errors.New("match has started, prediction is locked")
)
