package contract

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found or expired")
	ErrPlanInvalid     = errors.New("plan validation failed")
	ErrHandlerFailure  = errors.New("handler failure")
	ErrGeneration      = errors.New("text generation failed")
	ErrTimeout         = errors.New("request timed out")
	ErrValidation      = errors.New("validation failed")
)
