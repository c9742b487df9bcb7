package domain

import "errors"

// Validation errors, rejected locally before any external call
var (
	ErrCompletedExceedsTarget = errors.New("completed sessions exceed target sessions")
	ErrEmptyDescription       = errors.New("task description is required")
	ErrEmptyGoalName          = errors.New("goal name is required")
	ErrEmptyQuote             = errors.New("quote content is required")
	ErrInvalidCompleted       = errors.New("completed sessions must not be negative")
	ErrQuoteTooLong           = errors.New("quote content exceeds 240 characters")
	ErrTargetTooLow           = errors.New("target sessions must be at least 1")
)

// Gating and lookup errors
var (
	ErrGoalNotFound   = errors.New("goal not found")
	ErrQuoteNotFound  = errors.New("quote not found")
	ErrSignInRequired = errors.New("sign in required")
	ErrTaskNotFound   = errors.New("task not found")
)
