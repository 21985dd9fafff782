// Package domain contains the timer, settings and day progress types of
// focusday. It has no dependencies on storage or presentation.
package domain

import "errors"

// Domain errors.
var (
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
	ErrInvalidSettings  = errors.New("invalid timer settings")
	ErrUnknownMode      = errors.New("unknown timer mode")
	ErrUnknownField     = errors.New("unknown settings field")
	ErrUnknownCommand   = errors.New("unknown timer command")
)
