package engine

import "errors"

var (
	ErrInvalidName = errors.New("player name must be 1 to 20 characters")
	ErrUnknownRole = errors.New("unknown role")
	ErrNotStarted  = errors.New("session has not started")
)
