package services

import "errors"

// Terminal run errors. Everything else the engine hits degrades locally and
// the run still completes.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrInsufficientData = errors.New("gestation reference date (LMP) not set")
)
