// Package error defines domain-specific errors for the Money Saver application.
package error

import "errors"

// Reminder domain errors.
var (
	// ErrCycleAlreadyRunning is returned when a reminder cycle is triggered
	// while a previous cycle still holds the lock.
	ErrCycleAlreadyRunning = errors.New("reminder cycle already running")
)

// ReminderErrorCode defines error codes for reminder errors.
type ReminderErrorCode string

const (
	ErrCodeCycleAlreadyRunning ReminderErrorCode = "REM-010001"
)
