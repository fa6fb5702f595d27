package attendance

import "errors"

// Attendance domain errors
var (
	// Scan rejections
	ErrInvalidCode         = errors.New("scan code is invalid or expired")
	ErrQuotaExhausted      = errors.New("all four scans already recorded for today")
	ErrAfternoonNotStarted = errors.New("morning session is over, afternoon scans open at 12:30")

	// General errors
	ErrEventNotFound  = errors.New("scan event not found")
	ErrEventCancelled = errors.New("scan event is already cancelled")
)
