package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyMarked = errors.New("attendance already marked for this date")
	ErrInvalidDate   = errors.New("attendance can only be marked for today")
)
