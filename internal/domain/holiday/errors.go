package holiday

import "errors"

var (
	ErrHolidayNotFound   = errors.New("holiday not found")
	ErrHolidayExists     = errors.New("a holiday already exists for this date")
	ErrLegalNotDeletable = errors.New("legal holidays cannot be deleted")
	ErrExceptionNotFound = errors.New("holiday exception not found")
	ErrExceptionExists   = errors.New("this exception already exists")
)
