package tracking

import "errors"

var (
	ErrInvalidRange = errors.New("start date must not be after end date")
)
