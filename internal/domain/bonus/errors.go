package bonus

import "errors"

var (
	ErrBonusNotFound = errors.New("bonus not found")
)
