package qrcode

import "errors"

var (
	ErrNoActiveCode = errors.New("no active scan code")
)
