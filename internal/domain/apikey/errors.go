package apikey

import "errors"

var (
	ErrKeyNotFound = errors.New("api key not found")
	ErrKeyInvalid  = errors.New("api key is invalid or deactivated")
	ErrKeyMissing  = errors.New("api key is missing, use the X-API-Key header")
)
