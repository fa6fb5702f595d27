package apikey

import "time"

// APIKey is an admin-issued credential for the external read-only API.
type APIKey struct {
	ID          string
	Name        string
	Description *string
	Key         string
	Active      bool
	LastUsedAt  *time.Time
	CreatedAt   time.Time
}
