package agent

import "errors"

var (
	ErrAgentNotFound = errors.New("agent not found")
	ErrEmailExists   = errors.New("email already registered")
	ErrMissingRole   = errors.New("agent has no role configured")
	ErrAgentInactive = errors.New("agent account is deactivated")
)
