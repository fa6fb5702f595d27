package qrcode

import "time"

// Code is one issued scan code. Codes rotate: issuing a new one deactivates
// all previous codes, and a code is only accepted on its day of issuance.
type Code struct {
	ID       string
	Token    string
	IssuedAt time.Time
	Active   bool
}
