package domain

import "time"

// User is the domain model for catalog accounts. PasswordHash never leaves
// the service layer; API responses carry sanitized projections only.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}
