package models

import "time"

// User represents an account allowed to obtain bearer tokens.
// A user holds at most one token; issuing a new one replaces it.
type User struct {
	Username       string     `json:"username"`
	PasswordHash   string     `json:"-"` // Never expose this to the client
	Token          *string    `json:"-"`
	TokenIssuedAt  *time.Time `json:"-"`
	TokenExpiresAt *time.Time `json:"-"`
}
