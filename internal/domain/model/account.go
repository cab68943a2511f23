package model

import "time"

// Account is a registered user. Username is the identity every reading entry
// is scoped to and never changes after registration.
type Account struct {
	Username     string
	PasswordHash string // bcrypt digest; plaintext is never stored.
	CreatedAt    time.Time
}
