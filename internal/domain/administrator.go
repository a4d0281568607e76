package domain

import "time"

// Administrator is the credential record for an operator of the portfolio.
// Username is case-sensitive and never changes after registration.
type Administrator struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
