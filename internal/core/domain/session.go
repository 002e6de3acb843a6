package domain

import "time"

// Identity is the single authenticated user held for the session's duration.
// It is a copy of the User record at login time and is the sole determinant
// of access until logout.
type Identity struct {
	User     User      `json:"user"`
	IssuedAt time.Time `json:"issued_at"`
}
