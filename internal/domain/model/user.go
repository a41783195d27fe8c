package model

import "time"

// User represents an operator account.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	Role         Role
	Level        int
	CreatedAt    time.Time
}

// Principal is the identity carried by an auth token.
type Principal struct {
	UserID int64
	Login  string
	Role   Role
}

// Guest is the principal of an unauthenticated caller.
var Guest = Principal{Role: RoleGuest}

// IsGuest reports whether the principal is unauthenticated.
func (p Principal) IsGuest() bool {
	return p.UserID == 0 || p.Role == RoleGuest
}
