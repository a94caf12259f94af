package domain

import "time"

// Role enumerates caller roles. Roles scope what a caller's reports may
// include; they are not an authorization policy beyond that.
type Role string

const (
	RoleUser     Role = "USER"
	RoleCustomer Role = "CUSTOMER"
	RoleAuditor  Role = "AUDITOR"
	RoleAdmin    Role = "ADMIN"
)

// UserStatus represents lifecycle states for a user account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// User is the domain model for accounts that raise, work, or own claims.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	Phone        *string
	PasswordHash string
	Role         Role
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsValid reports whether the role is a known value.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleCustomer, RoleAuditor, RoleAdmin:
		return true
	}
	return false
}
