package model

import "time"

// Role names stored in users.role and carried in the JWT "role" claim.
// Staff and admin may operate the staff dashboard; customers may not.
const (
	RoleCustomer = "customer"
	RoleStaff    = "staff"
	RoleAdmin    = "admin"
)

// StaffRole reports whether role is allowed to view and mutate the full
// order list.
func StaffRole(role string) bool {
	return role == RoleStaff || role == RoleAdmin
}

// User represents an application user record as stored in the `users`
// table. Passwords are stored as bcrypt hashes only.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address; doubles as the order UserID.
//  Name         – display name shown in greetings and notifications.
//  PasswordHash – bcrypt hashed password.
//  Role         – customer, staff or admin.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64
	Email        string
	Name         string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RefreshToken models an entry in the `refresh_tokens` table. The plain
// token is never stored; only its SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64
	UserID    uint64
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}
