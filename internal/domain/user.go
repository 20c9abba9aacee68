package domain

import "time"

// Role enumerates staff roles.
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleReceptionist Role = "RECEPTIONIST"
	RoleScanner      Role = "SCANNER"
)

// User is a staff account. Accounts are deactivated rather than deleted so
// that created_by references on tickets stay resolvable.
type User struct {
	ID           string
	Email        string
	Name         string
	Role         Role
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}
