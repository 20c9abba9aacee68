package dto

import "github.com/aquaflow/ticketing/internal/domain"

// CreateUserRequest payload for new staff accounts.
type CreateUserRequest struct {
	Email    string      `json:"email"`
	Name     string      `json:"name"`
	Role     domain.Role `json:"role"`
	Password string      `json:"password"`
}

// UpdateUserRequest carries optional fields; absent fields stay unchanged.
type UpdateUserRequest struct {
	Email    *string      `json:"email"`
	Name     *string      `json:"name"`
	Role     *domain.Role `json:"role"`
	IsActive *bool        `json:"is_active"`
	Password *string      `json:"password"`
}
