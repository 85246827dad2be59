package domain

import (
	"errors"
	"time"
)

// Role is the closed set of authorization roles.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// ParseRole converts a raw string into a Role, rejecting anything outside the
// closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleBuyer, RoleSeller, RoleAdmin:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}

// SelfAssignable reports whether the role may be chosen at public signup.
// Admin accounts are only created through the admin management endpoints.
func (r Role) SelfAssignable() bool {
	return r == RoleBuyer || r == RoleSeller
}

var (
	ErrInvalidRole        = errors.New("invalid role")
	ErrMissingFields      = errors.New("email, password and role are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrSelfDelete         = errors.New("cannot delete your own account")
	ErrForbidden          = errors.New("access forbidden")
)

// User models an account in the marketplace.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
