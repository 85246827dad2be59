package ports

import (
	"context"

	"github.com/material-mover/marketplace-api/internal/core/domain"
)

// AuthService covers public signup/login and admin account management.
type AuthService interface {
	// Register creates an account with a self-assignable role. Under
	// concurrent calls for the same email exactly one succeeds; the others
	// receive domain.ErrEmailTaken.
	Register(ctx context.Context, email, password string, role domain.Role) (*domain.User, error)
	// Login authenticates and returns a signed credential plus the account.
	// Unknown email and wrong password are indistinguishable to the caller.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)

	ListUsers(ctx context.Context) ([]*domain.User, error)
	// CreateUser is the admin-only variant of Register; any role is allowed.
	CreateUser(ctx context.Context, email, password string, role domain.Role) (*domain.User, error)
	UpdateRole(ctx context.Context, userID string, role domain.Role) (*domain.User, error)
	// DeleteUser removes the account and all products it owns as one logical
	// unit. Deleting your own account is refused.
	DeleteUser(ctx context.Context, userID, requesterID string) error
}
