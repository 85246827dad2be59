package ports

import (
	"context"

	"github.com/material-mover/marketplace-api/internal/core/domain"
)

// AuthRepository defines persistence operations for user accounts.
// Reads always hit the store directly; authorization decisions must never be
// served from a cache.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) error
	Delete(ctx context.Context, id string) error
}

// TxRunner executes fn inside a store transaction. Every exit path either
// commits or rolls back; reads and writes issued through the ctx passed to fn
// are atomic with respect to concurrent transactions.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
