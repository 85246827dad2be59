package ports

import (
	"context"

	"github.com/material-mover/marketplace-api/internal/core/domain"
)

// ProductRepository defines persistence operations for product listings.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// FindByIDs returns the products matching the given ids. Unknown ids are
	// skipped, not errors.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Product, error)
	// FindAll returns up to limit products.
	FindAll(ctx context.Context, limit int64) ([]*domain.Product, error)
	FindBySeller(ctx context.Context, sellerID string) ([]*domain.Product, error)
	// SearchText performs a case-insensitive substring match of query against
	// title and description, capped at limit records.
	SearchText(ctx context.Context, query string, limit int64) ([]*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
	// DeleteBySeller removes every product owned by sellerID. Used by the
	// account-deletion cascade.
	DeleteBySeller(ctx context.Context, sellerID string) error
}
