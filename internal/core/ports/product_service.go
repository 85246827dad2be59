package ports

import (
	"context"

	"github.com/material-mover/marketplace-api/internal/core/domain"
)

// CreateProductInput carries the fields a seller submits for a new listing.
type CreateProductInput struct {
	Title       string
	Description string
	Price       float64
	Quantity    int64
	Category    string
	Address     string
	PhoneNo     string
	Image       string
	SellerID    string
}

// UpdateProductInput carries a partial update; nil fields are left untouched.
type UpdateProductInput struct {
	Title       *string
	Description *string
	Price       *float64
	Quantity    *int64
	Category    *string
	Image       *string
}

// ProductService defines use-case operations for product listings.
type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	// List returns the products matching ids, or the first 50 when ids is
	// empty.
	List(ctx context.Context, ids []string) ([]*domain.Product, error)
	ListMine(ctx context.Context, sellerID string) ([]*domain.Product, error)
	// Update applies a partial update after the ownership check.
	Update(ctx context.Context, id, requesterID string, role domain.Role, input UpdateProductInput) (*domain.Product, error)
	// Delete removes a listing after the ownership check.
	Delete(ctx context.Context, id, requesterID string, role domain.Role) error
	Categories() []string
}
