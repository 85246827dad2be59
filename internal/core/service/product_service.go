package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/material-mover/marketplace-api/internal/core/domain"
	"github.com/material-mover/marketplace-api/internal/core/ports"
)

const listLimit = 50

// ProductService implements listing CRUD with ownership enforcement.
type ProductService struct {
	repo ports.ProductRepository
	log  zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, log zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, log: log}
}

func (s *ProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	now := time.Now().UTC()
	product := &domain.Product{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
		Category:    input.Category,
		Address:     input.Address,
		PhoneNo:     input.PhoneNo,
		Image:       input.Image,
		SellerID:    input.SellerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		s.log.Error().Err(err).Str("seller_id", input.SellerID).Msg("failed to create product")
		return nil, err
	}

	s.log.Info().Str("product_id", created.ID).Str("seller_id", created.SellerID).
		Str("category", created.Category).Msg("product created")
	return created, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns the products matching ids, or the first 50 listings when no
// ids are given.
func (s *ProductService) List(ctx context.Context, ids []string) ([]*domain.Product, error) {
	if len(ids) == 0 {
		return s.repo.FindAll(ctx, listLimit)
	}
	return s.repo.FindByIDs(ctx, ids)
}

func (s *ProductService) ListMine(ctx context.Context, sellerID string) ([]*domain.Product, error) {
	return s.repo.FindBySeller(ctx, sellerID)
}

// Update applies a partial update. Ownership is checked against the current
// record before any field changes.
func (s *ProductService) Update(ctx context.Context, id, requesterID string, role domain.Role, input ports.UpdateProductInput) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.CanBeMutatedBy(requesterID, role) {
		return nil, domain.ErrForbidden
	}

	if input.Title != nil {
		product.Title = *input.Title
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Quantity != nil {
		product.Quantity = *input.Quantity
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Image != nil {
		product.Image = *input.Image
	}
	product.UpdatedAt = time.Now().UTC()

	if err := product.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.log.Info().Str("product_id", id).Str("requester_id", requesterID).Msg("product updated")
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id, requesterID string, role domain.Role) error {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !product.CanBeMutatedBy(requesterID, role) {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("product_id", id).Str("requester_id", requesterID).Msg("product deleted")
	return nil
}

func (s *ProductService) Categories() []string {
	return domain.MaterialCategories
}
