package handler

import (
	"github.com/material-mover/marketplace-api/internal/core/domain"
)

// toProductResponse maps a product to its transport view. Contact fields are
// included only when the caller carries a verified identity; the omitempty
// tags drop them from the JSON for anonymous callers.
func toProductResponse(p *domain.Product, includeContact bool) productResponse {
	resp := productResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Category:    p.Category,
		Image:       p.Image,
		SellerID:    p.SellerID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if includeContact {
		resp.Address = p.Address
		resp.PhoneNo = p.PhoneNo
	}
	return resp
}

func toProductResponses(products []*domain.Product, includeContact bool) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p, includeContact))
	}
	return out
}
