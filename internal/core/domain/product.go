package domain

import (
	"errors"
	"time"
)

// MaterialCategories is the fixed category list shared between validation and
// the categories endpoint. Not user-extensible.
var MaterialCategories = []string{
	"Wood",
	"Glass",
	"Aggregates",
	"Metals",
	"Bricks/Blocks",
	"Plastics",
	"Composites",
	"Cement",
	"Structural Materials",
	"Finishing Materials",
	"Ceramic Materials",
	"Insulation Materials",
	"Roofing Materials",
	"Landscaping Materials",
	"Adhesives/Sealants",
	"Paint/Coatings",
	"Plumbing Materials",
	"Electrical Materials",
	"Hardware/Fasteners",
	"Other",
}

// ValidCategory reports whether c is one of MaterialCategories.
func ValidCategory(c string) bool {
	for _, known := range MaterialCategories {
		if known == c {
			return true
		}
	}
	return false
}

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product")
	ErrUnknownCategory = errors.New("unknown category")
	ErrNegativePrice   = errors.New("price must be greater than or equal to 0")
	ErrNegativeQty     = errors.New("quantity must be greater than or equal to 0")
)

// Product is a construction-material listing owned by exactly one seller.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Quantity    int64     `json:"quantity"`
	Category    string    `json:"category"`
	Address     string    `json:"address"`
	PhoneNo     string    `json:"phone_no"`
	Image       string    `json:"image,omitempty"`
	SellerID    string    `json:"seller_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CanBeMutatedBy decides mutation rights over a product: the owning seller
// and admins may update or delete it, nobody else.
func (p *Product) CanBeMutatedBy(userID string, role Role) bool {
	return p.SellerID == userID || role == RoleAdmin
}

// Validate checks the record-level invariants before persistence.
func (p *Product) Validate() error {
	if p.Title == "" || p.Description == "" || p.Address == "" || p.PhoneNo == "" {
		return ErrInvalidProduct
	}
	if p.Price < 0 {
		return ErrNegativePrice
	}
	if p.Quantity < 0 {
		return ErrNegativeQty
	}
	if !ValidCategory(p.Category) {
		return ErrUnknownCategory
	}
	return nil
}
