package handler

import "time"

// --- Request types ---

type createProductRequest struct {
	Title       string   `json:"title"       validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       *float64 `json:"price"       validate:"required,gte=0"`
	Quantity    *int64   `json:"quantity"    validate:"required,gte=0"`
	Category    string   `json:"category"    validate:"required"`
	Address     string   `json:"address"     validate:"required"`
	PhoneNo     string   `json:"phone_no"    validate:"required"`
	Image       string   `json:"image"`
}

// updateProductRequest carries a partial update; absent fields stay unchanged.
type updateProductRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"       validate:"omitempty,gte=0"`
	Quantity    *int64   `json:"quantity"    validate:"omitempty,gte=0"`
	Category    *string  `json:"category"`
	Image       *string  `json:"image"`
}

type searchRequest struct {
	Query string `json:"query" validate:"required"`
}

// --- Response types ---

// productResponse is the public product view. Address and phone_no are
// contact fields: they are populated only for authenticated callers and
// omitted from the JSON otherwise.
type productResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Quantity    int64     `json:"quantity"`
	Category    string    `json:"category"`
	Address     string    `json:"address,omitempty"`
	PhoneNo     string    `json:"phone_no,omitempty"`
	Image       string    `json:"image,omitempty"`
	SellerID    string    `json:"seller_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type productListResponse struct {
	Products []productResponse `json:"products"`
}

type searchResponse struct {
	Products []productResponse `json:"products"`
	Source   string            `json:"source"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

type productEnvelope struct {
	Product productResponse `json:"product"`
}
