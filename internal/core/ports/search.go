package ports

import (
	"context"

	"github.com/material-mover/marketplace-api/internal/core/domain"
)

// Search result sources.
const (
	SearchSourceDelegate = "delegate"
	SearchSourceLocal    = "local"
)

// SearchDelegate is the optional external search backend. It receives the raw
// query and answers with product identifiers; ranking and semantics are its
// concern. Implementations must honor ctx cancellation.
type SearchDelegate interface {
	Query(ctx context.Context, query string) ([]string, error)
}

// SearchResult pairs resolved products with the resolution source.
type SearchResult struct {
	Products []*domain.Product
	Source   string
}

// SearchService resolves a free-text query to a product set, preferring the
// delegate and degrading silently to local matching.
type SearchService interface {
	Resolve(ctx context.Context, query string) (*SearchResult, error)
}
