package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/material-mover/marketplace-api/internal/core/domain"
	"github.com/material-mover/marketplace-api/internal/core/ports"
)

const (
	searchLimit           = 50
	defaultDelegateWindow = 3 * time.Second
)

// SearchService resolves a query through the optional external delegate and
// falls back to deterministic local matching. The delegate is best effort: a
// timeout, an error, an empty id list or ids that match nothing all degrade
// silently to the local path. Callers never see a delegate failure.
type SearchService struct {
	delegate ports.SearchDelegate // nil when no delegate is configured
	repo     ports.ProductRepository
	window   time.Duration
	log      zerolog.Logger
}

// NewSearchService builds a SearchService. delegate may be nil; a non-positive
// window falls back to the default delegate timeout.
func NewSearchService(delegate ports.SearchDelegate, repo ports.ProductRepository, window time.Duration, log zerolog.Logger) *SearchService {
	if window <= 0 {
		window = defaultDelegateWindow
	}
	return &SearchService{delegate: delegate, repo: repo, window: window, log: log}
}

func (s *SearchService) Resolve(ctx context.Context, query string) (*ports.SearchResult, error) {
	if products, ok := s.resolveDelegate(ctx, query); ok {
		return &ports.SearchResult{Products: products, Source: ports.SearchSourceDelegate}, nil
	}

	products, err := s.repo.SearchText(ctx, query, searchLimit)
	if err != nil {
		return nil, err
	}
	return &ports.SearchResult{Products: products, Source: ports.SearchSourceLocal}, nil
}

// resolveDelegate consults the delegate with a bounded timeout and no retry.
// ok is false whenever the local fallback should run.
func (s *SearchService) resolveDelegate(ctx context.Context, query string) ([]*domain.Product, bool) {
	if s.delegate == nil {
		return nil, false
	}

	delegateCtx, cancel := context.WithTimeout(ctx, s.window)
	defer cancel()

	ids, err := s.delegate.Query(delegateCtx, query)
	if err != nil {
		s.log.Warn().Err(err).Str("query", query).Msg("search delegate failed, falling back to local search")
		return nil, false
	}
	if len(ids) == 0 {
		return nil, false
	}

	products, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		s.log.Warn().Err(err).Msg("fetch by delegate ids failed, falling back to local search")
		return nil, false
	}
	if len(products) == 0 {
		return nil, false
	}
	return products, true
}
