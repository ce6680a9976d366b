// Package catalog exposes read-only product and category queries.
package catalog

import (
	"context"
	"fmt"

	"storefront-client/internal/api"
	"storefront-client/internal/domain"
)

// TokenSource provides the current access token.
type TokenSource interface {
	AccessToken() string
}

// Service runs paged catalog queries with at least anonymous scope.
type Service struct {
	builder *api.Builder
	exec    *api.Executor
	tokens  TokenSource
}

// New wires the catalog service.
func New(builder *api.Builder, exec *api.Executor, tokens TokenSource) *Service {
	return &Service{builder: builder, exec: exec, tokens: tokens}
}

// Products runs a product-projection query with pagination, filter
// predicates, sort keys and optional free-text search.
func (s *Service) Products(ctx context.Context, q api.ProductQuery) (*domain.ProductPage, error) {
	token := s.tokens.AccessToken()
	if token == "" {
		return nil, domain.ErrMissingToken
	}
	var page domain.ProductPage
	if err := s.exec.Do(ctx, s.builder.ProductProjections(token, q), &page); err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	return &page, nil
}

// Categories lists catalog categories.
func (s *Service) Categories(ctx context.Context, limit, offset int) (*domain.CategoryPage, error) {
	token := s.tokens.AccessToken()
	if token == "" {
		return nil, domain.ErrMissingToken
	}
	var page domain.CategoryPage
	if err := s.exec.Do(ctx, s.builder.Categories(token, limit, offset), &page); err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	return &page, nil
}
