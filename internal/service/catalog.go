package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mushroomery/shop/internal/events"
	"github.com/mushroomery/shop/internal/logging"
	"github.com/mushroomery/shop/internal/models"
	"github.com/mushroomery/shop/internal/repo"
	"github.com/mushroomery/shop/internal/service/search"
)

type CatalogService struct {
	Repo   *repo.GormRepo
	Events *events.Producer
	Index  *search.Index
}

func (s *CatalogService) CreateProduct(ctx context.Context, p *models.Product) error {
	l := logging.FromContext(ctx).With("svc", "catalog.create")

	if p.Name == "" {
		return fmt.Errorf("name must not be empty: %w", ErrValidation)
	}
	if p.Price < 0 {
		return fmt.Errorf("price must not be negative: %w", ErrValidation)
	}
	if p.StockQuantity < 0 {
		return fmt.Errorf("stock_quantity must not be negative: %w", ErrValidation)
	}

	if err := s.Repo.CreateProductIfNotExists(ctx, p); err != nil {
		if errors.Is(err, repo.ErrProductExists) {
			return fmt.Errorf("product %q already exists: %w", p.Name, ErrConflict)
		}
		return err
	}

	// Search indexing and event publishing are best effort.
	if err := s.Index.IndexProduct(ctx, *p); err != nil {
		l.Warn("product indexing failed", "product_id", p.ID, "error", err)
	}
	if err := s.Events.Publish(ctx, "product_events", p.ID.String(), map[string]any{
		"type":       "product_created",
		"product_id": p.ID,
		"name":       p.Name,
	}); err != nil {
		l.Warn("event publish failed", "error", err)
	}

	l.Info("product created", "product_id", p.ID)
	return nil
}

func (s *CatalogService) ListProducts(ctx context.Context, offset, limit int) ([]models.Product, int64, error) {
	return s.Repo.ListProducts(ctx, offset, limit)
}

func (s *CatalogService) SearchProducts(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	if !s.Index.Enabled() {
		return 0, nil, fmt.Errorf("search is not configured: %w", ErrUnavailable)
	}
	return s.Index.Search(ctx, query, from, size)
}
