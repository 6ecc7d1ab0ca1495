package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/mushroomery/shop/internal/models"
)

// Index is a thin wrapper over the product search index. A nil Index
// disables search-related behavior.
type Index struct {
	ES   *elasticsearch.Client
	Name string
}

func (ix *Index) Enabled() bool {
	return ix != nil && ix.ES != nil
}

func (ix *Index) IndexProduct(ctx context.Context, p models.Product) error {
	if !ix.Enabled() {
		return nil
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(p); err != nil {
		return fmt.Errorf("search: encode product: %w", err)
	}

	res, err := ix.ES.Index(
		ix.Name,
		&buf,
		ix.ES.Index.WithContext(ctx),
		ix.ES.Index.WithDocumentID(p.ID.String()),
	)
	if err != nil {
		return fmt.Errorf("search: index product: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("search: index product: %s", res.Status())
	}
	return nil
}

// Search runs a fuzzy multi_match over name and description.
func (ix *Index) Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search: encode query: %w", err)
	}

	res, err := ix.ES.Search(
		ix.ES.Search.WithContext(ctx),
		ix.ES.Search.WithIndex(ix.Name),
		ix.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: query: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: query: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("search: decode response: %w", err)
	}

	products := make([]models.Product, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		products[i] = hit.Source
	}
	return r.Hits.Total.Value, products, nil
}
