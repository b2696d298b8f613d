package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"gorm.io/gorm"

	"github.com/JonathanDVZ/CRMGraphQL/internal/models"
)

const DefaultIndex = "products"

// ProductSearch answers full-text product queries from Elasticsearch.
// Without a configured client it falls back to a LIKE filter on the
// database, so deployments (and tests) can run without a cluster.
type ProductSearch struct {
	ES    *elasticsearch.Client
	DB    *gorm.DB
	Index string
}

func (s *ProductSearch) Search(ctx context.Context, text string, limit int) ([]models.Product, error) {
	if s == nil || s.ES == nil {
		return s.searchDB(ctx, text, limit)
	}

	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     text,
				"fields":    []string{"name^2"},
				"fuzziness": "AUTO",
			},
		},
		"size": limit,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("search: encode query: %w", err)
	}

	res, err := s.ES.Search(
		s.ES.Search.WithContext(ctx),
		s.ES.Search.WithIndex(s.Index),
		s.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search: elasticsearch error: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	products := make([]models.Product, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		products[i] = hit.Source
	}
	return products, nil
}

func (s *ProductSearch) searchDB(ctx context.Context, text string, limit int) ([]models.Product, error) {
	if s == nil || s.DB == nil {
		return nil, fmt.Errorf("search: not configured")
	}

	var products []models.Product
	err := s.DB.WithContext(ctx).
		Where("name LIKE ?", "%"+text+"%").
		Order("id ASC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductSearch) IndexProduct(ctx context.Context, p *models.Product) error {
	if s == nil || s.ES == nil {
		return nil
	}

	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("search: marshal product: %w", err)
	}

	res, err := s.ES.Index(
		s.Index,
		bytes.NewReader(doc),
		s.ES.Index.WithDocumentID(strconv.FormatUint(uint64(p.ID), 10)),
		s.ES.Index.WithContext(ctx),
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

func (s *ProductSearch) RemoveProduct(ctx context.Context, id uint) error {
	if s == nil || s.ES == nil {
		return nil
	}

	res, err := s.ES.Delete(
		s.Index,
		strconv.FormatUint(uint64(id), 10),
		s.ES.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("search: remove product: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("search: remove product: %s", res.Status())
	}
	return nil
}
