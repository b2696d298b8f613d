package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/JonathanDVZ/CRMGraphQL/internal/events"
	"github.com/JonathanDVZ/CRMGraphQL/internal/logging"
	"github.com/JonathanDVZ/CRMGraphQL/internal/models"
	"github.com/JonathanDVZ/CRMGraphQL/internal/search"
)

const searchLimit = 10

type ProductService struct {
	DB       *gorm.DB
	Producer *events.Producer
	Search   *search.ProductSearch
}

type ProductInput struct {
	Name  string
	Price float64
	Stock uint
}

func (s *ProductService) Create(ctx context.Context, input ProductInput) (*models.Product, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if input.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}

	product := models.Product{
		Name:  input.Name,
		Price: input.Price,
		Stock: input.Stock,
	}
	if err := s.DB.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, err
	}

	s.index(ctx, &product)
	s.publish(ctx, map[string]any{
		"type":      "product_created",
		"productID": product.ID,
		"name":      product.Name,
	})

	return &product, nil
}

func (s *ProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product doesn't exist", ErrNotFound)
		}
		return nil, err
	}
	return &product, nil
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductService) Update(ctx context.Context, id uint, input ProductInput) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Price = input.Price
	product.Stock = input.Stock

	if err := s.DB.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}

	s.index(ctx, product)
	s.publish(ctx, map[string]any{
		"type":      "product_updated",
		"productID": product.ID,
		"name":      product.Name,
	})

	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	product, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Delete(product).Error; err != nil {
		return err
	}

	if err := s.Search.RemoveProduct(ctx, id); err != nil {
		logging.FromContext(ctx).Error("search remove error", "err", err)
	}
	s.publish(ctx, map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	return nil
}

func (s *ProductService) SearchProducts(ctx context.Context, text string) ([]models.Product, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: search text is required", ErrValidation)
	}
	return s.Search.Search(ctx, text, searchLimit)
}

// index is best-effort: a stale search index must not fail a write.
func (s *ProductService) index(ctx context.Context, product *models.Product) {
	if err := s.Search.IndexProduct(ctx, product); err != nil {
		logging.FromContext(ctx).Error("search index error", "err", err)
	}
}

func (s *ProductService) publish(ctx context.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(ctx, events.TopicProductEvents, fmt.Sprint(event["productID"]), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "err", err)
	}
}
