// internal/services/product_service.go
package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/hodu/storefront/internal/models"
	"github.com/hodu/storefront/internal/openmarket"
)

type ProductService struct {
	api CatalogAPI
}

func NewProductService(api CatalogAPI) *ProductService {
	return &ProductService{api: api}
}

// List fetches one catalog page. An empty keyword lists everything.
func (s *ProductService) List(ctx context.Context, keyword string, page int) (*models.ProductPage, error) {
	result, err := s.api.ListProducts(ctx, openmarket.ProductQuery{
		Search: strings.TrimSpace(keyword),
		Page:   page,
	})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return result, nil
}

func (s *ProductService) Get(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.api.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return product, nil
}

// ParseProductID accepts the id query value of the detail page.
func ParseProductID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid product id %q: %w", raw, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid product id %q", raw)
	}
	return id, nil
}
