// internal/openmarket/products.go
package openmarket

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hodu/storefront/internal/models"
)

// ProductQuery filters GET products/. Zero values are omitted.
type ProductQuery struct {
	Search string
	Page   int
}

func (q ProductQuery) values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Page > 1 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	return v
}

func (c *Client) ListProducts(ctx context.Context, q ProductQuery) (*models.ProductPage, error) {
	var page models.ProductPage
	if err := c.do(ctx, http.MethodGet, "products/", q.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	path := "products/" + strconv.FormatInt(id, 10) + "/"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}
