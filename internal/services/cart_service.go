// internal/services/cart_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/hodu/storefront/internal/models"
	"github.com/hodu/storefront/internal/storage"
)

type CartService struct {
	store storage.Store
}

func NewCartService(store storage.Store) *CartService {
	return &CartService{store: store}
}

// Load reads the stored cart. A missing or unreadable cart is an empty cart.
func (s *CartService) Load(ctx context.Context) (models.Cart, error) {
	var cart models.Cart
	err := storage.GetJSON(ctx, s.store, models.KeyCart, &cart)
	switch {
	case err == nil:
		return cart.Normalize(), nil
	case errors.Is(err, storage.ErrNotFound):
		return models.Cart{}, nil
	default:
		raw, getErr := s.store.Get(ctx, models.KeyCart)
		if getErr != nil {
			return nil, fmt.Errorf("load cart: %w", getErr)
		}
		logrus.WithError(err).WithField("bytes", len(raw)).Warn("Ignoring unreadable cart")
		return models.Cart{}, nil
	}
}

// Add merges quantity of productID into the cart and reports whether the product
// was already there.
func (s *CartService) Add(ctx context.Context, productID int64, quantity int) (bool, error) {
	cart, err := s.Load(ctx)
	if err != nil {
		return false, err
	}

	merged := cart.Merge(productID, quantity)
	if err := storage.SetJSON(ctx, s.store, models.KeyCart, cart); err != nil {
		return false, fmt.Errorf("save cart: %w", err)
	}
	return merged, nil
}
