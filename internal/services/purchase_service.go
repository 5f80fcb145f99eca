// internal/services/purchase_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/hodu/storefront/internal/models"
	"github.com/hodu/storefront/internal/storage"
)

// ErrNoPurchaseDraft is returned when nothing has been staged for the order page.
var ErrNoPurchaseDraft = errors.New("no purchase draft")

type PurchaseService struct {
	store storage.Store
}

func NewPurchaseService(store storage.Store) *PurchaseService {
	return &PurchaseService{store: store}
}

// Stage overwrites the single purchase slot with product at quantity.
func (s *PurchaseService) Stage(ctx context.Context, product *models.Product, quantity int) (*models.PurchaseDraft, error) {
	draft := models.NewPurchaseDraft(product, quantity)
	if err := storage.SetJSON(ctx, s.store, models.KeyPurchaseData, draft); err != nil {
		return nil, fmt.Errorf("stage purchase: %w", err)
	}
	return draft, nil
}

func (s *PurchaseService) Current(ctx context.Context) (*models.PurchaseDraft, error) {
	var draft models.PurchaseDraft
	err := storage.GetJSON(ctx, s.store, models.KeyPurchaseData, &draft)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNoPurchaseDraft
	}
	if err != nil {
		return nil, fmt.Errorf("load purchase draft: %w", err)
	}
	return &draft, nil
}
