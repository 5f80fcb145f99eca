// internal/services/services.go
package services

import (
	"context"

	"github.com/hodu/storefront/internal/models"
	"github.com/hodu/storefront/internal/openmarket"
	"github.com/hodu/storefront/internal/storage"
)

// CatalogAPI is the product half of the open-market API.
type CatalogAPI interface {
	ListProducts(ctx context.Context, q openmarket.ProductQuery) (*models.ProductPage, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
}

// AccountAPI is the account half of the open-market API.
type AccountAPI interface {
	Login(ctx context.Context, req openmarket.LoginRequest) (*openmarket.LoginResponse, error)
	ValidateUsername(ctx context.Context, username string) error
	Signup(ctx context.Context, kind models.UserType, req openmarket.SignupRequest) error
}

type OpenMarket interface {
	CatalogAPI
	AccountAPI
}

// Services bundles the services of one client origin.
type Services struct {
	Products *ProductService
	Sessions *SessionService
	Auth     *AuthService
	Cart     *CartService
	Purchase *PurchaseService
	Assets   *AssetService
}

func NewServices(api OpenMarket, store storage.Store, assets *AssetService) *Services {
	sessions := NewSessionService(store)
	return &Services{
		Products: NewProductService(api),
		Sessions: sessions,
		Auth:     NewAuthService(api, sessions, store),
		Cart:     NewCartService(store),
		Purchase: NewPurchaseService(store),
		Assets:   assets,
	}
}
