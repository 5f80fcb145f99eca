// internal/views/detail.go
package views

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/hodu/storefront/internal/i18n"
	"github.com/hodu/storefront/internal/models"
	"github.com/hodu/storefront/internal/services"
	"github.com/hodu/storefront/internal/utils"
)

type DetailSnapshot struct {
	Loaded          bool       `json:"loaded"`
	Title           string     `json:"title,omitempty"`
	ID              int64      `json:"id,omitempty"`
	Image           string     `json:"image,omitempty"`
	FallbackImage   string     `json:"fallback_image,omitempty"`
	Alt             string     `json:"alt,omitempty"`
	Seller          string     `json:"seller,omitempty"`
	Name            string     `json:"name,omitempty"`
	Price           string     `json:"price,omitempty"`
	PriceUnit       string     `json:"price_unit,omitempty"`
	Shipping        string     `json:"shipping,omitempty"`
	Info            string     `json:"info,omitempty"`
	InfoPlaceholder bool       `json:"info_placeholder,omitempty"`
	Quantity        int        `json:"quantity"`
	CanDecrement    bool       `json:"can_decrement"`
	CanIncrement    bool       `json:"can_increment"`
	TotalQuantity   string     `json:"total_quantity,omitempty"`
	TotalPrice      string     `json:"total_price,omitempty"`
	Tabs            []TabState `json:"tabs"`
}

type DetailOptions struct {
	Lang     string
	OnRender func(DetailSnapshot)
}

// DetailView is the product page: quantity counter, tabs, cart and buy-now.
type DetailView struct {
	svc       *services.Services
	notifier  Notifier
	navigator Navigator
	lang      string
	render    func(DetailSnapshot)

	mu       sync.Mutex
	product  *models.Product
	quantity Quantity
	tabs     *TabGroup
}

func NewDetailView(svc *services.Services, notifier Notifier, navigator Navigator, opts DetailOptions) *DetailView {
	if opts.Lang == "" {
		opts.Lang = i18n.DefaultLang
	}
	return &DetailView{
		svc:       svc,
		notifier:  notifier,
		navigator: navigator,
		lang:      opts.Lang,
		render:    opts.OnRender,
		quantity:  NewQuantity(),
		tabs:      NewTabGroup(detailTabs...),
	}
}

// Open loads the product named by the id query value. Without an id, or when
// the product cannot be loaded, the user is told and sent back to the catalog;
// nothing of the product is rendered.
func (v *DetailView) Open(ctx context.Context, query url.Values) (DetailSnapshot, error) {
	raw := query.Get("id")
	if strings.TrimSpace(raw) == "" {
		v.notifier.Alert(i18n.T(v.lang, i18n.KeyProductNotFound))
		v.navigator.Navigate(PageCatalog)
		return v.Snapshot(), ErrMissingProductID
	}

	product, err := v.fetch(ctx, raw)
	if err != nil {
		logrus.WithError(err).WithField("id", raw).Warn("Failed to load product detail")
		v.notifier.Alert(i18n.T(v.lang, i18n.KeyProductLoadFailed))
		v.navigator.Navigate(PageCatalog)
		return v.Snapshot(), err
	}

	v.mu.Lock()
	v.product = product
	v.quantity = NewQuantity()
	v.mu.Unlock()
	return v.emit(), nil
}

func (v *DetailView) fetch(ctx context.Context, raw string) (*models.Product, error) {
	id, err := services.ParseProductID(raw)
	if err != nil {
		return nil, err
	}
	return v.svc.Products.Get(ctx, id)
}

// RestoreQuantity puts back a quantity the page already showed. It is clamped
// into range without the alerts typing it would raise.
func (v *DetailView) RestoreQuantity(quantity int) DetailSnapshot {
	v.mu.Lock()
	v.quantity = Quantity{value: models.ClampQuantity(quantity)}
	v.mu.Unlock()
	return v.emit()
}

func (v *DetailView) Increment() DetailSnapshot {
	v.mu.Lock()
	atMax := v.quantity.Increment()
	v.mu.Unlock()
	if atMax {
		v.notifier.Alert(i18n.T(v.lang, i18n.KeyQuantityMax))
	}
	return v.emit()
}

func (v *DetailView) Decrement() DetailSnapshot {
	v.mu.Lock()
	v.quantity.Decrement()
	v.mu.Unlock()
	return v.emit()
}

// EnterQuantity applies text typed into the quantity field.
func (v *DetailView) EnterQuantity(raw string) DetailSnapshot {
	v.mu.Lock()
	atMax := v.quantity.Enter(raw)
	v.mu.Unlock()
	if atMax {
		v.notifier.Alert(i18n.T(v.lang, i18n.KeyQuantityMax))
	}
	return v.emit()
}

// BlurQuantity is the quantity field losing focus.
func (v *DetailView) BlurQuantity(raw string) DetailSnapshot {
	v.mu.Lock()
	v.quantity.Blur(raw)
	v.mu.Unlock()
	return v.emit()
}

func (v *DetailView) SelectTab(name string) (DetailSnapshot, error) {
	v.mu.Lock()
	err := v.tabs.Select(name)
	v.mu.Unlock()
	if err != nil {
		return v.Snapshot(), err
	}
	return v.emit(), nil
}

// AddToCart merges the current quantity into the cart. Without a session the user
// is offered the login page instead.
func (v *DetailView) AddToCart(ctx context.Context) error {
	product, quantity := v.current()
	if product == nil {
		return nil
	}
	if ok, err := v.requireSession(ctx); !ok {
		return err
	}

	merged, err := v.svc.Cart.Add(ctx, product.ID, quantity)
	if err != nil {
		return err
	}
	if merged {
		v.notifier.Alert(i18n.T(v.lang, i18n.KeyCartMerged))
	} else {
		v.notifier.Alert(i18n.T(v.lang, i18n.KeyCartAdded))
	}

	if v.notifier.Confirm(i18n.T(v.lang, i18n.KeyCartGoPrompt)) {
		v.navigator.Navigate(PageCart)
	}
	return nil
}

// BuyNow stages the product alone as the purchase draft and opens the order page.
func (v *DetailView) BuyNow(ctx context.Context) error {
	product, quantity := v.current()
	if product == nil {
		return nil
	}
	if ok, err := v.requireSession(ctx); !ok {
		return err
	}

	if _, err := v.svc.Purchase.Stage(ctx, product, quantity); err != nil {
		return err
	}
	v.navigator.Navigate(PageOrder)
	return nil
}

func (v *DetailView) requireSession(ctx context.Context) (bool, error) {
	ok, err := v.svc.Sessions.Exists(ctx)
	if err != nil {
		return false, err
	}
	if !ok {
		if v.notifier.Confirm(i18n.T(v.lang, i18n.KeyLoginRequiredPrompt)) {
			v.navigator.Navigate(PageLogin)
		}
		return false, nil
	}
	return true, nil
}

func (v *DetailView) current() (*models.Product, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.product, v.quantity.Value()
}

func (v *DetailView) Snapshot() DetailSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

func (v *DetailView) snapshotLocked() DetailSnapshot {
	qty := v.quantity.Value()
	snap := DetailSnapshot{
		Quantity:     qty,
		CanDecrement: qty > models.MinQuantity,
		CanIncrement: qty < models.MaxQuantity,
		Tabs:         v.tabs.Snapshot(),
	}
	p := v.product
	if p == nil {
		return snap
	}

	snap.Loaded = true
	snap.Title = i18n.T(v.lang, i18n.KeyProductTitle, p.Name)
	snap.ID = p.ID
	snap.Image = v.svc.Assets.ProductImage(p.Image)
	snap.FallbackImage = v.svc.Assets.FallbackImage()
	snap.Alt = p.Name
	snap.Name = p.Name
	snap.Seller = string(p.Seller)
	if snap.Seller == "" {
		snap.Seller = i18n.T(v.lang, i18n.KeyProductSellerFallback)
	}
	snap.Price = utils.FormatNumber(v.lang, p.Price)
	snap.PriceUnit = i18n.T(v.lang, i18n.KeyProductPriceUnit)
	if p.ShippingFee == 0 {
		snap.Shipping = i18n.T(v.lang, i18n.KeyProductFreeShipping)
	} else {
		snap.Shipping = i18n.T(v.lang, i18n.KeyProductShippingFee, utils.FormatNumber(v.lang, p.ShippingFee))
	}
	snap.Info = p.Info
	if strings.TrimSpace(p.Info) == "" {
		snap.Info = i18n.T(v.lang, i18n.KeyProductNoInfo)
		snap.InfoPlaceholder = true
	}
	snap.TotalQuantity = i18n.T(v.lang, i18n.KeyProductTotalQuantity, qty)
	snap.TotalPrice = utils.FormatNumber(v.lang, p.Price*int64(qty))
	return snap
}

func (v *DetailView) emit() DetailSnapshot {
	snap := v.Snapshot()
	if v.render != nil {
		v.render(snap)
	}
	return snap
}
