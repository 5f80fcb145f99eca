// internal/views/catalog.go
package views

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/hodu/storefront/internal/i18n"
	"github.com/hodu/storefront/internal/models"
	"github.com/hodu/storefront/internal/services"
	"github.com/hodu/storefront/internal/utils"
)

type CatalogState string

const (
	CatalogLoading CatalogState = "loading"
	CatalogReady   CatalogState = "ready"
	CatalogEmpty   CatalogState = "empty"
	CatalogError   CatalogState = "error"
)

const (
	// SkeletonCards is the number of placeholder cards shown while loading.
	SkeletonCards = 8
	// DefaultSearchDebounce is the pause after typing before a search fires.
	DefaultSearchDebounce = 500 * time.Millisecond
	minSearchRunes        = 2
)

type ProductCard struct {
	ID            int64  `json:"id"`
	Link          string `json:"link"`
	Image         string `json:"image"`
	FallbackImage string `json:"fallback_image"`
	Alt           string `json:"alt"`
	Seller        string `json:"seller"`
	Name          string `json:"name"`
	Price         string `json:"price"`
	PriceUnit     string `json:"price_unit"`
}

type CatalogSnapshot struct {
	State      CatalogState  `json:"state"`
	Keyword    string        `json:"keyword,omitempty"`
	Skeletons  int           `json:"skeletons,omitempty"`
	Cards      []ProductCard `json:"cards,omitempty"`
	Message    string        `json:"message,omitempty"`
	RetryLabel string        `json:"retry_label,omitempty"`
	Page       int           `json:"page"`
	Total      int           `json:"total"`
	HasNext    bool          `json:"has_next"`
	HasPrev    bool          `json:"has_prev"`
}

type CatalogOptions struct {
	Lang     string
	Debounce time.Duration
	OnRender func(CatalogSnapshot)
}

// CatalogView is the product list page. Every load carries a sequence number;
// starting a load cancels the previous request and a result that is no longer
// the latest is dropped.
type CatalogView struct {
	products *services.ProductService
	assets   *services.AssetService
	lang     string
	render   func(CatalogSnapshot)
	debounce *Debouncer

	mu      sync.Mutex
	pageCtx context.Context
	seq     uint64
	cancel  context.CancelFunc
	keyword string
	page    int
	snap    CatalogSnapshot
}

func NewCatalogView(products *services.ProductService, assets *services.AssetService, opts CatalogOptions) *CatalogView {
	if opts.Lang == "" {
		opts.Lang = i18n.DefaultLang
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultSearchDebounce
	}
	return &CatalogView{
		products: products,
		assets:   assets,
		lang:     opts.Lang,
		render:   opts.OnRender,
		debounce: NewDebouncer(opts.Debounce),
		pageCtx:  context.Background(),
		page:     1,
		snap:     CatalogSnapshot{State: CatalogLoading, Skeletons: SkeletonCards, Page: 1},
	}
}

// Open loads the page for its query string (search, page). ctx bounds the page's
// lifetime, including debounced searches fired later.
func (v *CatalogView) Open(ctx context.Context, query url.Values) CatalogSnapshot {
	v.mu.Lock()
	v.pageCtx = ctx
	v.mu.Unlock()

	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	return v.load(ctx, strings.TrimSpace(query.Get("search")), page)
}

// Load fetches the first page for keyword; empty means everything.
func (v *CatalogView) Load(ctx context.Context, keyword string) CatalogSnapshot {
	return v.load(ctx, strings.TrimSpace(keyword), 1)
}

// Input reacts to typing in the search box. After the debounce delay a keyword of
// two or more characters searches, an empty box reloads everything and a single
// character does nothing.
func (v *CatalogView) Input(keyword string) {
	keyword = strings.TrimSpace(keyword)
	v.debounce.Trigger(func() {
		v.mu.Lock()
		ctx := v.pageCtx
		v.mu.Unlock()

		switch n := utf8.RuneCountInString(keyword); {
		case n >= minSearchRunes:
			v.load(ctx, keyword, 1)
		case n == 0:
			v.load(ctx, "", 1)
		}
	})
}

// Submit is a search button click or Enter. It supersedes any pending debounced search.
func (v *CatalogView) Submit(ctx context.Context, keyword string) CatalogSnapshot {
	v.debounce.Cancel()
	return v.load(ctx, strings.TrimSpace(keyword), 1)
}

// Retry is the error state's button: a full, unfiltered reload.
func (v *CatalogView) Retry(ctx context.Context) CatalogSnapshot {
	v.debounce.Cancel()
	return v.load(ctx, "", 1)
}

// Page moves to page n of the current listing.
func (v *CatalogView) Page(ctx context.Context, n int) CatalogSnapshot {
	if n < 1 {
		n = 1
	}
	v.mu.Lock()
	keyword := v.keyword
	v.mu.Unlock()
	return v.load(ctx, keyword, n)
}

func (v *CatalogView) Snapshot() CatalogSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snap
}

// Close drops the pending search and the in-flight request.
func (v *CatalogView) Close() {
	v.debounce.Cancel()
	v.mu.Lock()
	defer v.mu.Unlock()
	v.seq++
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

func (v *CatalogView) load(ctx context.Context, keyword string, page int) CatalogSnapshot {
	v.mu.Lock()
	v.seq++
	seq := v.seq
	if v.cancel != nil {
		v.cancel()
	}
	reqCtx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.keyword, v.page = keyword, page
	v.snap = CatalogSnapshot{State: CatalogLoading, Keyword: keyword, Skeletons: SkeletonCards, Page: page}
	loading := v.snap
	v.mu.Unlock()
	v.emit(loading)

	result, err := v.products.List(reqCtx, keyword, page)

	v.mu.Lock()
	if seq != v.seq {
		v.mu.Unlock()
		cancel()
		return v.Snapshot()
	}
	v.cancel = nil
	cancel()

	if err != nil {
		logrus.WithError(err).WithField("keyword", keyword).Warn("Failed to load products")
		v.snap = CatalogSnapshot{
			State:      CatalogError,
			Keyword:    keyword,
			Message:    i18n.T(v.lang, i18n.KeyCatalogLoadFailed),
			RetryLabel: i18n.T(v.lang, i18n.KeyCatalogRetry),
			Page:       page,
		}
	} else {
		v.snap = v.listing(keyword, page, result)
	}
	snap := v.snap
	v.mu.Unlock()

	v.emit(snap)
	return snap
}

func (v *CatalogView) listing(keyword string, page int, result *models.ProductPage) CatalogSnapshot {
	snap := CatalogSnapshot{
		Keyword: keyword,
		Page:    page,
		Total:   result.Count,
		HasNext: result.Next != nil && *result.Next != "",
		HasPrev: result.Previous != nil && *result.Previous != "",
	}
	if len(result.Results) == 0 {
		snap.State = CatalogEmpty
		snap.Message = i18n.T(v.lang, i18n.KeyCatalogEmpty)
		return snap
	}

	snap.State = CatalogReady
	snap.Cards = make([]ProductCard, 0, len(result.Results))
	for i := range result.Results {
		snap.Cards = append(snap.Cards, v.card(&result.Results[i]))
	}
	return snap
}

func (v *CatalogView) card(p *models.Product) ProductCard {
	seller := string(p.Seller)
	if seller == "" {
		seller = i18n.T(v.lang, i18n.KeyProductSellerFallback)
	}
	return ProductCard{
		ID:            p.ID,
		Link:          DetailURL(p.ID),
		Image:         v.assets.ProductImage(p.Image),
		FallbackImage: v.assets.FallbackImage(),
		Alt:           p.Name,
		Seller:        seller,
		Name:          p.Name,
		Price:         utils.FormatNumber(v.lang, p.Price),
		PriceUnit:     i18n.T(v.lang, i18n.KeyProductPriceUnit),
	}
}

func (v *CatalogView) emit(snap CatalogSnapshot) {
	if v.render != nil {
		v.render(snap)
	}
}
