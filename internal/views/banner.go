// internal/views/banner.go
package views

import (
	"context"
	"sync"
	"time"

	"github.com/hodu/storefront/internal/i18n"
)

// DefaultBannerInterval is how often the carousel advances on its own.
const DefaultBannerInterval = 5 * time.Second

type Indicator struct {
	Index        int    `json:"index"`
	Active       bool   `json:"active"`
	AriaSelected string `json:"aria_selected"`
}

type BannerSnapshot struct {
	Active     int         `json:"active"`
	Image      string      `json:"image"`
	Alt        string      `json:"alt"`
	Link       string      `json:"link"`
	Indicators []Indicator `json:"indicators"`
}

// Carousel cycles through a fixed list of slides, always modulo their count.
type Carousel struct {
	mu       sync.Mutex
	slides   []string
	current  int
	interval time.Duration
	lang     string
	render   func(BannerSnapshot)
}

type CarouselOptions struct {
	Interval time.Duration
	Lang     string
	OnRender func(BannerSnapshot)
}

func NewCarousel(slides []string, opts CarouselOptions) *Carousel {
	if opts.Interval <= 0 {
		opts.Interval = DefaultBannerInterval
	}
	if opts.Lang == "" {
		opts.Lang = i18n.DefaultLang
	}
	return &Carousel{
		slides:   slides,
		interval: opts.Interval,
		lang:     opts.Lang,
		render:   opts.OnRender,
	}
}

func (c *Carousel) Next() BannerSnapshot { return c.move(func(i int) int { return i + 1 }) }
func (c *Carousel) Prev() BannerSnapshot { return c.move(func(i int) int { return i - 1 }) }

// Select jumps to slide i.
func (c *Carousel) Select(i int) BannerSnapshot {
	return c.move(func(int) int { return i })
}

func (c *Carousel) move(step func(int) int) BannerSnapshot {
	c.mu.Lock()
	if n := len(c.slides); n > 0 {
		c.current = ((step(c.current) % n) + n) % n
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if c.render != nil {
		c.render(snap)
	}
	return snap
}

func (c *Carousel) Snapshot() BannerSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Carousel) snapshotLocked() BannerSnapshot {
	snap := BannerSnapshot{
		Active:     c.current,
		Link:       PageCatalog,
		Indicators: make([]Indicator, len(c.slides)),
	}
	if len(c.slides) > 0 {
		snap.Image = c.slides[c.current]
		snap.Alt = i18n.T(c.lang, i18n.KeyBannerAlt, c.current+1)
	}
	for i := range c.slides {
		selected := "false"
		if i == c.current {
			selected = "true"
		}
		snap.Indicators[i] = Indicator{Index: i, Active: i == c.current, AriaSelected: selected}
	}
	return snap
}

// Run advances the carousel every interval until ctx ends. Manual moves do
// not reset the schedule.
func (c *Carousel) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Next()
		}
	}
}
