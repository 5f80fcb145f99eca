// internal/views/navigation.go
package views

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hodu/storefront/internal/i18n"
	"github.com/hodu/storefront/internal/models"
	"github.com/hodu/storefront/internal/services"
	"github.com/hodu/storefront/internal/utils"
)

type NavLink struct {
	Label  string `json:"label"`
	Href   string `json:"href,omitempty"`
	Action string `json:"action,omitempty"`
}

// TokenInfo is what the widget can read from a JWT access token.
type TokenInfo struct {
	Subject   string    `json:"subject,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
	Expired   bool      `json:"expired"`
}

type NavSnapshot struct {
	Authenticated bool            `json:"authenticated"`
	Links         []NavLink       `json:"links"`
	MenuLabel     string          `json:"menu_label,omitempty"`
	MenuOpen      bool            `json:"menu_open"`
	Menu          []NavLink       `json:"menu,omitempty"`
	User          string          `json:"user,omitempty"`
	UserType      models.UserType `json:"user_type,omitempty"`
	Token         *TokenInfo      `json:"token,omitempty"`
}

type NavigationOptions struct {
	Lang     string
	Now      func() time.Time
	OnRender func(NavSnapshot)
}

// NavigationWidget is the header's cart/login/my-page area.
type NavigationWidget struct {
	sessions *services.SessionService
	notifier Notifier
	lang     string
	now      func() time.Time
	render   func(NavSnapshot)

	mu       sync.Mutex
	menuOpen bool
	snap     NavSnapshot
}

func NewNavigationWidget(sessions *services.SessionService, notifier Notifier, opts NavigationOptions) *NavigationWidget {
	if opts.Lang == "" {
		opts.Lang = i18n.DefaultLang
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &NavigationWidget{
		sessions: sessions,
		notifier: notifier,
		lang:     opts.Lang,
		now:      opts.Now,
		render:   opts.OnRender,
	}
}

// Render rebuilds the widget from the stored session.
func (w *NavigationWidget) Render(ctx context.Context) (NavSnapshot, error) {
	session, err := w.sessions.Current(ctx)
	if err != nil && !errors.Is(err, services.ErrNoSession) {
		return w.Snapshot(), err
	}

	w.mu.Lock()
	if session == nil {
		w.menuOpen = false
	}
	w.snap = w.build(session)
	snap := w.snap
	w.mu.Unlock()

	if w.render != nil {
		w.render(snap)
	}
	return snap, nil
}

func (w *NavigationWidget) build(session *models.Session) NavSnapshot {
	snap := NavSnapshot{
		Links: []NavLink{{Label: i18n.T(w.lang, i18n.KeyNavCart), Href: PageCart}},
	}
	if session == nil {
		snap.Links = append(snap.Links, NavLink{Label: i18n.T(w.lang, i18n.KeyNavLogin), Href: PageLogin})
		return snap
	}

	snap.Authenticated = true
	snap.MenuLabel = i18n.T(w.lang, i18n.KeyNavMyPage)
	snap.MenuOpen = w.menuOpen
	snap.Menu = []NavLink{
		{Label: i18n.T(w.lang, i18n.KeyNavMyPage), Href: PageMyPage},
		{Label: i18n.T(w.lang, i18n.KeyNavLogout), Action: "logout"},
	}
	user := session.User()
	snap.User = user.Username
	if user.Name != "" {
		snap.User = user.Name
	}
	snap.UserType = session.UserType

	if claims, err := utils.ParseAccessClaims(session.AccessToken); err == nil {
		snap.Token = &TokenInfo{
			Subject:   claims.SubjectID(),
			ExpiresAt: claims.ExpiresTime(),
			Expired:   claims.Expired(w.now()),
		}
	}
	return snap
}

func (w *NavigationWidget) Snapshot() NavSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snap
}

// ToggleMenu is a click on the my-page trigger. It is not an outside click.
func (w *NavigationWidget) ToggleMenu() NavSnapshot {
	return w.setMenu(func(open bool) bool { return !open })
}

// ClickInside is a click within the open dropdown; the menu stays as it is.
func (w *NavigationWidget) ClickInside() NavSnapshot {
	return w.Snapshot()
}

// ClickOutside closes the menu.
func (w *NavigationWidget) ClickOutside() NavSnapshot {
	return w.setMenu(func(bool) bool { return false })
}

func (w *NavigationWidget) setMenu(next func(bool) bool) NavSnapshot {
	w.mu.Lock()
	if w.snap.Authenticated {
		w.menuOpen = next(w.menuOpen)
		w.snap.MenuOpen = w.menuOpen
	}
	snap := w.snap
	w.mu.Unlock()

	if w.render != nil {
		w.render(snap)
	}
	return snap
}

// Logout removes the session in one step, tells the user and re-renders at once.
func (w *NavigationWidget) Logout(ctx context.Context) (NavSnapshot, error) {
	if err := w.sessions.Clear(ctx); err != nil {
		return w.Snapshot(), err
	}
	w.notifier.Alert(i18n.T(w.lang, i18n.KeyLogoutSuccess))
	return w.Render(ctx)
}
