// internal/views/login.go
package views

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/hodu/storefront/internal/i18n"
	"github.com/hodu/storefront/internal/models"
	"github.com/hodu/storefront/internal/openmarket"
	"github.com/hodu/storefront/internal/services"
)

type LoginSnapshot struct {
	ActiveTab models.UserType `json:"active_tab"`
	Tabs      []TabState      `json:"tabs"`
}

type LoginOptions struct {
	Lang string
}

type LoginView struct {
	svc       *services.Services
	notifier  Notifier
	navigator Navigator
	lang      string

	mu   sync.Mutex
	tabs *TabGroup
}

func NewLoginView(svc *services.Services, notifier Notifier, navigator Navigator, opts LoginOptions) *LoginView {
	if opts.Lang == "" {
		opts.Lang = i18n.DefaultLang
	}
	return &LoginView{
		svc:       svc,
		notifier:  notifier,
		navigator: navigator,
		lang:      opts.Lang,
		tabs:      NewTabGroup(string(models.UserTypeBuyer), string(models.UserTypeSeller)),
	}
}

// Open sends a user who already has a session back to the catalog. It reports
// whether the page stays open.
func (v *LoginView) Open(ctx context.Context) (bool, error) {
	ok, err := v.svc.Sessions.Exists(ctx)
	if err != nil {
		return false, err
	}
	if ok {
		v.notifier.Alert(i18n.T(v.lang, i18n.KeyLoginAlreadyLogged))
		v.navigator.Navigate(PageCatalog)
		return false, nil
	}
	return true, nil
}

func (v *LoginView) SelectTab(kind models.UserType) (LoginSnapshot, error) {
	v.mu.Lock()
	err := v.tabs.Select(string(kind))
	v.mu.Unlock()
	return v.Snapshot(), err
}

func (v *LoginView) Snapshot() LoginSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return LoginSnapshot{
		ActiveTab: models.UserType(v.tabs.Active()),
		Tabs:      v.tabs.Snapshot(),
	}
}

// Submit logs in as kind. Every outcome ends in exactly one alert; success also
// stores the session and navigates to the catalog.
func (v *LoginView) Submit(ctx context.Context, kind models.UserType, username, password string) bool {
	if username == "" || password == "" {
		v.notifier.Alert(i18n.T(v.lang, i18n.KeyLoginMissingFields))
		return false
	}
	if !kind.Valid() {
		kind = models.UserTypeBuyer
	}

	_, err := v.svc.Auth.Login(ctx, kind, username, password)
	if err == nil {
		v.notifier.Alert(i18n.T(v.lang, i18n.KeyLoginSuccess))
		v.navigator.Navigate(PageCatalog)
		return true
	}

	if apiErr, ok := openmarket.AsAPIError(err); ok {
		message := apiErr.Field("error")
		if message == "" {
			message = i18n.T(v.lang, i18n.KeyLoginFailed)
		}
		v.notifier.Alert(message)
		return false
	}
	if errors.Is(err, services.ErrNoAccessToken) {
		v.notifier.Alert(i18n.T(v.lang, i18n.KeyLoginFailed))
		return false
	}

	logrus.WithError(err).WithField("login_type", kind.LoginType()).Warn("Login request failed")
	v.notifier.Alert(i18n.T(v.lang, i18n.KeyServerUnreachable))
	return false
}
