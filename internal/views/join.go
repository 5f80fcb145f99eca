// internal/views/join.go
package views

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/hodu/storefront/internal/i18n"
	"github.com/hodu/storefront/internal/models"
	"github.com/hodu/storefront/internal/openmarket"
	"github.com/hodu/storefront/internal/services"
)

type JoinSnapshot struct {
	ActiveTab     models.UserType        `json:"active_tab"`
	Tabs          []TabState             `json:"tabs"`
	Agreed        bool                   `json:"agreed"`
	SubmitEnabled bool                   `json:"submit_enabled"`
	Form          RegistrationSnapshot   `json:"form"`
	Forms         []RegistrationSnapshot `json:"forms"`
}

type JoinOptions struct {
	Lang     string
	OnRender func(JoinSnapshot)
}

// JoinView is the sign-up page: one form per account kind, a shared terms
// agreement and a single submit button gated on the active form.
type JoinView struct {
	svc       *services.Services
	notifier  Notifier
	navigator Navigator
	lang      string
	render    func(JoinSnapshot)

	mu     sync.Mutex
	tabs   *TabGroup
	forms  map[models.UserType]*RegistrationForm
	agreed bool
}

var joinKinds = []models.UserType{models.UserTypeBuyer, models.UserTypeSeller}

func NewJoinView(svc *services.Services, notifier Notifier, navigator Navigator, opts JoinOptions) *JoinView {
	if opts.Lang == "" {
		opts.Lang = i18n.DefaultLang
	}
	v := &JoinView{
		svc:       svc,
		notifier:  notifier,
		navigator: navigator,
		lang:      opts.Lang,
		render:    opts.OnRender,
		tabs:      NewTabGroup(string(models.UserTypeBuyer), string(models.UserTypeSeller)),
		forms:     make(map[models.UserType]*RegistrationForm, len(joinKinds)),
	}
	for _, kind := range joinKinds {
		v.forms[kind] = NewRegistrationForm(kind, opts.Lang)
	}
	return v
}

// RestoreChecks re-applies username checks that succeeded earlier for the
// usernames currently entered. A check whose username has since been edited is
// forgotten, so editing back to it needs a new check.
func (v *JoinView) RestoreChecks(ctx context.Context) error {
	for _, kind := range joinKinds {
		confirmed, err := v.svc.Auth.CheckedUsername(ctx, kind)
		if err != nil {
			return err
		}
		v.mu.Lock()
		_, stale := v.forms[kind].RestoreUsernameCheck(confirmed)
		v.mu.Unlock()
		if stale {
			if err := v.svc.Auth.ForgetCheckedUsername(ctx, kind); err != nil {
				return err
			}
		}
	}
	v.emit()
	return nil
}

func (v *JoinView) active() *RegistrationForm {
	return v.forms[models.UserType(v.tabs.Active())]
}

func (v *JoinView) form(kind models.UserType) (*RegistrationForm, error) {
	f, ok := v.forms[kind]
	if !ok {
		return nil, fmt.Errorf("unknown account kind %q", kind)
	}
	return f, nil
}

func (v *JoinView) SelectTab(kind models.UserType) (JoinSnapshot, error) {
	v.mu.Lock()
	err := v.tabs.Select(string(kind))
	v.mu.Unlock()
	return v.emit(), err
}

func (v *JoinView) SetAgreement(agreed bool) JoinSnapshot {
	v.mu.Lock()
	v.agreed = agreed
	v.mu.Unlock()
	return v.emit()
}

func (v *JoinView) ToggleAgreement() JoinSnapshot {
	v.mu.Lock()
	v.agreed = !v.agreed
	v.mu.Unlock()
	return v.emit()
}

// Input types value into field of the kind form.
func (v *JoinView) Input(kind models.UserType, field Field, value string) (JoinSnapshot, error) {
	v.mu.Lock()
	f, err := v.form(kind)
	if err == nil {
		err = f.Input(field, value)
	}
	v.mu.Unlock()
	return v.emit(), err
}

func (v *JoinView) Blur(kind models.UserType, field Field) (JoinSnapshot, error) {
	v.mu.Lock()
	f, err := v.form(kind)
	if err == nil {
		err = f.Blur(field)
	}
	v.mu.Unlock()
	return v.emit(), err
}

// CheckUsername runs the explicit duplicate check for the kind form. Only an
// available answer lets the form submit.
func (v *JoinView) CheckUsername(ctx context.Context, kind models.UserType) (JoinSnapshot, error) {
	v.mu.Lock()
	f, err := v.form(kind)
	if err != nil {
		v.mu.Unlock()
		return v.Snapshot(), err
	}
	username, ok := f.PrepareUsernameCheck()
	v.mu.Unlock()
	if !ok {
		return v.emit(), nil
	}

	result := UsernameAvailable
	if err := v.svc.Auth.CheckUsername(ctx, username); err != nil {
		result = UsernameUnreachable
		if _, rejected := openmarket.AsAPIError(err); rejected {
			result = UsernameTaken
		} else {
			logrus.WithError(err).WithField("user_type", kind).Warn("Username check failed")
		}
	}

	var stateErr error
	if result == UsernameAvailable {
		stateErr = v.svc.Auth.RememberCheckedUsername(ctx, kind, username)
	} else {
		stateErr = v.svc.Auth.ForgetCheckedUsername(ctx, kind)
	}

	v.mu.Lock()
	// the username may have been edited while the check was in flight
	if f.TrimmedUsername() == username {
		f.ApplyUsernameCheck(result)
	}
	v.mu.Unlock()
	return v.emit(), stateErr
}

// CanSubmit is true when the terms are agreed and the active form is complete.
func (v *JoinView) CanSubmit() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.agreed && v.active().Complete()
}

// Submit signs up with the active form. It does nothing while the button is
// disabled and reports whether the account was created.
func (v *JoinView) Submit(ctx context.Context) bool {
	v.mu.Lock()
	f := v.active()
	if !v.agreed || !f.Complete() {
		v.mu.Unlock()
		return false
	}
	kind := f.Kind()
	username, password, name, prefix, middle, last := f.SignupFields()
	v.mu.Unlock()

	err := v.svc.Auth.Signup(ctx, kind, &services.SignupRequest{
		Username:    username,
		Password:    password,
		Name:        name,
		PhonePrefix: prefix,
		PhoneMiddle: middle,
		PhoneLast:   last,
	})
	if err == nil {
		if err := v.svc.Auth.ForgetCheckedUsername(ctx, kind); err != nil {
			logrus.WithError(err).Warn("Failed to clear username check")
		}
		v.notifier.Alert(i18n.T(v.lang, i18n.KeySignupSuccess))
		v.navigator.Navigate(PageLogin)
		return true
	}

	apiErr, ok := openmarket.AsAPIError(err)
	if !ok {
		logrus.WithError(err).WithField("user_type", kind).Warn("Signup request failed")
		v.notifier.Alert(i18n.T(v.lang, i18n.KeyServerUnreachable))
		return false
	}

	rejection := openmarket.ParseSignupRejection(apiErr.Body)
	if rejection.PhoneDuplicate {
		v.mu.Lock()
		f.ShowPhoneDuplicate()
		v.mu.Unlock()
		v.emit()
		return false
	}

	message := rejection.Message
	if message == "" {
		message = i18n.T(v.lang, i18n.KeySignupFailed)
	}
	v.notifier.Alert(message)
	return false
}

func (v *JoinView) Snapshot() JoinSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	active := v.active()
	forms := make([]RegistrationSnapshot, 0, len(joinKinds))
	for _, kind := range joinKinds {
		forms = append(forms, v.forms[kind].Snapshot())
	}
	return JoinSnapshot{
		ActiveTab:     active.Kind(),
		Tabs:          v.tabs.Snapshot(),
		Agreed:        v.agreed,
		SubmitEnabled: v.agreed && active.Complete(),
		Form:          active.Snapshot(),
		Forms:         forms,
	}
}

func (v *JoinView) emit() JoinSnapshot {
	snap := v.Snapshot()
	if v.render != nil {
		v.render(snap)
	}
	return snap
}
