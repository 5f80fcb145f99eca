// internal/views/fields.go
package views

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hodu/storefront/internal/i18n"
	"github.com/hodu/storefront/internal/models"
	"github.com/hodu/storefront/internal/utils"
)

// Field names a registration form input.
type Field string

const (
	FieldUsername        Field = "username"
	FieldPassword        Field = "password"
	FieldPasswordConfirm Field = "password_confirm"
	FieldName            Field = "name"
	FieldPhonePrefix     Field = "phone_prefix"
	FieldPhoneMiddle     Field = "phone_middle"
	FieldPhoneLast       Field = "phone_last"
)

// ErrUnknownField is returned for inputs the registration form does not have.
var ErrUnknownField = errors.New("unknown registration field")

type MessageKind string

const (
	MessageError   MessageKind = "error"
	MessageSuccess MessageKind = "success"
)

// FieldMessage is the inline text under an input.
type FieldMessage struct {
	Text string      `json:"text,omitempty"`
	Kind MessageKind `json:"kind,omitempty"`
}

// Mark is the error/success styling of one input.
type Mark string

const (
	MarkNone    Mark = ""
	MarkError   Mark = "error"
	MarkSuccess Mark = "success"
)

// UsernameCheckResult is the outcome of the explicit duplicate check.
type UsernameCheckResult int

const (
	UsernameAvailable UsernameCheckResult = iota
	UsernameTaken
	UsernameUnreachable
)

// RegistrationForm is one account kind's sign-up form. Every event method updates
// the inline message and marks of the fields it touches and nothing else.
type RegistrationForm struct {
	kind models.UserType
	lang string

	username    string
	password    string
	confirm     string
	name        string
	phonePrefix string
	phoneMiddle string
	phoneLast   string

	usernameChecked bool
	usernameEdited  bool

	messages map[Field]FieldMessage
	marks    map[Field]Mark
}

func NewRegistrationForm(kind models.UserType, lang string) *RegistrationForm {
	return &RegistrationForm{
		kind:        kind,
		lang:        lang,
		phonePrefix: utils.PhonePrefixes[0],
		messages:    make(map[Field]FieldMessage),
		marks:       make(map[Field]Mark),
	}
}

func (f *RegistrationForm) Kind() models.UserType { return f.kind }

func (f *RegistrationForm) UsernameChecked() bool { return f.usernameChecked }

func (f *RegistrationForm) TrimmedUsername() string { return strings.TrimSpace(f.username) }

func (f *RegistrationForm) t(key string) string {
	return i18n.T(f.lang, key)
}

func (f *RegistrationForm) fail(field Field, key string) {
	f.messages[field] = FieldMessage{Text: f.t(key), Kind: MessageError}
}

func (f *RegistrationForm) clear(field Field) {
	delete(f.messages, field)
}

// Input applies a value typed into field.
func (f *RegistrationForm) Input(field Field, value string) error {
	switch field {
	case FieldUsername:
		f.inputUsername(value)
	case FieldPassword:
		f.inputPassword(value)
	case FieldPasswordConfirm:
		f.confirm = value
		f.validateConfirm()
	case FieldName:
		f.inputName(value)
	case FieldPhonePrefix:
		if !utils.IsValidPhonePrefix(value) {
			return fmt.Errorf("unknown phone prefix %q", value)
		}
		f.phonePrefix = value
	case FieldPhoneMiddle:
		f.phoneMiddle = utils.SanitizePhoneGroup(value)
		f.validatePhone()
	case FieldPhoneLast:
		f.phoneLast = utils.SanitizePhoneGroup(value)
		f.validatePhone()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Blur is field losing focus.
func (f *RegistrationForm) Blur(field Field) error {
	switch field {
	case FieldUsername:
		f.requireNonEmpty(field, strings.TrimSpace(f.username))
	case FieldPassword:
		f.requireNonEmpty(field, f.password)
	case FieldPasswordConfirm:
		f.requireNonEmpty(field, f.confirm)
	case FieldName:
		f.requireNonEmpty(field, strings.TrimSpace(f.name))
	case FieldPhoneMiddle, FieldPhoneLast:
		f.validatePhone()
	case FieldPhonePrefix:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

func (f *RegistrationForm) requireNonEmpty(field Field, value string) {
	if value == "" {
		f.fail(field, i18n.KeyRequired)
		f.marks[field] = MarkError
	}
}

func (f *RegistrationForm) inputUsername(value string) {
	f.username = value
	f.usernameChecked = false
	f.usernameEdited = true
	f.marks[FieldUsername] = MarkNone

	username := strings.TrimSpace(value)
	switch {
	case username == "":
		f.fail(FieldUsername, i18n.KeyRequired)
		f.marks[FieldUsername] = MarkError
	case !utils.IsValidUsername(username):
		f.fail(FieldUsername, i18n.KeyUsernameFormat)
		f.marks[FieldUsername] = MarkError
	default:
		f.clear(FieldUsername)
	}
}

// PrepareUsernameCheck validates the username locally before the remote check.
// It returns the trimmed username and whether the remote check should run.
func (f *RegistrationForm) PrepareUsernameCheck() (string, bool) {
	username := strings.TrimSpace(f.username)
	switch {
	case username == "":
		f.fail(FieldUsername, i18n.KeyRequired)
	case !utils.IsValidUsername(username):
		f.fail(FieldUsername, i18n.KeyUsernameFormat)
	default:
		return username, true
	}
	f.marks[FieldUsername] = MarkError
	f.usernameChecked = false
	return "", false
}

func (f *RegistrationForm) ApplyUsernameCheck(result UsernameCheckResult) {
	switch result {
	case UsernameAvailable:
		f.messages[FieldUsername] = FieldMessage{Text: f.t(i18n.KeyUsernameAvailable), Kind: MessageSuccess}
		f.marks[FieldUsername] = MarkSuccess
		f.usernameChecked = true
	case UsernameTaken:
		f.fail(FieldUsername, i18n.KeyUsernameTaken)
		f.marks[FieldUsername] = MarkError
		f.usernameChecked = false
	default:
		f.fail(FieldUsername, i18n.KeyServerUnreachable)
		f.usernameChecked = false
	}
}

// RestoreUsernameCheck marks the username as checked when it is exactly the one
// an earlier check confirmed. stale reports that the username was edited away
// from the confirmed one, so the earlier check no longer counts.
func (f *RegistrationForm) RestoreUsernameCheck(confirmed string) (restored, stale bool) {
	if confirmed == "" {
		return false, false
	}
	username := strings.TrimSpace(f.username)
	if username != confirmed || !utils.IsValidUsername(username) {
		return false, f.usernameEdited
	}
	f.ApplyUsernameCheck(UsernameAvailable)
	return true, false
}

func (f *RegistrationForm) inputPassword(value string) {
	f.password = value
	switch {
	case value == "":
		f.fail(FieldPassword, i18n.KeyRequired)
		f.marks[FieldPassword] = MarkError
	case utils.IsStrongPassword(value):
		f.clear(FieldPassword)
		f.marks[FieldPassword] = MarkSuccess
	default:
		f.fail(FieldPassword, i18n.KeyPasswordFormat)
		f.marks[FieldPassword] = MarkError
	}

	if f.confirm != "" {
		f.validateConfirm()
	}
}

func (f *RegistrationForm) validateConfirm() {
	switch {
	case f.confirm == "":
		f.fail(FieldPasswordConfirm, i18n.KeyRequired)
		f.marks[FieldPasswordConfirm] = MarkError
	case f.confirm != f.password:
		f.fail(FieldPasswordConfirm, i18n.KeyPasswordMismatch)
		f.marks[FieldPasswordConfirm] = MarkError
	default:
		f.clear(FieldPasswordConfirm)
		f.marks[FieldPasswordConfirm] = MarkSuccess
	}
}

func (f *RegistrationForm) inputName(value string) {
	f.name = value
	if strings.TrimSpace(value) == "" {
		f.fail(FieldName, i18n.KeyRequired)
		f.marks[FieldName] = MarkError
		return
	}
	f.clear(FieldName)
	f.marks[FieldName] = MarkSuccess
}

// validatePhone owns the single phone message and the marks of both groups.
func (f *RegistrationForm) validatePhone() {
	middle, last := f.phoneMiddle, f.phoneLast

	switch {
	case middle == "" && last == "":
		f.fail(FieldPhoneMiddle, i18n.KeyRequired)
		f.markPhone(MarkError, MarkError)
	case middle == "" || last == "":
		f.fail(FieldPhoneMiddle, i18n.KeyRequired)
		f.markPhone(emptyMark(middle), emptyMark(last))
	case !utils.IsValidPhoneGroup(middle) || !utils.IsValidPhoneGroup(last):
		f.fail(FieldPhoneMiddle, i18n.KeyPhoneInvalid)
		f.markPhone(MarkError, MarkError)
	default:
		f.clear(FieldPhoneMiddle)
		f.markPhone(MarkSuccess, MarkSuccess)
	}
}

func emptyMark(v string) Mark {
	if v == "" {
		return MarkError
	}
	return MarkNone
}

func (f *RegistrationForm) markPhone(middle, last Mark) {
	f.marks[FieldPhoneMiddle] = middle
	f.marks[FieldPhoneLast] = last
}

// ShowPhoneDuplicate puts the server's phone rejection under the phone inputs.
func (f *RegistrationForm) ShowPhoneDuplicate() {
	f.fail(FieldPhoneMiddle, i18n.KeyPhoneDuplicate)
}

// Complete reports whether every field is filled and valid and the username was checked.
func (f *RegistrationForm) Complete() bool {
	filled := strings.TrimSpace(f.username) != "" &&
		f.password != "" &&
		f.confirm != "" &&
		strings.TrimSpace(f.name) != "" &&
		f.phoneMiddle != "" &&
		f.phoneLast != ""

	return filled &&
		f.usernameChecked &&
		utils.IsStrongPassword(f.password) &&
		f.password == f.confirm &&
		utils.IsValidPhoneGroup(f.phoneMiddle) &&
		utils.IsValidPhoneGroup(f.phoneLast)
}

// SignupFields returns the values sent to the API.
func (f *RegistrationForm) SignupFields() (username, password, name, prefix, middle, last string) {
	return strings.TrimSpace(f.username), f.password, strings.TrimSpace(f.name), f.phonePrefix, f.phoneMiddle, f.phoneLast
}

type RegistrationSnapshot struct {
	Kind            models.UserType        `json:"kind"`
	Username        string                 `json:"username"`
	Name            string                 `json:"name"`
	PhonePrefix     string                 `json:"phone_prefix"`
	PhoneMiddle     string                 `json:"phone_middle"`
	PhoneLast       string                 `json:"phone_last"`
	UsernameChecked bool                   `json:"username_checked"`
	Messages        map[Field]FieldMessage `json:"messages"`
	Marks           map[Field]Mark         `json:"marks"`
}

func (f *RegistrationForm) Snapshot() RegistrationSnapshot {
	messages := make(map[Field]FieldMessage, len(f.messages))
	for k, v := range f.messages {
		messages[k] = v
	}
	marks := make(map[Field]Mark, len(f.marks))
	for k, v := range f.marks {
		if v != MarkNone {
			marks[k] = v
		}
	}
	return RegistrationSnapshot{
		Kind:            f.kind,
		Username:        f.username,
		Name:            f.name,
		PhonePrefix:     f.phonePrefix,
		PhoneMiddle:     f.phoneMiddle,
		PhoneLast:       f.phoneLast,
		UsernameChecked: f.usernameChecked,
		Messages:        messages,
		Marks:           marks,
	}
}
