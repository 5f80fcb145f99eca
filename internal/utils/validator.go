// internal/utils/validator.go
package utils

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/hodu/storefront/internal/i18n"
)

var validate *validator.Validate

// PhonePrefixes are the carrier prefixes offered by the registration form.
var PhonePrefixes = []string{"010", "011", "016", "017", "018", "019"}

// PasswordSymbols is the set a password must draw at least one symbol from.
const PasswordSymbols = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

var (
	usernamePattern   = regexp.MustCompile(`^[a-zA-Z0-9]{1,20}$`)
	phoneGroupPattern = regexp.MustCompile(`^\d{4}$`)
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("strong_password", validateStrongPassword)
	validate.RegisterValidation("username", validateUsername)
	validate.RegisterValidation("phone_group", validatePhoneGroup)
	validate.RegisterValidation("phone_prefix", validatePhonePrefix)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func IsValidUsername(username string) bool {
	return validate.Var(username, "username") == nil
}

func IsStrongPassword(password string) bool {
	return validate.Var(password, "strong_password") == nil
}

func IsValidPhoneGroup(group string) bool {
	return validate.Var(group, "phone_group") == nil
}

func IsValidPhonePrefix(prefix string) bool {
	return validate.Var(prefix, "phone_prefix") == nil
}

// SanitizePhoneGroup strips non-digits and keeps at most four of them.
func SanitizePhoneGroup(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			if b.Len() == 4 {
				break
			}
		}
	}
	return b.String()
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	if utf8.RuneCountInString(password) < 8 {
		return false
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool

	for _, char := range password {
		switch {
		case char >= 'A' && char <= 'Z':
			hasUpper = true
		case char >= 'a' && char <= 'z':
			hasLower = true
		case unicode.IsDigit(char) && char < utf8.RuneSelf:
			hasNumber = true
		case strings.ContainsRune(PasswordSymbols, char):
			hasSpecial = true
		}
	}

	return hasUpper && hasLower && hasNumber && hasSpecial
}

// Username is 1-20 ASCII letters or digits.
func validateUsername(fl validator.FieldLevel) bool {
	return usernamePattern.MatchString(fl.Field().String())
}

func validatePhoneGroup(fl validator.FieldLevel) bool {
	return phoneGroupPattern.MatchString(fl.Field().String())
}

func validatePhonePrefix(fl validator.FieldLevel) bool {
	prefix := fl.Field().String()
	for _, p := range PhonePrefixes {
		if p == prefix {
			return true
		}
	}
	return false
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(lang string, err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(lang, e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(lang string, e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return i18n.T(lang, i18n.KeyRequired)
	case "strong_password":
		return i18n.T(lang, i18n.KeyPasswordFormat)
	case "username":
		return i18n.T(lang, i18n.KeyUsernameFormat)
	case "phone_group", "phone_prefix":
		return i18n.T(lang, i18n.KeyPhoneInvalid)
	default:
		return i18n.T(lang, i18n.KeyInvalidRequest)
	}
}
