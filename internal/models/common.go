// internal/models/common.go
package models

import "strings"

// Enums
type UserType string

const (
	UserTypeBuyer  UserType = "buyer"
	UserTypeSeller UserType = "seller"
)

// LoginType is the account-kind discriminant the open-market API expects.
type LoginType string

const (
	LoginTypeBuyer  LoginType = "BUYER"
	LoginTypeSeller LoginType = "SELLER"
)

func (t UserType) Valid() bool {
	return t == UserTypeBuyer || t == UserTypeSeller
}

func (t UserType) LoginType() LoginType {
	if t == UserTypeSeller {
		return LoginTypeSeller
	}
	return LoginTypeBuyer
}

// ParseUserType accepts both the storage form ("buyer") and the wire form ("BUYER").
func ParseUserType(s string) (UserType, bool) {
	t := UserType(strings.ToLower(strings.TrimSpace(s)))
	return t, t.Valid()
}

// Quantity bounds shared by the detail counter and the cart.
const (
	MinQuantity = 1
	MaxQuantity = 99
)

// ClampQuantity forces q into [MinQuantity, MaxQuantity].
func ClampQuantity(q int) int {
	switch {
	case q < MinQuantity:
		return MinQuantity
	case q > MaxQuantity:
		return MaxQuantity
	default:
		return q
	}
}

// Storage keys. They mirror the browser local-storage layout.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUserInfo     = "user_info"
	KeyUserType     = "user_type"
	KeyCart         = "cart"
	KeyPurchaseData = "purchase_data"
)

// SessionKeys are written and removed together.
var SessionKeys = []string{KeyAccessToken, KeyRefreshToken, KeyUserInfo, KeyUserType}

// CheckedUsernameKey stores the last username confirmed available for a registration form.
func CheckedUsernameKey(t UserType) string {
	return "join_checked_username_" + string(t)
}
