// internal/views/quantity.go
package views

import (
	"strings"

	"github.com/hodu/storefront/internal/models"
)

// Quantity is the detail page's order counter. It never leaves
// [models.MinQuantity, models.MaxQuantity]; out-of-range input is clamped.
type Quantity struct {
	value int
}

func NewQuantity() Quantity {
	return Quantity{value: models.MinQuantity}
}

func (q Quantity) Value() int {
	if q.value < models.MinQuantity {
		return models.MinQuantity
	}
	return q.value
}

// Increment adds one. At the upper bound it changes nothing and reports the
// warning instead.
func (q *Quantity) Increment() (atMax bool) {
	if q.Value() >= models.MaxQuantity {
		return true
	}
	q.value = q.Value() + 1
	return false
}

// Decrement subtracts one unless the counter is already at the lower bound.
func (q *Quantity) Decrement() (changed bool) {
	if q.Value() <= models.MinQuantity {
		return false
	}
	q.value = q.Value() - 1
	return true
}

// Enter applies typed input. Text without a leading integer, or below one,
// becomes one; anything above the bound becomes the bound and warns.
func (q *Quantity) Enter(raw string) (atMax bool) {
	n, ok := leadingInt(raw)
	switch {
	case !ok || n < models.MinQuantity:
		q.value = models.MinQuantity
	case n > models.MaxQuantity:
		q.value = models.MaxQuantity
		return true
	default:
		q.value = n
	}
	return false
}

// Blur resets an empty or non-positive field to one. Other text is left to Enter.
func (q *Quantity) Blur(raw string) (changed bool) {
	n, ok := leadingInt(raw)
	if strings.TrimSpace(raw) == "" || (ok && n < models.MinQuantity) {
		q.value = models.MinQuantity
		return true
	}
	return false
}

// leadingInt reads an optionally signed run of digits after leading spaces,
// ignoring whatever follows ("12abc" is 12). Values too large to matter
// saturate above MaxQuantity.
func leadingInt(raw string) (int, bool) {
	s := strings.TrimLeft(raw, " \t\r\n")
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n, digits := 0, 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		if n <= models.MaxQuantity {
			n = n*10 + int(s[digits]-'0')
		}
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
