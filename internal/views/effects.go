// internal/views/effects.go
package views

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

// Pages the storefront navigates between.
const (
	PageCatalog = "index.html"
	PageDetail  = "detail.html"
	PageLogin   = "login.html"
	PageJoin    = "join.html"
	PageCart    = "cart.html"
	PageOrder   = "order.html"
	PageMyPage  = "mypage.html"
)

// ErrMissingProductID is returned by DetailView.Open when the page has no id.
var ErrMissingProductID = errors.New("missing product id")

// Notifier shows blocking messages to the user.
type Notifier interface {
	Alert(message string)
	// Confirm asks a yes/no question and reports the answer.
	Confirm(message string) bool
}

// Navigator leaves the current page.
type Navigator interface {
	Navigate(target string)
}

// DetailURL links a product card to its detail page.
func DetailURL(id int64) string {
	return PageDetail + "?id=" + strconv.FormatInt(id, 10)
}

// SearchRedirect is where a header search box outside the catalog sends the user.
// An empty keyword stays put and returns "".
func SearchRedirect(keyword string) string {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return ""
	}
	return PageCatalog + "?search=" + url.QueryEscape(keyword)
}
