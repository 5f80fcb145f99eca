// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeyServerUnreachable = "common.server_unreachable"
	KeyRequired          = "common.required"
	KeyInvalidRequest    = "common.invalid_request"
	KeyTooManyRequests   = "common.too_many_requests"
	KeyInternalError     = "common.internal_error"

	// Navigation
	KeyNavCart   = "nav.cart"
	KeyNavLogin  = "nav.login"
	KeyNavMyPage = "nav.mypage"
	KeyNavLogout = "nav.logout"

	// Catalog
	KeyCatalogEmpty      = "catalog.empty"
	KeyCatalogLoadFailed = "catalog.load_failed"
	KeyCatalogRetry      = "catalog.retry"
	KeyBannerAlt         = "catalog.banner_alt"

	// Product detail
	KeyProductSellerFallback = "product.seller_fallback"
	KeyProductNotFound       = "product.not_found"
	KeyProductLoadFailed     = "product.load_failed"
	KeyProductNoInfo         = "product.no_info"
	KeyProductFreeShipping   = "product.free_shipping"
	KeyProductShippingFee    = "product.shipping_fee"
	KeyProductPriceUnit      = "product.price_unit"
	KeyProductTotalQuantity  = "product.total_quantity"
	KeyProductTitle          = "product.title"
	KeyQuantityMax           = "product.quantity_max"

	// Cart and purchase
	KeyLoginRequiredPrompt = "cart.login_required"
	KeyCartAdded           = "cart.added"
	KeyCartMerged          = "cart.merged"
	KeyCartGoPrompt        = "cart.go_prompt"
	KeyPurchaseEmpty       = "cart.purchase_empty"

	// Login
	KeyLoginMissingFields = "auth.login_missing_fields"
	KeyLoginSuccess       = "auth.login_success"
	KeyLoginFailed        = "auth.login_failed"
	KeyLoginAlreadyLogged = "auth.already_logged_in"
	KeyLogoutSuccess      = "auth.logout_success"

	// Registration
	KeyUsernameFormat    = "join.username_format"
	KeyUsernameAvailable = "join.username_available"
	KeyUsernameTaken     = "join.username_taken"
	KeyPasswordFormat    = "join.password_format"
	KeyPasswordMismatch  = "join.password_mismatch"
	KeyPhoneInvalid      = "join.phone_invalid"
	KeyPhoneDuplicate    = "join.phone_duplicate"
	KeySignupSuccess     = "join.signup_success"
	KeySignupFailed      = "join.signup_failed"
)
