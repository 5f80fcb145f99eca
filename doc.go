// Package storefront is the HODU open-market storefront client: the catalog,
// product detail, login, sign-up and navigation views, backed by a per-origin
// key/value store and the open-market REST API.
//
// The views run behind two surfaces: cmd/server, a gin backend-for-frontend that
// gives every browser its own storage origin, and cmd/cli, a terminal client that
// keeps its state in a local JSON file.
package storefront
