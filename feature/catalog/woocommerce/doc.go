// Package woocommerce is the remote catalog client. It pulls the full product
// list from the WooCommerce REST API (/wp-json/wc/v3/products) page by page.
//
// Pages are requested sequentially in ascending id order with HTTP Basic auth,
// spaced by a rate.Limiter. Pagination ends on a short page, or when a page
// after the first answers 400/404 (WooCommerce's "invalid page number").
//
// Each page is decoded into generic records first so that null or mistyped
// fields can be defaulted, then decoded into models.RemoteProduct and checked
// with go-playground/validator. One bad record rejects its page with a
// *ValidationError wrapped in a *RemoteFetchError, and FetchAll returns nothing.
package woocommerce
