// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines the
// configuration structure: the listen port, the API key protecting the catalog
// endpoints, and the path prefixes that stay public (health, metrics, API docs).
package server
