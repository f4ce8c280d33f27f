// Package middleware groups the HTTP middleware installed by the start command.
//
// Subpackages:
//   - rayid: reuses an incoming X-Ray-ID header or generates one, stores it in
//     fiber locals and echoes it on the response so log lines can be correlated.
//   - auth: checks X-API-Key (or a Bearer token) against SERVER_API_KEY. Paths under
//     SERVER_PUBLIC_PATHS, by default /health, /metrics and /swagger, skip the check.
//     An empty key disables it.
//
// Order matters: rayid runs first, then request logging, then auth.
package middleware
