package server

import "strings"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// PublicPaths lists path prefixes served without the API key, comma separated.
	PublicPaths string `mapstructure:"public_paths" default:"/health,/metrics,/swagger"`
}

// Addr returns the listen address for the configured port.
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// PublicPrefixes splits PublicPaths into trimmed, non-empty prefixes.
func (c Config) PublicPrefixes() []string {
	var out []string
	for _, p := range strings.Split(c.PublicPaths, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
