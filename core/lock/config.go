package lock

import "time"

// Config holds the redis connection used for the cross-instance run lease.
// An empty Addr disables the lease.
type Config struct {
	// Addr is the redis host:port.
	Addr string `mapstructure:"addr" default:""`
	// Password is the optional redis password.
	Password string `mapstructure:"password" default:""`
	// DB is the redis database index.
	DB int `mapstructure:"db" default:"0"`
	// LeaseTTL bounds how long a crashed holder can block other instances.
	// A live holder refreshes the lease every third of the TTL.
	LeaseTTL time.Duration `mapstructure:"lease_ttl" default:"15m"`
	// KeyPrefix namespaces lease keys.
	KeyPrefix string `mapstructure:"key_prefix" default:"catalog-sync:lock:"`
}

// Enabled reports whether a redis address is configured.
func (c Config) Enabled() bool {
	return c.Addr != ""
}
