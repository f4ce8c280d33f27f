// Package config provides configuration management for catalog-sync.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Every package owns its Config struct; defaults live in
// `default:` struct tags and are registered by reflection so that AutomaticEnv
// can resolve SECTION_KEY variables.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP port, API key and public paths (SERVER_*)
//   - Log: Logging level and format (LOG_*)
//   - Database: sqlite, mysql or postgres connection (DATABASE_*)
//   - Storage: S3/MinIO credentials for the report archive (STORAGE_*)
//   - WooCommerce: remote catalog endpoint and credentials (WOOCOMMERCE_*)
//   - Sync: batch size, cron schedule and archiving (SYNC_*)
//   - Redis: optional run lease (REDIS_*)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.WooCommerce.BaseURL)
package config
