// Package config provides configuration management for the scene toolkit.
//
// It utilizes Viper for loading configuration from environment variables,
// a .env file and an optional config.yaml.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, rate limit)
//   - Database: MySQL or SQLite connection details for stored manifests
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//   - Loader: Pool sizes per asset kind, base directory and download timeout
//   - Cache: Memory and Redis blob cache settings
//   - Audio: Output device and mixer volumes
//
// Defaults come from the `default` struct tags. Environment variables override
// file values using upper-case keys with dots replaced by underscores
// (e.g. LOADER_TEXTURE_POOL_SIZE).
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
//
// Watch reloads config.yaml on change, which the serve command uses to apply
// new mixer volumes without a restart.
package config
