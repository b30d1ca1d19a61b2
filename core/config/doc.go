// Package config provides configuration management for the catalog mirror.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults are declared next to each section through
// `default:"..."` struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Catalog: remote catalog API base URL, token, page size and request pacing
//   - Mirror: mirror driver (firebase, memory), database URL and service account file
//   - Sync: loop interval and the image CDN prefix
//   - Notify: downstream image notification endpoint
//   - Audit: where raw catalog rows are dumped after each cycle
//   - Server: HTTP server settings (port, API key)
//   - Database: run journal connection details
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//
// Nested keys map to upper-case environment variables joined with underscores,
// e.g. catalog.token is read from CATALOG_TOKEN.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Sync.IntervalSeconds)
package config
