// Package config provides configuration management for change-sync.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file. Defaults come from the `default` struct tags of
// each package's Config.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Log: logging level and format
//   - Sync: default sheet, key field, required and optional fields
//   - Source: export delimiter and fallback encoding
//   - Journal: run history database (sqlite file or MySQL)
//
// Nested keys map to environment variables by replacing dots with
// underscores: sync.sheet is read from SYNC_SHEET.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Sync.Sheet)
package config
