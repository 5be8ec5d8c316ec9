// Package config handles loading and validating berk configuration files.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/berk/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. BERK_BACKEND_URL, when set, wins over backend_url
//
// # Default Values
//
//   - Config file: ~/.config/berk/config.toml
//   - Backend: https://api.example.com
//   - Auth scheme: bearer
//   - Data directory: ~/.local/share/berk
//   - Log directory: <data_dir>/logs
//   - Storage driver: file (<data_dir>/storage.toml); sqlite uses <data_dir>/berk.db
//   - Request timeout: 15s
//
// # TOML Format
//
//	backend_url = "https://api.example.com"
//	auth_scheme = "bearer"        # or "basic"
//	data_dir = "~/.local/share/berk"
//	log_level = "info"
//	storage_driver = "file"       # or "sqlite"
//	request_timeout = "15s"
//
// All fields are optional. Tilde expansion is performed for directories.
//
// # Validation
//
// After defaults are applied the struct is validated with go-playground/validator
// tags. Every violated field is reported in one error so a broken config file can
// be fixed in a single pass.
//
// Missing config files are NOT an error. berk works out of the box against the
// default backend and only needs a config file to point elsewhere.
package config
