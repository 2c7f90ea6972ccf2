// Package config loads the console's configuration.
//
// # Resolution
//
// Values are layered, highest priority first:
//
//  1. Command-line flags
//  2. FNOL_* environment variables (a .env file in the working directory is honoured)
//  3. The TOML file (~/.config/fnol/config.toml unless --config is given)
//  4. Built-in defaults
//
// Load handles 3 and 4. Layers 1 and 2 are collected by the CLI and passed
// to Config.Apply as Overrides. A missing file is not an error.
//
// # TOML Format
//
//	backend_url = "http://127.0.0.1:8000"
//	request_timeout = "60s"
//	export_dir = "~/claims"
//	log_path = "~/.local/state/fnol/fnol.log"
//
// backend_url is the only value that changes behaviour against the claims
// service. Submissions go to backend_url + "/process"; trailing slashes are
// trimmed and a bare host:port gets an http:// scheme.
package config
