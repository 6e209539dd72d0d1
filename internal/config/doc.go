// Package config loads appdeck's configuration file.
//
// The file lives at ~/.config/appdeck/config.toml unless a path is given. A
// missing file is not an error; every key has a default:
//
//	base_url         = "https://rokumobileinterview.s3.us-west-2.amazonaws.com/"
//	endpoint         = "apps.json"
//	request_timeout  = "10s"
//	refresh_interval = "0s"   # 0 disables automatic refresh
//	log_file         = "~/.local/state/appdeck/appdeck.log"
//	log_level        = "info"
//
// Values are trimmed and empty strings fall back to the default. Paths may
// start with ~. log_file = "-" turns file logging off. After parsing, Validate rejects non-http(s) base URLs,
// absolute endpoints, negative durations and unknown log levels; the error
// names the offending field.
package config
