// Package config loads elcap-firsts settings.
//
// Settings are resolved from, highest priority first: command-line flags
// bound by the caller, ELCAP_* environment variables, the config file
// (~/.elcap-firsts/config.yaml by default) and the built-in defaults.
// MOUNTAIN_PROJECT_KEY is honored as a fallback for the API key.
package config
