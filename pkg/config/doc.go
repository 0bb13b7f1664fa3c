// Package config loads slinky's configuration.
//
// Values are layered with koanf: embedded defaults, then the user's TOML
// file, then SLINKY_* environment variables, then command line flags that
// were set explicitly.
package config
