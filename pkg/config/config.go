package config

import (
	toml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/slinky/pkg/errors"
)

// Config is the effective configuration of a run.
type Config struct {
	Walk   Walk   `koanf:"walk" toml:"walk"`
	Output Output `koanf:"output" toml:"output"`
	Exec   Exec   `koanf:"exec" toml:"exec"`
}

// Walk configures tree traversal.
type Walk struct {
	MaxDepth int      `koanf:"max_depth" toml:"max_depth"`
	Exclude  []string `koanf:"exclude" toml:"exclude"`
}

// Output configures rendering.
type Output struct {
	Color  string `koanf:"color" toml:"color"`
	Format string `koanf:"format" toml:"format"`
	Status bool   `koanf:"status" toml:"status"`
}

// Exec configures the exec command.
type Exec struct {
	Shell string `koanf:"shell" toml:"shell"`
}

// Accepted values for Output fields.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"

	FormatText = "text"
	FormatJSON = "json"
)

// Validate rejects values the rest of slinky cannot act on.
func (c *Config) Validate() error {
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.Newf(errors.ErrConfigLoad, "output.color must be auto, always or never, got %q", c.Output.Color)
	}
	switch c.Output.Format {
	case FormatText, FormatJSON:
	default:
		return errors.Newf(errors.ErrConfigLoad, "output.format must be text or json, got %q", c.Output.Format)
	}
	return nil
}

// TOML renders c as a TOML document.
func (c *Config) TOML() ([]byte, error) {
	out, err := toml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to render configuration")
	}
	return out, nil
}
