package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the benchmark driver's optional TOML configuration, loaded via
// --config. Every field has a zero-value-safe default so the flag is
// optional; MallocLoggingEnabled is the one field that gates a hard abort,
// matching the original driver's "malloc logging not enabled" fatal
// configuration error.
type Config struct {
	MallocLoggingEnabled bool   `toml:"malloc_logging_enabled"`
	RewriterName         string `toml:"rewriter"`
}

// DefaultConfig returns the configuration used when --config is not given.
func DefaultConfig() Config {
	return Config{
		MallocLoggingEnabled: true,
		RewriterName:         "null",
	}
}

// LoadConfig reads and decodes a TOML configuration file at path.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("recoptbench: decode config %q: %w", path, err)
	}
	return cfg, nil
}
