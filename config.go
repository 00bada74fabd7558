package manuscript

import "github.com/alnah/go-manuscript/internal/config"

// Config is the nested conversion configuration: document defaults,
// typography, numbering, TOC, bibliography, index and output settings.
type Config = config.Config

// ConfigTree is the generic, dot-addressable form of a Config.
type ConfigTree = config.Tree

// Configuration errors.
var (
	ErrConfigNotFound = config.ErrConfigNotFound
	ErrConfigParse    = config.ErrConfigParse
	ErrInvalidConfig  = config.ErrInvalidConfig
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return config.DefaultConfig()
}

// LoadConfig loads a YAML configuration by file path or by name and merges
// it onto the defaults. Names are searched as NAME.yaml and NAME.yml in the
// current directory, then in the user config directory under go-manuscript.
func LoadConfig(nameOrPath string) (*Config, error) {
	return config.LoadConfig(nameOrPath)
}

// NewConfig merges override onto the defaults. Nested maps merge
// recursively; on scalar collisions the override wins.
func NewConfig(override ConfigTree) (*Config, error) {
	return config.New(override)
}
