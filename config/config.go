// Package config loads the machine's initial stock and change definition.
//
// The definition is read from --config, $VENDING_CONFIG, or
// $XDG_CONFIG_HOME/vending/machine.yaml (defaults to
// ~/.config/vending/machine.yaml), in that order. When none of those exist
// the embedded default.yaml is used. YAML and JSON files are decoded with
// yaml.v3, TOML files with BurntSushi/toml.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"vending"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvPath overrides the config file location.
const EnvPath = "VENDING_CONFIG"

//go:embed default.yaml
var defaultDefinition []byte

// StockItem is one product line: quantity identical products.
type StockItem struct {
	Name     string `yaml:"name" toml:"name"`
	Price    int    `yaml:"price" toml:"price"`
	Quantity int    `yaml:"quantity" toml:"quantity"`
}

// CoinStack is quantity coins of one denomination, named by label.
type CoinStack struct {
	Coin     string `yaml:"coin" toml:"coin"`
	Quantity int    `yaml:"quantity" toml:"quantity"`
}

// Config is the initial contents of a machine.
type Config struct {
	Stock  []StockItem `yaml:"stock" toml:"stock"`
	Change []CoinStack `yaml:"change" toml:"change"`

	// Source is where the definition was read from.
	Source string `yaml:"-" toml:"-"`
}

// Path returns the default config file location. It respects
// XDG_CONFIG_HOME, falling back to ~/.config/vending/machine.yaml.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".config", "vending", "machine.yaml")
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "vending", "machine.yaml")
}

// Resolve picks the definition to load. An explicit path wins, then the
// environment, then the default path if it exists. An empty result means
// the embedded default.
func Resolve(explicit string) string {
	if p := strings.TrimSpace(explicit); p != "" {
		return p
	}
	if p := strings.TrimSpace(os.Getenv(EnvPath)); p != "" {
		return p
	}
	if _, err := os.Stat(Path()); err == nil {
		return Path()
	}
	return ""
}

// Load reads and validates the definition at path. An empty path loads the
// embedded default.
func Load(path string, denoms vending.Denominations) (*Config, error) {
	if path == "" {
		return Default(denoms)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data, formatOf(path))
	if err != nil {
		return nil, err
	}
	cfg.Source = path
	if err := cfg.Validate(denoms); err != nil {
		return nil, fmt.Errorf("validate config %s: %w", path, err)
	}
	slog.Debug("Loaded machine config.", "path", path, "products", len(cfg.Stock), "coins", len(cfg.Change))
	return cfg, nil
}

// Default returns the embedded definition.
func Default(denoms vending.Denominations) (*Config, error) {
	cfg, err := Parse(defaultDefinition, FormatYAML)
	if err != nil {
		return nil, err
	}
	cfg.Source = "embedded"
	if err := cfg.Validate(denoms); err != nil {
		return nil, fmt.Errorf("validate embedded config: %w", err)
	}
	return cfg, nil
}

// Format is a definition file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// formatOf picks the decoder by extension. JSON is a subset of YAML and
// goes through the YAML decoder.
func formatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Parse decodes a definition without validating it.
func Parse(data []byte, format Format) (*Config, error) {
	var cfg Config
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("parse config: unsupported format %q", format)
	}
	return &cfg, nil
}

// Validate rejects definitions the machine cannot be loaded from: blank
// product names, non-positive prices or quantities, and coin labels that
// name no accepted denomination. All problems are reported together.
func (c *Config) Validate(denoms vending.Denominations) error {
	var errs []error
	for i, item := range c.Stock {
		field := fmt.Sprintf("stock[%d]", i)
		if strings.TrimSpace(item.Name) == "" {
			errs = append(errs, &ValidationError{Field: field + ".name", Message: "must not be empty"})
			continue
		}
		if item.Price <= 0 {
			errs = append(errs, &ValidationError{
				Field:   field + ".price",
				Message: fmt.Sprintf("invalid price for %s: %d. Must be positive integer", item.Name, item.Price),
			})
		}
		if item.Quantity <= 0 {
			errs = append(errs, &ValidationError{
				Field:   field + ".quantity",
				Message: fmt.Sprintf("invalid quantity for %s: %d. Must be positive integer", item.Name, item.Quantity),
			})
		}
	}
	for i, stack := range c.Change {
		field := fmt.Sprintf("change[%d]", i)
		if _, ok := denoms.Parse(stack.Coin); !ok {
			errs = append(errs, &ValidationError{Field: field + ".coin", Message: fmt.Sprintf("unknown coin %q", stack.Coin)})
			continue
		}
		if stack.Quantity <= 0 {
			errs = append(errs, &ValidationError{
				Field:   field + ".quantity",
				Message: fmt.Sprintf("invalid quantity for %s: %d. Must be positive integer", stack.Coin, stack.Quantity),
			})
		}
	}
	return errors.Join(errs...)
}

// Products expands the stock lines into individual products in file order.
func (c *Config) Products() []vending.Product {
	var out []vending.Product
	for _, item := range c.Stock {
		for range item.Quantity {
			out = append(out, vending.NewProduct(strings.TrimSpace(item.Name), item.Price))
		}
	}
	return out
}

// Coins expands the change lines into individual coins in file order.
// Lines naming an unknown denomination are skipped; Validate reports them.
func (c *Config) Coins(denoms vending.Denominations) []vending.Coin {
	var out []vending.Coin
	for _, stack := range c.Change {
		coin, ok := denoms.Parse(stack.Coin)
		if !ok {
			slog.Warn("Skipping unknown coin in config.", "coin", stack.Coin)
			continue
		}
		for range stack.Quantity {
			out = append(out, coin)
		}
	}
	return out
}
