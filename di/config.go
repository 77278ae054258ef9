package di

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config overrides declarations of discovered components, keyed by component name.
//
// Example YAML:
//
//	components:
//	  cache:
//	    lifetime: transient
//	    options:
//	      size: 128
type Config struct {
	Components map[string]ComponentConfig `yaml:"components" json:"components"`
}

// ComponentConfig overrides one component. Empty fields keep the declared value.
type ComponentConfig struct {
	Lifetime string  `yaml:"lifetime,omitempty" json:"lifetime,omitempty"`
	Options  Options `yaml:"options,omitempty" json:"options,omitempty"`
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("di: reading config: %w", err)
	}
	return ParseConfig(raw)
}

// ParseConfig parses YAML config bytes and validates lifetimes.
func ParseConfig(raw []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("di: parsing config: %w", err)
	}
	for name, cc := range cfg.Components {
		for key, v := range cc.Options {
			cc.Options[key] = plainValue(v)
		}
		if cc.Lifetime == "" {
			continue
		}
		if _, err := ParseLifetime(cc.Lifetime); err != nil {
			return nil, fmt.Errorf("di: component %s: %w", strconv.Quote(name), err)
		}
	}
	return &cfg, nil
}

// plainValue turns nested mappings into map[string]any. The YAML decoder builds
// them as Options because the outer bag is Options.
func plainValue(v any) any {
	switch x := v.(type) {
	case Options:
		return plainMap(x)
	case map[string]any:
		return plainMap(x)
	case []any:
		for i := range x {
			x[i] = plainValue(x[i])
		}
		return x
	default:
		return v
	}
}

func plainMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = plainValue(v)
	}
	return out
}

// apply returns the effective lifetime and options for a discovered component.
func (c *Config) apply(name string, lifetime Lifetime, options Options) (Lifetime, Options) {
	if c == nil {
		return lifetime, options
	}
	cc, ok := c.Components[name]
	if !ok {
		return lifetime, options
	}
	if cc.Lifetime != "" {
		if l, err := ParseLifetime(cc.Lifetime); err == nil {
			lifetime = l
		}
	}
	if cc.Options != nil {
		options = cc.Options
	}
	return lifetime, options
}
