package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"

	"github.com/wdm0006/framebench/pkg/frame"
)

// Config drives a benchmark run. YAML is the default format; files ending in
// .toml parse as TOML.
type Config struct {
	Input struct {
		Path          string            `yaml:"path" toml:"path"`
		Delimiter     string            `yaml:"delimiter" toml:"delimiter"`
		HasHeader     bool              `yaml:"has_header" toml:"has_header"`
		TryParseDates bool              `yaml:"try_parse_dates" toml:"try_parse_dates"`
		IgnoreErrors  bool              `yaml:"ignore_errors" toml:"ignore_errors"`
		SampleRows    int               `yaml:"sample_rows" toml:"sample_rows"`
		Overrides     map[string]string `yaml:"overrides" toml:"overrides"`
	} `yaml:"input" toml:"input"`
	Preview int    `yaml:"preview" toml:"preview"`
	TopK    int    `yaml:"top_k" toml:"top_k"`
	Glimpse bool   `yaml:"glimpse" toml:"glimpse"`
	Chart   bool   `yaml:"chart" toml:"chart"`
	JSON    bool   `yaml:"json" toml:"json"`
	Export  string `yaml:"export" toml:"export"`
}

func defaultConfig() Config {
	var cfg Config
	cfg.Input.HasHeader = true
	cfg.Input.TryParseDates = true
	cfg.Input.IgnoreErrors = true
	cfg.Input.Overrides = map[string]string{"count": "int32"}
	cfg.Preview = 5
	cfg.TopK = 5
	return cfg
}

func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if filepath.Ext(path) == ".toml" {
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		return cfg, nil
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// overrideKinds maps the config's type names onto column kinds.
func (c Config) overrideKinds() (map[string]frame.Kind, error) {
	if len(c.Input.Overrides) == 0 {
		return nil, nil
	}
	out := make(map[string]frame.Kind, len(c.Input.Overrides))
	for name, typ := range c.Input.Overrides {
		switch strings.ToLower(typ) {
		case "bool":
			out[name] = frame.KindBool
		case "int32":
			out[name] = frame.KindInt32
		case "int", "int64":
			out[name] = frame.KindInt
		case "float", "float64":
			out[name] = frame.KindFloat
		case "string":
			out[name] = frame.KindString
		case "time", "date":
			out[name] = frame.KindTime
		default:
			return nil, fmt.Errorf("override %s: unknown type %q", name, typ)
		}
	}
	return out, nil
}

func (c Config) delimiter() rune {
	if c.Input.Delimiter == "" {
		return ','
	}
	return rune(c.Input.Delimiter[0])
}
