package registry

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/tobiasbuchner/StockChronicle/pkg/extract"
)

// ErrInvalidConfig is returned for any structural problem in the
// source configuration file.
var ErrInvalidConfig = errors.New("invalid source configuration")

type file struct {
	Sources struct {
		Wikipedia struct {
			Indices map[string]source `yaml:"indices"`
		} `yaml:"wikipedia"`
	} `yaml:"sources"`
}

type source struct {
	URL           string              `yaml:"url"`
	TableIndex    *int                `yaml:"table_index"`
	Columns       map[string][]string `yaml:"columns"`
	ExpectedRange []int               `yaml:"expected_range"`
}

// Defaults applied when a source omits the corresponding key, matching
// the historical configuration format.
const (
	defaultExpectedMin = 0
	defaultExpectedMax = 9999
)

// Load reads and validates the source registry. The returned map is
// treated as immutable by every consumer.
func Load(path string) (map[string]extract.SourceConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse validates the YAML document and builds the per-index configs.
func Parse(raw []byte) (map[string]extract.SourceConfig, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	indices := f.Sources.Wikipedia.Indices
	if len(indices) == 0 {
		return nil, fmt.Errorf("no indices configured under sources.wikipedia: %w", ErrInvalidConfig)
	}

	configs := make(map[string]extract.SourceConfig, len(indices))
	for name, src := range indices {
		cfg, err := buildConfig(name, src)
		if err != nil {
			return nil, err
		}
		configs[name] = cfg
	}
	return configs, nil
}

func buildConfig(name string, src source) (extract.SourceConfig, error) {
	if src.URL == "" {
		return extract.SourceConfig{}, fmt.Errorf("source %q: missing url: %w", name, ErrInvalidConfig)
	}

	for _, field := range extract.RequiredFields {
		if !hasUsableAlias(src.Columns[field]) {
			return extract.SourceConfig{}, fmt.Errorf(
				"source %q: required field %q needs at least one alias: %w", name, field, ErrInvalidConfig)
		}
	}

	cfg := extract.SourceConfig{
		Name:        name,
		URL:         src.URL,
		Columns:     src.Columns,
		ExpectedMin: defaultExpectedMin,
		ExpectedMax: defaultExpectedMax,
	}

	if src.TableIndex != nil {
		if *src.TableIndex < 0 {
			return extract.SourceConfig{}, fmt.Errorf(
				"source %q: table_index must not be negative: %w", name, ErrInvalidConfig)
		}
		cfg.TableIndex = *src.TableIndex
	}

	switch len(src.ExpectedRange) {
	case 0:
	case 2:
		cfg.ExpectedMin, cfg.ExpectedMax = src.ExpectedRange[0], src.ExpectedRange[1]
		if cfg.ExpectedMin > cfg.ExpectedMax {
			return extract.SourceConfig{}, fmt.Errorf(
				"source %q: expected_range [%d, %d] is inverted: %w",
				name, cfg.ExpectedMin, cfg.ExpectedMax, ErrInvalidConfig)
		}
	default:
		return extract.SourceConfig{}, fmt.Errorf(
			"source %q: expected_range must hold exactly [min, max]: %w", name, ErrInvalidConfig)
	}

	return cfg, nil
}

func hasUsableAlias(aliases []string) bool {
	for _, a := range aliases {
		if a != "" {
			return true
		}
	}
	return false
}

// Names returns the configured index names in stable order.
func Names(configs map[string]extract.SourceConfig) []string {
	names := make([]string, 0, len(configs))
	for name := range configs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
