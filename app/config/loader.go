package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and validation of the digest definition
type Loader struct {
	path string
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

func (l *Loader) Load() (*Config, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	l.setDefaults(&config)

	if err := l.validate(&config); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", l.path, err)
	}

	slog.Debug("Configuration loaded", "path", l.path, "sections", len(config.Sections))

	return &config, nil
}

func (l *Loader) setDefaults(config *Config) {
	if config.Title == "" {
		config.Title = "Nyheter på Juridisk bibliotek"
	}
	if config.Catalog.MaxAgeYears == 0 {
		config.Catalog.MaxAgeYears = 3
	}
	for i := range config.Sections {
		if c := config.Sections[i].Catalog; c != nil && c.GroupBy == "" {
			c.GroupBy = GroupByFlat
		}
	}
}

func (l *Loader) validate(config *Config) error {
	if len(config.Sections) == 0 {
		return fmt.Errorf("at least one section is required")
	}
	if config.Catalog.MaxAgeYears < 0 {
		return fmt.Errorf("max age years must be non-negative")
	}

	validGroupBy := map[string]bool{
		GroupBySeries:     true,
		GroupByPartitions: true,
		GroupByFlat:       true,
	}

	for i, section := range config.Sections {
		if section.Label == "" {
			return fmt.Errorf("section at index %d has no label", i)
		}

		hasCatalog := section.Catalog != nil
		hasFeeds := len(section.Feeds) > 0
		if hasCatalog == hasFeeds {
			return fmt.Errorf("section %q must have either a catalog source or feeds", section.Label)
		}

		if hasCatalog {
			if section.Catalog.URL == "" {
				return fmt.Errorf("section %q: catalog URL is required", section.Label)
			}
			if !validGroupBy[section.Catalog.GroupBy] {
				return fmt.Errorf("section %q: invalid group_by: %s", section.Label, section.Catalog.GroupBy)
			}
		}

		for j, url := range section.Feeds {
			if url == "" {
				return fmt.Errorf("section %q: feed at index %d has no URL", section.Label, j)
			}
		}
	}

	return nil
}
