package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"go2/internal/models"
	"go2/internal/validation"
)

// YAMLConfig represents the structure of the config.yaml file.
// Seed data is easier to manage in YAML than env vars.
type YAMLConfig struct {
	Keywords []KeywordConfig `yaml:"keywords"`
}

// KeywordConfig defines a keyword and its links in the YAML config.
type KeywordConfig struct {
	Keyword string       `yaml:"keyword"`
	Clicks  int64        `yaml:"clicks,omitempty"` // initial count, only applied on creation
	Links   []LinkConfig `yaml:"links"`

	// Behavior is freshest, top, random, list, or the url of one of Links
	// to always redirect to.
	Behavior string `yaml:"behavior,omitempty"`
}

// LinkConfig defines a link under a keyword.
type LinkConfig struct {
	URL   string `yaml:"url"`
	Title string `yaml:"title,omitempty"`
}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	return LoadYAMLConfigFile(getEnv("CONFIG_FILE", "config.yaml"))
}

// LoadYAMLConfigFile loads the YAML configuration from path.
func LoadYAMLConfigFile(path string) (*YAMLConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Seeds validates the configured keywords and converts them to seeds.
// Keywords are normalized to lower case.
func (c *YAMLConfig) Seeds() ([]models.Seed, error) {
	if c == nil {
		return nil, nil
	}

	seeds := make([]models.Seed, 0, len(c.Keywords))
	for _, kc := range c.Keywords {
		keyword := validation.NormalizeKeyword(kc.Keyword)
		if !validation.ValidateKeyword(keyword) {
			return nil, fmt.Errorf("invalid keyword %q: must contain only letters, numbers, hyphens, and underscores", kc.Keyword)
		}

		if validation.IsReservedKeyword(keyword) {
			return nil, fmt.Errorf("invalid keyword %q: reserved for a server route", kc.Keyword)
		}

		seed := models.Seed{Keyword: keyword, Clicks: kc.Clicks, Behavior: kc.Behavior}
		pinned := false
		for _, lc := range kc.Links {
			if valid, msg := validation.ValidateURL(lc.URL); !valid {
				return nil, fmt.Errorf("keyword %q: %s", keyword, msg)
			}
			pinned = pinned || lc.URL == kc.Behavior
			seed.Links = append(seed.Links, models.SeedLink{URL: lc.URL, Title: lc.Title})
		}
		if kc.Behavior != "" && !models.IsNamedBehavior(kc.Behavior) && !pinned {
			return nil, fmt.Errorf("keyword %q: behavior %q is neither freshest, top, random, list nor one of its link urls", keyword, kc.Behavior)
		}
		seeds = append(seeds, seed)
	}
	return seeds, nil
}
