package model

import (
	"strings"

	"github.com/ebse-lab/sevscope/pkg/assets"
	"github.com/ebse-lab/sevscope/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Severity represents one level of the severity taxonomy
type Severity struct {
	Name        string `yaml:"name"`        // Display label as it appears after normalization
	Rank        int    `yaml:"rank"`        // Impact rank (higher is more severe)
	Description string `yaml:"description"` // Short meaning of the level (optional)
}

// Validate validates the severity
func (s *Severity) Validate() error {
	if s.Name == "" {
		return goerr.New("severity name is required")
	}
	if s.Rank <= 0 {
		return goerr.New("severity rank must be positive",
			goerr.V("rank", s.Rank))
	}
	return nil
}

// Label returns the severity name as a label
func (s *Severity) Label() types.SeverityLabel {
	return types.SeverityLabel(s.Name)
}

// SeverityConfig represents the severity taxonomy used for cleaning and
// ordering. The order of entries is the canonical display order.
type SeverityConfig struct {
	Severities []Severity `yaml:"severities"`
}

// ParseSeverityConfig parses a YAML severity taxonomy
func ParseSeverityConfig(data []byte) (*SeverityConfig, error) {
	var config SeverityConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse severity YAML")
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid severity taxonomy")
	}

	return &config, nil
}

// DefaultSeverities returns the built-in severity taxonomy
func DefaultSeverities() (*SeverityConfig, error) {
	return ParseSeverityConfig(assets.SeveritiesYAML)
}

// Validate validates the severity taxonomy
func (c *SeverityConfig) Validate() error {
	if len(c.Severities) == 0 {
		return goerr.New("at least one severity is required")
	}

	nameMap := make(map[string]bool)
	for i, sev := range c.Severities {
		if err := sev.Validate(); err != nil {
			return goerr.Wrap(err, "invalid severity at index",
				goerr.V("index", i),
				goerr.V("name", sev.Name))
		}

		if nameMap[sev.Name] {
			return goerr.New("duplicate severity name",
				goerr.V("name", sev.Name))
		}
		nameMap[sev.Name] = true
	}

	return nil
}

// Labels returns the severity labels in canonical order
func (c *SeverityConfig) Labels() []types.SeverityLabel {
	labels := make([]types.SeverityLabel, 0, len(c.Severities))
	for _, sev := range c.Severities {
		labels = append(labels, sev.Label())
	}
	return labels
}

// Contains checks if the given label is part of the taxonomy
func (c *SeverityConfig) Contains(label types.SeverityLabel) bool {
	for _, sev := range c.Severities {
		if sev.Label() == label {
			return true
		}
	}
	return false
}

// Normalize trims and title-cases a raw severity value and reports whether
// the result is a recognized label. Empty input normalizes to the empty
// label and is never recognized.
func (c *SeverityConfig) Normalize(raw string) (types.SeverityLabel, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}

	label := types.SeverityLabel(cases.Title(language.English).String(trimmed))
	return label, c.Contains(label)
}
