// Package audit runs locator audit suites: YAML-defined lists of logical
// elements that are resolved against live pages through the self-healing
// engine, producing a per-element passed/healed/failed report.
package audit

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	errSuiteNameRequired   = errors.New("suite name is required")
	errSuiteNeedsPages     = errors.New("suite must define at least one page")
	errPageNameRequired    = errors.New("page name is required")
	errPagePathRequired    = errors.New("page path is required")
	errPageNeedsElements   = errors.New("page must define at least one element")
	errElementNameRequired = errors.New("element name is required")
	errElementNameNotUniq  = errors.New("element name must be unique within its page")
	errLocatorRequired     = errors.New("element locator is required")
)

// Suite is a YAML-defined locator audit: pages to visit and, per page, the
// logical elements to resolve.
type Suite struct {
	Name    string  `yaml:"name"`
	BaseURL string  `yaml:"base_url,omitempty"`
	Pages   []*Page `yaml:"pages"`
}

// Page is one navigation target within a suite.
type Page struct {
	Name     string          `yaml:"name"`
	Path     string          `yaml:"path"`
	Elements []*ElementCheck `yaml:"elements"`
}

// ElementCheck names one logical element and the locator expected to find
// it. All switches the check to bulk resolution (ResolveAll).
type ElementCheck struct {
	Name    string `yaml:"name"`
	Locator string `yaml:"locator"`
	All     bool   `yaml:"all,omitempty"`
}

// LoadSuite reads and validates a suite definition file.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}

	var suite Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("failed to parse suite file %s: %w", path, err)
	}

	if err := suite.validate(); err != nil {
		return nil, fmt.Errorf("invalid suite %s: %w", path, err)
	}

	return &suite, nil
}

func (s *Suite) validate() error {
	if s.Name == "" {
		return errSuiteNameRequired
	}
	if len(s.Pages) == 0 {
		return errSuiteNeedsPages
	}

	for _, page := range s.Pages {
		if page.Name == "" {
			return errPageNameRequired
		}
		if page.Path == "" {
			return fmt.Errorf("page %q: %w", page.Name, errPagePathRequired)
		}
		if len(page.Elements) == 0 {
			return fmt.Errorf("page %q: %w", page.Name, errPageNeedsElements)
		}

		seen := make(map[string]struct{}, len(page.Elements))
		for _, el := range page.Elements {
			if el.Name == "" {
				return fmt.Errorf("page %q: %w", page.Name, errElementNameRequired)
			}
			if _, dup := seen[el.Name]; dup {
				return fmt.Errorf("page %q, element %q: %w", page.Name, el.Name, errElementNameNotUniq)
			}
			seen[el.Name] = struct{}{}
			if el.Locator == "" {
				return fmt.Errorf("page %q, element %q: %w", page.Name, el.Name, errLocatorRequired)
			}
		}
	}

	return nil
}
