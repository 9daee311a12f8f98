// Package yaml provides YAML-based request definition support: declarative
// documents describing what to fetch, how to validate it, and how to shape
// the decoded result.
package yaml

import (
	"fmt"
	"time"
)

// Document represents a complete request definition file.
type Document struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description,omitempty"`
	Version     string         `yaml:"version,omitempty"`
	Metadata    map[string]any `yaml:"metadata,omitempty"`
	Requests    []Definition   `yaml:"requests"`
}

// Definition describes one fetch request in YAML format.
type Definition struct {
	Name        string            `yaml:"name"`
	URL         string            `yaml:"url"`
	Method      string            `yaml:"method,omitempty"`
	Description string            `yaml:"description,omitempty"`
	Headers     map[string]string `yaml:"headers,omitempty"`
	Timeout     string            `yaml:"timeout,omitempty"`
	Retry       *RetryConfig      `yaml:"retry,omitempty"`
	Success     *StatusRange      `yaml:"success,omitempty"`
	Schema      map[string]any    `yaml:"schema,omitempty"`
	Extract     string            `yaml:"extract,omitempty"`
	Transform   string            `yaml:"transform,omitempty"`
}

// RetryConfig represents retry configuration in YAML.
type RetryConfig struct {
	MaxAttempts int    `yaml:"max_attempts"`
	Delay       string `yaml:"delay"`
}

// StatusRange is the inclusive status-code range treated as success.
type StatusRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Validate checks if the document is valid.
func (d *Document) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("document name is required")
	}
	if len(d.Requests) == 0 {
		return fmt.Errorf("at least one request is required")
	}

	seen := make(map[string]bool)
	for i := range d.Requests {
		def := &d.Requests[i]
		if err := def.Validate(); err != nil {
			return err
		}
		if seen[def.Name] {
			return fmt.Errorf("duplicate request name %s", def.Name)
		}
		seen[def.Name] = true
	}
	return nil
}

// Request returns the definition with the given name.
func (d *Document) Request(name string) (*Definition, bool) {
	for i := range d.Requests {
		if d.Requests[i].Name == name {
			return &d.Requests[i], true
		}
	}
	return nil, false
}

// Validate checks if the request definition is valid.
func (def *Definition) Validate() error {
	if def.Name == "" {
		return fmt.Errorf("request name is required")
	}
	if def.URL == "" {
		return fmt.Errorf("url is required for request %s", def.Name)
	}
	if def.Timeout != "" {
		if _, err := time.ParseDuration(def.Timeout); err != nil {
			return fmt.Errorf("invalid timeout for request %s: %w", def.Name, err)
		}
	}
	if def.Retry != nil {
		if def.Retry.MaxAttempts < 1 {
			return fmt.Errorf("retry max_attempts must be at least 1 for request %s", def.Name)
		}
		if def.Retry.Delay != "" {
			if _, err := time.ParseDuration(def.Retry.Delay); err != nil {
				return fmt.Errorf("invalid retry delay for request %s: %w", def.Name, err)
			}
		}
	}
	if def.Success != nil {
		if def.Success.Min > def.Success.Max {
			return fmt.Errorf("success range min exceeds max for request %s", def.Name)
		}
	}
	return nil
}
