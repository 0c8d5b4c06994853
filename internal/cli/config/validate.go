package config

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/treegen/pkg/dialect"
)

// Validate checks if the configuration is valid for generation.
func (c *Config) Validate() error {
	var errs []error
	if c.Schema == "" {
		errs = append(errs, errors.New("schema is required\nHint: set 'schema' in treegen.yaml or pass --schema"))
	}
	if c.Indent < 0 {
		errs = append(errs, fmt.Errorf("indent must not be negative, got %d", c.Indent))
	}
	if len(c.Targets) == 0 {
		errs = append(errs, errors.New("at least one target is required\nHint: add a 'targets' list to treegen.yaml"))
	}

	outputs := make(map[string]int, len(c.Targets))
	for i, t := range c.Targets {
		if _, err := dialect.Lookup(t.Dialect); err != nil {
			errs = append(errs, fmt.Errorf("targets[%d]: %w", i, err))
		}
		if t.Output == "" {
			errs = append(errs, fmt.Errorf("targets[%d]: output is required", i))
			continue
		}
		if j, ok := outputs[t.Output]; ok {
			errs = append(errs, fmt.Errorf("targets[%d]: output %s is already written by targets[%d]", i, t.Output, j))
		}
		outputs[t.Output] = i
	}
	return errors.Join(errs...)
}
