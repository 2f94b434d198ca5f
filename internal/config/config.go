// Package config loads the built-in maintenance task catalog.
//
// The catalog is a YAML literal compiled into the binary. It is checked
// against the embedded JSON schema and then validated semantically before
// being handed to the sequencer as a plain []model.Task.
package config

import (
	_ "embed"

	"gopkg.in/yaml.v3"

	"github.com/incredibit/unc/internal/errors"
	"github.com/incredibit/unc/internal/model"
	"github.com/incredibit/unc/internal/schema"
)

//go:embed tasks.yaml
var builtinCatalog []byte

// Parse decodes, schema-checks, normalizes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.WrapConfig(err, "failed to parse task catalog")
	}

	if err := schema.ValidateTasksValue(raw); err != nil {
		return nil, errors.WrapConfig(err, "invalid task catalog")
	}

	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, errors.WrapConfig(err, "failed to decode task catalog")
	}

	applyDefaults(&cat)

	if err := Validate(&cat); err != nil {
		return nil, errors.WrapConfig(err, "invalid task catalog")
	}

	return &cat, nil
}

// DefaultTasks returns the built-in maintenance sequence.
// Each call returns a fresh slice.
func DefaultTasks() ([]model.Task, error) {
	cat, err := Parse(builtinCatalog)
	if err != nil {
		return nil, err
	}
	return cat.Tasks, nil
}
