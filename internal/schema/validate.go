// Package schema provides JSON schema validation for the unc task catalog.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	schemafs "github.com/incredibit/unc/schema"
)

var (
	tasksSchema *jsonschema.Schema
	compileOnce sync.Once
	compileErr  error
)

// compileSchemas compiles the embedded schemas once.
func compileSchemas() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()

		tasksData, err := schemafs.FS.ReadFile("tasks.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("read tasks schema: %w", err)
			return
		}

		tasksDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(tasksData))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal tasks schema: %w", err)
			return
		}

		if err := compiler.AddResource("tasks.schema.json", tasksDoc); err != nil {
			compileErr = fmt.Errorf("add tasks schema resource: %w", err)
			return
		}

		tasksSchema, err = compiler.Compile("tasks.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("compile tasks schema: %w", err)
			return
		}
	})

	return compileErr
}

// ValidateTasks validates JSON data against the task catalog schema.
func ValidateTasks(data []byte) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := tasksSchema.Validate(v); err != nil {
		return fmt.Errorf("task catalog validation failed: %w", err)
	}

	return nil
}

// ValidateTasksValue validates an already-decoded document, such as the
// result of unmarshalling YAML into an interface{}. The value is round-tripped
// through JSON so numeric and map types match what the validator expects.
func ValidateTasksValue(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode task catalog: %w", err)
	}
	return ValidateTasks(data)
}
