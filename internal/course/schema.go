package course

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrInvalidPayload is returned when a course payload fails validation.
var ErrInvalidPayload = errors.New("invalid course payload")

//go:embed course.schema.json
var courseSchemaJSON []byte

const courseSchemaURL = "schema://course.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// courseSchema compiles the embedded schema on first use.
func courseSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(courseSchemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("parse course schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(courseSchemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(courseSchemaURL)
	})
	return compiledSchema, schemaErr
}

// validate checks raw against the course schema.
func validate(raw []byte) error {
	sch, err := courseSchema()
	if err != nil {
		return err
	}
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}
