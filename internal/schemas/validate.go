// Package schemas provides JSON Schema validation functionality for catalog files and selection results.
package schemas

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// Embedded schema names
const (
	CatalogSchema         = "catalog.schema.json"
	SelectionResultSchema = "selection_result.schema.json"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

var compiled sync.Map // schema name -> *gojsonschema.Schema

// Compile returns the parsed form of an embedded schema. Schemas are compiled once and shared.
func Compile(schemaName string) (*gojsonschema.Schema, error) {
	if cached, ok := compiled.Load(schemaName); ok {
		return cached.(*gojsonschema.Schema), nil
	}

	raw, err := schemaFiles.ReadFile(schemaName)
	if err != nil {
		return nil, &SchemaLoadError{
			Path:    schemaName,
			Message: "embedded schema not found",
			Cause:   err,
		}
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, &SchemaLoadError{
			Path:    schemaName,
			Message: "schema does not compile",
			Cause:   err,
		}
	}

	actual, _ := compiled.LoadOrStore(schemaName, schema)
	return actual.(*gojsonschema.Schema), nil
}

// ValidateDocument validates JSON content against one of the embedded schemas
func ValidateDocument(schemaName string, jsonContent []byte) error {
	schema, err := Compile(schemaName)
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(jsonContent))
	if err != nil {
		return fmt.Errorf("document is not valid JSON: %w", err)
	}
	return toValidationError(result)
}

// toValidationError returns nil for a valid result, otherwise a structured error
func toValidationError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
