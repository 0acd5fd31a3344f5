package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/technique-selector/internal/schemas"
	"github.com/jonathan/technique-selector/internal/types"
)

// Format is the on-disk encoding of a catalog document
type Format string

// Supported formats
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

// Default returns the catalog embedded in the binary
func Default() (*Catalog, error) {
	return Parse(defaultCatalogYAML, FormatYAML)
}

// FormatForPath picks the format from the file extension; anything but .yaml/.yml is JSON
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadFile reads, schema-checks and decodes a catalog file
func LoadFile(path string) (*Catalog, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}
	return Parse(content, FormatForPath(path))
}

// Parse schema-checks and decodes a catalog document.
// YAML documents are converted to JSON first so both formats share one schema and one decoder.
func Parse(content []byte, format Format) (*Catalog, error) {
	data, err := Decode(content, format)
	if err != nil {
		return nil, err
	}
	return New(data)
}

// Decode validates a document against the catalog schema and unmarshals it without building a Catalog
func Decode(content []byte, format Format) (*types.CatalogData, error) {
	jsonContent := content
	if format == FormatYAML {
		var doc interface{}
		if err := yaml.Unmarshal(content, &doc); err != nil {
			return nil, &LoadError{Message: "failed to unmarshal YAML", Cause: err}
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, &LoadError{Message: "failed to convert YAML to JSON", Cause: err}
		}
		jsonContent = converted
	}

	if err := schemas.ValidateDocument(schemas.CatalogSchema, jsonContent); err != nil {
		return nil, &LoadError{Message: "catalog does not match schema", Cause: err}
	}

	var data types.CatalogData
	if err := json.Unmarshal(jsonContent, &data); err != nil {
		return nil, &LoadError{Message: "failed to unmarshal JSON", Cause: err}
	}
	return &data, nil
}
