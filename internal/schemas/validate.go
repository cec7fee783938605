// Package schemas validates navigator documents against JSON Schemas.
package schemas

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	rootschemas "github.com/abdul-rehman-0609/FYP-Navigator/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// FieldError is one schema violation. Field is a dotted path such as
// "skills.0.proficiency", or "(root)" for the document itself.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports every violation found in a document.
type ValidationError struct {
	Schema string
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	schema := e.Schema
	if schema == "" {
		schema = "schema"
	}
	return fmt.Sprintf("document does not match %s: %s", schema, strings.Join(parts, "; "))
}

// SchemaLoadError is returned when the schema itself cannot be read or compiled.
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

var (
	compiledMu sync.Mutex
	compiled   = make(map[string]*gojsonschema.Schema)
)

// embedded compiles an embedded schema once and caches it.
func embedded(name string) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if s, ok := compiled[name]; ok {
		return s, nil
	}
	content, err := rootschemas.Load(name)
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "schema not embedded", Cause: err}
	}
	s, err := compile(name, []byte(content))
	if err != nil {
		return nil, err
	}
	compiled[name] = s
	return s, nil
}

func compile(name string, content []byte) (*gojsonschema.Schema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(content))
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "invalid schema", Cause: err}
	}
	return s, nil
}

// ValidateDocument checks raw JSON against one of the embedded schemas
// (rootschemas.StudentProfile, rootschemas.Catalog, ...).
func ValidateDocument(schemaName string, data []byte) error {
	s, err := embedded(schemaName)
	if err != nil {
		return err
	}
	return check(schemaName, s, data)
}

// ValidateBytes checks a document against schema content supplied by the caller.
func ValidateBytes(schema, data []byte) error {
	s, err := compile("(inline)", schema)
	if err != nil {
		return err
	}
	return check("", s, data)
}

// ValidateFile checks a JSON file against a schema file on disk.
func ValidateFile(schemaPath, jsonPath string) error {
	schema, err := os.ReadFile(schemaPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("schema file not found: %s", schemaPath)
		}
		return &SchemaLoadError{Path: schemaPath, Message: "read failed", Cause: err}
	}
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("JSON file not found: %s", jsonPath)
		}
		return fmt.Errorf("failed to read %s: %w", jsonPath, err)
	}

	s, err := compile(schemaPath, schema)
	if err != nil {
		return err
	}
	return check(schemaPath, s, data)
}

// check validates data. A document that is not JSON at all is reported as a
// root-level violation so callers can treat it like any other bad input.
func check(schemaName string, s *gojsonschema.Schema, data []byte) error {
	if !json.Valid(data) {
		return &ValidationError{
			Schema: schemaName,
			Errors: []FieldError{{Field: "(root)", Message: "document is not valid JSON"}},
		}
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to validate document: %w", err)
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Schema: schemaName, Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Errors = append(verr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	sort.SliceStable(verr.Errors, func(i, j int) bool { return verr.Errors[i].Field < verr.Errors[j].Field })
	return verr
}
