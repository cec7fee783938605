package schemas_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/schemas"
	rootschemas "github.com/abdul-rehman-0609/FYP-Navigator/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range rootschemas.Names() {
		t.Run(schemaFile, func(t *testing.T) {
			schemaPath := filepath.Join(".", schemaFile)
			data, err := os.ReadFile(schemaPath)
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestSchemaFiles_ValidJSONSchema(t *testing.T) {
	for _, schemaFile := range rootschemas.Names() {
		t.Run(schemaFile, func(t *testing.T) {
			content, err := rootschemas.Load(schemaFile)
			require.NoError(t, err)

			// An empty object is enough to force the schema to compile.
			err = schemas.ValidateBytes([]byte(content), []byte(`{}`))
			var loadErr *schemas.SchemaLoadError
			assert.False(t, errors.As(err, &loadErr), "schema should compile: %v", err)
		})
	}
}

func TestLoad_Unknown(t *testing.T) {
	_, err := rootschemas.Load("nope.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown schema")
}
