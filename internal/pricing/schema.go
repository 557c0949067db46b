package pricing

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed providers.schema.json
var catalogSchemaJSON string

var (
	catalogSchemaOnce sync.Once
	catalogSchema     *jsonschema.Schema
	catalogSchemaErr  error
)

// validateCatalog checks a raw catalog document against the embedded JSON
// schema. The document is round-tripped through encoding/json so that YAML
// integer types validate correctly.
func validateCatalog(doc any) error {
	catalogSchemaOnce.Do(func() {
		catalogSchema, catalogSchemaErr = jsonschema.CompileString(
			"providers.schema.json", catalogSchemaJSON)
	})
	if catalogSchemaErr != nil {
		return fmt.Errorf("failed to compile catalog schema: %w", catalogSchemaErr)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	var normalized any
	if err := json.Unmarshal(data, &normalized); err != nil {
		return fmt.Errorf("failed to normalize catalog: %w", err)
	}

	return catalogSchema.Validate(normalized)
}
