package aigen

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiledSchemas caches compiled schemas keyed by schema name. The
// candidate schema is a package-level singleton, so in practice this
// holds one entry.
var compiledSchemas sync.Map

// validateResponse checks provider output against the requested
// schema before it leaves the adapter. A nil schema accepts anything.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("not valid JSON: %w", err)}
	}

	compiled, err := schema.compiled()
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}
	if err := compiled.Validate(doc); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("schema violation: %w", err)}
	}
	return nil
}

// compiled returns the cached compiled form of the schema, compiling
// on first use.
func (s *Schema) compiled() (*jsonschema.Schema, error) {
	if hit, ok := compiledSchemas.Load(s.Name); ok {
		return hit.(*jsonschema.Schema), nil
	}

	// The compiler wants a parsed JSON document, so the definition
	// map is round-tripped through encoding/json first.
	raw, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %q: %w", s.Name, err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse schema %q: %w", s.Name, err)
	}

	compiler := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", s.Name)
	if err := compiler.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("register schema %q: %w", s.Name, err)
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", s.Name, err)
	}

	compiledSchemas.Store(s.Name, compiled)
	return compiled, nil
}
