package llm

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema names a JSON shape the model must produce. Schemas are meant to
// be package-level vars; compilation happens once per value, on first use.
type Schema struct {
	// Name doubles as the structured-output name sent to providers.
	Name string

	// Description tells the model what the document represents.
	Description string

	// Definition is the JSON Schema as a plain map.
	Definition map[string]any

	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
}

// check validates raw model output against the schema. Violations come
// back as KindBadPayload so the retry layer can sample the model again.
func (s *Schema) check(raw json.RawMessage) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return badPayload(raw, fmt.Errorf("not valid JSON: %w", err))
	}

	s.compileOnce.Do(s.compile)
	if s.compileErr != nil {
		return fmt.Errorf("compile schema %q: %w", s.Name, s.compileErr)
	}

	if err := s.compiled.Validate(doc); err != nil {
		return badPayload(raw, fmt.Errorf("schema %q violated: %w", s.Name, err))
	}
	return nil
}

func (s *Schema) compile() {
	// The compiler wants a decoded JSON value; round-trip the definition
	// through encoding/json to normalize nested Go types.
	b, err := json.Marshal(s.Definition)
	if err != nil {
		s.compileErr = err
		return
	}
	var def any
	if err := json.Unmarshal(b, &def); err != nil {
		s.compileErr = err
		return
	}

	c := jsonschema.NewCompiler()
	url := "planwise://" + s.Name + ".json"
	if err := c.AddResource(url, def); err != nil {
		s.compileErr = err
		return
	}
	s.compiled, s.compileErr = c.Compile(url)
}
