package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schemas/*.schema.yaml
var schemaFS embed.FS

// LayerSchema is the name of the schema that checks config layer documents
const LayerSchema = "layer"

// Validator handles JSON schema validation of instruction arguments and layers
type Validator struct {
	schemas   map[string]*jsonschema.Schema
	documents map[string]map[string]interface{}
}

// Property describes one parameter declared by a schema
type Property struct {
	Name        string
	Type        string
	Description string
	Required    bool
}

// NewValidator compiles every embedded schema
func NewValidator() (*Validator, error) {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("failed to list schemas: %w", err)
	}

	v := &Validator{
		schemas:   make(map[string]*jsonschema.Schema, len(entries)),
		documents: make(map[string]map[string]interface{}, len(entries)),
	}
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), ".schema.yaml")
		data, err := schemaFS.ReadFile(path.Join("schemas", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read schema %s: %w", name, err)
		}
		compiled, doc, err := compileSchema(name, data)
		if err != nil {
			return nil, err
		}
		v.schemas[name] = compiled
		v.documents[name] = doc
	}

	return v, nil
}

// Has reports whether a schema with the given name is loaded
func (v *Validator) Has(name string) bool {
	_, ok := v.schemas[name]
	return ok
}

// Validate checks a document against the named schema
func (v *Validator) Validate(name string, doc map[string]interface{}) error {
	compiled, ok := v.schemas[name]
	if !ok {
		return fmt.Errorf("%s schema not loaded", name)
	}

	// Round-trip through JSON so numbers reach the validator as json.Number
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal %s document: %w", name, err)
	}
	var instance interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&instance); err != nil {
		return fmt.Errorf("failed to decode %s document: %w", name, err)
	}

	if err := compiled.Validate(instance); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return errors.New(describe(verr))
		}
		return err
	}
	return nil
}

// ValidateLayer checks a config layer document
func (v *Validator) ValidateLayer(doc map[string]interface{}) error {
	return v.Validate(LayerSchema, doc)
}

// Describe returns the schema description and its declared properties, sorted by name
func (v *Validator) Describe(name string) (string, []Property, error) {
	doc, ok := v.documents[name]
	if !ok {
		return "", nil, fmt.Errorf("%s schema not loaded", name)
	}

	required := make(map[string]bool)
	if list, ok := doc["required"].([]interface{}); ok {
		for _, item := range list {
			required[fmt.Sprintf("%v", item)] = true
		}
	}

	var props []Property
	if propMap, ok := doc["properties"].(map[string]interface{}); ok {
		for fieldName, fieldSchema := range propMap {
			prop := Property{Name: fieldName, Required: required[fieldName]}
			if fieldMap, ok := fieldSchema.(map[string]interface{}); ok {
				if t, ok := fieldMap["type"]; ok {
					prop.Type = fmt.Sprintf("%v", t)
				}
				if desc, ok := fieldMap["description"]; ok {
					prop.Description = fmt.Sprintf("%v", desc)
				}
			}
			props = append(props, prop)
		}
	}
	sort.Slice(props, func(i, j int) bool { return props[i].Name < props[j].Name })

	desc, _ := doc["description"].(string)
	return desc, props, nil
}

// compileSchema parses a YAML schema and compiles it under a stable URL
func compileSchema(name string, data []byte) (*jsonschema.Schema, map[string]interface{}, error) {
	// Parse YAML to interface{} (supports both YAML and JSON)
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to parse schema %s: %w", name, err)
	}

	// Convert to JSON for schema compiler
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal schema %s: %w", name, err)
	}

	url := fmt.Sprintf("chasm://schemas/%s.json", name)
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader(jsonData)); err != nil {
		return nil, nil, fmt.Errorf("failed to add schema %s: %w", name, err)
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
	}

	return compiled, doc, nil
}

// describe flattens a validation error tree into "field: message" leaves
func describe(verr *jsonschema.ValidationError) string {
	var parts []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			field := strings.TrimPrefix(e.InstanceLocation, "/")
			if field == "" {
				parts = append(parts, e.Message)
			} else {
				parts = append(parts, fmt.Sprintf("%s: %s", field, e.Message))
			}
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(verr)
	return strings.Join(parts, "; ")
}
