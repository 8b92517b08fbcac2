package mod

import (
	"fmt"
	"sort"

	"github.com/sourceplane/chasm/internal/model"
	"github.com/sourceplane/chasm/internal/schema"
)

// Constructor binds validated arguments into an instruction
type Constructor func(args Args) (Instruction, error)

// Spec describes one registered instruction
type Spec struct {
	Name        string
	Kind        Kind
	Description string
	build       Constructor
}

// Registry maps instruction names to validating constructors
type Registry struct {
	validator *schema.Validator
	specs     map[string]Spec
}

// NewRegistry creates an empty registry backed by the given schema validator
func NewRegistry(validator *schema.Validator) *Registry {
	return &Registry{
		validator: validator,
		specs:     make(map[string]Spec),
	}
}

// DefaultRegistry returns a registry holding every built-in instruction
func DefaultRegistry() (*Registry, error) {
	validator, err := schema.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to load instruction schemas: %w", err)
	}

	r := NewRegistry(validator)
	builtins := []struct {
		name  string
		kind  Kind
		build Constructor
	}{
		{"addint", KindItem, newAddInt},
		{"appendrandint", KindList, newAppendRandInt},
		{"injectrandint", KindItem, newInjectRandInt},
		{"compute", KindItem, newCompute},
		{"noop", KindList, newNoop},
	}
	for _, b := range builtins {
		if err := r.Register(b.name, b.kind, b.build); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds an instruction. Its argument schema must already be loaded.
func (r *Registry) Register(name string, kind Kind, build Constructor) error {
	if _, exists := r.specs[name]; exists {
		return fmt.Errorf("instruction %s already registered", name)
	}
	if !r.validator.Has(name) {
		return fmt.Errorf("no argument schema for instruction %s", name)
	}
	desc, _, err := r.validator.Describe(name)
	if err != nil {
		return err
	}
	r.specs[name] = Spec{Name: name, Kind: kind, Description: desc, build: build}
	return nil
}

// Lookup returns the spec registered under name
func (r *Registry) Lookup(name string) (Spec, bool) {
	spec, ok := r.specs[name]
	return spec, ok
}

// Names returns every registered instruction name, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.specs))
	for name := range r.specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parameters describes the arguments accepted by an instruction
func (r *Registry) Parameters(name string) ([]schema.Property, error) {
	if _, ok := r.specs[name]; !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownInstruction, name)
	}
	_, props, err := r.validator.Describe(name)
	return props, err
}

// Build validates args against the instruction schema and constructs it
func (r *Registry) Build(name string, args Args) (Instruction, error) {
	spec, ok := r.specs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownInstruction, name)
	}
	if err := r.validator.Validate(name, args); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrSchemaValidation, name, err)
	}
	inst, err := spec.build(args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return inst, nil
}
