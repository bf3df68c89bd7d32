package fx

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrEmptyID is returned when a definition is registered without an id.
	ErrEmptyID = errors.New("fx: empty definition id")
	// ErrNilDefinition is returned when a nil definition is registered.
	ErrNilDefinition = errors.New("fx: nil definition")
	// ErrDuplicateDefinition is returned by Register for an id already in use.
	ErrDuplicateDefinition = errors.New("fx: duplicate definition id")
)

// Resolver looks up definitions by id.
type Resolver interface {
	Lookup(id string) (Definition, bool)
}

// Registry maps definition ids to definitions.
type Registry struct {
	defs map[string]Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register adds a definition under id. It fails if id is already taken.
func (r *Registry) Register(id string, def Definition) error {
	if err := validate(id, def); err != nil {
		return err
	}

	if _, exists := r.defs[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateDefinition, id)
	}

	r.defs[id] = def

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(id string, def Definition) {
	err := r.Register(id, def)
	if err != nil {
		panic("fx registry: " + err.Error())
	}
}

// Put adds or replaces the definition under id.
func (r *Registry) Put(id string, def Definition) error {
	if err := validate(id, def); err != nil {
		return err
	}

	r.defs[id] = def

	return nil
}

// Lookup returns the definition for id.
func (r *Registry) Lookup(id string) (Definition, bool) {
	def, ok := r.defs[id]
	return def, ok
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.defs))
	for id := range r.defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	return len(r.defs)
}

func validate(id string, def Definition) error {
	if id == "" {
		return ErrEmptyID
	}

	if def == nil {
		return ErrNilDefinition
	}

	return nil
}
