package registry

import (
	"errors"
	"fmt"
)

// ErrUnknownEntity is returned when a registry is queried for a name it does not hold.
var ErrUnknownEntity = errors.New("unknown entity")

// DeleteSpec names a table to clear. An empty Condition deletes every row.
type DeleteSpec struct {
	Table     string `yaml:"table" json:"table"`
	Condition string `yaml:"condition,omitempty" json:"condition,omitempty"`
}

// Recipe describes how one entity is reset: rows to delete, auto-increment
// counters to restart and indexers to rebuild, in that order.
type Recipe struct {
	Delete             []DeleteSpec `yaml:"delete" json:"delete"`
	ResetAutoIncrement []string     `yaml:"reset_auto_increment" json:"reset_auto_increment"`
	Indexers           []string     `yaml:"indexers" json:"indexers"`
}

// Entry pairs an entity name with its recipe.
type Entry struct {
	Name   string
	Recipe Recipe
}

// Registry is an immutable, ordered set of entity recipes.
type Registry struct {
	names   []string
	recipes map[string]Recipe
}

// New builds a registry from entries, keeping their order.
// It panics on an empty or duplicate name.
func New(entries ...Entry) *Registry {
	r := &Registry{recipes: make(map[string]Recipe, len(entries))}
	for _, e := range entries {
		if e.Name == "" {
			panic("registry: empty entity name")
		}
		if _, dup := r.recipes[e.Name]; dup {
			panic(fmt.Sprintf("registry: duplicate entity %q", e.Name))
		}
		r.names = append(r.names, e.Name)
		r.recipes[e.Name] = cloneRecipe(e.Recipe)
	}
	return r
}

// Names returns all entity names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.recipes[name]
	return ok
}

// Recipe returns a copy of the recipe for name.
func (r *Registry) Recipe(name string) (Recipe, error) {
	rc, ok := r.recipes[name]
	if !ok {
		return Recipe{}, fmt.Errorf("%w: %q", ErrUnknownEntity, name)
	}
	return cloneRecipe(rc), nil
}

// DeleteTargets returns the delete specs for name.
func (r *Registry) DeleteTargets(name string) ([]DeleteSpec, error) {
	rc, err := r.Recipe(name)
	if err != nil {
		return nil, err
	}
	return rc.Delete, nil
}

// ResetTargets returns the tables whose auto-increment counter is restarted for name.
func (r *Registry) ResetTargets(name string) ([]string, error) {
	rc, err := r.Recipe(name)
	if err != nil {
		return nil, err
	}
	return rc.ResetAutoIncrement, nil
}

// Indexers returns the indexer ids rebuilt for name. The slice may be empty.
func (r *Registry) Indexers(name string) ([]string, error) {
	rc, err := r.Recipe(name)
	if err != nil {
		return nil, err
	}
	return rc.Indexers, nil
}

func cloneRecipe(rc Recipe) Recipe {
	return Recipe{
		Delete:             append([]DeleteSpec{}, rc.Delete...),
		ResetAutoIncrement: append([]string{}, rc.ResetAutoIncrement...),
		Indexers:           append([]string{}, rc.Indexers...),
	}
}
