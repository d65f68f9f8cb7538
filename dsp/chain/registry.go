package chain

import (
	"errors"
	"fmt"
)

// Factory builds one Stage instance from a validated configuration.
type Factory func(cfg Config, sampleRate float64) (Stage, error)

// Registry maps stage types to their factories.
type Registry struct {
	factories map[StageType]Factory
}

var errDuplicateStage = errors.New("duplicate stage type")

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[StageType]Factory)}
}

// Register adds a factory for the given stage type.
func (r *Registry) Register(t StageType, factory Factory) error {
	if factory == nil {
		return errors.New("nil factory")
	}

	if _, exists := r.factories[t]; exists {
		return fmt.Errorf("%w: %s", errDuplicateStage, t)
	}

	r.factories[t] = factory

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(t StageType, factory Factory) {
	err := r.Register(t, factory)
	if err != nil {
		panic("chain registry: " + err.Error())
	}
}

// Lookup returns the factory for the given stage type, or nil.
func (r *Registry) Lookup(t StageType) Factory {
	return r.factories[t]
}
