package lint

import (
	"fmt"
	"sync"
)

// globalRegistry is the single global registry for built-in rule definitions.
var globalRegistry = &Registry{
	defs: make(map[string]RuleDef),
}

// Registry stores rule definitions in registration order.
type Registry struct {
	mu    sync.RWMutex
	defs  map[string]RuleDef
	order []string
}

// Register adds a rule definition to the global registry.
// Call this from init() functions in rule packages. Registering a name twice
// replaces the definition but keeps its original position.
func Register(def RuleDef) {
	if def.Name == "" {
		panic("lint: Register called with an unnamed rule")
	}
	if def.Check == nil {
		panic(fmt.Sprintf("lint: rule %s has no check function", def.Name))
	}
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	if _, exists := globalRegistry.defs[def.Name]; !exists {
		globalRegistry.order = append(globalRegistry.order, def.Name)
	}
	globalRegistry.defs[def.Name] = def
}

// GetAll returns all registered definitions in registration order.
func GetAll() []RuleDef {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	defs := make([]RuleDef, 0, len(globalRegistry.order))
	for _, name := range globalRegistry.order {
		defs = append(defs, globalRegistry.defs[name])
	}
	return defs
}

// GetByName returns a definition by its name.
func GetByName(name string) (RuleDef, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	def, ok := globalRegistry.defs[name]
	return def, ok
}

// Count returns the number of registered definitions.
func Count() int {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	return len(globalRegistry.defs)
}
