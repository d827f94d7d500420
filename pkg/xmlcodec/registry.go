package xmlcodec

import (
	"sort"
	"sync"

	"github.com/aretw0/blockscript/pkg/block"
)

// Factory builds a node from its element. Nested nodes and spines are read
// back through the Decoder.
type Factory func(d *Decoder, e *Element) (block.Node, error)

// Registry maps element names to node factories. Only registered names can
// be read.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry returns a registry holding a factory for every node kind.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(block.KindNumber.String(), readNumber)
	r.Register(block.KindString.String(), readString)
	r.Register(block.KindObject.String(), readObject)
	r.Register(block.KindEvent.String(), readEvent)
	r.Register(block.KindStatement.String(), readStatement)
	r.Register(block.KindAnd.String(), readAnd)
	r.Register(block.KindOr.String(), readOr)
	r.Register(block.KindNot.String(), readNot)
	r.Register(block.KindIf.String(), readIf)
	r.Register(block.KindIfElse.String(), readIfElse)
	r.Register(block.KindWhile.String(), readWhile)
	r.Register(block.KindDoWhile.String(), readDoWhile)
	return r
}

// Register adds a factory. An existing entry under the same name is replaced.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

// Lookup returns the factory registered under name.
func (r *Registry) Lookup(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	return f, ok
}

// Names lists the registered element names in ascending order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
