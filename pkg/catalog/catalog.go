package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/aretw0/blockscript/pkg/block"
)

// ErrDuplicate is returned when a behaviour name is registered twice.
var ErrDuplicate = errors.New("behaviour already registered")

// Catalog is a concurrency-safe set of behaviour prototypes. Lookups hand out
// copies, so callers may modify what they receive.
type Catalog struct {
	mu         sync.RWMutex
	statements map[string]*block.StatementBehaviour
	events     map[string]*block.EventBehaviour
	objects    map[string]*block.ObjectBehaviour
}

var _ block.BehaviourResolver = (*Catalog)(nil)

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		statements: make(map[string]*block.StatementBehaviour),
		events:     make(map[string]*block.EventBehaviour),
		objects:    make(map[string]*block.ObjectBehaviour),
	}
}

// RegisterStatement adds a statement behaviour.
func (c *Catalog) RegisterStatement(b *block.StatementBehaviour) error {
	if b == nil || b.Name == "" {
		return &block.ArgumentError{Name: "behaviour", Reason: "must have a name"}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.statements[b.Name]; ok {
		return fmt.Errorf("%w: statement %q", ErrDuplicate, b.Name)
	}
	c.statements[b.Name] = b.DeepCopy()
	return nil
}

// RegisterEvent adds an event behaviour.
func (c *Catalog) RegisterEvent(b *block.EventBehaviour) error {
	if b == nil || b.Name == "" {
		return &block.ArgumentError{Name: "event", Reason: "must have a name"}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.events[b.Name]; ok {
		return fmt.Errorf("%w: event %q", ErrDuplicate, b.Name)
	}
	cp := *b
	c.events[b.Name] = &cp
	return nil
}

// RegisterObject adds an object behaviour.
func (c *Catalog) RegisterObject(b *block.ObjectBehaviour) error {
	if b == nil || b.Identifier == "" {
		return &block.ArgumentError{Name: "object", Reason: "must have an identifier"}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.objects[b.Identifier]; ok {
		return fmt.Errorf("%w: object %q", ErrDuplicate, b.Identifier)
	}
	cp := *b
	c.objects[b.Identifier] = &cp
	return nil
}

// StatementBehaviour returns a copy of the named statement behaviour.
func (c *Catalog) StatementBehaviour(name string) (*block.StatementBehaviour, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.statements[name]
	if !ok {
		return nil, false
	}
	return b.DeepCopy(), true
}

// EventBehaviour returns a copy of the named event behaviour.
func (c *Catalog) EventBehaviour(name string) (*block.EventBehaviour, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.events[name]
	if !ok {
		return nil, false
	}
	cp := *b
	return &cp, true
}

// ObjectBehaviour returns a copy of the identified object behaviour.
func (c *Catalog) ObjectBehaviour(id string) (*block.ObjectBehaviour, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.objects[id]
	if !ok {
		return nil, false
	}
	cp := *b
	return &cp, true
}

// Statements lists statement behaviours of the given types sorted by name.
// With no types every statement is listed.
func (c *Catalog) Statements(types ...block.StatementType) []*block.StatementBehaviour {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*block.StatementBehaviour, 0, len(c.statements))
	for _, b := range c.statements {
		if len(types) > 0 && !containsType(types, b.Type) {
			continue
		}
		out = append(out, b.DeepCopy())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func containsType(types []block.StatementType, t block.StatementType) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}

// Events lists event behaviours sorted by name.
func (c *Catalog) Events() []*block.EventBehaviour {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*block.EventBehaviour, 0, len(c.events))
	for _, b := range c.events {
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Objects lists object behaviours sorted by identifier. A non-empty typ
// restricts the list to objects of that type.
func (c *Catalog) Objects(typ string) []*block.ObjectBehaviour {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*block.ObjectBehaviour, 0, len(c.objects))
	for _, b := range c.objects {
		if typ != "" && !strings.EqualFold(b.Type, typ) {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Identifier < out[j].Identifier })
	return out
}

// Len returns the number of registered behaviours of every sort.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.statements) + len(c.events) + len(c.objects)
}

// Merge registers everything from other. It stops at the first duplicate.
func (c *Catalog) Merge(other *Catalog) error {
	for _, b := range other.Statements() {
		if err := c.RegisterStatement(b); err != nil {
			return err
		}
	}
	for _, b := range other.Events() {
		if err := c.RegisterEvent(b); err != nil {
			return err
		}
	}
	for _, b := range other.Objects("") {
		if err := c.RegisterObject(b); err != nil {
			return err
		}
	}
	return nil
}

// AssignImages resolves the image of every registered behaviour.
func (c *Catalog) AssignImages(p block.ImageProvider) {
	if p == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, b := range c.statements {
		b.AssignImage(p)
	}
	for _, b := range c.events {
		b.AssignImage(p)
	}
	for _, b := range c.objects {
		b.AssignImage(p)
	}
}

// Images is an ImageProvider backed by a map from behaviour name to image.
type Images map[string]string

func (m Images) Image(key string) (string, bool) {
	img, ok := m[key]
	return img, ok
}
