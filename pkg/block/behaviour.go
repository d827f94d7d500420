package block

import "fmt"

// StatementType drives which slots accept a statement.
type StatementType int

const (
	StatementUnknown StatementType = iota
	StatementAction
	StatementCondition
)

func (t StatementType) String() string {
	switch t {
	case StatementAction:
		return "action"
	case StatementCondition:
		return "condition"
	default:
		return "unknown"
	}
}

// ParseStatementType converts "action" or "condition" to a StatementType.
func ParseStatementType(s string) (StatementType, error) {
	switch s {
	case "action", "Action":
		return StatementAction, nil
	case "condition", "Condition":
		return StatementCondition, nil
	default:
		return StatementUnknown, fmt.Errorf("unknown statement type %q", s)
	}
}

// Component is one part of a statement's shape: a static label or a parameter slot.
type Component struct {
	Label  string
	Fitter Fitter
}

// Label returns a static text component.
func Label(text string) Component { return Component{Label: text} }

// Parameter returns a component that becomes a slot guarded by f.
func Parameter(f Fitter) Component { return Component{Fitter: f} }

// IsParameter reports whether the component becomes a slot.
func (c Component) IsParameter() bool { return c.Fitter != nil }

// StatementBehaviour describes one instruction: its shape and how to render
// it. Behaviours are value-like prototypes; Statement.DeepCopy clones them.
type StatementBehaviour struct {
	Name       string
	Type       StatementType
	Components []Component
	// CodeFunc and NaturalLanguageFunc receive the rendered parameter slots in
	// declaration order. They must be pure.
	CodeFunc            func(args []string) string
	NaturalLanguageFunc func(args []string) string
	// CodeTemplate and NaturalTemplate keep the source text of behaviours
	// built by NewTemplateBehaviour. They are empty for hand-written funcs.
	CodeTemplate    Template
	NaturalTemplate Template
	Image           string
}

// NewTemplateBehaviour builds a behaviour whose renderings are Templates.
func NewTemplateBehaviour(name string, typ StatementType, code, natural Template, components ...Component) *StatementBehaviour {
	return &StatementBehaviour{
		Name:                name,
		Type:                typ,
		Components:          components,
		CodeFunc:            code.Render,
		NaturalLanguageFunc: natural.Render,
		CodeTemplate:        code,
		NaturalTemplate:     natural,
	}
}

// ParameterCount returns the number of parameter components.
func (b *StatementBehaviour) ParameterCount() int {
	n := 0
	for _, c := range b.Components {
		if c.IsParameter() {
			n++
		}
	}
	return n
}

// Parameters returns the fitters of the parameter components in order.
func (b *StatementBehaviour) Parameters() []Fitter {
	fitters := make([]Fitter, 0, len(b.Components))
	for _, c := range b.Components {
		if c.IsParameter() {
			fitters = append(fitters, c.Fitter)
		}
	}
	return fitters
}

func (b *StatementBehaviour) Code(args []string) string {
	if b.CodeFunc == nil {
		return b.Name
	}
	return b.CodeFunc(args)
}

func (b *StatementBehaviour) NaturalLanguage(args []string) string {
	if b.NaturalLanguageFunc == nil {
		return b.Name
	}
	return b.NaturalLanguageFunc(args)
}

// DeepCopy returns an independent behaviour. Render functions are shared
// because they are pure.
func (b *StatementBehaviour) DeepCopy() *StatementBehaviour {
	if b == nil {
		return nil
	}
	cp := *b
	cp.Components = append([]Component(nil), b.Components...)
	return &cp
}

// AssignImage looks up the behaviour's image by name.
func (b *StatementBehaviour) AssignImage(p ImageProvider) {
	if p == nil {
		return
	}
	if img, ok := p.Image(b.Name); ok {
		b.Image = img
	}
}

// EventBehaviour describes a trigger event supplied by a domain integration.
type EventBehaviour struct {
	Name        string
	DisplayName string
	Image       string
}

func (b *EventBehaviour) AssignImage(p ImageProvider) {
	if p == nil {
		return
	}
	if img, ok := p.Image(b.Name); ok {
		b.Image = img
	}
}

// ObjectBehaviour describes a game object that can be used as a value.
type ObjectBehaviour struct {
	Identifier  string
	DisplayName string
	// Type groups objects for ObjectFitter, e.g. "Creature".
	Type            string
	CodeTemplate    Template
	NaturalTemplate Template
	Image           string
}

// Code renders the object's code; {0} is the identifier.
func (b *ObjectBehaviour) Code() string {
	if b.CodeTemplate == "" {
		return fmt.Sprintf("%q", b.Identifier)
	}
	return b.CodeTemplate.Render([]string{b.Identifier})
}

// NaturalLanguage renders the object's paraphrase; {0} is the display name.
func (b *ObjectBehaviour) NaturalLanguage() string {
	name := b.DisplayName
	if name == "" {
		name = b.Identifier
	}
	if b.NaturalTemplate == "" {
		return name
	}
	return b.NaturalTemplate.Render([]string{name})
}

func (b *ObjectBehaviour) AssignImage(p ImageProvider) {
	if p == nil {
		return
	}
	if img, ok := p.Image(b.Identifier); ok {
		b.Image = img
	}
}

// ImageProvider resolves icon references. The engine never interprets them.
type ImageProvider interface {
	Image(key string) (string, bool)
}

// BehaviourResolver looks behaviours up by name. Instruction catalogs implement it.
type BehaviourResolver interface {
	StatementBehaviour(name string) (*StatementBehaviour, bool)
	EventBehaviour(name string) (*EventBehaviour, bool)
	ObjectBehaviour(identifier string) (*ObjectBehaviour, bool)
}
