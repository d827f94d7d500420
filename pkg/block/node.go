package block

// Kind is the closed set of block variants.
// Kind.String() is also the element name used when a block is persisted.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindObject
	KindEvent
	KindStatement
	KindAnd
	KindOr
	KindNot
	KindIf
	KindIfElse
	KindWhile
	KindDoWhile
)

var kindNames = [...]string{
	KindNumber:    "NumberBlock",
	KindString:    "StringBlock",
	KindObject:    "ObjectBlock",
	KindEvent:     "EventBlock",
	KindStatement: "Statement",
	KindAnd:       "AndBlock",
	KindOr:        "OrBlock",
	KindNot:       "NotBlock",
	KindIf:        "IfControl",
	KindIfElse:    "IfElseControl",
	KindWhile:     "WhileControl",
	KindDoWhile:   "DoWhileControl",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// Kinds returns every block kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, len(kindNames))
	for i := range kindNames {
		kinds[i] = Kind(i)
	}
	return kinds
}

// IsLiteral reports whether the kind is a value block.
func (k Kind) IsLiteral() bool {
	return k == KindNumber || k == KindString || k == KindObject
}

// IsBoolean reports whether the kind is a boolean connective.
func (k Kind) IsBoolean() bool {
	return k == KindAnd || k == KindOr || k == KindNot
}

// IsControl reports whether the kind is a conditional control.
func (k Kind) IsControl() bool {
	return k == KindIf || k == KindIfElse || k == KindWhile || k == KindDoWhile
}

// Node is one block of the composed program tree.
type Node interface {
	Kind() Kind
	// IsComplete reports whether every filled slot below this node holds a complete block.
	IsComplete() bool
	// DeepCopy returns an independent copy. Listeners are never copied.
	DeepCopy() Node
	Code() string
	NaturalLanguage() string
	Statistics() Stats
	// OnChanged registers fn to be called whenever this node or anything below it changes.
	OnChanged(fn func()) (cancel func())
	// Position returns the canvas position, or nil when the node is unplaced.
	Position() *Point
	SetPosition(p *Point)
}

// Point is a position on the editing canvas. It has no structural meaning.
type Point struct {
	X float64
	Y float64
}

// base carries the state every node shares.
type base struct {
	changed  Emitter
	position *Point
}

func (b *base) OnChanged(fn func()) func() { return b.changed.Subscribe(fn) }

func (b *base) Position() *Point {
	if b.position == nil {
		return nil
	}
	p := *b.position
	return &p
}

func (b *base) SetPosition(p *Point) {
	if p == nil {
		b.position = nil
		return
	}
	cp := *p
	b.position = &cp
}

// copyBase returns a base with the same position and no listeners.
func (b *base) copyBase() base {
	return base{position: b.Position()}
}
