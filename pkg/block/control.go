package block

// Placeholder prose for parts of a control that are absent or empty.
const (
	PlaceholderConsequence = "something happens"
	PlaceholderAlternative = "something else happens"
)

// control holds the condition slot and body every conditional control has.
type control struct {
	base
	condition    *Slot
	consequences *Spine
	unsubBody    func()
}

func newControl() control {
	return control{
		condition:    NewSlot(BooleanExpressionFitter{}),
		consequences: mustSpine(1),
	}
}

func (c *control) wire() {
	c.condition.OnChanged(c.changed.Emit)
	c.unsubBody = c.consequences.OnChanged(c.changed.Emit)
}

// SetConsequences replaces the body spine.
func (c *control) SetConsequences(s *Spine) error {
	if s == nil {
		return &ArgumentError{Name: "spine", Reason: "must not be nil"}
	}
	if spineEncloses(s, c.condition, nil) {
		return errSelfAttach("set consequences")
	}
	c.unsubBody()
	c.consequences = s
	c.unsubBody = s.OnChanged(c.changed.Emit)
	c.changed.Emit()
	return nil
}

func (c *control) copyInto(dst *control) {
	dst.base = c.copyBase()
	dst.condition = c.condition.DeepCopy()
	dst.consequences = c.consequences.DeepCopy()
}

// Condition returns the slot holding the controlling boolean expression.
func (c *control) Condition() *Slot { return c.condition }

// Consequences returns the body run when (or while) the condition holds.
func (c *control) Consequences() *Spine { return c.consequences }

func (c *control) IsComplete() bool {
	return c.condition.IsComplete() && c.consequences.IsComplete()
}

func (c *control) consequenceText() string {
	if c.consequences.IsEmpty() {
		return PlaceholderConsequence
	}
	return c.consequences.NaturalLanguage()
}

func (c *control) childStats() Stats {
	return c.condition.Statistics().Merge(c.consequences.Statistics())
}

// IfControl runs its consequences when the condition holds.
type IfControl struct{ control }

func NewIfControl() *IfControl {
	c := &IfControl{control: newControl()}
	c.wire()
	return c
}

func (c *IfControl) Kind() Kind { return KindIf }

func (c *IfControl) DeepCopy() Node {
	cp := &IfControl{}
	c.copyInto(&cp.control)
	cp.wire()
	return cp
}

func (c *IfControl) Code() string {
	return "if (" + c.condition.Code() + ") {\n" + c.consequences.Code() + "\n}\n"
}

func (c *IfControl) NaturalLanguage() string {
	return "if " + c.condition.NaturalLanguage() + ", then " + c.consequenceText()
}

func (c *IfControl) Statistics() Stats { return Stats{IfThen: 1}.Merge(c.childStats()) }

// IfElseControl runs its consequences when the condition holds and its
// alternative otherwise.
type IfElseControl struct {
	control
	alternative *Spine
	unsubAlt    func()
}

func NewIfElseControl() *IfElseControl {
	c := &IfElseControl{control: newControl(), alternative: mustSpine(1)}
	c.wire()
	return c
}

func (c *IfElseControl) wire() {
	c.control.wire()
	c.unsubAlt = c.alternative.OnChanged(c.changed.Emit)
}

// SetAlternative replaces the alternative spine.
func (c *IfElseControl) SetAlternative(s *Spine) error {
	if s == nil {
		return &ArgumentError{Name: "spine", Reason: "must not be nil"}
	}
	if spineEncloses(s, c.condition, nil) {
		return errSelfAttach("set alternative")
	}
	c.unsubAlt()
	c.alternative = s
	c.unsubAlt = s.OnChanged(c.changed.Emit)
	c.changed.Emit()
	return nil
}

func (c *IfElseControl) Kind() Kind { return KindIfElse }

// Alternative returns the body run when the condition does not hold.
func (c *IfElseControl) Alternative() *Spine { return c.alternative }

func (c *IfElseControl) IsComplete() bool {
	return c.control.IsComplete() && c.alternative.IsComplete()
}

func (c *IfElseControl) DeepCopy() Node {
	cp := &IfElseControl{alternative: c.alternative.DeepCopy()}
	c.copyInto(&cp.control)
	cp.wire()
	return cp
}

func (c *IfElseControl) Code() string {
	return "if (" + c.condition.Code() + ") {\n" + c.consequences.Code() + "\n}\nelse {\n" +
		c.alternative.Code() + "\n}\n"
}

func (c *IfElseControl) NaturalLanguage() string {
	alt := PlaceholderAlternative
	if !c.alternative.IsEmpty() {
		alt = c.alternative.NaturalLanguage()
	}
	return "if " + c.condition.NaturalLanguage() + ", then " + c.consequenceText() + "; otherwise, " + alt
}

func (c *IfElseControl) Statistics() Stats {
	return Stats{IfThenElse: 1}.Merge(c.childStats()).Merge(c.alternative.Statistics())
}

// WhileControl repeats its consequences while the condition holds.
type WhileControl struct{ control }

func NewWhileControl() *WhileControl {
	c := &WhileControl{control: newControl()}
	c.wire()
	return c
}

func (c *WhileControl) Kind() Kind { return KindWhile }

func (c *WhileControl) DeepCopy() Node {
	cp := &WhileControl{}
	c.copyInto(&cp.control)
	cp.wire()
	return cp
}

func (c *WhileControl) Code() string {
	return "while (" + c.condition.Code() + ") {\n" + c.consequences.Code() + "\n}\n"
}

func (c *WhileControl) NaturalLanguage() string {
	return "while " + c.condition.NaturalLanguage() + ", " + c.consequenceText()
}

func (c *WhileControl) Statistics() Stats { return Stats{While: 1}.Merge(c.childStats()) }

// DoWhileControl runs its consequences once, then repeats them while the
// condition holds.
type DoWhileControl struct{ control }

func NewDoWhileControl() *DoWhileControl {
	c := &DoWhileControl{control: newControl()}
	c.wire()
	return c
}

func (c *DoWhileControl) Kind() Kind { return KindDoWhile }

func (c *DoWhileControl) DeepCopy() Node {
	cp := &DoWhileControl{}
	c.copyInto(&cp.control)
	cp.wire()
	return cp
}

func (c *DoWhileControl) Code() string {
	return "do {\n" + c.consequences.Code() + "\n}\nwhile (" + c.condition.Code() + ");\n"
}

func (c *DoWhileControl) NaturalLanguage() string {
	return c.consequenceText() + ", and keep doing this while " + c.condition.NaturalLanguage()
}

func (c *DoWhileControl) Statistics() Stats { return Stats{DoWhile: 1}.Merge(c.childStats()) }

// ConditionalControl is implemented by IfControl, IfElseControl,
// WhileControl and DoWhileControl.
type ConditionalControl interface {
	Node
	Condition() *Slot
	Consequences() *Spine
	SetConsequences(s *Spine) error
}

var (
	_ ConditionalControl = (*IfControl)(nil)
	_ ConditionalControl = (*IfElseControl)(nil)
	_ ConditionalControl = (*WhileControl)(nil)
	_ ConditionalControl = (*DoWhileControl)(nil)
)
