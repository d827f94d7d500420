package block

// BehaviourMissing is rendered in place of code or prose when a Statement has
// no behaviour.
const BehaviourMissing = "BEHAVIOUR_MISSING"

// Statement is an instruction whose shape comes from its StatementBehaviour.
type Statement struct {
	base
	behaviour *StatementBehaviour
	parts     []part
	slots     []*Slot
	unsubs    []func()
}

// part is a child of a Statement: static label text or a parameter slot.
type part struct {
	label string
	slot  *Slot
}

// NewStatement creates a statement with one empty slot per parameter of b.
// b may be nil; such a statement renders BehaviourMissing.
func NewStatement(b *StatementBehaviour) *Statement {
	s := &Statement{}
	s.install(b, buildParts(b))
	return s
}

func buildParts(b *StatementBehaviour) []part {
	if b == nil {
		return nil
	}
	parts := make([]part, 0, len(b.Components))
	for _, c := range b.Components {
		if c.IsParameter() {
			parts = append(parts, part{slot: NewSlot(c.Fitter)})
		} else {
			parts = append(parts, part{label: c.Label})
		}
	}
	return parts
}

// install swaps in a fully built child list in one step.
func (s *Statement) install(b *StatementBehaviour, parts []part) {
	for _, unsub := range s.unsubs {
		unsub()
	}
	slots := make([]*Slot, 0, len(parts))
	unsubs := make([]func(), 0, len(parts))
	for _, p := range parts {
		if p.slot != nil {
			slots = append(slots, p.slot)
			unsubs = append(unsubs, p.slot.OnChanged(s.changed.Emit))
		}
	}
	s.behaviour, s.parts, s.slots, s.unsubs = b, parts, slots, unsubs
}

// SetBehaviour replaces the behaviour and rebuilds every slot from it. The
// previous slots and their contents are discarded.
func (s *Statement) SetBehaviour(b *StatementBehaviour) {
	s.install(b, buildParts(b))
	s.changed.Emit()
}

// WithBehaviour returns a new statement built from b, keeping the position.
func (s *Statement) WithBehaviour(b *StatementBehaviour) *Statement {
	ns := NewStatement(b)
	ns.position = s.Position()
	return ns
}

func (s *Statement) Kind() Kind { return KindStatement }

func (s *Statement) Behaviour() *StatementBehaviour { return s.behaviour }

// Type returns StatementUnknown when no behaviour is assigned.
func (s *Statement) Type() StatementType {
	if s.behaviour == nil {
		return StatementUnknown
	}
	return s.behaviour.Type
}

// Slots returns the parameter slots in declaration order.
func (s *Statement) Slots() []*Slot {
	return append([]*Slot(nil), s.slots...)
}

// Slot returns the i-th parameter slot.
func (s *Statement) Slot(i int) (*Slot, error) {
	if i < 0 || i >= len(s.slots) {
		return nil, &ArgumentError{Name: "index", Reason: "out of range"}
	}
	return s.slots[i], nil
}

// Labels returns the static text components in declaration order.
func (s *Statement) Labels() []string {
	var labels []string
	for _, p := range s.parts {
		if p.slot == nil {
			labels = append(labels, p.label)
		}
	}
	return labels
}

func (s *Statement) IsComplete() bool {
	for _, slot := range s.slots {
		if !slot.IsComplete() {
			return false
		}
	}
	return true
}

func (s *Statement) DeepCopy() Node {
	b := s.behaviour.DeepCopy()
	parts := make([]part, len(s.parts))
	for i, p := range s.parts {
		if p.slot != nil {
			parts[i] = part{slot: p.slot.DeepCopy()}
		} else {
			parts[i] = part{label: p.label}
		}
	}
	cp := &Statement{base: s.copyBase()}
	cp.install(b, parts)
	return cp
}

func (s *Statement) Code() string {
	if s.behaviour == nil {
		return BehaviourMissing
	}
	args := make([]string, len(s.slots))
	for i, slot := range s.slots {
		args[i] = slot.Code()
	}
	return s.behaviour.Code(args)
}

func (s *Statement) NaturalLanguage() string {
	if s.behaviour == nil {
		return BehaviourMissing
	}
	args := make([]string, len(s.slots))
	for i, slot := range s.slots {
		args[i] = slot.NaturalLanguage()
	}
	return s.behaviour.NaturalLanguage(args)
}

func (s *Statement) Statistics() Stats {
	var st Stats
	if s.behaviour != nil {
		switch s.behaviour.Type {
		case StatementAction:
			st = Stats{Action: 1, Actions: map[string]int{s.behaviour.Name: 1}}
		case StatementCondition:
			st = Stats{Condition: 1, Conditions: map[string]int{s.behaviour.Name: 1}}
		}
	}
	for _, slot := range s.slots {
		st = st.Merge(slot.Statistics())
	}
	return st
}
