package block

// Slot holds at most one node guarded by a Fitter.
//
// SetContents trusts its caller and does not consult the Fitter; it is the path
// used by decoding, DeepCopy and internal rebuilds. Attach is the checked path
// used when a user places a block.
type Slot struct {
	fitter   Fitter
	contents Node
	unsub    func()
	changed  Emitter
}

// NewSlot creates an empty slot guarded by f.
func NewSlot(f Fitter) *Slot {
	return &Slot{fitter: f}
}

// Fitter returns the slot's fitter.
func (s *Slot) Fitter() Fitter { return s.fitter }

// Fits reports whether n could be attached to this slot.
func (s *Slot) Fits(n Node) bool {
	if s.fitter == nil {
		return false
	}
	return s.fitter.Fits(n)
}

// Contents returns the held node, or nil.
func (s *Slot) Contents() Node { return s.contents }

// IsEmpty reports whether the slot holds nothing.
func (s *Slot) IsEmpty() bool { return s.contents == nil }

// SetContents replaces the held node without validation and fires a change.
// Passing nil empties the slot. n must not hold s below it.
func (s *Slot) SetContents(n Node) {
	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
	s.contents = n
	if n != nil {
		s.unsub = n.OnChanged(s.changed.Emit)
	}
	s.changed.Emit()
}

// Attach places n in the slot after checking it against the Fitter.
func (s *Slot) Attach(n Node) error {
	if n == nil {
		return &ArgumentError{Name: "node", Reason: "must not be nil"}
	}
	if !s.Fits(n) {
		expected := "nothing"
		if s.fitter != nil {
			expected = s.fitter.Description()
		}
		return &StructuralTypeError{Kind: n.Kind(), Expected: expected}
	}
	if encloses(n, s, nil) {
		return errSelfAttach("attach")
	}
	s.SetContents(n)
	return nil
}

// Detach empties the slot and returns what it held.
func (s *Slot) Detach() Node {
	n := s.contents
	if n != nil {
		s.SetContents(nil)
	}
	return n
}

// OnChanged registers fn for replacements and for changes of the held node.
func (s *Slot) OnChanged(fn func()) func() { return s.changed.Subscribe(fn) }

// IsComplete reports whether the slot is filled with a complete node.
func (s *Slot) IsComplete() bool {
	return s.contents != nil && s.contents.IsComplete()
}

// Code returns the held node's code, or "" when empty.
func (s *Slot) Code() string {
	if s.contents == nil {
		return ""
	}
	return s.contents.Code()
}

// NaturalLanguage returns the held node's paraphrase, or the fitter's
// description when empty.
func (s *Slot) NaturalLanguage() string {
	if s.contents == nil {
		if s.fitter == nil {
			return ""
		}
		return s.fitter.Description()
	}
	return s.contents.NaturalLanguage()
}

// Statistics returns the held node's statistics.
func (s *Slot) Statistics() Stats {
	if s.contents == nil {
		return Stats{}
	}
	return s.contents.Statistics()
}

// DeepCopy returns a new slot with the same fitter and a copy of the contents.
func (s *Slot) DeepCopy() *Slot {
	cp := NewSlot(s.fitter)
	if s.contents != nil {
		cp.SetContents(s.contents.DeepCopy())
	}
	return cp
}
