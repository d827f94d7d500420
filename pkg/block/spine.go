package block

import "strings"

// Peg is one position in a Spine. It owns exactly one slot.
type Peg struct {
	slot  *Slot
	unsub func()
}

// Slot returns the peg's slot.
func (p *Peg) Slot() *Slot { return p.slot }

// IsEmpty reports whether the peg's slot holds nothing.
func (p *Peg) IsEmpty() bool { return p.slot.IsEmpty() }

// DropMode says whether a dropped node is moved from its source or copied.
type DropMode int

const (
	DropMove DropMode = iota
	DropCopy
)

// Drop describes a node being placed onto a spine.
type Drop struct {
	Node Node
	// Source is the slot the node currently occupies, if any.
	Source *Slot
	Mode   DropMode
}

// Spine is an ordered list of pegs forming a program body. It never holds
// fewer pegs than its minimum. Empty pegs are inert placeholders and are
// ignored by every traversal.
type Spine struct {
	pegs    []*Peg
	minimum int
	fitter  Fitter
	changed Emitter
}

// NewSpine creates a spine of minimum empty pegs guarded by ActionFitter.
func NewSpine(minimum int) (*Spine, error) {
	return NewSpineWithFitter(minimum, ActionFitter{})
}

// NewSpineWithFitter creates a spine whose pegs are guarded by f.
func NewSpineWithFitter(minimum int, f Fitter) (*Spine, error) {
	if minimum < 1 {
		return nil, &ArgumentError{Name: "minimum", Reason: "must be at least 1"}
	}
	if f == nil {
		return nil, &ArgumentError{Name: "fitter", Reason: "must not be nil"}
	}
	s := &Spine{minimum: minimum, fitter: f}
	for i := 0; i < minimum; i++ {
		s.pegs = append(s.pegs, s.newPeg())
	}
	return s, nil
}

// mustSpine is for internal constructors with constant arguments.
func mustSpine(minimum int) *Spine {
	s, err := NewSpine(minimum)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Spine) newPeg() *Peg {
	p := &Peg{slot: NewSlot(s.fitter)}
	p.unsub = p.slot.OnChanged(s.changed.Emit)
	return p
}

// Minimum returns the configured minimum peg count.
func (s *Spine) Minimum() int { return s.minimum }

// Fitter returns the fitter guarding every peg.
func (s *Spine) Fitter() Fitter { return s.fitter }

// Len returns the number of pegs, empty or not.
func (s *Spine) Len() int { return len(s.pegs) }

// Pegs returns the pegs in order.
func (s *Spine) Pegs() []*Peg { return append([]*Peg(nil), s.pegs...) }

// Peg returns the peg at index i.
func (s *Spine) Peg(i int) (*Peg, error) {
	if i < 0 || i >= len(s.pegs) {
		return nil, &ArgumentError{Name: "index", Reason: "out of range"}
	}
	return s.pegs[i], nil
}

// IndexOf returns the position of p, or -1.
func (s *Spine) IndexOf(p *Peg) int {
	for i, q := range s.pegs {
		if q == p {
			return i
		}
	}
	return -1
}

// OnChanged registers fn for peg insertions and removals and for changes
// anywhere below the pegs.
func (s *Spine) OnChanged(fn func()) func() { return s.changed.Subscribe(fn) }

// AddPeg inserts an empty peg at index at (0..Len).
func (s *Spine) AddPeg(at int) (*Peg, error) {
	if at < 0 || at > len(s.pegs) {
		return nil, &ArgumentError{Name: "at", Reason: "out of range"}
	}
	p := s.newPeg()
	s.pegs = append(s.pegs, nil)
	copy(s.pegs[at+1:], s.pegs[at:])
	s.pegs[at] = p
	s.changed.Emit()
	return p, nil
}

// Grow appends one empty peg.
func (s *Spine) Grow() *Peg {
	p := s.newPeg()
	s.pegs = append(s.pegs, p)
	s.changed.Emit()
	return p
}

// RemovePeg removes the peg at index i together with its contents.
func (s *Spine) RemovePeg(i int) error {
	if i < 0 || i >= len(s.pegs) {
		return &ArgumentError{Name: "index", Reason: "out of range"}
	}
	if len(s.pegs) <= s.minimum {
		return &InvalidOperationError{Op: "remove peg", Reason: "spine is at its minimum length"}
	}
	s.detach(i)
	s.changed.Emit()
	return nil
}

// RemovePegRef removes p from the spine.
func (s *Spine) RemovePegRef(p *Peg) error {
	if p == nil {
		return &ArgumentError{Name: "peg", Reason: "must not be nil"}
	}
	i := s.IndexOf(p)
	if i < 0 {
		return &ArgumentError{Name: "peg", Reason: "not part of this spine"}
	}
	return s.RemovePeg(i)
}

func (s *Spine) detach(i int) {
	s.pegs[i].unsub()
	s.pegs = append(s.pegs[:i], s.pegs[i+1:]...)
}

// Shrink removes empty pegs, first to last, while more than the minimum
// remain. Filled pegs are never removed.
func (s *Spine) Shrink() {
	if s.removeEmpty(len(s.pegs)-s.minimum, false) > 0 {
		s.changed.Emit()
	}
}

// SetPegCount grows or shrinks the spine to n pegs, clamped to the minimum.
// Shrinking removes empty pegs from the end first and stops early rather
// than remove a filled peg.
func (s *Spine) SetPegCount(n int) {
	if n < s.minimum {
		n = s.minimum
	}
	changed := false
	for len(s.pegs) < n {
		s.pegs = append(s.pegs, s.newPeg())
		changed = true
	}
	if len(s.pegs) > n && s.removeEmpty(len(s.pegs)-n, true) > 0 {
		changed = true
	}
	if changed {
		s.changed.Emit()
	}
}

// removeEmpty drops up to limit empty pegs and reports how many went.
func (s *Spine) removeEmpty(limit int, fromEnd bool) int {
	if limit <= 0 {
		return 0
	}
	removed := 0
	if fromEnd {
		for i := len(s.pegs) - 1; i >= 0 && removed < limit; i-- {
			if s.pegs[i].IsEmpty() {
				s.detach(i)
				removed++
			}
		}
		return removed
	}
	kept := s.pegs[:0:0]
	for _, p := range s.pegs {
		if removed < limit && p.IsEmpty() {
			p.unsub()
			removed++
			continue
		}
		kept = append(kept, p)
	}
	s.pegs = kept
	return removed
}

// Attach places a dropped node at boundary, the gap above peg boundary
// (Len means below the last peg).
//
// A move onto the node's own position does nothing. Otherwise the empty
// neighbour below the gap is preferred, then the empty neighbour above it,
// and failing both a new peg is inserted at the gap. Copies are cloned
// first; moves are detached from their source slot.
func (s *Spine) Attach(boundary int, d Drop) error {
	if d.Node == nil {
		return &ArgumentError{Name: "node", Reason: "must not be nil"}
	}
	if boundary < 0 || boundary > len(s.pegs) {
		return &ArgumentError{Name: "boundary", Reason: "out of range"}
	}
	if !s.fitter.Fits(d.Node) {
		return &StructuralTypeError{Kind: d.Node.Kind(), Expected: s.fitter.Description()}
	}
	if d.Mode != DropCopy && encloses(d.Node, nil, s) {
		return errSelfAttach("attach")
	}

	var above, below *Peg
	if boundary > 0 {
		above = s.pegs[boundary-1]
	}
	if boundary < len(s.pegs) {
		below = s.pegs[boundary]
	}

	node := d.Node
	switch d.Mode {
	case DropCopy:
		node = node.DeepCopy()
	default:
		if d.Source != nil {
			if (above != nil && above.slot == d.Source) || (below != nil && below.slot == d.Source) {
				return nil
			}
			if d.Source.Contents() == d.Node {
				d.Source.SetContents(nil)
			}
		}
	}

	switch {
	case below != nil && below.IsEmpty():
		below.slot.SetContents(node)
	case above != nil && above.IsEmpty():
		above.slot.SetContents(node)
	default:
		p, err := s.AddPeg(boundary)
		if err != nil {
			return err
		}
		p.slot.SetContents(node)
	}
	return nil
}

// Append places n at the end of the spine, reusing a trailing empty peg.
func (s *Spine) Append(n Node) error {
	return s.Attach(len(s.pegs), Drop{Node: n, Mode: DropMove})
}

// FilledPegs returns the pegs that hold a node.
func (s *Spine) FilledPegs() []*Peg {
	var filled []*Peg
	for _, p := range s.pegs {
		if !p.IsEmpty() {
			filled = append(filled, p)
		}
	}
	return filled
}

// Nodes returns the contents of the filled pegs in order.
func (s *Spine) Nodes() []Node {
	var nodes []Node
	for _, p := range s.pegs {
		if n := p.slot.Contents(); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// IsEmpty reports whether no peg is filled.
func (s *Spine) IsEmpty() bool {
	for _, p := range s.pegs {
		if !p.IsEmpty() {
			return false
		}
	}
	return true
}

// IsComplete reports whether every filled peg holds a complete node.
func (s *Spine) IsComplete() bool {
	for _, p := range s.pegs {
		if n := p.slot.Contents(); n != nil && !n.IsComplete() {
			return false
		}
	}
	return true
}

// Code joins the code of the filled pegs with newlines.
func (s *Spine) Code() string {
	nodes := s.Nodes()
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.Code()
	}
	return strings.Join(parts, "\n")
}

// NaturalLanguage joins the paraphrases of the filled pegs with ", then ".
// It is empty when the spine is.
func (s *Spine) NaturalLanguage() string {
	nodes := s.Nodes()
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.NaturalLanguage()
	}
	return strings.Join(parts, ", then ")
}

func (s *Spine) Statistics() Stats {
	var st Stats
	for _, n := range s.Nodes() {
		st = st.Merge(n.Statistics())
	}
	return st
}

// DeepCopy returns a spine with the same minimum, fitter and peg layout,
// including empty pegs.
func (s *Spine) DeepCopy() *Spine {
	cp := &Spine{minimum: s.minimum, fitter: s.fitter}
	for _, p := range s.pegs {
		np := cp.newPeg()
		if n := p.slot.Contents(); n != nil {
			np.slot.SetContents(n.DeepCopy())
		}
		cp.pegs = append(cp.pegs, np)
	}
	return cp
}
