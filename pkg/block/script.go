package block

// PlaceholderBody is the paraphrase of a script with an empty body.
const PlaceholderBody = "nothing happens"

// Script is the root of one compiled script: a trigger event and a body.
type Script struct {
	trigger   *Slot
	spine     *Spine
	unsubBody func()
	changed   Emitter
}

// NewScript creates a script with an empty trigger and a body of minimum pegs.
func NewScript(minimum int) (*Script, error) {
	sp, err := NewSpine(minimum)
	if err != nil {
		return nil, err
	}
	s := &Script{trigger: NewSlot(EventFitter{})}
	s.trigger.OnChanged(s.changed.Emit)
	s.unsubBody = sp.OnChanged(s.changed.Emit)
	s.spine = sp
	return s, nil
}

// Trigger returns the slot holding the event that starts the script.
func (s *Script) Trigger() *Slot { return s.trigger }

// Spine returns the script body.
func (s *Script) Spine() *Spine { return s.spine }

// SetSpine replaces the script body.
func (s *Script) SetSpine(sp *Spine) error {
	if sp == nil {
		return &ArgumentError{Name: "spine", Reason: "must not be nil"}
	}
	s.unsubBody()
	s.spine = sp
	s.unsubBody = sp.OnChanged(s.changed.Emit)
	s.changed.Emit()
	return nil
}

// OnChanged observes every edit anywhere in the script.
func (s *Script) OnChanged(fn func()) func() { return s.changed.Subscribe(fn) }

// IsComplete reports whether the trigger is set and the body is complete.
func (s *Script) IsComplete() bool {
	return s.trigger.IsComplete() && s.spine.IsComplete()
}

// Code renders the script as a program with a single entry point.
func (s *Script) Code() string {
	code := ""
	if !s.trigger.IsEmpty() {
		code = "// " + s.trigger.Code() + "\n"
	}
	return code + "void main()\n{\n" + s.spine.Code() + "\n}\n"
}

// NaturalLanguage paraphrases the whole script as one sentence.
func (s *Script) NaturalLanguage() string {
	body := PlaceholderBody
	if !s.spine.IsEmpty() {
		body = s.spine.NaturalLanguage()
	}
	return "When " + s.trigger.NaturalLanguage() + ", " + body + "."
}

func (s *Script) Statistics() Stats {
	return s.trigger.Statistics().Merge(s.spine.Statistics())
}

// DeepCopy returns an independent script.
func (s *Script) DeepCopy() *Script {
	cp := &Script{trigger: s.trigger.DeepCopy(), spine: s.spine.DeepCopy()}
	cp.trigger.OnChanged(cp.changed.Emit)
	cp.unsubBody = cp.spine.OnChanged(cp.changed.Emit)
	return cp
}
