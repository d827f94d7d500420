package block

// children returns the slots and spines directly owned by n.
func children(n Node) ([]*Slot, []*Spine) {
	switch n := n.(type) {
	case *Statement:
		return n.slots, nil
	case *AndBlock:
		return []*Slot{n.left, n.right}, nil
	case *OrBlock:
		return []*Slot{n.left, n.right}, nil
	case *NotBlock:
		return []*Slot{n.operand}, nil
	case *IfElseControl:
		return []*Slot{n.condition}, []*Spine{n.consequences, n.alternative}
	case ConditionalControl:
		return []*Slot{n.Condition()}, []*Spine{n.Consequences()}
	}
	return nil, nil
}

// encloses reports whether slot or spine lies anywhere below n.
func encloses(n Node, slot *Slot, spine *Spine) bool {
	slots, spines := children(n)
	for _, s := range slots {
		if slotEncloses(s, slot, spine) {
			return true
		}
	}
	for _, sp := range spines {
		if spineEncloses(sp, slot, spine) {
			return true
		}
	}
	return false
}

func slotEncloses(s, slot *Slot, spine *Spine) bool {
	if s == slot {
		return true
	}
	return s.contents != nil && encloses(s.contents, slot, spine)
}

func spineEncloses(sp *Spine, slot *Slot, spine *Spine) bool {
	if sp == spine {
		return true
	}
	for _, p := range sp.pegs {
		if slotEncloses(p.slot, slot, spine) {
			return true
		}
	}
	return false
}

func errSelfAttach(op string) error {
	return &InvalidOperationError{Op: op, Reason: "a block cannot be placed inside itself"}
}
