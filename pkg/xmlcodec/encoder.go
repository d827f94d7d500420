package xmlcodec

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/aretw0/blockscript/pkg/block"
	"github.com/aretw0/blockscript/pkg/catalog"
)

// Encoder writes scripts and nodes as indented XML.
type Encoder struct {
	w io.Writer
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder { return &Encoder{w: w} }

// Marshal renders a script document.
func Marshal(s *block.Script) ([]byte, error) {
	el, err := ScriptElement(s)
	if err != nil {
		return nil, err
	}
	out, err := xml.MarshalIndent(el, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal script: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

// Encode writes s as a complete document.
func (e *Encoder) Encode(s *block.Script) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(data, '\n'))
	return err
}

// EncodeNode writes a single node as the document root.
func (e *Encoder) EncodeNode(n block.Node) error {
	el, err := NodeElement(n)
	if err != nil {
		return err
	}
	enc := xml.NewEncoder(e.w)
	enc.Indent("", "  ")
	if err := enc.Encode(el); err != nil {
		return fmt.Errorf("failed to encode node: %w", err)
	}
	return enc.Close()
}

// ScriptElement converts a script into its element tree.
func ScriptElement(s *block.Script) (Element, error) {
	if s == nil {
		return Element{}, &block.ArgumentError{Name: "script", Reason: "must not be nil"}
	}
	root := newElement(ElemScript)
	trigger, err := wrap(ElemTrigger, s.Trigger())
	if err != nil {
		return Element{}, err
	}
	spine, err := SpineElement(s.Spine())
	if err != nil {
		return Element{}, err
	}
	root.add(trigger, spine)
	return root, nil
}

// SpineElement converts a spine, keeping empty pegs so that the peg count
// survives a round trip. A fitter other than ActionFitter is written by its
// catalog name; fitters without one cannot be persisted.
func SpineElement(s *block.Spine) (Element, error) {
	if s == nil {
		return Element{}, &block.ArgumentError{Name: "spine", Reason: "must not be nil"}
	}
	el := newElement(ElemSpine)
	el.setAttr(AttrMinimum, strconv.Itoa(s.Minimum()))
	if _, action := s.Fitter().(block.ActionFitter); !action {
		name := catalog.FitterName(s.Fitter())
		if _, err := catalog.ParseFitter(name); err != nil {
			return Element{}, &block.InvalidOperationError{Op: "encode spine", Reason: fmt.Sprintf("fitter %q has no persistent name", name)}
		}
		el.setAttr(AttrFitter, name)
	}
	pegs := newElement(ElemPegs)
	for _, p := range s.Pegs() {
		peg, err := wrap(ElemPeg, p.Slot())
		if err != nil {
			return Element{}, err
		}
		pegs.add(peg)
	}
	el.add(pegs)
	return el, nil
}

// NodeElement converts a node and everything below it.
func NodeElement(n block.Node) (Element, error) {
	if n == nil {
		return Element{}, &block.ArgumentError{Name: "node", Reason: "must not be nil"}
	}
	el := newElement(n.Kind().String())
	var err error
	switch n := n.(type) {
	case *block.NumberBlock:
		el.setAttr(AttrValue, strconv.FormatInt(int64(n.Value()), 10))
	case *block.StringBlock:
		el.setAttr(AttrValue, n.Value())
	case *block.ObjectBlock:
		el.setAttr(AttrObject, n.Behaviour().Identifier)
	case *block.EventBlock:
		el.setAttr(AttrEvent, n.Behaviour().Name)
	case *block.Statement:
		if n.Behaviour() == nil {
			return Element{}, &block.InvalidOperationError{Op: "encode statement", Reason: "no behaviour assigned"}
		}
		el.setAttr(AttrBehaviour, n.Behaviour().Name)
		err = addSlots(&el, n.Slots()...)
	case *block.AndBlock:
		err = addSlots(&el, n.Left(), n.Right())
	case *block.OrBlock:
		err = addSlots(&el, n.Left(), n.Right())
	case *block.NotBlock:
		err = addSlots(&el, n.Operand())
	case *block.IfElseControl:
		if err = addControl(&el, n); err == nil {
			err = addSpine(&el, ElemAlternative, n.Alternative())
		}
	case block.ConditionalControl:
		err = addControl(&el, n)
	default:
		return Element{}, &block.InvalidOperationError{Op: "encode node", Reason: fmt.Sprintf("unsupported node %T", n)}
	}
	if err != nil {
		return Element{}, err
	}
	if p := n.Position(); p != nil {
		el.setAttr(AttrX, strconv.FormatFloat(p.X, 'g', -1, 64))
		el.setAttr(AttrY, strconv.FormatFloat(p.Y, 'g', -1, 64))
	}
	return el, nil
}

func wrap(name string, slot *block.Slot) (Element, error) {
	el := newElement(name)
	if n := slot.Contents(); n != nil {
		child, err := NodeElement(n)
		if err != nil {
			return Element{}, err
		}
		el.add(child)
	}
	return el, nil
}

func addSlots(el *Element, slots ...*block.Slot) error {
	wrapper := newElement(ElemSlots)
	for _, s := range slots {
		child, err := wrap(ElemSlot, s)
		if err != nil {
			return err
		}
		wrapper.add(child)
	}
	el.add(wrapper)
	return nil
}

func addControl(el *Element, c block.ConditionalControl) error {
	cond, err := wrap(ElemCondition, c.Condition())
	if err != nil {
		return err
	}
	el.add(cond)
	return addSpine(el, ElemConsequences, c.Consequences())
}

func addSpine(el *Element, name string, s *block.Spine) error {
	spine, err := SpineElement(s)
	if err != nil {
		return err
	}
	wrapper := newElement(name)
	wrapper.add(spine)
	el.add(wrapper)
	return nil
}
