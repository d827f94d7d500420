package xmlcodec

import (
	"encoding/xml"
	"strconv"

	"github.com/aretw0/blockscript/pkg/block"
)

// Wrapper element and attribute names.
const (
	ElemScript       = "Script"
	ElemTrigger      = "Trigger"
	ElemSpine        = "Spine"
	ElemPegs         = "Pegs"
	ElemPeg          = "Peg"
	ElemSlots        = "Slots"
	ElemSlot         = "Slot"
	ElemCondition    = "Condition"
	ElemConsequences = "Consequences"
	ElemAlternative  = "Alternative"

	AttrValue     = "Value"
	AttrObject    = "Object"
	AttrEvent     = "Event"
	AttrBehaviour = "Behaviour"
	AttrMinimum   = "Minimum"
	AttrFitter    = "Fitter"
	AttrX         = "X"
	AttrY         = "Y"
)

// Element is a generic XML element. Documents are read into an Element tree
// first so that nothing is built until the whole input is well-formed.
type Element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []Element  `xml:",any"`
}

func newElement(name string) Element {
	return Element{XMLName: xml.Name{Local: name}}
}

// Name returns the local element name.
func (e *Element) Name() string { return e.XMLName.Local }

func (e *Element) setAttr(name, value string) {
	e.Attrs = append(e.Attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})
}

func (e *Element) add(children ...Element) {
	e.Children = append(e.Children, children...)
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// RequireAttr returns the named attribute or a FormatError.
func (e *Element) RequireAttr(name string) (string, error) {
	v, ok := e.Attr(name)
	if !ok {
		return "", &block.FormatError{Element: e.Name(), Attribute: name, Reason: "missing attribute"}
	}
	return v, nil
}

// Child returns the single child with the given name. It fails when the
// child is absent or repeated.
func (e *Element) Child(name string) (*Element, error) {
	var found *Element
	for i := range e.Children {
		if e.Children[i].Name() != name {
			continue
		}
		if found != nil {
			return nil, &block.FormatError{Element: e.Name(), Reason: "repeated <" + name + ">"}
		}
		found = &e.Children[i]
	}
	if found == nil {
		return nil, &block.FormatError{Element: e.Name(), Reason: "missing <" + name + ">"}
	}
	return found, nil
}

// Expect fails when e has a child whose name is not listed.
func (e *Element) Expect(names ...string) error {
	for _, c := range e.Children {
		ok := false
		for _, n := range names {
			if c.Name() == n {
				ok = true
				break
			}
		}
		if !ok {
			return &block.FormatError{Element: e.Name(), Reason: "unexpected <" + c.Name() + ">"}
		}
	}
	return nil
}

// Single returns the only child of a wrapper, or nil when the wrapper is
// empty. More than one child is a FormatError.
func (e *Element) Single() (*Element, error) {
	switch len(e.Children) {
	case 0:
		return nil, nil
	case 1:
		return &e.Children[0], nil
	default:
		return nil, &block.FormatError{Element: e.Name(), Reason: "holds more than one node"}
	}
}

// position parses the X/Y attributes. It returns nil, nil when either is absent.
func (e *Element) position() (*block.Point, error) {
	xs, okX := e.Attr(AttrX)
	ys, okY := e.Attr(AttrY)
	if !okX || !okY {
		return nil, nil
	}
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return nil, err
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return nil, err
	}
	return &block.Point{X: x, Y: y}, nil
}
