package xmlcodec

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/aretw0/blockscript/internal/logging"
	"github.com/aretw0/blockscript/pkg/block"
	"github.com/aretw0/blockscript/pkg/catalog"
)

// Decoder reads scripts and nodes from XML.
type Decoder struct {
	resolver block.BehaviourResolver
	registry *Registry
	logger   *slog.Logger
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithRegistry replaces the default element whitelist.
func WithRegistry(r *Registry) Option {
	return func(d *Decoder) {
		if r != nil {
			d.registry = r
		}
	}
}

// WithLogger sets the logger used for tolerated problems such as bad coordinates.
func WithLogger(l *slog.Logger) Option {
	return func(d *Decoder) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDecoder creates a decoder that resolves behaviours through resolver.
func NewDecoder(resolver block.BehaviourResolver, opts ...Option) *Decoder {
	d := &Decoder{
		resolver: resolver,
		registry: DefaultRegistry(),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Unmarshal reads a script document with the default registry.
func Unmarshal(data []byte, resolver block.BehaviourResolver) (*block.Script, error) {
	return NewDecoder(resolver).Decode(bytes.NewReader(data))
}

// Decode reads a whole script. On error no script is returned.
func (d *Decoder) Decode(r io.Reader) (*block.Script, error) {
	root, err := parse(r, ElemScript)
	if err != nil {
		return nil, err
	}
	if root.Name() != ElemScript {
		return nil, &block.FormatError{Element: root.Name(), Reason: "expected <" + ElemScript + "> root"}
	}
	return d.Script(root)
}

// DecodeNode reads a document whose root is a single node.
func (d *Decoder) DecodeNode(r io.Reader) (block.Node, error) {
	root, err := parse(r, "node")
	if err != nil {
		return nil, err
	}
	return d.Node(root)
}

func parse(r io.Reader, what string) (*Element, error) {
	if r == nil {
		return nil, &block.ArgumentError{Name: "reader", Reason: "must not be nil"}
	}
	var root Element
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %v", &block.FormatError{Element: what, Reason: "not well-formed XML"}, err)
	}
	return &root, nil
}

// Script builds a script from its <Script> element.
func (d *Decoder) Script(e *Element) (*block.Script, error) {
	if err := e.Expect(ElemTrigger, ElemSpine); err != nil {
		return nil, err
	}
	trigger, err := e.Child(ElemTrigger)
	if err != nil {
		return nil, err
	}
	spineEl, err := e.Child(ElemSpine)
	if err != nil {
		return nil, err
	}
	spine, err := d.Spine(spineEl)
	if err != nil {
		return nil, err
	}
	s, err := block.NewScript(spine.Minimum())
	if err != nil {
		return nil, err
	}
	if err := s.SetSpine(spine); err != nil {
		return nil, err
	}
	if err := d.Fill(s.Trigger(), trigger); err != nil {
		return nil, err
	}
	return s, nil
}

// Node builds the node an element describes, dispatching on its name.
func (d *Decoder) Node(e *Element) (block.Node, error) {
	f, ok := d.registry.Lookup(e.Name())
	if !ok {
		return nil, &block.FormatError{Element: e.Name(), Reason: "unrecognized element"}
	}
	n, err := f(d, e)
	if err != nil {
		return nil, err
	}
	p, err := e.position()
	if err != nil {
		d.logger.Debug("ignoring node coordinates", "element", e.Name(), "err", err)
		return n, nil
	}
	if p != nil {
		n.SetPosition(p)
	}
	return n, nil
}

// Fill reads the optional single node inside wrapper into slot. Stored
// documents are trusted: the slot's Fitter is not consulted.
func (d *Decoder) Fill(slot *block.Slot, wrapper *Element) error {
	child, err := wrapper.Single()
	if err != nil || child == nil {
		return err
	}
	n, err := d.Node(child)
	if err != nil {
		return err
	}
	slot.SetContents(n)
	return nil
}

// Spine builds a spine from its <Spine> element.
func (d *Decoder) Spine(e *Element) (*block.Spine, error) {
	if e.Name() != ElemSpine {
		return nil, &block.FormatError{Element: e.Name(), Reason: "expected <" + ElemSpine + ">"}
	}
	raw, err := e.RequireAttr(AttrMinimum)
	if err != nil {
		return nil, err
	}
	minimum, err := strconv.Atoi(raw)
	if err != nil || minimum < 1 {
		return nil, &block.FormatError{Element: e.Name(), Attribute: AttrMinimum, Reason: "must be a positive integer"}
	}
	if err := e.Expect(ElemPegs); err != nil {
		return nil, err
	}
	pegs, err := e.Child(ElemPegs)
	if err != nil {
		return nil, err
	}
	if err := pegs.Expect(ElemPeg); err != nil {
		return nil, err
	}
	if len(pegs.Children) < minimum {
		return nil, &block.FormatError{Element: ElemPegs, Reason: "fewer pegs than the spine minimum"}
	}

	fitter := block.Fitter(block.ActionFitter{})
	if name, ok := e.Attr(AttrFitter); ok {
		if fitter, err = catalog.ParseFitter(name); err != nil {
			return nil, &block.FormatError{Element: e.Name(), Attribute: AttrFitter, Reason: err.Error()}
		}
	}

	s, err := block.NewSpineWithFitter(minimum, fitter)
	if err != nil {
		return nil, err
	}
	for i := minimum; i < len(pegs.Children); i++ {
		s.Grow()
	}
	for i := range pegs.Children {
		p, err := s.Peg(i)
		if err != nil {
			return nil, err
		}
		if err := d.Fill(p.Slot(), &pegs.Children[i]); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// slots reads a <Slots> wrapper with exactly len(targets) <Slot> children.
func (d *Decoder) slots(e *Element, targets []*block.Slot) error {
	wrapper, err := e.Child(ElemSlots)
	if err != nil {
		return err
	}
	if err := wrapper.Expect(ElemSlot); err != nil {
		return err
	}
	if len(wrapper.Children) != len(targets) {
		return &block.FormatError{
			Element: e.Name(),
			Reason:  fmt.Sprintf("expected %d slots, found %d", len(targets), len(wrapper.Children)),
		}
	}
	for i, slot := range targets {
		if err := d.Fill(slot, &wrapper.Children[i]); err != nil {
			return err
		}
	}
	return nil
}

func readNumber(_ *Decoder, e *Element) (block.Node, error) {
	if err := e.Expect(); err != nil {
		return nil, err
	}
	raw, err := e.RequireAttr(AttrValue)
	if err != nil {
		return nil, err
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return nil, &block.FormatError{Element: e.Name(), Attribute: AttrValue, Reason: "not a 32-bit integer"}
	}
	return block.NewNumberBlock(int32(v)), nil
}

func readString(_ *Decoder, e *Element) (block.Node, error) {
	if err := e.Expect(); err != nil {
		return nil, err
	}
	v, err := e.RequireAttr(AttrValue)
	if err != nil {
		return nil, err
	}
	return block.NewStringBlock(v), nil
}

func readObject(d *Decoder, e *Element) (block.Node, error) {
	if err := e.Expect(); err != nil {
		return nil, err
	}
	id, err := e.RequireAttr(AttrObject)
	if err != nil {
		return nil, err
	}
	b, ok := d.lookupObject(id)
	if !ok {
		return nil, &block.FormatError{Element: e.Name(), Attribute: AttrObject, Reason: fmt.Sprintf("unknown object %q", id)}
	}
	return block.NewObjectBlock(b)
}

func readEvent(d *Decoder, e *Element) (block.Node, error) {
	if err := e.Expect(); err != nil {
		return nil, err
	}
	name, err := e.RequireAttr(AttrEvent)
	if err != nil {
		return nil, err
	}
	b, ok := d.lookupEvent(name)
	if !ok {
		return nil, &block.FormatError{Element: e.Name(), Attribute: AttrEvent, Reason: fmt.Sprintf("unknown event %q", name)}
	}
	return block.NewEventBlock(b)
}

func readStatement(d *Decoder, e *Element) (block.Node, error) {
	if err := e.Expect(ElemSlots); err != nil {
		return nil, err
	}
	name, err := e.RequireAttr(AttrBehaviour)
	if err != nil {
		return nil, err
	}
	b, ok := d.lookupStatement(name)
	if !ok {
		return nil, &block.FormatError{Element: e.Name(), Attribute: AttrBehaviour, Reason: fmt.Sprintf("unknown behaviour %q", name)}
	}
	s := block.NewStatement(b)
	if err := d.slots(e, s.Slots()); err != nil {
		return nil, err
	}
	return s, nil
}

func readAnd(d *Decoder, e *Element) (block.Node, error) {
	n := block.NewAndBlock()
	if err := readOperands(d, e, n.Left(), n.Right()); err != nil {
		return nil, err
	}
	return n, nil
}

func readOr(d *Decoder, e *Element) (block.Node, error) {
	n := block.NewOrBlock()
	if err := readOperands(d, e, n.Left(), n.Right()); err != nil {
		return nil, err
	}
	return n, nil
}

func readNot(d *Decoder, e *Element) (block.Node, error) {
	n := block.NewNotBlock()
	if err := readOperands(d, e, n.Operand()); err != nil {
		return nil, err
	}
	return n, nil
}

func readOperands(d *Decoder, e *Element, slots ...*block.Slot) error {
	if err := e.Expect(ElemSlots); err != nil {
		return err
	}
	return d.slots(e, slots)
}

func readIf(d *Decoder, e *Element) (block.Node, error) {
	c := block.NewIfControl()
	if err := readControl(d, e, c); err != nil {
		return nil, err
	}
	return c, nil
}

func readWhile(d *Decoder, e *Element) (block.Node, error) {
	c := block.NewWhileControl()
	if err := readControl(d, e, c); err != nil {
		return nil, err
	}
	return c, nil
}

func readDoWhile(d *Decoder, e *Element) (block.Node, error) {
	c := block.NewDoWhileControl()
	if err := readControl(d, e, c); err != nil {
		return nil, err
	}
	return c, nil
}

func readIfElse(d *Decoder, e *Element) (block.Node, error) {
	c := block.NewIfElseControl()
	if err := readControl(d, e, c, ElemAlternative); err != nil {
		return nil, err
	}
	alt, err := d.wrappedSpine(e, ElemAlternative)
	if err != nil {
		return nil, err
	}
	if err := c.SetAlternative(alt); err != nil {
		return nil, err
	}
	return c, nil
}

func readControl(d *Decoder, e *Element, c block.ConditionalControl, extra ...string) error {
	if err := e.Expect(append([]string{ElemCondition, ElemConsequences}, extra...)...); err != nil {
		return err
	}
	cond, err := e.Child(ElemCondition)
	if err != nil {
		return err
	}
	if err := d.Fill(c.Condition(), cond); err != nil {
		return err
	}
	body, err := d.wrappedSpine(e, ElemConsequences)
	if err != nil {
		return err
	}
	return c.SetConsequences(body)
}

func (d *Decoder) wrappedSpine(e *Element, wrapper string) (*block.Spine, error) {
	w, err := e.Child(wrapper)
	if err != nil {
		return nil, err
	}
	if err := w.Expect(ElemSpine); err != nil {
		return nil, err
	}
	s, err := w.Child(ElemSpine)
	if err != nil {
		return nil, err
	}
	return d.Spine(s)
}

func (d *Decoder) lookupStatement(name string) (*block.StatementBehaviour, bool) {
	if d.resolver == nil {
		return nil, false
	}
	return d.resolver.StatementBehaviour(name)
}

func (d *Decoder) lookupEvent(name string) (*block.EventBehaviour, bool) {
	if d.resolver == nil {
		return nil, false
	}
	return d.resolver.EventBehaviour(name)
}

func (d *Decoder) lookupObject(id string) (*block.ObjectBehaviour, bool) {
	if d.resolver == nil {
		return nil, false
	}
	return d.resolver.ObjectBehaviour(id)
}
