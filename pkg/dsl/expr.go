package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/blockscript/pkg/block"
)

// ErrUnknown is returned when a name is missing from the catalog.
var ErrUnknown = errors.New("unknown behaviour")

// Expr describes a node to be built against a catalog. An Expr may return a
// nil node, which leaves its slot empty.
type Expr func(r block.BehaviourResolver) (block.Node, error)

// Number describes a number literal.
func Number(v int32) Expr {
	return func(block.BehaviourResolver) (block.Node, error) {
		return block.NewNumberBlock(v), nil
	}
}

// String describes a string literal.
func String(v string) Expr {
	return func(block.BehaviourResolver) (block.Node, error) {
		return block.NewStringBlock(v), nil
	}
}

// Object describes a reference to a catalog object.
func Object(id string) Expr {
	return func(r block.BehaviourResolver) (block.Node, error) {
		b, ok := r.ObjectBehaviour(id)
		if !ok {
			return nil, fmt.Errorf("%w: object %q", ErrUnknown, id)
		}
		return block.NewObjectBlock(b)
	}
}

// Event describes a catalog event.
func Event(name string) Expr {
	return func(r block.BehaviourResolver) (block.Node, error) {
		b, ok := r.EventBehaviour(name)
		if !ok {
			return nil, fmt.Errorf("%w: event %q", ErrUnknown, name)
		}
		return block.NewEventBlock(b)
	}
}

// Empty leaves a slot unfilled.
func Empty() Expr {
	return func(block.BehaviourResolver) (block.Node, error) { return nil, nil }
}

// Stmt describes a statement with its parameter slots filled in order.
// Missing trailing arguments leave their slots empty.
func Stmt(name string, args ...Expr) Expr {
	return func(r block.BehaviourResolver) (block.Node, error) {
		b, ok := r.StatementBehaviour(name)
		if !ok {
			return nil, fmt.Errorf("%w: statement %q", ErrUnknown, name)
		}
		if len(args) > b.ParameterCount() {
			return nil, fmt.Errorf("statement %q takes %d arguments, got %d", name, b.ParameterCount(), len(args))
		}
		s := block.NewStatement(b)
		for i, arg := range args {
			if err := fill(r, s.Slots()[i], arg); err != nil {
				return nil, fmt.Errorf("statement %q argument %d: %w", name, i, err)
			}
		}
		return s, nil
	}
}

// Cond is Stmt restricted to condition statements.
func Cond(name string, args ...Expr) Expr {
	return typed(block.StatementCondition, name, args)
}

// Action is Stmt restricted to action statements.
func Action(name string, args ...Expr) Expr {
	return typed(block.StatementAction, name, args)
}

func typed(want block.StatementType, name string, args []Expr) Expr {
	inner := Stmt(name, args...)
	return func(r block.BehaviourResolver) (block.Node, error) {
		n, err := inner(r)
		if err != nil {
			return nil, err
		}
		if got := n.(*block.Statement).Type(); got != want {
			return nil, fmt.Errorf("statement %q is a %s, not a %s", name, got, want)
		}
		return n, nil
	}
}

// And describes a conjunction.
func And(left, right Expr) Expr {
	return func(r block.BehaviourResolver) (block.Node, error) {
		n := block.NewAndBlock()
		if err := fillAll(r, []*block.Slot{n.Left(), n.Right()}, left, right); err != nil {
			return nil, fmt.Errorf("and: %w", err)
		}
		return n, nil
	}
}

// Or describes a disjunction.
func Or(left, right Expr) Expr {
	return func(r block.BehaviourResolver) (block.Node, error) {
		n := block.NewOrBlock()
		if err := fillAll(r, []*block.Slot{n.Left(), n.Right()}, left, right); err != nil {
			return nil, fmt.Errorf("or: %w", err)
		}
		return n, nil
	}
}

// Not describes a negation.
func Not(operand Expr) Expr {
	return func(r block.BehaviourResolver) (block.Node, error) {
		n := block.NewNotBlock()
		if err := fill(r, n.Operand(), operand); err != nil {
			return nil, fmt.Errorf("not: %w", err)
		}
		return n, nil
	}
}

// If describes a conditional block.
func If(cond Expr, body ...Expr) Expr {
	return func(r block.BehaviourResolver) (block.Node, error) {
		c := block.NewIfControl()
		if err := buildControl(r, c, cond, body); err != nil {
			return nil, fmt.Errorf("if: %w", err)
		}
		return c, nil
	}
}

// IfElse describes a two-way conditional block.
func IfElse(cond Expr, then, otherwise []Expr) Expr {
	return func(r block.BehaviourResolver) (block.Node, error) {
		c := block.NewIfElseControl()
		if err := buildControl(r, c, cond, then); err != nil {
			return nil, fmt.Errorf("if-else: %w", err)
		}
		if err := appendAll(r, c.Alternative(), otherwise); err != nil {
			return nil, fmt.Errorf("else: %w", err)
		}
		return c, nil
	}
}

// While describes a pre-tested loop.
func While(cond Expr, body ...Expr) Expr {
	return func(r block.BehaviourResolver) (block.Node, error) {
		c := block.NewWhileControl()
		if err := buildControl(r, c, cond, body); err != nil {
			return nil, fmt.Errorf("while: %w", err)
		}
		return c, nil
	}
}

// DoWhile describes a post-tested loop.
func DoWhile(cond Expr, body ...Expr) Expr {
	return func(r block.BehaviourResolver) (block.Node, error) {
		c := block.NewDoWhileControl()
		if err := buildControl(r, c, cond, body); err != nil {
			return nil, fmt.Errorf("do-while: %w", err)
		}
		return c, nil
	}
}

// Steps groups expressions, for IfElse bodies.
func Steps(es ...Expr) []Expr { return es }

// At places the node on the editing canvas.
func At(x, y float64, e Expr) Expr {
	return func(r block.BehaviourResolver) (block.Node, error) {
		n, err := e(r)
		if err != nil || n == nil {
			return n, err
		}
		n.SetPosition(&block.Point{X: x, Y: y})
		return n, nil
	}
}

func fill(r block.BehaviourResolver, slot *block.Slot, e Expr) error {
	if e == nil {
		return nil
	}
	n, err := e(r)
	if err != nil || n == nil {
		return err
	}
	return slot.Attach(n)
}

func fillAll(r block.BehaviourResolver, slots []*block.Slot, es ...Expr) error {
	for i, e := range es {
		if err := fill(r, slots[i], e); err != nil {
			return err
		}
	}
	return nil
}

func buildControl(r block.BehaviourResolver, c block.ConditionalControl, cond Expr, body []Expr) error {
	if err := fill(r, c.Condition(), cond); err != nil {
		return fmt.Errorf("condition: %w", err)
	}
	return appendAll(r, c.Consequences(), body)
}

// appendAll places steps on consecutive pegs starting at the first one,
// growing the spine as needed. Every failing step is reported.
func appendAll(r block.BehaviourResolver, s *block.Spine, steps []Expr) error {
	var errs []error
	for i, e := range steps {
		if i >= s.Len() {
			s.Grow()
		}
		if err := fill(r, pegSlot(s, i), e); err != nil {
			errs = append(errs, fmt.Errorf("step %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func pegSlot(s *block.Spine, i int) *block.Slot {
	p, err := s.Peg(i)
	if err != nil {
		panic(err)
	}
	return p.Slot()
}
