package block

import "strings"

// Fitter decides which nodes may occupy a slot.
type Fitter interface {
	Fits(n Node) bool
	// Description is placeholder prose for an empty slot, e.g. "some condition".
	Description() string
}

// FitterFunc adapts a predicate and a description to the Fitter interface.
type FitterFunc struct {
	Desc      string
	Predicate func(Node) bool
}

func (f FitterFunc) Fits(n Node) bool {
	if n == nil || f.Predicate == nil {
		return false
	}
	return f.Predicate(n)
}

func (f FitterFunc) Description() string { return f.Desc }

// BooleanExpressionFitter accepts boolean connectives and condition statements.
type BooleanExpressionFitter struct{}

func (BooleanExpressionFitter) Fits(n Node) bool {
	if n == nil {
		return false
	}
	if n.Kind().IsBoolean() {
		return true
	}
	s, ok := n.(*Statement)
	return ok && s.Type() == StatementCondition
}

func (BooleanExpressionFitter) Description() string { return "some condition" }

// ActionFitter accepts what a program body may hold: action statements and
// conditional controls.
type ActionFitter struct{}

func (ActionFitter) Fits(n Node) bool {
	if n == nil {
		return false
	}
	if n.Kind().IsControl() {
		return true
	}
	s, ok := n.(*Statement)
	return ok && s.Type() == StatementAction
}

func (ActionFitter) Description() string { return "some action" }

// EventFitter accepts event blocks; it guards a script's trigger.
type EventFitter struct{}

func (EventFitter) Fits(n Node) bool { return n != nil && n.Kind() == KindEvent }

func (EventFitter) Description() string { return "some event" }

// NumberFitter accepts number blocks.
type NumberFitter struct{}

func (NumberFitter) Fits(n Node) bool { return n != nil && n.Kind() == KindNumber }

func (NumberFitter) Description() string { return "some number" }

// StringFitter accepts string blocks.
type StringFitter struct{}

func (StringFitter) Fits(n Node) bool { return n != nil && n.Kind() == KindString }

func (StringFitter) Description() string { return "some text" }

// ObjectFitter accepts object blocks, optionally restricted to one object type.
// Type matching is case-insensitive; an empty Type accepts any object.
type ObjectFitter struct {
	Type string
}

func (f ObjectFitter) Fits(n Node) bool {
	o, ok := n.(*ObjectBlock)
	if !ok || o == nil {
		return false
	}
	if f.Type == "" {
		return true
	}
	return strings.EqualFold(o.Behaviour().Type, f.Type)
}

func (f ObjectFitter) Description() string {
	if f.Type == "" {
		return "some object"
	}
	return "some " + strings.ToLower(f.Type)
}
