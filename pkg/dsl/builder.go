package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/blockscript/pkg/block"
)

// Builder assembles a script from a trigger and a sequence of steps.
type Builder struct {
	resolver block.BehaviourResolver
	minimum  int
	trigger  Expr
	steps    []Expr
}

// New creates a builder resolving names against r.
func New(r block.BehaviourResolver) *Builder {
	return &Builder{resolver: r, minimum: 1}
}

// Minimum sets the minimum peg count of the script body.
func (b *Builder) Minimum(n int) *Builder {
	b.minimum = n
	return b
}

// On sets the trigger event.
func (b *Builder) On(event string) *Builder {
	b.trigger = Event(event)
	return b
}

// Do appends an action statement.
func (b *Builder) Do(name string, args ...Expr) *Builder {
	return b.Then(Action(name, args...))
}

// If appends a conditional block.
func (b *Builder) If(cond Expr, body ...Expr) *Builder {
	return b.Then(If(cond, body...))
}

// While appends a pre-tested loop.
func (b *Builder) While(cond Expr, body ...Expr) *Builder {
	return b.Then(While(cond, body...))
}

// Then appends arbitrary steps. An Empty step leaves an empty peg.
func (b *Builder) Then(steps ...Expr) *Builder {
	b.steps = append(b.steps, steps...)
	return b
}

// Build resolves every expression and assembles the script. It reports all
// failing steps at once.
func (b *Builder) Build() (*block.Script, error) {
	if b.resolver == nil {
		return nil, &block.ArgumentError{Name: "resolver", Reason: "must not be nil"}
	}
	s, err := block.NewScript(b.minimum)
	if err != nil {
		return nil, err
	}

	var errs []error
	if err := fill(b.resolver, s.Trigger(), b.trigger); err != nil {
		errs = append(errs, fmt.Errorf("trigger: %w", err))
	}
	if err := appendAll(b.resolver, s.Spine(), b.steps); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return s, nil
}

// MustBuild is Build that panics on error. It is meant for tests and fixtures.
func (b *Builder) MustBuild() *block.Script {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
