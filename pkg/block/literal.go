package block

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// NumberBlock is an integer literal.
type NumberBlock struct {
	base
	value int32
}

func NewNumberBlock(v int32) *NumberBlock { return &NumberBlock{value: v} }

func (b *NumberBlock) Kind() Kind { return KindNumber }

func (b *NumberBlock) Value() int32 { return b.value }

// SetValue changes the literal and fires a change.
func (b *NumberBlock) SetValue(v int32) {
	b.value = v
	b.changed.Emit()
}

func (b *NumberBlock) IsComplete() bool { return true }

func (b *NumberBlock) DeepCopy() Node {
	return &NumberBlock{base: b.copyBase(), value: b.value}
}

func (b *NumberBlock) Code() string { return strconv.FormatInt(int64(b.value), 10) }

func (b *NumberBlock) NaturalLanguage() string { return b.Code() }

func (b *NumberBlock) Statistics() Stats { return Stats{Number: 1} }

// StringBlock is a text literal.
type StringBlock struct {
	base
	value string
}

func NewStringBlock(v string) *StringBlock { return &StringBlock{value: v} }

func (b *StringBlock) Kind() Kind { return KindString }

func (b *StringBlock) Value() string { return b.value }

func (b *StringBlock) SetValue(v string) {
	b.value = v
	b.changed.Emit()
}

func (b *StringBlock) IsComplete() bool { return true }

func (b *StringBlock) DeepCopy() Node {
	return &StringBlock{base: b.copyBase(), value: b.value}
}

func (b *StringBlock) Code() string { return `"` + b.value + `"` }

func (b *StringBlock) NaturalLanguage() string { return `"` + b.value + `"` }

func (b *StringBlock) Statistics() Stats { return Stats{String: 1} }

// Label returns the value truncated to max runes for display, with an
// ellipsis when it was shortened.
func (b *StringBlock) Label(max int) string {
	if max <= 0 || utf8.RuneCountInString(b.value) <= max {
		return b.value
	}
	runes := []rune(b.value)
	return string(runes[:max]) + "..."
}

// ValidateStringValue applies the editing rules for string literals: no
// double quotes, and at most max runes when max > 0. The node itself accepts
// any value.
func ValidateStringValue(s string, max int) error {
	if strings.ContainsRune(s, '"') {
		return &ArgumentError{Name: "value", Reason: "must not contain a double quote"}
	}
	if max > 0 && utf8.RuneCountInString(s) > max {
		return &ArgumentError{Name: "value", Reason: "exceeds " + strconv.Itoa(max) + " characters"}
	}
	return nil
}

// ObjectBlock wraps an externally supplied object.
type ObjectBlock struct {
	base
	behaviour *ObjectBehaviour
}

// NewObjectBlock returns an ArgumentError when b is nil.
func NewObjectBlock(b *ObjectBehaviour) (*ObjectBlock, error) {
	if b == nil {
		return nil, &ArgumentError{Name: "behaviour", Reason: "must not be nil"}
	}
	return &ObjectBlock{behaviour: b}, nil
}

func (b *ObjectBlock) Kind() Kind { return KindObject }

func (b *ObjectBlock) Behaviour() *ObjectBehaviour { return b.behaviour }

func (b *ObjectBlock) IsComplete() bool { return true }

func (b *ObjectBlock) DeepCopy() Node {
	cp := *b.behaviour
	return &ObjectBlock{base: b.copyBase(), behaviour: &cp}
}

func (b *ObjectBlock) Code() string { return b.behaviour.Code() }

func (b *ObjectBlock) NaturalLanguage() string { return b.behaviour.NaturalLanguage() }

func (b *ObjectBlock) Statistics() Stats { return Stats{Object: 1} }

// EventBlock wraps an externally supplied event; it fills a script's trigger.
type EventBlock struct {
	base
	behaviour *EventBehaviour
}

// NewEventBlock returns an ArgumentError when b is nil.
func NewEventBlock(b *EventBehaviour) (*EventBlock, error) {
	if b == nil {
		return nil, &ArgumentError{Name: "behaviour", Reason: "must not be nil"}
	}
	return &EventBlock{behaviour: b}, nil
}

func (b *EventBlock) Kind() Kind { return KindEvent }

func (b *EventBlock) Behaviour() *EventBehaviour { return b.behaviour }

func (b *EventBlock) IsComplete() bool { return true }

func (b *EventBlock) DeepCopy() Node {
	cp := *b.behaviour
	return &EventBlock{base: b.copyBase(), behaviour: &cp}
}

func (b *EventBlock) Code() string { return b.behaviour.Name }

func (b *EventBlock) NaturalLanguage() string {
	if b.behaviour.DisplayName != "" {
		return b.behaviour.DisplayName
	}
	return b.behaviour.Name
}

func (b *EventBlock) Statistics() Stats {
	return Stats{Event: 1, Events: map[string]int{b.behaviour.Name: 1}}
}
