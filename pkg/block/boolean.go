package block

// binary holds the two condition slots shared by AndBlock and OrBlock.
type binary struct {
	base
	left, right *Slot
}

func newBinary() binary {
	return binary{
		left:  NewSlot(BooleanExpressionFitter{}),
		right: NewSlot(BooleanExpressionFitter{}),
	}
}

func (b *binary) wire() {
	b.left.OnChanged(b.changed.Emit)
	b.right.OnChanged(b.changed.Emit)
}

func (b *binary) copyInto(dst *binary) {
	dst.base = b.copyBase()
	dst.left = b.left.DeepCopy()
	dst.right = b.right.DeepCopy()
	dst.wire()
}

// Left returns the first operand slot.
func (b *binary) Left() *Slot { return b.left }

// Right returns the second operand slot.
func (b *binary) Right() *Slot { return b.right }

// IsComplete is always false for AndBlock and OrBlock, whatever their
// operands hold. Product guidance is pending on whether this should change.
func (b *binary) IsComplete() bool { return false }

func (b *binary) operandStats() Stats {
	return b.left.Statistics().Merge(b.right.Statistics())
}

// AndBlock is true when both operands are.
type AndBlock struct{ binary }

func NewAndBlock() *AndBlock {
	b := &AndBlock{binary: newBinary()}
	b.wire()
	return b
}

func (b *AndBlock) Kind() Kind { return KindAnd }

func (b *AndBlock) DeepCopy() Node {
	cp := &AndBlock{}
	b.copyInto(&cp.binary)
	return cp
}

func (b *AndBlock) Code() string {
	return "(" + b.left.Code() + " & " + b.right.Code() + ")"
}

func (b *AndBlock) NaturalLanguage() string {
	return "both " + b.left.NaturalLanguage() + " and " + b.right.NaturalLanguage()
}

func (b *AndBlock) Statistics() Stats { return Stats{And: 1}.Merge(b.operandStats()) }

// OrBlock is true when either operand is.
type OrBlock struct{ binary }

func NewOrBlock() *OrBlock {
	b := &OrBlock{binary: newBinary()}
	b.wire()
	return b
}

func (b *OrBlock) Kind() Kind { return KindOr }

func (b *OrBlock) DeepCopy() Node {
	cp := &OrBlock{}
	b.copyInto(&cp.binary)
	return cp
}

func (b *OrBlock) Code() string {
	return "(" + b.left.Code() + " | " + b.right.Code() + ")"
}

func (b *OrBlock) NaturalLanguage() string {
	return "either " + b.left.NaturalLanguage() + " or " + b.right.NaturalLanguage()
}

func (b *OrBlock) Statistics() Stats { return Stats{Or: 1}.Merge(b.operandStats()) }

// NotBlock negates its single operand.
type NotBlock struct {
	base
	operand *Slot
}

func NewNotBlock() *NotBlock {
	b := &NotBlock{operand: NewSlot(BooleanExpressionFitter{})}
	b.operand.OnChanged(b.changed.Emit)
	return b
}

func (b *NotBlock) Kind() Kind { return KindNot }

// Operand returns the negated slot.
func (b *NotBlock) Operand() *Slot { return b.operand }

func (b *NotBlock) IsComplete() bool { return b.operand.IsComplete() }

func (b *NotBlock) DeepCopy() Node {
	cp := &NotBlock{base: b.copyBase(), operand: b.operand.DeepCopy()}
	cp.operand.OnChanged(cp.changed.Emit)
	return cp
}

func (b *NotBlock) Code() string { return "!" + b.operand.Code() }

func (b *NotBlock) NaturalLanguage() string { return "not " + b.operand.NaturalLanguage() }

func (b *NotBlock) Statistics() Stats { return Stats{Not: 1}.Merge(b.operand.Statistics()) }
