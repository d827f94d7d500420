package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStats_Merge(t *testing.T) {
	a := Stats{IfThenElse: 1, Actions: map[string]int{"Jump": 2}}
	b := Stats{IfThenElse: 1, Actions: map[string]int{"Jump": 2}}

	got := a.Merge(b)
	assert.Equal(t, Stats{IfThenElse: 2, Actions: map[string]int{"Jump": 4}}, got)
	assert.Equal(t, map[string]int{"Jump": 2}, a.Actions, "operands are untouched")
}

func TestStats_MergeIsCommutativeAndAssociative(t *testing.T) {
	x := Stats{Number: 1, Events: map[string]int{"OnDeath": 1}}
	y := Stats{Action: 2, Actions: map[string]int{"Jump": 1, "Sit": 1}}
	z := Stats{Not: 3, Actions: map[string]int{"Jump": 5}}

	assert.Equal(t, x.Merge(y), y.Merge(x))
	assert.Equal(t, x.Merge(y).Merge(z), x.Merge(y.Merge(z)))
	assert.Equal(t, x, x.Merge(Stats{}))
}

func TestStats_AddAndTotal(t *testing.T) {
	var s Stats
	s.Add(Stats{Number: 2, String: 1})
	s.Add(Stats{IfThen: 1})
	assert.Equal(t, 4, s.Total())
	assert.Equal(t, 2, s.Counts()["number"])
	assert.Equal(t, []string{"a", "b"}, SortedNames(map[string]int{"b": 1, "a": 2}))
}
