package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIfControl_Code(t *testing.T) {
	c := NewIfControl()
	require.NoError(t, c.Condition().Attach(NewStatement(
		NewTemplateBehaviour("IsTrue", StatementCondition, "IsTrue()", "it is true"))))
	require.NoError(t, c.Consequences().Append(NewStatement(
		NewTemplateBehaviour("Jump", StatementAction, "Jump", "jump"))))

	assert.Equal(t, "if (IsTrue()) {\nJump\n}\n", c.Code())
	assert.Equal(t, "if it is true, then jump", c.NaturalLanguage())
	assert.True(t, c.IsComplete())
}

func TestControls_CodeShapes(t *testing.T) {
	fill := func(c ConditionalControl) {
		require.NoError(t, c.Condition().Attach(NewStatement(condition("C"))))
		require.NoError(t, c.Consequences().Append(NewStatement(action("B"))))
	}

	ifElse := NewIfElseControl()
	fill(ifElse)
	require.NoError(t, ifElse.Alternative().Append(NewStatement(action("A"))))
	assert.Equal(t, "if (C()) {\nB\n}\nelse {\nA\n}\n", ifElse.Code())
	assert.Equal(t, "if it is C, then B; otherwise, A", ifElse.NaturalLanguage())

	while := NewWhileControl()
	fill(while)
	assert.Equal(t, "while (C()) {\nB\n}\n", while.Code())
	assert.Equal(t, "while it is C, B", while.NaturalLanguage())

	doWhile := NewDoWhileControl()
	fill(doWhile)
	assert.Equal(t, "do {\nB\n}\nwhile (C());\n", doWhile.Code())
	assert.Equal(t, "B, and keep doing this while it is C", doWhile.NaturalLanguage())
}

func TestControls_Placeholders(t *testing.T) {
	c := NewIfElseControl()
	assert.Equal(t, "if some condition, then something happens; otherwise, something else happens",
		c.NaturalLanguage())
	assert.Equal(t, "if () {\n\n}\nelse {\n\n}\n", c.Code())
}

func TestIfElseControl_Completeness(t *testing.T) {
	c := NewIfElseControl()
	require.NoError(t, c.Condition().Attach(NewStatement(condition("IsTrue"))))
	assert.True(t, c.IsComplete(), "empty alternative with a complete condition is complete")

	c.Condition().Detach()
	assert.False(t, c.IsComplete(), "a missing condition is incomplete")

	require.NoError(t, c.Condition().Attach(NewAndBlock()))
	assert.False(t, c.IsComplete())

	c.Condition().SetContents(NewStatement(condition("IsTrue")))
	require.NoError(t, c.Alternative().Append(NewStatement(action("Walk", Parameter(NumberFitter{})))))
	assert.False(t, c.IsComplete(), "an incomplete alternative statement")
}

func TestControls_Statistics(t *testing.T) {
	c := NewIfElseControl()
	require.NoError(t, c.Condition().Attach(NewStatement(condition("IsTrue"))))
	require.NoError(t, c.Consequences().Append(NewStatement(action("Jump"))))
	require.NoError(t, c.Alternative().Append(NewStatement(action("Jump"))))
	require.NoError(t, c.Alternative().Append(NewWhileControl()))

	st := c.Statistics()
	assert.Equal(t, 1, st.IfThenElse)
	assert.Equal(t, 1, st.While)
	assert.Equal(t, 2, st.Action)
	assert.Equal(t, map[string]int{"Jump": 2}, st.Actions)
	assert.Equal(t, map[string]int{"IsTrue": 1}, st.Conditions)
}

func TestControls_SetSpines(t *testing.T) {
	c := NewIfElseControl()
	fired := 0
	c.OnChanged(func() { fired++ })

	old := c.Consequences()
	body := mustSpineT(3)
	require.NoError(t, c.SetConsequences(body))
	assert.Equal(t, 1, fired)
	assert.Same(t, body, c.Consequences())

	old.Grow()
	assert.Equal(t, 1, fired, "the replaced spine is no longer observed")

	body.Grow()
	assert.Equal(t, 2, fired)

	alt := mustSpineT(1)
	require.NoError(t, c.SetAlternative(alt))
	alt.Grow()
	assert.Equal(t, 4, fired)

	assert.ErrorIs(t, c.SetConsequences(nil), ErrArgument)
	assert.ErrorIs(t, c.SetAlternative(nil), ErrArgument)
}
