package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHeartbeatScript(t *testing.T) *Script {
	t.Helper()
	s, err := NewScript(1)
	require.NoError(t, err)
	ev, err := NewEventBlock(&EventBehaviour{Name: "OnHeartbeat", DisplayName: "every few seconds"})
	require.NoError(t, err)
	require.NoError(t, s.Trigger().Attach(ev))

	c := NewIfControl()
	require.NoError(t, c.Condition().Attach(NewStatement(condition("IsNight"))))
	require.NoError(t, c.Consequences().Append(NewStatement(action("Howl"))))
	require.NoError(t, s.Spine().Append(c))
	return s
}

func TestScript_Rendering(t *testing.T) {
	s := newHeartbeatScript(t)

	assert.Equal(t, "// OnHeartbeat\nvoid main()\n{\nif (IsNight()) {\nHowl\n}\n\n}\n", s.Code())
	assert.Equal(t, "When every few seconds, if it is IsNight, then Howl.", s.NaturalLanguage())
	assert.True(t, s.IsComplete())

	st := s.Statistics()
	assert.Equal(t, 1, st.Event)
	assert.Equal(t, 1, st.IfThen)
	assert.Equal(t, map[string]int{"OnHeartbeat": 1}, st.Events)
}

func TestScript_Empty(t *testing.T) {
	s, err := NewScript(1)
	require.NoError(t, err)
	assert.Equal(t, "void main()\n{\n\n}\n", s.Code())
	assert.Equal(t, "When some event, nothing happens.", s.NaturalLanguage())
	assert.False(t, s.IsComplete())

	_, err = NewScript(0)
	assert.ErrorIs(t, err, ErrArgument)
}

// A single subscription at the root observes edits anywhere in the tree.
func TestScript_ChangePropagatesToRoot(t *testing.T) {
	s := newHeartbeatScript(t)
	fired := 0
	s.OnChanged(func() { fired++ })
	observed := func(edit func()) bool {
		before := fired
		edit()
		return fired > before
	}

	c := s.Spine().Nodes()[0].(*IfControl)
	stmt := NewStatement(action("Walk", Parameter(NumberFitter{})))
	n := NewNumberBlock(1)

	assert.True(t, observed(func() { require.NoError(t, c.Consequences().Append(stmt)) }))
	assert.True(t, observed(func() { require.NoError(t, stmt.Slots()[0].Attach(n)) }))
	assert.True(t, observed(func() { n.SetValue(5) }))
	assert.True(t, observed(func() { s.Spine().Grow() }))
	assert.True(t, observed(func() { s.Trigger().Detach() }))
	assert.True(t, observed(func() { require.NoError(t, s.SetSpine(mustSpineT(1))) }))
	assert.False(t, observed(func() { n.SetValue(6) }), "the old body is no longer observed")
}

func TestScript_DeepCopyIsIndependent(t *testing.T) {
	s := newHeartbeatScript(t)
	cp := s.DeepCopy()

	assert.Equal(t, s.Code(), cp.Code())
	assert.Equal(t, s.NaturalLanguage(), cp.NaturalLanguage())
	assert.Equal(t, s.Statistics(), cp.Statistics())

	orig := s.Spine().Nodes()[0].(*IfControl)
	copied := cp.Spine().Nodes()[0].(*IfControl)
	assert.NotSame(t, orig, copied)
	assert.NotSame(t, orig.Condition().Contents(), copied.Condition().Contents())
	assert.NotSame(t, s.Trigger().Contents(), cp.Trigger().Contents())

	fired := 0
	s.OnChanged(func() { fired++ })

	require.NoError(t, copied.Consequences().Append(NewStatement(action("Sit"))))
	assert.Equal(t, 0, fired, "editing the copy does not notify the original")
	assert.NotEqual(t, s.Code(), cp.Code())

	orig.Condition().Detach()
	assert.True(t, copied.Condition().IsComplete())
}

func TestStatement_DeepCopyClonesBehaviour(t *testing.T) {
	b := action("Walk", Parameter(NumberFitter{}))
	s := NewStatement(b)
	require.NoError(t, s.Slots()[0].Attach(NewNumberBlock(4)))

	cp := s.DeepCopy().(*Statement)
	assert.NotSame(t, s.Behaviour(), cp.Behaviour())
	cp.Behaviour().Name = "Run"
	assert.Equal(t, "Walk", s.Behaviour().Name)

	cp.Slots()[0].Contents().(*NumberBlock).SetValue(9)
	assert.Equal(t, int32(4), s.Slots()[0].Contents().(*NumberBlock).Value())
}
