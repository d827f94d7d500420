package xmlcodec

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/blockscript/pkg/block"
)

type mapResolver struct {
	statements map[string]*block.StatementBehaviour
	events     map[string]*block.EventBehaviour
	objects    map[string]*block.ObjectBehaviour
}

func (r mapResolver) StatementBehaviour(name string) (*block.StatementBehaviour, bool) {
	b, ok := r.statements[name]
	return b.DeepCopy(), ok
}

func (r mapResolver) EventBehaviour(name string) (*block.EventBehaviour, bool) {
	b, ok := r.events[name]
	return b, ok
}

func (r mapResolver) ObjectBehaviour(id string) (*block.ObjectBehaviour, bool) {
	b, ok := r.objects[id]
	return b, ok
}

func testResolver() mapResolver {
	return mapResolver{
		statements: map[string]*block.StatementBehaviour{
			"IsNight": block.NewTemplateBehaviour("IsNight", block.StatementCondition, "IsNight()", "it is night"),
			"IsDay":   block.NewTemplateBehaviour("IsDay", block.StatementCondition, "IsDay()", "it is day"),
			"Say": block.NewTemplateBehaviour("Say", block.StatementAction, "Say({0});", "say {0}",
				block.Label("say"), block.Parameter(block.StringFitter{})),
			"Walk": block.NewTemplateBehaviour("Walk", block.StatementAction, "Walk({0});", "walk {0} steps",
				block.Label("walk"), block.Parameter(block.NumberFitter{}), block.Label("steps")),
			"Attack": block.NewTemplateBehaviour("Attack", block.StatementAction, "Attack({0});", "attack {0}",
				block.Label("attack"), block.Parameter(block.ObjectFitter{})),
		},
		events: map[string]*block.EventBehaviour{
			"OnHeartbeat": {Name: "OnHeartbeat", DisplayName: "every few seconds"},
		},
		objects: map[string]*block.ObjectBehaviour{
			"wolf": {Identifier: "wolf", DisplayName: "the wolf", Type: "Creature"},
		},
	}
}

func stmt(t *testing.T, r mapResolver, name string, args ...block.Node) *block.Statement {
	t.Helper()
	b, ok := r.StatementBehaviour(name)
	require.True(t, ok, name)
	s := block.NewStatement(b)
	for i, a := range args {
		require.NoError(t, s.Slots()[i].Attach(a))
	}
	return s
}

func buildScript(t *testing.T, r mapResolver) *block.Script {
	t.Helper()
	s, err := block.NewScript(2)
	require.NoError(t, err)

	ev, err := block.NewEventBlock(r.events["OnHeartbeat"])
	require.NoError(t, err)
	require.NoError(t, s.Trigger().Attach(ev))

	and := block.NewAndBlock()
	require.NoError(t, and.Left().Attach(stmt(t, r, "IsNight")))
	not := block.NewNotBlock()
	require.NoError(t, not.Operand().Attach(stmt(t, r, "IsDay")))
	require.NoError(t, and.Right().Attach(not))

	ifElse := block.NewIfElseControl()
	ifElse.SetPosition(&block.Point{X: 40, Y: 12.5})
	require.NoError(t, ifElse.Condition().Attach(and))
	require.NoError(t, ifElse.Consequences().Append(stmt(t, r, "Say", block.NewStringBlock("hi"))))
	require.NoError(t, ifElse.Consequences().Append(stmt(t, r, "Walk", block.NewNumberBlock(-3))))
	wolf, err := block.NewObjectBlock(r.objects["wolf"])
	require.NoError(t, err)
	require.NoError(t, ifElse.Alternative().Append(stmt(t, r, "Attack", wolf)))

	while := block.NewWhileControl()
	require.NoError(t, while.Condition().Attach(stmt(t, r, "IsDay")))
	require.NoError(t, while.Consequences().Append(stmt(t, r, "Walk")))

	pegs := s.Spine().Pegs()
	require.NoError(t, pegs[0].Slot().Attach(ifElse))
	require.NoError(t, pegs[1].Slot().Attach(block.NewDoWhileControl()))
	s.Spine().Grow()
	require.NoError(t, s.Spine().Append(while))
	s.Spine().Grow()
	return s
}

func TestRoundTrip(t *testing.T) {
	r := testResolver()
	original := buildScript(t, r)

	data, err := Marshal(original)
	require.NoError(t, err)

	decoded, err := Unmarshal(data, r)
	require.NoError(t, err)

	assert.Equal(t, original.Code(), decoded.Code())
	assert.Equal(t, original.NaturalLanguage(), decoded.NaturalLanguage())
	assert.Equal(t, original.Statistics(), decoded.Statistics())
	assert.Equal(t, original.IsComplete(), decoded.IsComplete())
	assert.Equal(t, 4, decoded.Spine().Len(), "empty pegs survive")
	assert.Equal(t, 2, decoded.Spine().Minimum())

	again, err := Marshal(decoded)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))

	pos := decoded.Spine().Nodes()[0].Position()
	require.NotNil(t, pos)
	assert.Equal(t, block.Point{X: 40, Y: 12.5}, *pos)
}

func TestRoundTrip_TrustsStoredContents(t *testing.T) {
	r := testResolver()
	s, err := block.NewScript(1)
	require.NoError(t, err)

	// A condition placed in a body through the unchecked setter.
	peg, err := s.Spine().Peg(0)
	require.NoError(t, err)
	peg.Slot().SetContents(stmt(t, r, "IsNight"))

	data, err := Marshal(s)
	require.NoError(t, err)
	decoded, err := Unmarshal(data, r)
	require.NoError(t, err)
	assert.Equal(t, s.Code(), decoded.Code())
	assert.Equal(t, s.Statistics(), decoded.Statistics())
}

func TestRoundTrip_SpineFitter(t *testing.T) {
	r := testResolver()
	numbers, err := block.NewSpineWithFitter(1, block.NumberFitter{})
	require.NoError(t, err)
	require.NoError(t, numbers.Append(block.NewNumberBlock(4)))
	require.NoError(t, numbers.Append(block.NewNumberBlock(8)))

	c := block.NewIfControl()
	require.NoError(t, c.Condition().Attach(stmt(t, r, "IsDay")))
	require.NoError(t, c.SetConsequences(numbers))

	s, err := block.NewScript(1)
	require.NoError(t, err)
	require.NoError(t, s.Spine().Append(c))

	data, err := Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<Spine Minimum="1" Fitter="number">`)

	decoded, err := Unmarshal(data, r)
	require.NoError(t, err)
	assert.Equal(t, s.Code(), decoded.Code())

	body := decoded.Spine().Nodes()[0].(*block.IfControl).Consequences()
	assert.Equal(t, block.NumberFitter{}, body.Fitter())
	assert.Error(t, body.Append(stmt(t, r, "Walk")), "the decoded body still refuses actions")

	again, err := Marshal(decoded)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
}

func TestEncoder_RefusesUnnamedSpineFitter(t *testing.T) {
	custom, err := block.NewSpineWithFitter(1, block.FitterFunc{Desc: "anything", Predicate: func(block.Node) bool { return true }})
	require.NoError(t, err)

	_, err = SpineElement(custom)
	assert.ErrorIs(t, err, block.ErrInvalidOperation)
}

func TestEncoder_Document(t *testing.T) {
	s, err := block.NewScript(1)
	require.NoError(t, err)
	require.NoError(t, s.Spine().Append(stmt(t, testResolver(), "Walk", block.NewNumberBlock(2))))

	var buf bytes.Buffer
	require.NoError(t, NewEncoder(&buf).Encode(s))

	want := xmlHeader() + `<Script>
  <Trigger></Trigger>
  <Spine Minimum="1">
    <Pegs>
      <Peg>
        <Statement Behaviour="Walk">
          <Slots>
            <Slot>
              <NumberBlock Value="2"></NumberBlock>
            </Slot>
          </Slots>
        </Statement>
      </Peg>
    </Pegs>
  </Spine>
</Script>
`
	assert.Equal(t, want, buf.String())
}

func xmlHeader() string { return `<?xml version="1.0" encoding="UTF-8"?>` + "\n" }

func TestEncoder_RefusesStatementWithoutBehaviour(t *testing.T) {
	var buf bytes.Buffer
	err := NewEncoder(&buf).EncodeNode(block.NewStatement(nil))
	assert.ErrorIs(t, err, block.ErrInvalidOperation)
	assert.Empty(t, buf.String())
}

func TestDecoder_SingleNode(t *testing.T) {
	r := testResolver()
	var buf bytes.Buffer
	require.NoError(t, NewEncoder(&buf).EncodeNode(stmt(t, r, "Say", block.NewStringBlock("a <b> & c"))))

	n, err := NewDecoder(r).DecodeNode(&buf)
	require.NoError(t, err)
	assert.Equal(t, `Say("a <b> & c");`, n.Code())
}

func TestDecoder_BadCoordinatesAreIgnored(t *testing.T) {
	doc := `<NumberBlock Value="7" X="left" Y="3"/>`
	n, err := NewDecoder(testResolver()).DecodeNode(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "7", n.Code())
	assert.Nil(t, n.Position())

	n, err = NewDecoder(testResolver()).DecodeNode(strings.NewReader(`<NumberBlock Value="7" X="1.5" Y="-2"/>`))
	require.NoError(t, err)
	require.NotNil(t, n.Position())
	assert.Equal(t, block.Point{X: 1.5, Y: -2}, *n.Position())
}

func TestDecoder_FormatErrors(t *testing.T) {
	spine := func(pegs string) string {
		return `<Spine Minimum="1"><Pegs>` + pegs + `</Pegs></Spine>`
	}
	script := func(pegs string) string {
		return `<Script><Trigger/>` + spine(pegs) + `</Script>`
	}

	tests := []struct {
		name    string
		doc     string
		element string
		attr    string
	}{
		{"malformed", `<Script><Trigger>`, "Script", ""},
		{"wrong root", `<Spine Minimum="1"><Pegs><Peg/></Pegs></Spine>`, "Spine", ""},
		{"missing trigger", `<Script>` + spine(`<Peg/>`) + `</Script>`, "Script", ""},
		{"unexpected child", `<Script><Trigger/><Extra/>` + spine(`<Peg/>`) + `</Script>`, "Script", ""},
		{"unknown element", script(`<Peg><Teleport/></Peg>`), "Teleport", ""},
		{"missing minimum", `<Script><Trigger/><Spine><Pegs><Peg/></Pegs></Spine></Script>`, "Spine", "Minimum"},
		{"zero minimum", `<Script><Trigger/><Spine Minimum="0"><Pegs/></Spine></Script>`, "Spine", "Minimum"},
		{"too few pegs", `<Script><Trigger/><Spine Minimum="2"><Pegs><Peg/></Pegs></Spine></Script>`, "Pegs", ""},
		{"missing behaviour", script(`<Peg><Statement><Slots/></Statement></Peg>`), "Statement", "Behaviour"},
		{"unknown behaviour", script(`<Peg><Statement Behaviour="Fly"><Slots/></Statement></Peg>`), "Statement", "Behaviour"},
		{"missing slots", script(`<Peg><Statement Behaviour="Walk"/></Peg>`), "Statement", ""},
		{"wrong slot count", script(`<Peg><Statement Behaviour="Walk"><Slots/></Statement></Peg>`), "Statement", ""},
		{"bad number", script(`<Peg><Statement Behaviour="Walk"><Slots><Slot><NumberBlock Value="9999999999"/></Slot></Slots></Statement></Peg>`), "NumberBlock", "Value"},
		{"missing value", script(`<Peg><Statement Behaviour="Say"><Slots><Slot><StringBlock/></Slot></Slots></Statement></Peg>`), "StringBlock", "Value"},
		{"unknown object", script(`<Peg><Statement Behaviour="Attack"><Slots><Slot><ObjectBlock Object="dragon"/></Slot></Slots></Statement></Peg>`), "ObjectBlock", "Object"},
		{"unknown event", `<Script><Trigger><EventBlock Event="OnNever"/></Trigger>` + spine(`<Peg/>`) + `</Script>`, "EventBlock", "Event"},
		{"two nodes in a peg", script(`<Peg><WhileControl/><WhileControl/></Peg>`), "Peg", ""},
		{"missing consequences", script(`<Peg><IfControl><Condition/></IfControl></Peg>`), "IfControl", ""},
		{"missing alternative", script(`<Peg><IfElseControl><Condition/><Consequences>` + spine(`<Peg/>`) + `</Consequences></IfElseControl></Peg>`), "IfElseControl", ""},
		{"unknown fitter", `<Script><Trigger/><Spine Minimum="1" Fitter="teleport"><Pegs><Peg/></Pegs></Spine></Script>`, "Spine", "Fitter"},
		{"not operand count", script(`<Peg><IfControl><Condition><NotBlock><Slots/></NotBlock></Condition><Consequences>` + spine(`<Peg/>`) + `</Consequences></IfControl></Peg>`), "NotBlock", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewDecoder(testResolver()).Decode(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Nil(t, s, "no partial tree")
			assert.ErrorIs(t, err, block.ErrFormat)

			var fe *block.FormatError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.element, fe.Element)
			assert.Equal(t, tt.attr, fe.Attribute)
		})
	}
}

func TestRegistry_Whitelist(t *testing.T) {
	r := DefaultRegistry()
	assert.Len(t, r.Names(), len(block.Kinds()))
	for _, k := range block.Kinds() {
		_, ok := r.Lookup(k.String())
		assert.True(t, ok, k.String())
	}

	restricted := NewRegistry()
	restricted.Register("NumberBlock", readNumber)
	d := NewDecoder(testResolver(), WithRegistry(restricted))

	_, err := d.DecodeNode(strings.NewReader(`<NumberBlock Value="1"/>`))
	require.NoError(t, err)
	_, err = d.DecodeNode(strings.NewReader(`<StringBlock Value="x"/>`))
	assert.ErrorIs(t, err, block.ErrFormat)
}
