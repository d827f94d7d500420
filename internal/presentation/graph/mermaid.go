package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/blockscript/pkg/block"
)

// GraphOverlay contains state data to visualize on the graph.
type GraphOverlay struct {
	// MarkIncomplete styles every block that would stop compilation.
	MarkIncomplete bool
}

// GenerateMermaid produces a Mermaid flowchart of a script tree.
// It applies semantic styling:
// - Script root: ((Circle))
// - Control: {Rhombus}
// - Action: [Rectangle]
// - Condition: {{Hexagon}}
// - Boolean operator: ([Stadium])
// - Literal or object: >Flag]
// Edges carry the role of the slot holding the child.
func GenerateMermaid(s *block.Script, overlay *GraphOverlay) string {
	w := &writer{overlay: overlay}
	w.sb.WriteString("graph TD\n")

	root := w.next()
	label := "script"
	if ev, ok := s.Trigger().Contents().(*block.EventBlock); ok {
		label = ev.Behaviour().Name
	}
	fmt.Fprintf(&w.sb, "    %s((\"%s\"))\n", root, escape(label))
	w.spine(root, "", s.Spine())

	if overlay != nil && overlay.MarkIncomplete && len(w.incomplete) > 0 {
		w.sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		w.sb.WriteString("    classDef incomplete fill:#ffebee,stroke:#b71c1c,stroke-width:2px,color:#000;\n")
		for _, id := range w.incomplete {
			fmt.Fprintf(&w.sb, "    class %s incomplete;\n", id)
		}
	}
	return w.sb.String()
}

type writer struct {
	sb         strings.Builder
	overlay    *GraphOverlay
	ids        int
	incomplete []string
}

func (w *writer) next() string {
	id := fmt.Sprintf("n%d", w.ids)
	w.ids++
	return id
}

func (w *writer) spine(parent, role string, sp *block.Spine) {
	for i, n := range sp.Nodes() {
		edge := fmt.Sprintf("%d", i+1)
		if role != "" {
			edge = fmt.Sprintf("%s %d", role, i+1)
		}
		w.node(parent, edge, n)
	}
}

func (w *writer) slot(parent, role string, s *block.Slot) {
	if s.IsEmpty() {
		return
	}
	w.node(parent, role, s.Contents())
}

func (w *writer) node(parent, role string, n block.Node) {
	id := w.next()
	opener, closer := "[", "]"
	label := n.Code()

	switch v := n.(type) {
	case *block.Statement:
		if v.Type() == block.StatementCondition {
			opener, closer = "{{", "}}"
		}
	case *block.AndBlock:
		opener, closer, label = "([", "])", "and"
	case *block.OrBlock:
		opener, closer, label = "([", "])", "or"
	case *block.NotBlock:
		opener, closer, label = "([", "])", "not"
	case *block.IfElseControl:
		opener, closer, label = "{", "}", "if else"
	case *block.IfControl:
		opener, closer, label = "{", "}", "if"
	case *block.WhileControl:
		opener, closer, label = "{", "}", "while"
	case *block.DoWhileControl:
		opener, closer, label = "{", "}", "do while"
	default:
		opener = ">"
	}

	fmt.Fprintf(&w.sb, "    %s%s\"%s\"%s\n", id, opener, escape(label), closer)
	fmt.Fprintf(&w.sb, "    %s -- \"%s\" --> %s\n", parent, role, id)
	if !n.IsComplete() {
		w.incomplete = append(w.incomplete, id)
	}

	switch v := n.(type) {
	case *block.Statement:
		for i, s := range v.Slots() {
			w.slot(id, fmt.Sprintf("arg %d", i), s)
		}
	case *block.AndBlock:
		w.slot(id, "left", v.Left())
		w.slot(id, "right", v.Right())
	case *block.OrBlock:
		w.slot(id, "left", v.Left())
		w.slot(id, "right", v.Right())
	case *block.NotBlock:
		w.slot(id, "operand", v.Operand())
	case *block.IfElseControl:
		w.slot(id, "condition", v.Condition())
		w.spine(id, "then", v.Consequences())
		w.spine(id, "else", v.Alternative())
	case block.ConditionalControl:
		w.slot(id, "condition", v.Condition())
		w.spine(id, "do", v.Consequences())
	}
}

// escape replaces characters Mermaid cannot hold inside a quoted label.
func escape(s string) string {
	s = strings.ReplaceAll(s, "\"", "'")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
