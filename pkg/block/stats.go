package block

import "sort"

// Stats counts the blocks in a subtree. Merge is commutative and
// associative, so statistics of disjoint subtrees can be combined in any order.
type Stats struct {
	Number     int `json:"number,omitempty" yaml:"number,omitempty"`
	String     int `json:"string,omitempty" yaml:"string,omitempty"`
	Object     int `json:"object,omitempty" yaml:"object,omitempty"`
	Event      int `json:"event,omitempty" yaml:"event,omitempty"`
	Action     int `json:"action,omitempty" yaml:"action,omitempty"`
	Condition  int `json:"condition,omitempty" yaml:"condition,omitempty"`
	And        int `json:"and,omitempty" yaml:"and,omitempty"`
	Or         int `json:"or,omitempty" yaml:"or,omitempty"`
	Not        int `json:"not,omitempty" yaml:"not,omitempty"`
	IfThen     int `json:"ifThen,omitempty" yaml:"ifThen,omitempty"`
	IfThenElse int `json:"ifThenElse,omitempty" yaml:"ifThenElse,omitempty"`
	While      int `json:"while,omitempty" yaml:"while,omitempty"`
	DoWhile    int `json:"doWhile,omitempty" yaml:"doWhile,omitempty"`

	// Per-name histograms.
	Actions    map[string]int `json:"actions,omitempty" yaml:"actions,omitempty"`
	Conditions map[string]int `json:"conditions,omitempty" yaml:"conditions,omitempty"`
	Events     map[string]int `json:"events,omitempty" yaml:"events,omitempty"`
}

// Merge returns the sum of s and o. Neither operand is modified.
func (s Stats) Merge(o Stats) Stats {
	return Stats{
		Number:     s.Number + o.Number,
		String:     s.String + o.String,
		Object:     s.Object + o.Object,
		Event:      s.Event + o.Event,
		Action:     s.Action + o.Action,
		Condition:  s.Condition + o.Condition,
		And:        s.And + o.And,
		Or:         s.Or + o.Or,
		Not:        s.Not + o.Not,
		IfThen:     s.IfThen + o.IfThen,
		IfThenElse: s.IfThenElse + o.IfThenElse,
		While:      s.While + o.While,
		DoWhile:    s.DoWhile + o.DoWhile,
		Actions:    mergeHistogram(s.Actions, o.Actions),
		Conditions: mergeHistogram(s.Conditions, o.Conditions),
		Events:     mergeHistogram(s.Events, o.Events),
	}
}

// Add merges o into s in place.
func (s *Stats) Add(o Stats) { *s = s.Merge(o) }

func mergeHistogram(a, b map[string]int) map[string]int {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]int, len(a)+len(b))
	for k, v := range a {
		out[k] += v
	}
	for k, v := range b {
		out[k] += v
	}
	return out
}

// Counts returns every counter under a stable lowercase name.
func (s Stats) Counts() map[string]int {
	return map[string]int{
		"number":     s.Number,
		"string":     s.String,
		"object":     s.Object,
		"event":      s.Event,
		"action":     s.Action,
		"condition":  s.Condition,
		"and":        s.And,
		"or":         s.Or,
		"not":        s.Not,
		"ifThen":     s.IfThen,
		"ifThenElse": s.IfThenElse,
		"while":      s.While,
		"doWhile":    s.DoWhile,
	}
}

// Total returns the number of blocks counted.
func (s Stats) Total() int {
	total := 0
	for _, v := range s.Counts() {
		total += v
	}
	return total
}

// SortedNames returns the keys of a histogram in ascending order.
func SortedNames(h map[string]int) []string {
	names := make([]string, 0, len(h))
	for k := range h {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
