package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/blockscript/pkg/block"
)

// ScriptMarkdown documents a script: its paraphrase, its code and whether it
// can be compiled.
func ScriptMarkdown(title string, s *block.Script) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "> %s\n\n", s.NaturalLanguage())
	if !s.IsComplete() {
		sb.WriteString("**Incomplete:** fill every slot before compiling.\n\n")
	}
	fmt.Fprintf(&sb, "```c\n%s```\n", s.Code())
	return sb.String()
}

// StatsMarkdown renders block counts and statement histograms as tables.
// Zero counters are left out.
func StatsMarkdown(title string, st block.Stats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)

	counts := st.Counts()
	kinds := make([]string, 0, len(counts))
	for k, v := range counts {
		if v > 0 {
			kinds = append(kinds, k)
		}
	}
	sort.Strings(kinds)

	fmt.Fprintf(&sb, "%d blocks.\n\n", st.Total())
	if len(kinds) > 0 {
		sb.WriteString("| Block | Count |\n|---|---:|\n")
		for _, k := range kinds {
			fmt.Fprintf(&sb, "| %s | %d |\n", k, counts[k])
		}
		sb.WriteString("\n")
	}

	histogram(&sb, "Actions", st.Actions)
	histogram(&sb, "Conditions", st.Conditions)
	histogram(&sb, "Events", st.Events)
	return sb.String()
}

func histogram(sb *strings.Builder, title string, h map[string]int) {
	if len(h) == 0 {
		return
	}
	fmt.Fprintf(sb, "## %s\n\n| Name | Uses |\n|---|---:|\n", title)
	for _, name := range block.SortedNames(h) {
		fmt.Fprintf(sb, "| %s | %d |\n", name, h[name])
	}
	sb.WriteString("\n")
}
