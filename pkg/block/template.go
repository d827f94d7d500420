package block

import (
	"strconv"
	"strings"
)

// Template is text with positional placeholders {0}, {1}, ... that are
// replaced by rendered arguments. "{{" and "}}" produce literal braces.
// Placeholders without a matching argument render as the empty string.
type Template string

// Render substitutes args into the template.
func (t Template) Render(args []string) string {
	s := string(t)
	if !strings.ContainsAny(s, "{}") {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '{' && i+1 < len(s) && s[i+1] == '{':
			sb.WriteByte('{')
			i++
		case c == '}' && i+1 < len(s) && s[i+1] == '}':
			sb.WriteByte('}')
			i++
		case c == '{':
			end := strings.IndexByte(s[i:], '}')
			if end < 0 {
				sb.WriteString(s[i:])
				return sb.String()
			}
			idx, err := strconv.Atoi(s[i+1 : i+end])
			if err != nil {
				sb.WriteString(s[i : i+end+1])
			} else if idx >= 0 && idx < len(args) {
				sb.WriteString(args[idx])
			}
			i += end
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// Placeholders returns the highest placeholder index plus one.
func (t Template) Placeholders() int {
	max := 0
	s := string(t)
	for i := 0; i < len(s); i++ {
		if s[i] != '{' {
			continue
		}
		if i+1 < len(s) && s[i+1] == '{' {
			i++
			continue
		}
		end := strings.IndexByte(s[i:], '}')
		if end < 0 {
			break
		}
		if idx, err := strconv.Atoi(s[i+1 : i+end]); err == nil && idx+1 > max {
			max = idx + 1
		}
		i += end
	}
	return max
}
