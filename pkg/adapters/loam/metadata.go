package loam

import "github.com/aretw0/blockscript/pkg/catalog"

// Document kinds accepted in the "kind" frontmatter key.
const (
	KindStatement = "statement"
	KindEvent     = "event"
	KindObject    = "object"
)

// BehaviourMetadata is the frontmatter of a behaviour document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type BehaviourMetadata struct {
	// Kind defaults to "statement".
	Kind string `json:"kind" mapstructure:"kind"`
	// Name defaults to the document path without its extension.
	Name    string `json:"name" mapstructure:"name"`
	Type    string `json:"type" mapstructure:"type"`
	Display string `json:"display" mapstructure:"display"`
	Code    string `json:"code" mapstructure:"code"`
	// Natural falls back to the document body.
	Natural    string                 `json:"natural" mapstructure:"natural"`
	Image      string                 `json:"image" mapstructure:"image"`
	Components []catalog.ComponentDef `json:"components" mapstructure:"components"`
}
