package catalog

import (
	"fmt"
	"strings"

	"github.com/aretw0/blockscript/pkg/block"
)

// Fitter names accepted by ParseFitter.
const (
	FitterNumber    = "number"
	FitterString    = "string"
	FitterCondition = "condition"
	FitterAction    = "action"
	FitterEvent     = "event"
	FitterObject    = "object"
)

// ParseFitter turns a parameter declaration such as "number" or
// "object:Creature" into a Fitter.
func ParseFitter(s string) (block.Fitter, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(s), ":")
	switch strings.ToLower(name) {
	case FitterNumber:
		return block.NumberFitter{}, nil
	case FitterString:
		return block.StringFitter{}, nil
	case FitterCondition:
		return block.BooleanExpressionFitter{}, nil
	case FitterAction:
		return block.ActionFitter{}, nil
	case FitterEvent:
		return block.EventFitter{}, nil
	case FitterObject:
		return block.ObjectFitter{Type: strings.TrimSpace(arg)}, nil
	}
	return nil, fmt.Errorf("unknown parameter type %q", s)
}

// FitterName is the inverse of ParseFitter. Fitters ParseFitter cannot
// produce are named by their description.
func FitterName(f block.Fitter) string {
	switch f := f.(type) {
	case block.NumberFitter:
		return FitterNumber
	case block.StringFitter:
		return FitterString
	case block.BooleanExpressionFitter:
		return FitterCondition
	case block.ActionFitter:
		return FitterAction
	case block.EventFitter:
		return FitterEvent
	case block.ObjectFitter:
		if f.Type == "" {
			return FitterObject
		}
		return FitterObject + ":" + f.Type
	case nil:
		return ""
	}
	return f.Description()
}
