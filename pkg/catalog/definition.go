package catalog

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/aretw0/blockscript/pkg/block"
)

// Definition is the serialized form of a catalog.
type Definition struct {
	Statements []StatementDef    `json:"statements" yaml:"statements" mapstructure:"statements"`
	Events     []EventDef        `json:"events" yaml:"events" mapstructure:"events"`
	Objects    []ObjectDef       `json:"objects" yaml:"objects" mapstructure:"objects"`
	Images     map[string]string `json:"images,omitempty" yaml:"images,omitempty" mapstructure:"images"`
}

// StatementDef describes one action or condition.
type StatementDef struct {
	Name       string         `json:"name" yaml:"name" mapstructure:"name"`
	Type       string         `json:"type" yaml:"type" mapstructure:"type"`
	Code       string         `json:"code" yaml:"code" mapstructure:"code"`
	Natural    string         `json:"natural" yaml:"natural" mapstructure:"natural"`
	Image      string         `json:"image,omitempty" yaml:"image,omitempty" mapstructure:"image"`
	Components []ComponentDef `json:"components,omitempty" yaml:"components,omitempty" mapstructure:"components"`
}

// ComponentDef is either a static label or a typed parameter.
type ComponentDef struct {
	Label     string `json:"label,omitempty" yaml:"label,omitempty" mapstructure:"label"`
	Parameter string `json:"parameter,omitempty" yaml:"parameter,omitempty" mapstructure:"parameter"`
}

// EventDef describes a trigger event.
type EventDef struct {
	Name    string `json:"name" yaml:"name" mapstructure:"name"`
	Display string `json:"display,omitempty" yaml:"display,omitempty" mapstructure:"display"`
	Image   string `json:"image,omitempty" yaml:"image,omitempty" mapstructure:"image"`
}

// ObjectDef describes an object usable as a value.
type ObjectDef struct {
	ID      string `json:"id" yaml:"id" mapstructure:"id"`
	Display string `json:"display,omitempty" yaml:"display,omitempty" mapstructure:"display"`
	Type    string `json:"type,omitempty" yaml:"type,omitempty" mapstructure:"type"`
	Code    string `json:"code,omitempty" yaml:"code,omitempty" mapstructure:"code"`
	Natural string `json:"natural,omitempty" yaml:"natural,omitempty" mapstructure:"natural"`
	Image   string `json:"image,omitempty" yaml:"image,omitempty" mapstructure:"image"`
}

// Behaviour builds the statement behaviour the definition describes.
func (d StatementDef) Behaviour() (*block.StatementBehaviour, error) {
	if d.Name == "" {
		return nil, &block.ArgumentError{Name: "name", Reason: "must not be empty"}
	}
	typ, err := block.ParseStatementType(d.Type)
	if err != nil {
		return nil, fmt.Errorf("statement %q: %w", d.Name, err)
	}
	components := make([]block.Component, 0, len(d.Components))
	for i, c := range d.Components {
		switch {
		case c.Parameter != "" && c.Label != "":
			return nil, fmt.Errorf("statement %q component %d: both label and parameter set", d.Name, i)
		case c.Parameter != "":
			f, err := ParseFitter(c.Parameter)
			if err != nil {
				return nil, fmt.Errorf("statement %q component %d: %w", d.Name, i, err)
			}
			components = append(components, block.Parameter(f))
		default:
			components = append(components, block.Label(c.Label))
		}
	}
	code, natural := d.Code, d.Natural
	if code == "" {
		code = d.Name
	}
	if natural == "" {
		natural = d.Name
	}
	b := block.NewTemplateBehaviour(d.Name, typ, block.Template(code), block.Template(natural), components...)
	b.Image = d.Image
	return b, nil
}

// Behaviour builds the event behaviour the definition describes.
func (d EventDef) Behaviour() *block.EventBehaviour {
	return &block.EventBehaviour{Name: d.Name, DisplayName: d.Display, Image: d.Image}
}

// Behaviour builds the object behaviour the definition describes.
func (d ObjectDef) Behaviour() *block.ObjectBehaviour {
	return &block.ObjectBehaviour{
		Identifier:      d.ID,
		DisplayName:     d.Display,
		Type:            d.Type,
		CodeTemplate:    block.Template(d.Code),
		NaturalTemplate: block.Template(d.Natural),
		Image:           d.Image,
	}
}

// Build creates a catalog from the definition. All problems are reported
// together.
func (d Definition) Build() (*Catalog, error) {
	c := New()
	var errs []error
	for _, sd := range d.Statements {
		b, err := sd.Behaviour()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := c.RegisterStatement(b); err != nil {
			errs = append(errs, err)
		}
	}
	for _, ed := range d.Events {
		if err := c.RegisterEvent(ed.Behaviour()); err != nil {
			errs = append(errs, err)
		}
	}
	for _, od := range d.Objects {
		if err := c.RegisterObject(od.Behaviour()); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if len(d.Images) > 0 {
		c.AssignImages(Images(d.Images))
	}
	return c, nil
}

// Describe converts a catalog back into its serialized form. Statement
// templates are emitted as written; behaviours built from plain funcs are
// recovered by rendering with placeholder arguments.
func Describe(c *Catalog) Definition {
	var d Definition
	for _, b := range c.Statements() {
		args := make([]string, b.ParameterCount())
		for i := range args {
			args[i] = "{" + strconv.Itoa(i) + "}"
		}
		sd := StatementDef{
			Name:    b.Name,
			Type:    b.Type.String(),
			Code:    string(b.CodeTemplate),
			Natural: string(b.NaturalTemplate),
			Image:   b.Image,
		}
		if sd.Code == "" {
			sd.Code = b.Code(args)
		}
		if sd.Natural == "" {
			sd.Natural = b.NaturalLanguage(args)
		}
		for _, comp := range b.Components {
			if comp.IsParameter() {
				sd.Components = append(sd.Components, ComponentDef{Parameter: FitterName(comp.Fitter)})
			} else {
				sd.Components = append(sd.Components, ComponentDef{Label: comp.Label})
			}
		}
		d.Statements = append(d.Statements, sd)
	}
	for _, b := range c.Events() {
		d.Events = append(d.Events, EventDef{Name: b.Name, Display: b.DisplayName, Image: b.Image})
	}
	for _, b := range c.Objects("") {
		d.Objects = append(d.Objects, ObjectDef{
			ID:      b.Identifier,
			Display: b.DisplayName,
			Type:    b.Type,
			Code:    string(b.CodeTemplate),
			Natural: string(b.NaturalTemplate),
			Image:   b.Image,
		})
	}
	return d
}
