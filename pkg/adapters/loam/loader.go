package loam

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/aretw0/blockscript/pkg/catalog"
	"github.com/aretw0/loam"
)

// Loader adapts a Loam repository to the ports.CatalogLoader interface.
// Every document in the repository describes one behaviour.
type Loader struct {
	Repo *loam.TypedRepository[BehaviourMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[BehaviourMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Definition reads every document and groups them by kind.
func (l *Loader) Definition(ctx context.Context) (catalog.Definition, error) {
	var def catalog.Definition
	if err := ctx.Err(); err != nil {
		return def, err
	}

	docs, err := l.Repo.List(ctx)
	if err != nil {
		return def, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	for _, doc := range docs {
		meta := doc.Data
		name := meta.Name
		if name == "" {
			name = path.Base(filepath.ToSlash(trimExtension(doc.ID)))
		}

		kind := strings.ToLower(meta.Kind)
		if kind == "" {
			kind = KindStatement
		}

		key := kind + ":" + name
		if existing, ok := seen[key]; ok {
			return def, fmt.Errorf("collision detected: %s '%s' is defined in both '%s' and '%s'", kind, name, existing, doc.ID)
		}
		seen[key] = doc.ID

		natural := meta.Natural
		if natural == "" {
			natural = strings.TrimSpace(doc.Content)
		}

		switch kind {
		case KindStatement:
			def.Statements = append(def.Statements, catalog.StatementDef{
				Name:       name,
				Type:       meta.Type,
				Code:       meta.Code,
				Natural:    natural,
				Image:      meta.Image,
				Components: meta.Components,
			})
		case KindEvent:
			display := meta.Display
			if display == "" {
				display = natural
			}
			def.Events = append(def.Events, catalog.EventDef{
				Name:    name,
				Display: display,
				Image:   meta.Image,
			})
		case KindObject:
			def.Objects = append(def.Objects, catalog.ObjectDef{
				ID:      name,
				Display: meta.Display,
				Type:    meta.Type,
				Code:    meta.Code,
				Natural: meta.Natural,
				Image:   meta.Image,
			})
		default:
			return def, fmt.Errorf("document %s: unknown kind %q", doc.ID, meta.Kind)
		}
	}
	return def, nil
}

// LoadCatalog builds a fresh catalog from the repository contents.
func (l *Loader) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	def, err := l.Definition(ctx)
	if err != nil {
		return nil, err
	}
	return def.Build()
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext == "" {
		return id
	}
	return strings.TrimSuffix(id, ext)
}
