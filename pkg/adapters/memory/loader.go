package memory

import (
	"context"

	"github.com/aretw0/blockscript/pkg/catalog"
)

// Loader implements ports.CatalogLoader from an in-memory definition.
type Loader struct {
	def catalog.Definition
}

// NewLoader creates a loader that builds a fresh catalog from def on every call.
func NewLoader(def catalog.Definition) *Loader {
	return &Loader{def: def}
}

// LoadCatalog builds the catalog.
func (l *Loader) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.def.Build()
}
