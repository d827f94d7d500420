package ports

import (
	"context"

	"github.com/aretw0/blockscript/pkg/catalog"
)

// CatalogLoader produces the instruction catalog. Implementations read it
// from YAML files, document repositories or build it in code.
type CatalogLoader interface {
	LoadCatalog(ctx context.Context) (*catalog.Catalog, error)
}

// CatalogFunc adapts a function to CatalogLoader.
type CatalogFunc func(ctx context.Context) (*catalog.Catalog, error)

func (f CatalogFunc) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) { return f(ctx) }

// FileCatalog loads a YAML catalog from Path.
type FileCatalog struct {
	Path string
}

func (f FileCatalog) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return catalog.LoadFile(f.Path)
}
