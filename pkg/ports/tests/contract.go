package tests

import (
	"context"
	"testing"

	"github.com/aretw0/blockscript/pkg/ports"
)

// CatalogLoaderContractTest is a reusable test suite that verifies if an
// adapter complies with ports.CatalogLoader. want lists statement names the
// loaded catalog must contain.
func CatalogLoaderContractTest(t *testing.T, loader ports.CatalogLoader, want []string) {
	t.Helper()

	t.Run("LoadCatalog_Success", func(t *testing.T) {
		c, err := loader.LoadCatalog(context.Background())
		if err != nil {
			t.Fatalf("unexpected error loading catalog: %v", err)
		}
		for _, name := range want {
			if _, ok := c.StatementBehaviour(name); !ok {
				t.Errorf("statement %s missing from catalog", name)
			}
		}
		if got := len(c.Statements()); got != len(want) {
			t.Errorf("expected %d statements, got %d", len(want), got)
		}
	})

	t.Run("LoadCatalog_Canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := loader.LoadCatalog(ctx); err == nil {
			t.Error("expected error for canceled context, got nil")
		}
	})

	t.Run("LoadCatalog_Fresh", func(t *testing.T) {
		a, err := loader.LoadCatalog(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		b, err := loader.LoadCatalog(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a == b {
			t.Error("expected each load to return a new catalog")
		}
	})
}
