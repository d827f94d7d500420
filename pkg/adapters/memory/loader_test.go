package memory_test

import (
	"testing"

	"github.com/aretw0/blockscript/pkg/adapters/memory"
	"github.com/aretw0/blockscript/pkg/catalog"
	contract "github.com/aretw0/blockscript/pkg/ports/tests"
)

func TestInMemoryLoader_Contract(t *testing.T) {
	def := catalog.Definition{
		Statements: []catalog.StatementDef{
			{Name: "Jump", Type: "action", Code: "Jump();"},
			{Name: "IsNight", Type: "condition", Code: "IsNight()"},
		},
		Events: []catalog.EventDef{{Name: "OnHeartbeat"}},
	}

	loader := memory.NewLoader(def)

	contract.CatalogLoaderContractTest(t, loader, []string{"IsNight", "Jump"})
}
