package ports

import (
	"context"
	"errors"
	"time"

	"github.com/aretw0/blockscript/pkg/block"
)

// ErrScriptNotFound is returned when no script is stored under an ID.
var ErrScriptNotFound = errors.New("script not found")

// ScriptRecord is one persisted script. Document holds the XML form; Stats
// is a snapshot taken when the script was saved so that listings and metrics
// do not need to decode every document.
type ScriptRecord struct {
	ID        string
	Document  []byte
	Stats     block.Stats
	UpdatedAt time.Time
}

// ScriptStore persists script records.
type ScriptStore interface {
	// Save creates or replaces the record with rec.ID.
	Save(ctx context.Context, rec ScriptRecord) error

	// Load retrieves a record.
	// Returns ErrScriptNotFound if the script does not exist.
	Load(ctx context.Context, id string) (ScriptRecord, error)

	// Delete removes a record. Deleting a missing script is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored scripts in ascending order.
	List(ctx context.Context) ([]string, error)
}
