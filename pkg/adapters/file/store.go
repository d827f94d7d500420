package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/blockscript/pkg/block"
	"github.com/aretw0/blockscript/pkg/ports"
)

const (
	docExt   = ".xml"
	statsExt = ".stats"
)

// Store implements ports.ScriptStore using the local filesystem.
// Each script is an XML file next to a CBOR statistics sidecar.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".blockscript/scripts".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".blockscript", "scripts")
	}
	return &Store{BasePath: basePath}
}

func validID(id string) error {
	if id == "" {
		return &block.ArgumentError{Name: "id", Reason: "must not be empty"}
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." || strings.HasPrefix(id, "tmp-") {
		return &block.ArgumentError{Name: "id", Reason: "must be a plain file name"}
	}
	return nil
}

func (s *Store) path(id, ext string) string {
	return filepath.Join(s.BasePath, id+ext)
}

// Save writes the statistics sidecar and then the document, each atomically.
func (s *Store) Save(ctx context.Context, rec ports.ScriptRecord) error {
	if err := validID(rec.ID); err != nil {
		return err
	}
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure script directory: %w", err)
	}

	snap, err := ports.MarshalSnapshot(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	if err := s.writeAtomic(rec.ID, statsExt, snap); err != nil {
		return err
	}
	return s.writeAtomic(rec.ID, docExt, rec.Document)
}

// writeAtomic writes to a temporary file, syncs it and renames it over the
// destination.
func (s *Store) writeAtomic(id, ext string, data []byte) error {
	dest := s.path(id, ext)

	// Same directory keeps the rename on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+id+"-*"+ext)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// os.Rename fails on Windows when the destination exists.
	if _, err := os.Stat(dest); err == nil {
		if err := os.Remove(dest); err != nil {
			return fmt.Errorf("failed to remove existing file for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Load reads the document and its sidecar. A missing sidecar yields zero
// statistics stamped with the document's modification time.
func (s *Store) Load(ctx context.Context, id string) (ports.ScriptRecord, error) {
	if err := validID(id); err != nil {
		return ports.ScriptRecord{}, err
	}
	docPath := s.path(id, docExt)
	doc, err := os.ReadFile(docPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ports.ScriptRecord{}, ports.ErrScriptNotFound
		}
		return ports.ScriptRecord{}, fmt.Errorf("failed to read script file: %w", err)
	}

	rec := ports.ScriptRecord{ID: id, Document: doc}
	snap, err := os.ReadFile(s.path(id, statsExt))
	switch {
	case err == nil:
		if err := ports.UnmarshalSnapshot(snap, &rec); err != nil {
			return ports.ScriptRecord{}, err
		}
	case errors.Is(err, os.ErrNotExist):
		if info, statErr := os.Stat(docPath); statErr == nil {
			rec.UpdatedAt = info.ModTime().UTC()
		}
	default:
		return ports.ScriptRecord{}, fmt.Errorf("failed to read stats file: %w", err)
	}
	return rec, nil
}

// Delete removes the document and its sidecar.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}
	for _, ext := range []string{docExt, statsExt} {
		if err := os.Remove(s.path(id, ext)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to delete script file: %w", err)
		}
	}
	return nil
}

// List returns the IDs of all stored documents.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list scripts: %w", err)
	}

	ids := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != docExt || strings.HasPrefix(name, "tmp-") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, docExt))
	}
	sort.Strings(ids)
	return ids, nil
}
