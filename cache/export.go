package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"
)

// ExportFormat represents the JSON structure for store snapshots.
type ExportFormat struct {
	Version    string            `json:"version"`
	ExportedAt string            `json:"exported_at"`
	Entries    []ExportEntry     `json:"entries"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// ExportEntry represents a single store entry. TTLSeconds is the remaining
// lifetime at export time, 0 for entries that never expire.
type ExportEntry struct {
	Key        string `json:"key"`
	Value      []byte `json:"value"`
	TTLSeconds int64  `json:"ttl_seconds,omitempty"`
}

// SnapshotStore is a Store that can list its live entries.
type SnapshotStore interface {
	Store
	Entries() map[string]Entry
}

// Exporter writes store snapshots.
type Exporter struct {
	store SnapshotStore
}

// NewExporter creates a new snapshot exporter.
func NewExporter(store SnapshotStore) *Exporter {
	return &Exporter{store: store}
}

// Export writes the store contents to a writer in JSON format.
func (e *Exporter) Export(w io.Writer, metadata map[string]string) error {
	export := ExportFormat{
		Version:    "1.0",
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Entries:    e.entries(),
		Metadata:   metadata,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(export); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}

	return nil
}

// ExportToFile exports the store to a file.
func (e *Exporter) ExportToFile(path string, metadata map[string]string) error {
	f, err := os.Create(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	return e.Export(f, metadata)
}

func (e *Exporter) entries() []ExportEntry {
	data := e.store.Entries()
	entries := make([]ExportEntry, 0, len(data))

	for key, entry := range data {
		var ttl int64
		if entry.TTL > 0 {
			// round up so a live entry never becomes "no expiration"
			ttl = int64((entry.TTL + time.Second - 1) / time.Second)
		}
		entries = append(entries, ExportEntry{
			Key:        key,
			Value:      entry.Value,
			TTLSeconds: ttl,
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

// Importer loads snapshots into a Store.
type Importer struct {
	store Store
}

// NewImporter creates a new snapshot importer.
func NewImporter(store Store) *Importer {
	return &Importer{store: store}
}

// Import reads snapshot entries and adds them to the store. Keys that are
// already present are left untouched and counted as skipped.
func (i *Importer) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	var export ExportFormat
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}

	result := &ImportResult{
		Version:  export.Version,
		Metadata: export.Metadata,
	}

	for _, entry := range export.Entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		ttl := time.Duration(entry.TTLSeconds) * time.Second
		if !i.store.Add(ctx, entry.Key, entry.Value, ttl) {
			result.Skipped++
			continue
		}
		result.Imported++
	}

	return result, nil
}

// ImportFromFile imports snapshot entries from a file.
func (i *Importer) ImportFromFile(ctx context.Context, path string) (*ImportResult, error) {
	f, err := os.Open(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return i.Import(ctx, f)
}

// ImportResult contains statistics about the import operation.
type ImportResult struct {
	Version  string
	Metadata map[string]string
	Imported int
	Skipped  int
}
