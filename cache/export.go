package cache

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// SnapshotVersion is written to every export.
const SnapshotVersion = "1.0"

// Snapshot is the JSON structure for cache export/import.
type Snapshot struct {
	Version    string            `json:"version"`
	ExportedAt time.Time         `json:"exported_at"`
	Entries    []Entry           `json:"entries"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// ImportResult contains statistics about the import operation.
type ImportResult struct {
	Version  string
	Metadata map[string]string
	Imported int
	Skipped  int
}

// Export writes the live entries of c as an indented JSON snapshot.
func Export(c *InMemoryCache, w io.Writer, metadata map[string]string) error {
	snap := Snapshot{
		Version:    SnapshotVersion,
		ExportedAt: c.now().UTC(),
		Entries:    c.Entries(),
		Metadata:   metadata,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(snap); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}

	return nil
}

// ExportToFile exports the cache to a file.
// The path is provided by the caller and is intentionally user-controlled.
func ExportToFile(c *InMemoryCache, path string, metadata map[string]string) error {
	f, err := os.Create(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	return Export(c, f, metadata)
}

// Import reads a snapshot and restores its unexpired entries into c,
// keeping their original timestamps and expiry.
func Import(c *InMemoryCache, r io.Reader) (*ImportResult, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %q", snap.Version)
	}

	imported := c.Restore(snap.Entries)
	return &ImportResult{
		Version:  snap.Version,
		Metadata: snap.Metadata,
		Imported: imported,
		Skipped:  len(snap.Entries) - imported,
	}, nil
}

// ImportFromFile imports cache entries from a file.
// The path is provided by the caller and is intentionally user-controlled.
func ImportFromFile(c *InMemoryCache, path string) (*ImportResult, error) {
	f, err := os.Open(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return Import(c, f)
}
