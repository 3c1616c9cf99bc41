// Package transfer reads and writes the portable JSON snapshot used by
// `tracklit export` and `tracklit import`.
package transfer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	errs "github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/models"
)

// Encode writes snap as indented JSON.
func Encode(w io.Writer, snap models.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(snap)
}

// Decode reads a snapshot, rejecting unknown fields and unsupported versions.
func Decode(r io.Reader) (models.Snapshot, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var snap models.Snapshot
	if err := dec.Decode(&snap); err != nil {
		return models.Snapshot{}, errs.Validation("snapshot", "invalid JSON: %v", err)
	}
	if dec.More() {
		return models.Snapshot{}, errs.Validation("snapshot", "trailing data after snapshot")
	}
	if snap.Version < 1 || snap.Version > models.SnapshotVersion {
		return models.Snapshot{}, errs.Validation("version", "unsupported snapshot version %d (want 1..%d)", snap.Version, models.SnapshotVersion)
	}
	return snap, nil
}

// WriteFile writes snap to path atomically: readers see the old file or the new
// one, never a partial write.
func WriteFile(path string, snap models.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, snap); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ReadFile decodes the snapshot stored at path.
func ReadFile(path string) (models.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}
