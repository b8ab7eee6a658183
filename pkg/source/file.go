package source

import (
	"context"
	"encoding/json"
	"os"

	"github.com/referralworks/refnet/pkg/record"
)

// File reads record snapshots from a JSON file holding an array of raw
// payloads. Payloads go through record normalization, so exports from
// different intake systems work regardless of their field naming. The file is
// re-read on every snapshot; replacing it between builds is how the data is
// refreshed.
type File struct {
	path string
}

// NewFile creates a source over the given JSON file.
func NewFile(path string) *File {
	return &File{path: path}
}

// Snapshot implements RecordSource.
func (f *File) Snapshot(ctx context.Context) ([]record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, &SourceError{Op: "snapshot", Source: "file", Cause: err}
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, &SourceError{Op: "snapshot", Source: "file", Cause: err}
	}
	var raws []record.RawRecord
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, &SourceError{Op: "snapshot", Source: "file", Cause: err}
	}
	return record.NormalizeAll(raws), nil
}
