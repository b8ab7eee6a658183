package source

import (
	"context"
	"sync"

	"github.com/referralworks/refnet/pkg/record"
	"github.com/referralworks/refnet/pkg/referral"
)

// Memory is an in-memory RecordSource, used by tests and demos. Records are
// copied on the way in and on every snapshot, so callers can never observe
// each other's mutations.
type Memory struct {
	mu      sync.RWMutex
	records []record.Record
	dir     referral.StaticDirectory
	closed  bool
}

// NewMemory creates a source over a fixed record collection.
func NewMemory(records []record.Record) *Memory {
	m := &Memory{}
	m.Replace(records)
	return m
}

// Replace swaps the record collection wholesale.
func (m *Memory) Replace(records []record.Record) {
	copied := make([]record.Record, len(records))
	copy(copied, records)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = copied
}

// SetDirectory installs the recruiter directory served to builds.
func (m *Memory) SetDirectory(dir referral.StaticDirectory) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dir = dir
}

// Close marks the source closed. Later snapshots fail with ErrClosed.
func (m *Memory) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}

// Snapshot implements RecordSource.
func (m *Memory) Snapshot(ctx context.Context) ([]record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, &SourceError{Op: "snapshot", Source: "memory", Cause: err}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, &SourceError{Op: "snapshot", Source: "memory", Cause: ErrClosed}
	}
	out := make([]record.Record, len(m.records))
	copy(out, m.records)
	return out, nil
}

// RecruiterDirectory implements referral.DirectoryProvider.
func (m *Memory) RecruiterDirectory(ctx context.Context) (referral.RecruiterDirectory, error) {
	if err := ctx.Err(); err != nil {
		return nil, &SourceError{Op: "directory", Source: "memory", Cause: err}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, &SourceError{Op: "directory", Source: "memory", Cause: ErrClosed}
	}
	if m.dir == nil {
		return referral.StaticDirectory{}, nil
	}
	return m.dir, nil
}
