// Package source provides record snapshot collaborators for the referral
// network builder. A source delivers the full current collection of records
// as one atomic read; partial or streamed delivery is not supported, and a
// failed snapshot is fatal to the build that requested it.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/referralworks/refnet/pkg/record"
)

// RecordSource returns one immutable snapshot of the current record
// collection. Implementations must be safe for concurrent use; each build
// takes its own snapshot and shares nothing with other builds.
type RecordSource interface {
	Snapshot(ctx context.Context) ([]record.Record, error)
}

// Common sentinel errors
var (
	ErrUnavailable = errors.New("record source unavailable")
	ErrClosed      = errors.New("record source is closed")
)

// SourceError provides structured error information for source operations.
type SourceError struct {
	Op     string // operation that failed, e.g. "snapshot"
	Source string // source implementation, e.g. "postgres"
	Cause  error
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Source, e.Op, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *SourceError) Unwrap() error {
	return e.Cause
}

// IsUnavailable reports whether the error indicates the source could not be
// reached at all.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
