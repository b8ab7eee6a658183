package referral

import (
	"context"
	"fmt"
)

// RecruiterInfo is the display enrichment for one recruiter code.
type RecruiterInfo struct {
	Name string
	URL  string
}

// RecruiterDirectory resolves a referral code to display enrichment. It is a
// read-only lookup table constructed once per build and threaded through the
// pipeline; implementations must be safe for concurrent reads.
type RecruiterDirectory interface {
	Lookup(code string) (RecruiterInfo, bool)
}

// DirectoryProvider supplies a fresh recruiter directory for one build.
// Failures are non-fatal: enrichment is optional and a build proceeds with
// generated labels when the directory is unavailable.
type DirectoryProvider interface {
	RecruiterDirectory(ctx context.Context) (RecruiterDirectory, error)
}

// StaticDirectory is a map-backed RecruiterDirectory. Keys must be canonical
// codes (upper-case, trimmed).
type StaticDirectory map[string]RecruiterInfo

// Lookup implements RecruiterDirectory.
func (d StaticDirectory) Lookup(code string) (RecruiterInfo, bool) {
	info, ok := d[CanonicalCode(code)]
	return info, ok
}

// RecruiterDirectory implements DirectoryProvider, returning the directory
// itself. Useful for fixed lookup tables and tests.
func (d StaticDirectory) RecruiterDirectory(context.Context) (RecruiterDirectory, error) {
	return d, nil
}

// placeholderName is the generated label for a code with no directory entry.
func placeholderName(code string) string {
	return fmt.Sprintf("Code %s", code)
}
