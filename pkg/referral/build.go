package referral

import (
	"github.com/referralworks/refnet/pkg/record"
)

// BuildForest reconstructs the referral network from one immutable snapshot
// of records. It is a pure function: a given snapshot and options always
// produce the same forest, and nothing is shared between builds, so any
// number of builds may run concurrently.
//
// The pipeline runs strictly left to right: link resolution, tree assembly
// with cycle breaking, post-order aggregation, then the optional focus
// extraction.
func BuildForest(records []record.Record, opts Options) *Forest {
	res := resolve(records, opts.Directory)
	f := assemble(res)
	finalize(f)
	if opts.Focus != nil {
		f = focusForest(f, opts.Focus)
	}
	return f
}
