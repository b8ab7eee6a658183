package referral

import (
	"context"
	"fmt"

	"github.com/referralworks/refnet/pkg/logging"
	"github.com/referralworks/refnet/pkg/metrics"
	"github.com/referralworks/refnet/pkg/record"
)

// Snapshotter delivers one immutable record snapshot per call. It is the
// single external call a build makes; satisfied by the source package.
type Snapshotter interface {
	Snapshot(ctx context.Context) ([]record.Record, error)
}

// Service runs builds against a record source, with logging and metrics
// around each one. Builds share nothing, so one Service may serve any number
// of concurrent requests.
type Service struct {
	src  Snapshotter
	dirs DirectoryProvider
	log  logging.Logger
	reg  *metrics.Registry
}

// NewService creates a build service. The directory provider and metrics
// registry may be nil; logging falls back to the default logger.
func NewService(src Snapshotter, dirs DirectoryProvider, log logging.Logger, reg *metrics.Registry) *Service {
	if log == nil {
		log = logging.DefaultLogger()
	}
	return &Service{
		src:  src,
		dirs: dirs,
		log:  log.With(logging.Component("referral")),
		reg:  reg,
	}
}

// Build takes a fresh snapshot and reconstructs the referral network.
// A snapshot failure aborts the build with no partial forest; a directory
// failure only disables enrichment.
func (s *Service) Build(ctx context.Context, focus *FocusKey) (*Forest, error) {
	op := logging.StartTimer(s.log, "forest build")

	records, err := s.src.Snapshot(ctx)
	if err != nil {
		if s.reg != nil {
			s.reg.RecordBuildError(op.Elapsed())
		}
		op.EndError(err)
		return nil, fmt.Errorf("load record snapshot: %w", err)
	}

	var dir RecruiterDirectory
	if s.dirs != nil {
		dir, err = s.dirs.RecruiterDirectory(ctx)
		if err != nil {
			// Enrichment is optional; build with generated labels instead.
			s.log.Warn("recruiter directory unavailable", logging.Error(err))
			dir = nil
		}
	}

	forest := BuildForest(records, Options{Focus: focus, Directory: dir})

	if s.reg != nil {
		s.reg.RecordBuild(op.Elapsed(),
			forest.Stats.TotalNodes, forest.Stats.VirtualNodes, forest.Stats.CyclesBroken)
	}
	op.End(
		logging.Int("records", len(records)),
		logging.Int("roots", len(forest.Roots)),
		logging.Int("orphans", len(forest.Orphans)),
		logging.Int("total_nodes", forest.Stats.TotalNodes),
		logging.Int("virtual_nodes", forest.Stats.VirtualNodes),
		logging.Int("cycles_broken", forest.Stats.CyclesBroken),
	)
	return forest, nil
}
