package partition

import "github.com/charmbracelet/log"

// Tolerances and windows of the split-acceptance policy. These are the
// values the algorithm was calibrated with; Options lets callers override
// them per run.
const (
	// DefaultResolution is the skeleton extraction resolution.
	DefaultResolution = 0.05

	// DefaultAreaTol is the minimum area of each half of an accepted
	// split, and the tolerance for the parent/children area-sum invariant.
	DefaultAreaTol = 0.001

	// DefaultSideTol is the vertex side-value magnitude below which a
	// vertex counts as lying on the candidate line (neither side).
	DefaultSideTol = 1e-5

	// DefaultParallelTol is the cross term below which a boundary edge is
	// considered parallel to the candidate line during expansion.
	DefaultParallelTol = 1e-6

	// DefaultFlipWindow is the window (radians) around pi and 3*pi/2
	// within which a candidate line is flipped before its angle is stored.
	DefaultFlipWindow = 0.2

	// DefaultSnapWindow is the window (radians) within which a split angle
	// snaps to 0, pi/2, or pi for canonical axis-aligned reporting.
	DefaultSnapWindow = 0.1

	// lengthPrecision rounds candidate lengths before sorting so floating
	// point jitter cannot reorder near-equal candidates.
	lengthPrecision = 0.001
)

// DefaultRootID names the tree root; children are named by appending "L"
// and "R" at each split.
const DefaultRootID = "root"

// Options configures a partition run. The zero value is not usable; start
// from DefaultOptions.
type Options struct {
	Resolution  float64 // skeleton resolution
	AreaTol     float64 // split acceptance area tolerance
	SideTol     float64 // crossing classifier side tolerance
	ParallelTol float64 // line expansion parallel cutoff
	FlipWindow  float64 // canonical direction flip window (rad)
	SnapWindow  float64 // axis-aligned angle snap window (rad)
	RootID      string  // root node identifier

	// Logger receives debug-level diagnostics (rejected candidates,
	// boundary split failures). Nil disables logging.
	Logger *log.Logger
}

// DefaultOptions returns the calibrated default options.
func DefaultOptions() Options {
	return Options{
		Resolution:  DefaultResolution,
		AreaTol:     DefaultAreaTol,
		SideTol:     DefaultSideTol,
		ParallelTol: DefaultParallelTol,
		FlipWindow:  DefaultFlipWindow,
		SnapWindow:  DefaultSnapWindow,
		RootID:      DefaultRootID,
	}
}

// normalized fills zero fields with defaults so partially-populated
// options behave sensibly.
func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.Resolution <= 0 {
		o.Resolution = d.Resolution
	}
	if o.AreaTol <= 0 {
		o.AreaTol = d.AreaTol
	}
	if o.SideTol <= 0 {
		o.SideTol = d.SideTol
	}
	if o.ParallelTol <= 0 {
		o.ParallelTol = d.ParallelTol
	}
	if o.FlipWindow <= 0 {
		o.FlipWindow = d.FlipWindow
	}
	if o.SnapWindow <= 0 {
		o.SnapWindow = d.SnapWindow
	}
	if o.RootID == "" {
		o.RootID = d.RootID
	}
	return o
}

// debugf logs through the configured logger, if any.
func (o Options) debugf(format string, args ...any) {
	if o.Logger != nil {
		o.Logger.Debugf(format, args...)
	}
}
