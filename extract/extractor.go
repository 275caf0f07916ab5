package extract

import (
	"errors"

	"github.com/go-logr/logr"
	"github.com/tsawler/trackgeom/materials"
	"github.com/tsawler/trackgeom/model"
	"github.com/tsawler/trackgeom/records"
)

// Extractor turns a tracker model and its material table into a
// [records.Bundle]. An Extractor is single-use bookkeeping around one
// call to [Extractor.Run]; construct a new one per run.
type Extractor struct {
	tracker *model.Tracker
	table   *materials.Table
	opts    Options
	log     logr.Logger

	bundle   *records.Bundle
	warnings []Warning
	layers   []*model.Layer
	discs    []*model.Disc
}

// New returns an Extractor over the given model and material table with
// the supplied options applied over the defaults.
func New(tracker *model.Tracker, table *materials.Table, opts ...Option) *Extractor {
	e := &Extractor{
		tracker: tracker,
		table:   table,
		opts: Options{
			Clearance: DefaultClearance,
			Namespace: DefaultNamespace,
		},
		log: logr.Discard(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Run performs the full analysis: containers, elementary materials,
// barrel layers, endcap discs, services and supports, in that order. The
// returned bundle is complete and owned by the caller; warnings report
// skipped volumes and other recoverable irregularities. A non-nil error
// means the model or material data is defective and no bundle is
// returned.
func (e *Extractor) Run() (*records.Bundle, []Warning, error) {
	if e.tracker == nil {
		return nil, nil, errors.New("extract: no tracker model")
	}
	if e.table == nil {
		return nil, nil, errors.New("extract: no material table")
	}

	e.bundle = records.NewBundle()
	e.warnings = nil
	e.registerBaseRotations()

	agg := &structureAggregator{}
	e.tracker.Accept(agg)
	e.layers, e.discs = agg.layers, agg.discs
	e.log.Info("tracker structure aggregated", "layers", len(e.layers), "discs", len(e.discs))

	if err := e.analyseBarrelContainer(); err != nil {
		return nil, nil, err
	}
	if err := e.analyseEndcapContainer(); err != nil {
		return nil, nil, err
	}

	elems, err := materials.Elements(e.table)
	if err != nil {
		return nil, nil, err
	}
	e.bundle.Elements = elems
	e.log.V(1).Info("elementary materials done", "count", len(elems))

	if err := e.analyseLayers(); err != nil {
		return nil, nil, err
	}
	e.log.V(1).Info("barrel layers done")
	if err := e.analyseDiscs(); err != nil {
		return nil, nil, err
	}
	e.log.V(1).Info("endcap discs done")
	if err := e.analyseBarrelServices(); err != nil {
		return nil, nil, err
	}
	if err := e.analyseEndcapServices(); err != nil {
		return nil, nil, err
	}
	if err := e.analyseSupports(); err != nil {
		return nil, nil, err
	}
	e.log.Info("analysis done",
		"shapes", len(e.bundle.Shapes),
		"volumes", len(e.bundle.Logic),
		"placements", len(e.bundle.Placements),
		"warnings", len(e.warnings))

	return e.bundle, e.warnings, nil
}

// registerBaseRotations installs the orientations every run relies on:
// the two module-in-rod orientations and the flip used for mirror copies.
func (e *Extractor) registerBaseRotations() {
	e.bundle.Rotations.Register(records.Rotation{
		Name:   rotModuleUnflipped,
		ThetaX: 90, PhiX: 90,
		ThetaY: 0, PhiY: 0,
		ThetaZ: 90, PhiZ: 0,
	})
	e.bundle.Rotations.Register(records.Rotation{
		Name:   rotModuleFlipped,
		ThetaX: 90, PhiX: 270,
		ThetaY: 0, PhiY: 0,
		ThetaZ: 90, PhiZ: 180,
	})
	e.bundle.Rotations.Register(records.Rotation{
		Name:   rotModuleFlip,
		ThetaX: 90, PhiX: 180,
		ThetaY: 90, PhiY: 90,
		ThetaZ: 180, PhiZ: 0,
	})
}
