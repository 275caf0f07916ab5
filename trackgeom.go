// Package trackgeom provides a fluent API for turning a particle-tracker
// detector model into the flat geometry and material records a detector
// description consumes.
//
// Basic usage:
//
//	bundle, warnings, err := trackgeom.New(tracker).
//	    WithMaterials(table).
//	    Run()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", trackgeom.FormatWarnings(warnings))
//	}
//
// With options:
//
//	bundle, _, err := trackgeom.New(tracker).
//	    WithMaterials(table).
//	    WithNamespace("outertracker").
//	    WithClearance(0.1).
//	    Run()
//
// For advanced use cases, the lower-level extract package is also
// available.
package trackgeom

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/tsawler/trackgeom/extract"
	"github.com/tsawler/trackgeom/materials"
	"github.com/tsawler/trackgeom/model"
	"github.com/tsawler/trackgeom/records"
)

// Warning re-exports the extraction warning type so that callers of the
// facade need not import the extract package.
type Warning = extract.Warning

// Extraction is a fluent builder around one extraction run. Configuration
// errors are latched and reported by [Extraction.Run]; every intermediate
// call is safe to chain.
type Extraction struct {
	tracker *model.Tracker
	table   *materials.Table
	opts    []extract.Option
	err     error
}

// New starts an extraction over a tracker model. Attach the material
// table with [Extraction.WithMaterials] before running.
func New(tracker *model.Tracker) *Extraction {
	x := &Extraction{tracker: tracker}
	if tracker == nil {
		x.err = errors.New("trackgeom: nil tracker model")
	}
	return x
}

// WithMaterials attaches the material lookup table.
func (x *Extraction) WithMaterials(table *materials.Table) *Extraction {
	if x.err != nil {
		return x
	}
	if table == nil {
		x.err = errors.New("trackgeom: nil material table")
		return x
	}
	x.table = table
	return x
}

// WithClearance overrides the padding applied to enclosing volumes, in mm.
func (x *Extraction) WithClearance(mm float64) *Extraction {
	if x.err != nil {
		return x
	}
	if mm < 0 {
		x.err = fmt.Errorf("trackgeom: negative clearance %v", mm)
		return x
	}
	x.opts = append(x.opts, extract.WithClearance(mm))
	return x
}

// WithNamespace overrides the namespace qualifying emitted references.
func (x *Extraction) WithNamespace(ns string) *Extraction {
	if x.err != nil {
		return x
	}
	if ns == "" {
		x.err = errors.New("trackgeom: empty namespace")
		return x
	}
	x.opts = append(x.opts, extract.WithNamespace(ns))
	return x
}

// WithForwardZOrigin sets the z origin of the endcap parent volume, in mm.
func (x *Extraction) WithForwardZOrigin(z float64) *Extraction {
	if x.err != nil {
		return x
	}
	x.opts = append(x.opts, extract.WithForwardZOrigin(z))
	return x
}

// WithLogger attaches a logr.Logger for progress and warning output.
func (x *Extraction) WithLogger(log logr.Logger) *Extraction {
	if x.err != nil {
		return x
	}
	x.opts = append(x.opts, extract.WithLogger(log))
	return x
}

// Run executes the extraction and returns the record bundle together with
// any warnings accumulated along the way.
func (x *Extraction) Run() (*records.Bundle, []Warning, error) {
	if x.err != nil {
		return nil, nil, x.err
	}
	if x.table == nil {
		return nil, nil, errors.New("trackgeom: no material table attached")
	}
	return extract.New(x.tracker, x.table, x.opts...).Run()
}

// FormatWarnings renders extraction warnings as a human-readable block.
func FormatWarnings(warnings []Warning) string {
	return extract.FormatWarnings(warnings)
}

// Must unwraps a Run result, panicking on error. Intended for examples
// and tests with known-good inputs.
func Must(b *records.Bundle, _ []Warning, err error) *records.Bundle {
	if err != nil {
		panic(err)
	}
	return b
}
