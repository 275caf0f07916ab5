package extract

import "github.com/go-logr/logr"

// DefaultClearance is the radial/longitudinal padding, in mm, applied to
// enclosing volumes so that replicated children never graze their parent.
const DefaultClearance = 0.05

// Options collects the run parameters of an [Extractor].
type Options struct {
	// Clearance pads enclosing tubes and cones, in mm. Container volumes
	// get twice this value.
	Clearance float64

	// Namespace qualifies every emitted reference.
	Namespace string

	// ForwardZOrigin is the z of the endcap parent volume's origin;
	// disc placements are expressed relative to it.
	ForwardZOrigin float64
}

// Option configures an [Extractor].
type Option func(*Extractor)

// WithClearance overrides the default volume clearance.
func WithClearance(mm float64) Option {
	return func(e *Extractor) {
		e.opts.Clearance = mm
	}
}

// WithNamespace overrides the namespace qualifying emitted references.
func WithNamespace(ns string) Option {
	return func(e *Extractor) {
		if ns != "" {
			e.opts.Namespace = ns
		}
	}
}

// WithForwardZOrigin sets the z origin of the endcap parent volume.
func WithForwardZOrigin(z float64) Option {
	return func(e *Extractor) {
		e.opts.ForwardZOrigin = z
	}
}

// WithLogger attaches a logr.Logger for progress and warning output. The
// default logger discards everything.
func WithLogger(log logr.Logger) Option {
	return func(e *Extractor) {
		e.log = log
	}
}
