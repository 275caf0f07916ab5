package model

// Layer is one barrel structural level: an azimuthally replicated set of
// rods, each an axial row of modules. Modules holds every module of the
// layer in construction order; consumers restrict to the reference sector
// (Side > 0, Phi 1 or 2) where symmetry allows.
type Layer struct {
	Index      int
	Tilted     bool
	Tilt       float64 // degrees; rod tilt used by the replication algorithm
	StartAngle float64 // degrees; azimuth of the first rod
	NumRods    int
	Modules    []*Module
}

// Disc is one endcap structural level: concentric rings of modules at a
// common z region.
type Disc struct {
	Index    int
	MinZ     float64
	NumRings int
	// RingModules maps ring index to the total number of modules placed
	// around that ring.
	RingModules map[int]int
	Modules     []*Module
}

// Category classifies inactive material volumes.
type Category int

const (
	BarrelService Category = iota
	EndcapService
	BarrelSupport
	EndcapSupport
	OuterSupport
	TopSupport
	UserSupport
)

var categoryNames = map[Category]string{
	BarrelService: "BarrelService",
	EndcapService: "EndcapService",
	BarrelSupport: "BarrelSupport",
	EndcapSupport: "EndcapSupport",
	OuterSupport:  "OuterSupport",
	TopSupport:    "TopSupport",
	UserSupport:   "UserSupport",
}

func (c Category) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return "UnknownCategory"
}

// LocalMass is one (element tag, grams) entry of an inactive element.
type LocalMass struct {
	ElementTag string
	Grams      float64
}

// InactiveElement is a non-module material volume: service cabling/cooling
// or a structural support, modeled as an annular tube.
type InactiveElement struct {
	Category    Category
	InnerRadius float64
	RWidth      float64 // radial width; outer radius = InnerRadius + RWidth
	ZOffset     float64
	ZLength     float64
	Masses      []LocalMass
}

// TotalMass returns the summed local mass of the element.
func (e *InactiveElement) TotalMass() float64 {
	var total float64
	for _, m := range e.Masses {
		total += m.Grams
	}
	return total
}

// Tracker is the full detector-structure model: ordered barrel layers,
// ordered endcap discs, and the inactive material volumes around them.
// The model is read-only during extraction and assumed already validated
// by its builder.
type Tracker struct {
	Layers []*Layer
	Discs  []*Disc

	BarrelServices []*InactiveElement
	EndcapServices []*InactiveElement
	Supports       []*InactiveElement
}

// Visitor receives the structural nodes of a Tracker in model order:
// all barrel layers first, then all endcap discs.
type Visitor interface {
	VisitBarrelLayer(*Layer)
	VisitEndcapDisc(*Disc)
}

// Accept walks the tracker structure in deterministic order, dispatching
// each node to the visitor.
func (t *Tracker) Accept(v Visitor) {
	for _, l := range t.Layers {
		v.VisitBarrelLayer(l)
	}
	for _, d := range t.Discs {
		v.VisitEndcapDisc(d)
	}
}
