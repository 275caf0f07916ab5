package records

// ShapeKind enumerates the geometric primitives a Shape can describe.
type ShapeKind int

const (
	Box ShapeKind = iota
	Tube
	Cone
	Trapezoid
	Polycone
)

var shapeKindNames = map[ShapeKind]string{
	Box:       "Box",
	Tube:      "Tube",
	Cone:      "Cone",
	Trapezoid: "Trapezoid",
	Polycone:  "Polycone",
}

func (k ShapeKind) String() string {
	if s, ok := shapeKindNames[k]; ok {
		return s
	}
	return "UnknownShape"
}

// RZPoint is one (radius, z) vertex of a polycone profile.
type RZPoint struct {
	R float64
	Z float64
}

// Shape describes one geometric primitive. Which fields are meaningful
// depends on Kind:
//
//   - Box: DX, DY, DZ half-extents
//   - Tube: RMin, RMax, DZ
//   - Cone: RMin1/RMax1 at -z, RMin2/RMax2 at +z, DZ
//   - Trapezoid: DX/DXX (half-widths at the parallel edges), DY, DYY, DZ
//   - Polycone: RZUp traversed by increasing radius, RZDown by decreasing
type Shape struct {
	Name string
	Kind ShapeKind

	DX, DXX float64
	DY, DYY float64
	DZ      float64

	RMin, RMax   float64
	RMin1, RMax1 float64
	RMin2, RMax2 float64

	RZUp   []RZPoint
	RZDown []RZPoint
}

// ShapeOpKind enumerates boolean shape combinations.
type ShapeOpKind int

const (
	Intersection ShapeOpKind = iota
	Union
	Subtraction
)

// ShapeOperation combines two named shapes into a new named solid.
type ShapeOperation struct {
	Name   string
	Kind   ShapeOpKind
	SolidA string
	SolidB string
}

// Element describes an elementary material: its density and the atomic
// weight and number derived from the measured interaction and radiation
// lengths.
type Element struct {
	Tag          string
	Density      float64
	AtomicWeight float64
	AtomicNumber int
}

// MassFraction is one component of a composite material.
type MassFraction struct {
	ElementTag string
	Fraction   float64
}

// Composite is a synthesized material mixture. Fractions are normalized
// over the included elements and sum to 1.
type Composite struct {
	Name       string
	Density    float64
	Components []MassFraction
}

// LogicalVolume binds a shape to a material under a unique name.
type LogicalVolume struct {
	Name        string
	ShapeRef    string
	MaterialRef string
}

// Translation is a displacement of a placed child volume relative to its
// parent.
type Translation struct {
	DX, DY, DZ float64
}

// Placement positions one copy of a child volume inside a parent volume.
// A mirrored child appears twice, copy 1 and copy 2, the second with a
// flip rotation reference.
type Placement struct {
	Parent      string
	Child       string
	Copy        int
	Translation Translation
	RotationRef string // empty when no rotation applies
}

// Rotation is a named orientation given as the six polar angles of the
// rotated axes.
type Rotation struct {
	Name   string
	ThetaX float64
	PhiX   float64
	ThetaY float64
	PhiY   float64
	ThetaZ float64
	PhiZ   float64
}

// ParamKind distinguishes the value syntax of an algorithm parameter.
type ParamKind int

const (
	StringParam ParamKind = iota
	NumericParam
	VectorParam
)

// AlgorithmParam is one ordered key/value parameter of an AlgorithmCall.
type AlgorithmParam struct {
	Kind  ParamKind
	Name  string
	Value string
}

// AlgorithmCall is a procedural-placement directive: a named algorithm
// replicating a child volume around the parent axis, driven by its
// ordered parameters.
type AlgorithmCall struct {
	Name       string
	Parent     string
	Parameters []AlgorithmParam
}

// ROCInfo annotates a topology selector with the embedded readout-chip
// array dimensions of the selected module volumes.
type ROCInfo struct {
	Name    string
	ROCRows int
	ROCCols int
	ROCX    int
	ROCY    int
}

// TopologySpec groups volume-name selectors sharing one structural role.
// ModuleTypes runs parallel to Selectors; entries are zero-valued where no
// readout annotation applies.
type TopologySpec struct {
	Name        string
	ParamKey    string
	ParamValue  string
	Selectors   []string
	ModuleTypes []ROCInfo
	Extras      []string
}

// RadiationLengthSummary carries the mean radiation and interaction length
// over the contributing modules of one layer or disc.
type RadiationLengthSummary struct {
	Barrel            bool
	Index             int
	RadiationLength   float64
	InteractionLength float64
}
