package model

import "fmt"

// Module type tags. A module is either a pixel-strip stack or a two-strip
// stack; the tag decides how its active surfaces are named downstream.
const (
	TypePS = "ptPS"
	Type2S = "pt2S"
)

// MassTarget identifies the sub-volume a module's elemental mass
// contribution is assigned to. Single-volume targets assign the whole mass;
// the grouped targets split it volume-proportionally across carriers.
type MassTarget int

const (
	// TargetAllCarriers distributes across all four hybrid carriers.
	TargetAllCarriers MassTarget = iota
	// TargetInnerSensor and TargetOuterSensor are reserved for sensor
	// bookkeeping elsewhere; their appearance in a module mass list is a
	// fatal configuration defect.
	TargetInnerSensor
	TargetOuterSensor
	TargetFront
	TargetBack
	TargetLeft
	TargetRight
	TargetBetween
	TargetSupportPlate
	// TargetFrontBack splits between the front and back carriers.
	TargetFrontBack
	// TargetLeftRight splits between the left and right carriers.
	TargetLeftRight
)

var massTargetNames = map[MassTarget]string{
	TargetAllCarriers:  "all-carriers",
	TargetInnerSensor:  "inner-sensor",
	TargetOuterSensor:  "outer-sensor",
	TargetFront:        "front",
	TargetBack:         "back",
	TargetLeft:         "left",
	TargetRight:        "right",
	TargetBetween:      "between",
	TargetSupportPlate: "support-plate",
	TargetFrontBack:    "front-back",
	TargetLeftRight:    "left-right",
}

func (t MassTarget) String() string {
	if s, ok := massTargetNames[t]; ok {
		return s
	}
	return fmt.Sprintf("MassTarget(%d)", int(t))
}

// IsSensor reports whether the target is one of the sensor-reserved ids.
func (t MassTarget) IsSensor() bool {
	return t == TargetInnerSensor || t == TargetOuterSensor
}

// MassContribution is one elemental mass entry of a module's material list.
// Component carries the originating component label from the material
// configuration; contributions from sensor components are handled by the
// active-surface bookkeeping and ignored during decomposition.
type MassContribution struct {
	ElementTag string
	Component  string
	Target     MassTarget
	Grams      float64
}

// sensorComponents lists the component labels that mark a contribution as
// sensor material.
var sensorComponents = map[string]bool{
	"Sensor":     true,
	"Sensors":    true,
	"PS Sensor":  true,
	"PS Sensors": true,
	"2S Sensor":  true,
	"2S Sensors": true,
}

// IsSensorComponent reports whether the contribution originates from a
// sensor component.
func (m MassContribution) IsSensorComponent() bool {
	return sensorComponents[m.Component]
}

// Sensor describes one semiconductor sensor of a module, including the
// embedded readout-chip array dimensions.
type Sensor struct {
	ROCRows int
	ROCCols int
	ROCX    int
	ROCY    int
}

// Module is one detector unit: one or two sensors plus readout electronics
// on a support plate. Positions are in the global frame; all lengths share
// one unit (mm), masses are grams.
type Module struct {
	// Structural reference within the layer or disc.
	Ring int // position along the rod, or ring index within a disc
	Phi  int // azimuthal sector index (1-based)
	Side int // +1 for z>0, -1 for z<0

	// Placement.
	Center   Vector3
	Normal   Vector3 // unit normal of the sensor plane
	BasePoly Polygon

	// Nominal dimensions.
	Width     float64
	Length    float64
	Thickness float64
	// MinWidth/MaxWidth describe wedge-shaped endcap modules; for
	// rectangular modules both equal Width.
	MinWidth    float64
	MaxWidth    float64
	Rectangular bool

	// Sensor stack.
	NumSensors      int
	SensorThickness float64
	SensorGap       float64 // distance between the two sensor mid-planes
	InnerSensor     Sensor
	OuterSensor     Sensor

	// Electronics and support.
	FrontEndHybridWidth   float64
	ServiceHybridWidth    float64
	HybridThickness       float64
	SupportPlateThickness float64

	Type           string
	Flipped        bool
	TiltAngle      float64 // radians; nonzero only in tilted layers
	StereoRotation float64 // radians; relative rotation of the upper sensor

	// Material bookkeeping.
	Masses            []MassContribution
	RadiationLength   float64
	InteractionLength float64
}

// ExpandedWidth returns the module width grown by the service hybrids on
// both sides.
func (m *Module) ExpandedWidth() float64 {
	return m.Width + 2*m.ServiceHybridWidth
}

// ExpandedLength returns the module length grown by the front-end hybrids
// on both sides.
func (m *Module) ExpandedLength() float64 {
	return m.Length + 2*m.FrontEndHybridWidth
}

// ExpandedThickness returns the full thickness of the module stack: the
// sensor gap plus support plate and sensor on either side.
func (m *Module) ExpandedThickness() float64 {
	return m.SensorGap + 2*(m.SupportPlateThickness+m.SensorThickness)
}

// Area returns the nominal footprint area of the module.
func (m *Module) Area() float64 {
	return m.Width * m.Length
}
