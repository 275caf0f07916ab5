package extract

import "fmt"

// DefaultNamespace qualifies every emitted reference unless overridden.
const DefaultNamespace = "tracker"

// Parent volumes the emitted hierarchy hangs from. These live in sibling
// descriptions and resolve outside the bundle.
const (
	BarrelParentRef  = "pixbar:Barrel"
	EndcapParentRef  = "pixfwd:Endcap"
	TrackerParentRef = "cms:Tracker"
)

// MaterialAir is the filler material of purely structural volumes.
const MaterialAir = "materials:Air"

// Container shape names.
const (
	barrelContainerName = "Barrel"
	endcapContainerName = "Endcap"
)

// Rotation names registered once per run.
const (
	rotModuleUnflipped = "ModuleRodUnflipped"
	rotModuleFlipped   = "ModuleRodFlipped"
	rotModuleFlip      = "ModuleFlip"
	stereoPrefix       = "Stereo"
)

// Replication algorithms.
const (
	algoPhiAlt = "TrackerPhiAltAlgo"
	algoRing   = "TrackerRingAlgo"
)

// Algorithm parameter names.
const (
	paramChild       = "ChildName"
	paramTilt        = "Tilt"
	paramStartAngle  = "StartAngle"
	paramRangeAngle  = "RangeAngle"
	paramRadiusIn    = "RadiusIn"
	paramRadiusOut   = "RadiusOut"
	paramZPosition   = "ZPosition"
	paramNumber      = "N"
	paramStartCopyNo = "StartCopyNo"
	paramIncrCopyNo  = "IncrCopyNo"
	paramRadius      = "Radius"
	paramIsZPlus     = "IsZPlus"
	paramTiltAngle   = "TiltAngle"
	paramIsFlipped   = "IsFlipped"
)

// Name prefixes for composite materials and inactive volumes.
const (
	hybridCompositePrefix  = "hybridcomposite"
	serviceCompositePrefix = "servicecomp"
	supportCompositePrefix = "supportcomp"
	serviceShapePrefix     = "service"
	supportShapePrefix     = "support"
)

// Sub-volume name suffixes.
const (
	suffixWafer = "Wafer"
	suffixLower = "Lower"
	suffixUpper = "Upper"
)

// Topology spec names and structural parameter values.
const (
	topologyStructureKey = "TkStructure"

	specLayerName       = "LayerPar"
	specLayerValue      = "Layer"
	specRodName         = "RodPar"
	specRodValue        = "StraightOrTiltedRod"
	specBarrelStackName = "BarrelStackPar"
	specBarrelStack     = "BarrelStack"
	specBarrelDetName   = "BarrelDetPar"
	specBarrelDet       = "BarrelDet"
	specWheelName       = "WheelPar"
	specWheelValue      = "Wheel"
	specRingName        = "RingPar"
	specRingValue       = "Ring"
	specEndcapStackName = "EndcapStackPar"
	specEndcapStack     = "EndcapStack"
	specEndcapDetName   = "EndcapDetPar"
	specEndcapDet       = "EndcapDet"
)

func layerName(layer int) string {
	return fmt.Sprintf("Layer%d", layer)
}

func rodName(layer int) string {
	return fmt.Sprintf("Rod%d", layer)
}

func discName(disc int) string {
	return fmt.Sprintf("Disc%d", disc)
}

func barrelModuleName(ring, layer int) string {
	return fmt.Sprintf("BModule%d%s", ring, layerName(layer))
}

func endcapModuleName(ring, disc int) string {
	return fmt.Sprintf("EModule%d%s", ring, discName(disc))
}

func barrelRingName(ring, layer int) string {
	return fmt.Sprintf("Ring%d%s", ring, layerName(layer))
}

func endcapRingName(ring, disc int) string {
	return fmt.Sprintf("Ring%d%s", ring, discName(disc))
}

// qualified prefixes a name with the run's namespace.
func qualified(namespace, name string) string {
	return namespace + ":" + name
}

// activeSuffix names the active-surface volume for a module type. The
// lower/upper distinction only matters for pixel-strip stacks, whose two
// sensors differ. An unrecognized type tag is a fatal configuration
// defect.
func activeSuffix(moduleType string, upper bool) (string, error) {
	switch moduleType {
	case "ptPS":
		if upper {
			return "PSStripActive", nil
		}
		return "PSPixelActive", nil
	case "pt2S":
		return "2SActive", nil
	default:
		return "", fmt.Errorf("unknown module type %q", moduleType)
	}
}
