package extract

import (
	"math"

	"github.com/tsawler/trackgeom/materials"
	"github.com/tsawler/trackgeom/model"
	"github.com/tsawler/trackgeom/records"
)

// sensorDims carries the in-plane dimensions of a module's wafer and
// active-surface shapes. Barrel modules are boxes; wedge-shaped endcap
// modules are trapezoids, where DXX/DYY give the second pair of
// half-widths.
type sensorDims struct {
	kind     records.ShapeKind
	dx, dxx  float64
	dy, dyy  float64
}

// emitSensorStack emits the wafer and active-surface volumes of one
// module: one pair for a single-sensor module, two stacked pairs split by
// the sensor gap for a two-sensor module. The two-sensor case also
// triggers the emission of the decomposed hybrid and support volumes, and
// registers the upper sensor's stereo rotation when one applies.
func (e *Extractor) emitSensorStack(mod *model.Module, mname string, dec *decomposer, mspec *records.TopologySpec, dims sensorDims) error {
	ns := e.opts.Namespace

	lu := ""
	if mod.NumSensors == 2 {
		lu = suffixLower
	}

	// Lower (or only) wafer, air-filled: it localizes the sensor within
	// the module envelope.
	waferName := mname + lu + suffixWafer
	waferShape := records.Shape{
		Name: waferName,
		Kind: dims.kind,
		DX:   dims.dx, DXX: dims.dxx,
		DY: dims.dy, DYY: dims.dyy,
		DZ: mod.SensorThickness / 2,
	}
	e.bundle.Shapes = append(e.bundle.Shapes, waferShape)
	e.bundle.Logic = append(e.bundle.Logic, records.LogicalVolume{
		Name:        waferName,
		ShapeRef:    qualified(ns, waferName),
		MaterialRef: MaterialAir,
	})
	e.bundle.Placements = append(e.bundle.Placements, records.Placement{
		Parent:      qualified(ns, mname),
		Child:       qualified(ns, waferName),
		Copy:        1,
		Translation: records.Translation{DZ: -mod.SensorGap / 2},
	})

	upperWaferName := mname + suffixUpper + suffixWafer
	if mod.NumSensors == 2 {
		upperShape := waferShape
		upperShape.Name = upperWaferName
		e.bundle.Shapes = append(e.bundle.Shapes, upperShape)
		e.bundle.Logic = append(e.bundle.Logic, records.LogicalVolume{
			Name:        upperWaferName,
			ShapeRef:    qualified(ns, upperWaferName),
			MaterialRef: MaterialAir,
		})
		upperPos := records.Placement{
			Parent:      qualified(ns, mname),
			Child:       qualified(ns, upperWaferName),
			Copy:        1,
			Translation: records.Translation{DZ: mod.SensorGap / 2},
		}
		if mod.StereoRotation != 0 {
			stereoDeg := mod.StereoRotation * 180 / math.Pi
			rot := records.Rotation{
				Name:   stereoPrefix + mname,
				ThetaX: 90,
				PhiX:   stereoDeg,
				ThetaY: 90,
				PhiY:   90 + stereoDeg,
			}
			e.bundle.Rotations.Register(rot)
			upperPos.RotationRef = qualified(ns, rot.Name)
		}
		e.bundle.Placements = append(e.bundle.Placements, upperPos)
	}

	// Lower (or only) active surface: the actual silicon.
	lowerSuffix, err := activeSuffix(mod.Type, false)
	if err != nil {
		return err
	}
	activeName := mname + lu + lowerSuffix
	activeShape := waferShape
	activeShape.Name = activeName
	e.bundle.Shapes = append(e.bundle.Shapes, activeShape)
	e.bundle.Logic = append(e.bundle.Logic, records.LogicalVolume{
		Name:        activeName,
		ShapeRef:    qualified(ns, activeName),
		MaterialRef: qualified(ns, materials.SensorSilicon),
	})
	e.bundle.Placements = append(e.bundle.Placements, records.Placement{
		Parent: qualified(ns, waferName),
		Child:  qualified(ns, activeName),
		Copy:   1,
	})
	mspec.Selectors = append(mspec.Selectors, activeName)
	mspec.ModuleTypes = append(mspec.ModuleTypes, records.ROCInfo{
		Name:    mod.Type,
		ROCRows: mod.InnerSensor.ROCRows,
		ROCCols: mod.InnerSensor.ROCCols,
		ROCX:    mod.InnerSensor.ROCX,
		ROCY:    mod.InnerSensor.ROCY,
	})

	if mod.NumSensors == 2 {
		upperSuffix, err := activeSuffix(mod.Type, true)
		if err != nil {
			return err
		}
		upperActiveName := mname + suffixUpper + upperSuffix
		upperActiveShape := waferShape
		upperActiveShape.Name = upperActiveName
		e.bundle.Shapes = append(e.bundle.Shapes, upperActiveShape)
		e.bundle.Logic = append(e.bundle.Logic, records.LogicalVolume{
			Name:        upperActiveName,
			ShapeRef:    qualified(ns, upperActiveName),
			MaterialRef: qualified(ns, materials.SensorSilicon),
		})
		e.bundle.Placements = append(e.bundle.Placements, records.Placement{
			Parent: qualified(ns, upperWaferName),
			Child:  qualified(ns, upperActiveName),
			Copy:   1,
		})
		mspec.Selectors = append(mspec.Selectors, upperActiveName)
		mspec.ModuleTypes = append(mspec.ModuleTypes, records.ROCInfo{
			Name:    mod.Type,
			ROCRows: mod.OuterSensor.ROCRows,
			ROCCols: mod.OuterSensor.ROCCols,
			ROCX:    mod.OuterSensor.ROCX,
			ROCY:    mod.OuterSensor.ROCY,
		})

		// Hybrid carriers and support plate only exist for the full
		// two-sensor stack.
		if err := dec.emit(e.bundle); err != nil {
			return err
		}
	}
	return nil
}
