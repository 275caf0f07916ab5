package extract

import (
	"math"

	"github.com/tsawler/trackgeom/records"
)

// endcapRingInfo collects everything needed to emit one endcap ring
// envelope and the two interleaved replication algorithms placing its
// forward and backward module halves.
type endcapRingInfo struct {
	name      string
	childName string
	isZPlus   bool
	fwFlipped bool
	phi       float64 // azimuth of the reference module, radians
	modules   int

	rmin, rmid, rmax float64
	zmin, zmax       float64

	// z of the forward (phi==1) and backward (phi==2) module centers.
	zfw, zbw float64
}

// analyseDiscs walks the positive-z endcap discs and emits, per disc: the
// module, wafer and active-surface volumes of each ring, the ring tube
// envelopes with their replication algorithms, and the enclosing disc
// tube. The negative-z endcap is the mirror image and is produced
// downstream from the same description.
func (e *Extractor) analyseDiscs() error {
	ns := e.opts.Namespace
	eps := e.opts.Clearance

	dspec := records.TopologySpec{Name: specWheelName, ParamKey: topologyStructureKey, ParamValue: specWheelValue}
	rspec := records.TopologySpec{Name: specRingName, ParamKey: topologyStructureKey, ParamValue: specRingValue}
	sspec := records.TopologySpec{Name: specEndcapStackName, ParamKey: topologyStructureKey, ParamValue: specEndcapStack}
	mspec := records.TopologySpec{Name: specEndcapDetName, ParamKey: topologyStructureKey, ParamValue: specEndcapDet}

	for di, disc := range e.discs {
		index := di + 1
		if disc.MinZ <= 0 {
			continue
		}
		dname := discName(index)

		// First pass: disc and per-ring z extrema, disc radial extrema.
		rmin, rmax := math.MaxFloat64, -math.MaxFloat64
		zmin, zmax := math.MaxFloat64, -math.MaxFloat64
		ringZMin := make([]float64, disc.NumRings)
		ringZMax := make([]float64, disc.NumRings)
		for i := range ringZMin {
			ringZMin[i] = math.MaxFloat64
			ringZMax[i] = -math.MaxFloat64
		}
		count := 0
		for _, mod := range disc.Modules {
			if !isReferenceModule(mod) {
				continue
			}
			dec := newDecomposer(mod, endcapModuleName(mod.Ring, index), ns)
			if err := dec.build(); err != nil {
				return err
			}
			rmin = math.Min(rmin, dec.rmin)
			rmax = math.Max(rmax, dec.rmax)
			zmin = math.Min(zmin, dec.zmin)
			zmax = math.Max(zmax, dec.zmax)
			ringZMin[mod.Ring-1] = math.Min(ringZMin[mod.Ring-1], dec.zmin)
			ringZMax[mod.Ring-1] = math.Max(ringZMax[mod.Ring-1], dec.zmax)
			count++
		}
		if count == 0 || rmax-rmin <= 0 {
			e.warnf(dname, "no reference modules, disc skipped")
			continue
		}
		discThickness := zmax - zmin

		var rtotal, itotal float64
		count = 0
		rings := make(map[int]*endcapRingInfo)

		// Second pass: per-ring volumes from the phi==1 module, backward
		// z from the phi==2 module.
		for _, mod := range disc.Modules {
			if !isReferenceModule(mod) {
				continue
			}
			ring := mod.Ring
			if mod.Phi == 1 {
				mname := endcapModuleName(ring, index)
				dec := newDecomposer(mod, mname, ns)
				if err := dec.build(); err != nil {
					return err
				}

				// Module envelope: box for rectangular modules,
				// trapezoid for wedges.
				moduleShape := records.Shape{Name: mname, Kind: records.Box}
				if mod.Rectangular {
					moduleShape.DX = mod.ExpandedWidth() / 2
					moduleShape.DY = mod.ExpandedLength() / 2
					moduleShape.DZ = mod.ExpandedThickness() / 2
				} else {
					moduleShape.Kind = records.Trapezoid
					moduleShape.DX = mod.MinWidth/2 + mod.ServiceHybridWidth
					moduleShape.DXX = mod.MaxWidth/2 + mod.ServiceHybridWidth
					moduleShape.DY = mod.Length/2 + mod.FrontEndHybridWidth
					moduleShape.DYY = mod.Length/2 + mod.FrontEndHybridWidth
					moduleShape.DZ = mod.Thickness/2 + mod.SupportPlateThickness
				}
				e.bundle.Shapes = append(e.bundle.Shapes, moduleShape)
				e.bundle.Logic = append(e.bundle.Logic, records.LogicalVolume{
					Name:        mname,
					ShapeRef:    qualified(ns, mname),
					MaterialRef: MaterialAir,
				})
				sspec.Selectors = append(sspec.Selectors, mname)
				sspec.ModuleTypes = append(sspec.ModuleTypes, records.ROCInfo{})

				if err := e.emitSensorStack(mod, mname, dec, &mspec, sensorDims{
					kind: moduleShape.Kind,
					dx:   mod.MinWidth / 2,
					dxx:  mod.MaxWidth / 2,
					dy:   mod.Length / 2,
					dyy:  mod.Length / 2,
				}); err != nil {
					return err
				}

				rings[ring] = &endcapRingInfo{
					name:      endcapRingName(ring, index),
					childName: mname,
					isZPlus:   mod.Side > 0,
					fwFlipped: mod.Flipped,
					phi:       mod.Center.Phi(),
					modules:   disc.RingModules[ring],
					rmin:      dec.rmin,
					rmid:      mod.Center.Rho(),
					rmax:      dec.rmax,
					zmin:      ringZMin[ring-1],
					zmax:      ringZMax[ring-1],
					zfw:       mod.Center.Z,
				}

				rtotal += mod.RadiationLength
				itotal += mod.InteractionLength
				count++
			}
			if mod.Phi == 2 {
				if rinf, ok := rings[ring]; ok {
					rinf.zbw = mod.Center.Z
				}
			}
		}

		if count > 0 {
			e.bundle.RadiationLength = append(e.bundle.RadiationLength, records.RadiationLengthSummary{
				Barrel:            false,
				Index:             index,
				RadiationLength:   rtotal / float64(count),
				InteractionLength: itotal / float64(count),
			})
		}

		discMid := (zmin + zmax) / 2

		for _, ring := range sortedRingKeys(rings) {
			rinf := rings[ring]
			if rinf.modules <= 0 {
				continue
			}
			ringMid := (rinf.zmin + rinf.zmax) / 2

			e.bundle.Shapes = append(e.bundle.Shapes, records.Shape{
				Name: rinf.name,
				Kind: records.Tube,
				RMin: rinf.rmin - eps,
				RMax: rinf.rmax + eps,
				DZ:   (rinf.zmax-rinf.zmin)/2 + eps,
			})
			e.bundle.Logic = append(e.bundle.Logic, records.LogicalVolume{
				Name:        rinf.name,
				ShapeRef:    qualified(ns, rinf.name),
				MaterialRef: MaterialAir,
			})
			e.bundle.Placements = append(e.bundle.Placements, records.Placement{
				Parent:      qualified(ns, dname),
				Child:       qualified(ns, rinf.name),
				Copy:        1,
				Translation: records.Translation{DZ: ringMid - discMid},
			})
			rspec.Selectors = append(rspec.Selectors, rinf.name)
			rspec.ModuleTypes = append(rspec.ModuleTypes, records.ROCInfo{})

			// Forward half: odd copy numbers, slightly downstream.
			e.bundle.Algorithms = append(e.bundle.Algorithms, records.AlgorithmCall{
				Name:   algoRing,
				Parent: qualified(ns, rinf.name),
				Parameters: []records.AlgorithmParam{
					stringParam(paramChild, qualified(ns, rinf.childName)),
					numericParam(paramNumber, formatInt(rinf.modules/2)),
					numericParam(paramStartCopyNo, "1"),
					numericParam(paramIncrCopyNo, "2"),
					numericParam(paramRangeAngle, "360*deg"),
					numericParam(paramStartAngle, degrees(360/float64(rinf.modules)*rinf.phi)),
					numericParam(paramRadius, formatFloat(rinf.rmid)),
					vectorParam(0, 0, rinf.zfw-ringMid),
					numericParam(paramIsZPlus, boolInt(rinf.isZPlus)),
					numericParam(paramTiltAngle, "90*deg"),
					numericParam(paramIsFlipped, boolInt(rinf.fwFlipped)),
				},
			})
			// Backward half: even copy numbers, flipped.
			e.bundle.Algorithms = append(e.bundle.Algorithms, records.AlgorithmCall{
				Name:   algoRing,
				Parent: qualified(ns, rinf.name),
				Parameters: []records.AlgorithmParam{
					stringParam(paramChild, qualified(ns, rinf.childName)),
					numericParam(paramNumber, formatInt(rinf.modules/2)),
					numericParam(paramStartCopyNo, "2"),
					numericParam(paramIncrCopyNo, "2"),
					numericParam(paramRangeAngle, "360*deg"),
					numericParam(paramStartAngle, degrees(360/float64(rinf.modules)*(rinf.phi+1))),
					numericParam(paramRadius, formatFloat(rinf.rmid)),
					vectorParam(0, 0, rinf.zbw-ringMid),
					numericParam(paramIsZPlus, boolInt(rinf.isZPlus)),
					numericParam(paramTiltAngle, "90*deg"),
					numericParam(paramIsFlipped, boolInt(!rinf.fwFlipped)),
				},
			})
		}

		// Disc tube, hung from the external endcap volume. The placement
		// is relative to the endcap volume's own z origin.
		e.bundle.Shapes = append(e.bundle.Shapes, records.Shape{
			Name: dname,
			Kind: records.Tube,
			RMin: rmin - 2*eps,
			RMax: rmax + 2*eps,
			DZ:   discThickness/2 + 2*eps,
		})
		e.bundle.Logic = append(e.bundle.Logic, records.LogicalVolume{
			Name:        dname,
			ShapeRef:    qualified(ns, dname),
			MaterialRef: MaterialAir,
		})
		e.bundle.Placements = append(e.bundle.Placements, records.Placement{
			Parent:      EndcapParentRef,
			Child:       qualified(ns, dname),
			Copy:        1,
			Translation: records.Translation{DZ: discMid - e.opts.ForwardZOrigin},
		})
		dspec.Selectors = append(dspec.Selectors, dname)
		dspec.ModuleTypes = append(dspec.ModuleTypes, records.ROCInfo{})
		dspec.Extras = append(dspec.Extras, "")
	}

	for _, spec := range []records.TopologySpec{dspec, rspec, sspec, mspec} {
		if len(spec.Selectors) > 0 {
			e.bundle.Topology = append(e.bundle.Topology, spec)
		}
	}
	return nil
}
