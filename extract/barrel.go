package extract

import (
	"math"

	"github.com/tsawler/trackgeom/model"
	"github.com/tsawler/trackgeom/records"
)

// Tilted ring envelope name suffixes: each tilted ring exists once per z
// side.
const (
	suffixPlus  = "Plus"
	suffixMinus = "Minus"
)

// tiltedRingInfo collects, across the two reference rods of a tilted
// layer, everything needed to emit one ring envelope and its two
// replication algorithms.
type tiltedRingInfo struct {
	name      string
	childName string
	isZPlus   bool
	tiltAngle float64 // degrees
	bwFlipped bool
	fwFlipped bool
	phi       int
	modules   int

	// Module centers: 1 is the backward (phi==1) module, 2 the forward
	// (phi==2) one.
	r1, z1 float64
	r2, z2 float64

	// Envelope extrema; the restricted radii bound the cone section.
	rmin, rmax float64
	zmin, zmax float64
	rminAtZMin float64
	rmaxAtZMax float64
}

// layerExtremes are the envelope extrema of one barrel layer, accumulated
// over its reference modules.
type layerExtremes struct {
	xmin, xmax float64
	ymin, ymax float64
	zmax       float64
	rmin, rmax float64

	// Extrema of the flat (untilted) rod part of a tilted layer.
	flatMinX, flatMaxX float64
	flatMinY, flatMaxY float64
	flatMaxZ           float64

	// Mean radii of the innermost module pair on the two reference rods.
	radiusIn  float64
	radiusOut float64
}

// isReferenceModule restricts analysis to the reference modules: positive-z
// side, first or second azimuthal sector. Full coverage is recovered by
// the replication algorithms and mirror copies.
func isReferenceModule(m *model.Module) bool {
	return m.Side > 0 && (m.Phi == 1 || m.Phi == 2)
}

// measureLayer runs the decomposition pass over a layer's reference
// modules and accumulates the envelope extrema.
func (e *Extractor) measureLayer(layer *model.Layer, index int) (layerExtremes, error) {
	ext := layerExtremes{
		xmin: math.MaxFloat64, ymin: math.MaxFloat64,
		rmin:     math.MaxFloat64,
		flatMinX: math.MaxFloat64, flatMinY: math.MaxFloat64,
	}
	for _, mod := range layer.Modules {
		if !isReferenceModule(mod) {
			continue
		}
		dec := newDecomposer(mod, barrelModuleName(mod.Ring, index), e.opts.Namespace)
		if err := dec.build(); err != nil {
			return ext, err
		}
		if mod.Phi == 1 {
			ext.xmin = math.Min(ext.xmin, dec.xmin)
			ext.xmax = math.Max(ext.xmax, dec.xmax)
			ext.ymin = math.Min(ext.ymin, dec.ymin)
			ext.ymax = math.Max(ext.ymax, dec.ymax)
			if layer.Tilted && mod.TiltAngle == 0 {
				ext.flatMinX = math.Min(ext.flatMinX, dec.xmin)
				ext.flatMaxX = math.Max(ext.flatMaxX, dec.xmax)
				ext.flatMinY = math.Min(ext.flatMinY, dec.ymin)
				ext.flatMaxY = math.Max(ext.flatMaxY, dec.ymax)
			}
		}
		// z and r span both reference sectors: on a tilted layer the
		// second rod's rings differ from the first.
		ext.zmax = math.Max(ext.zmax, dec.zmax)
		ext.rmin = math.Min(ext.rmin, dec.rmin)
		ext.rmax = math.Max(ext.rmax, dec.rmax)
		if layer.Tilted && mod.TiltAngle == 0 {
			ext.flatMaxZ = math.Max(ext.flatMaxZ, dec.zmax)
		}
		// Rings 1 and 2 both contribute: consecutive modules on a rod
		// alternate radially by a small delta.
		if mod.Phi == 1 && (mod.Ring == 1 || mod.Ring == 2) {
			ext.radiusIn += mod.Center.Rho() / 2
		}
		if mod.Phi == 2 && (mod.Ring == 1 || mod.Ring == 2) {
			ext.radiusOut += mod.Center.Rho() / 2
		}
	}
	return ext, nil
}

// analyseLayers walks the barrel layers and emits, per layer: the module,
// wafer and active-surface volumes of each distinct ring position, the rod
// envelope and its azimuthal replication, tilted ring envelopes where the
// layer is tilted, and the enclosing layer tube.
func (e *Extractor) analyseLayers() error {
	ns := e.opts.Namespace
	eps := e.opts.Clearance

	lspec := records.TopologySpec{Name: specLayerName, ParamKey: topologyStructureKey, ParamValue: specLayerValue}
	rspec := records.TopologySpec{Name: specRodName, ParamKey: topologyStructureKey, ParamValue: specRodValue}
	sspec := records.TopologySpec{Name: specBarrelStackName, ParamKey: topologyStructureKey, ParamValue: specBarrelStack}
	mspec := records.TopologySpec{Name: specBarrelDetName, ParamKey: topologyStructureKey, ParamValue: specBarrelDet}

	for li, layer := range e.layers {
		index := li + 1
		lname := layerName(index)
		rname := rodName(index)

		ext, err := e.measureLayer(layer, index)
		if err != nil {
			return err
		}
		// A layer whose radial span collapses has no usable reference
		// modules and emits nothing.
		if ext.rmax-ext.rmin <= 0 {
			e.warnf(lname, "no reference modules, layer skipped")
			continue
		}

		var rtotal, itotal float64
		count := 0

		// Tilted ring envelopes, one per z side, keyed by ring number.
		rinfoPlus := make(map[int]*tiltedRingInfo)
		rinfoMinus := make(map[int]*tiltedRingInfo)

		for mi, mod := range layer.Modules {
			if !isReferenceModule(mod) {
				continue
			}
			ring := mod.Ring
			tiltDeg := 0.0
			if layer.Tilted {
				tiltDeg = mod.TiltAngle * 180 / math.Pi
			}
			mname := barrelModuleName(ring, index)
			dec := newDecomposer(mod, mname, ns)
			if err := dec.build(); err != nil {
				return err
			}

			if mod.Phi == 1 {
				// Module envelope box, filled with air; the massive
				// sub-volumes and sensors are placed inside it.
				e.bundle.Shapes = append(e.bundle.Shapes, records.Shape{
					Name: mname,
					Kind: records.Box,
					DX:   mod.ExpandedWidth() / 2,
					DY:   mod.ExpandedLength() / 2,
					DZ:   mod.ExpandedThickness() / 2,
				})
				e.bundle.Logic = append(e.bundle.Logic, records.LogicalVolume{
					Name:        mname,
					ShapeRef:    qualified(ns, mname),
					MaterialRef: MaterialAir,
				})

				// Straight rods carry their modules directly; a tilted
				// layer's rod only carries the flat part.
				if !layer.Tilted || tiltDeg == 0 {
					rotRef := qualified(ns, rotModuleUnflipped)
					if mod.Flipped {
						rotRef = qualified(ns, rotModuleFlipped)
					}
					e.bundle.Placements = append(e.bundle.Placements, records.Placement{
						Parent:      qualified(ns, rname),
						Child:       qualified(ns, mname),
						Copy:        1,
						Translation: records.Translation{DX: mod.Center.Rho() - ext.radiusIn, DZ: mod.Center.Z},
						RotationRef: rotRef,
					})
					if partner := findPartnerModule(layer.Modules[mi:], ring); partner != nil {
						rotRef = qualified(ns, rotModuleUnflipped)
						if partner.Flipped {
							rotRef = qualified(ns, rotModuleFlipped)
						}
						e.bundle.Placements = append(e.bundle.Placements, records.Placement{
							Parent:      qualified(ns, rname),
							Child:       qualified(ns, mname),
							Copy:        2,
							Translation: records.Translation{DX: partner.Center.Rho() - ext.radiusIn, DZ: partner.Center.Z},
							RotationRef: rotRef,
						})
					}
				}

				sspec.Selectors = append(sspec.Selectors, mname)
				sspec.ModuleTypes = append(sspec.ModuleTypes, records.ROCInfo{})

				if err := e.emitSensorStack(mod, mname, dec, &mspec, sensorDims{
					dx: mod.Area() / mod.Length / 2,
					dy: mod.Length / 2,
				}); err != nil {
					return err
				}

				// Collect the ring envelope of a tilted module, once per
				// z side. The phi==2 module completes it below.
				if layer.Tilted && tiltDeg != 0 {
					rinf := tiltedRingInfo{
						name:       barrelRingName(ring, index) + suffixPlus,
						childName:  mname,
						isZPlus:    true,
						tiltAngle:  tiltDeg,
						bwFlipped:  mod.Flipped,
						phi:        mod.Phi,
						modules:    layer.NumRods,
						r1:         mod.Center.Rho(),
						z1:         mod.Center.Z,
						rmin:       dec.rmin,
						zmin:       dec.zmin,
						rminAtZMin: dec.rminAtZMin,
					}
					rinfoPlus[ring] = &rinf

					minus := rinf
					minus.name = barrelRingName(ring, index) + suffixMinus
					minus.isZPlus = false
					minus.z1 = -mod.Center.Z
					rinfoMinus[ring] = &minus
				}

				rtotal += mod.RadiationLength
				itotal += mod.InteractionLength
				count++
			}

			// The phi==2 module of a tilted ring supplies the forward
			// half of the envelope.
			if layer.Tilted && mod.Phi == 2 {
				if rinf, ok := rinfoPlus[ring]; ok {
					rinf.fwFlipped = mod.Flipped
					rinf.r2 = mod.Center.Rho()
					rinf.z2 = mod.Center.Z
					rinf.rmax = dec.rmax
					rinf.zmax = dec.zmax
					rinf.rmaxAtZMax = dec.rmaxAtZMax
				}
				if rinf, ok := rinfoMinus[ring]; ok {
					rinf.fwFlipped = mod.Flipped
					rinf.r2 = mod.Center.Rho()
					rinf.z2 = -mod.Center.Z
					rinf.rmax = dec.rmax
					rinf.zmax = dec.zmax
					rinf.rmaxAtZMax = dec.rmaxAtZMax
				}
			}
		}

		if count > 0 {
			e.bundle.RadiationLength = append(e.bundle.RadiationLength, records.RadiationLengthSummary{
				Barrel:            true,
				Index:             index,
				RadiationLength:   rtotal / float64(count),
				InteractionLength: itotal / float64(count),
			})
		}

		// Rod envelope. Local x spans the layer's y extent and vice
		// versa: the rod is measured at phi==0 but placed radially.
		rodShape := records.Shape{
			Name: rname,
			Kind: records.Box,
			DX:   (ext.ymax-ext.ymin)/2 + eps,
			DY:   (ext.xmax-ext.xmin)/2 + eps,
			DZ:   ext.zmax + eps,
		}
		if layer.Tilted {
			rodShape.DX = (ext.flatMaxY-ext.flatMinY)/2 + eps
			rodShape.DY = (ext.flatMaxX-ext.flatMinX)/2 + eps
			rodShape.DZ = ext.flatMaxZ + eps
		}
		e.bundle.Shapes = append(e.bundle.Shapes, rodShape)
		e.bundle.Logic = append(e.bundle.Logic, records.LogicalVolume{
			Name:        rname,
			ShapeRef:    qualified(ns, rname),
			MaterialRef: MaterialAir,
		})
		rspec.Selectors = append(rspec.Selectors, rname)
		rspec.ModuleTypes = append(rspec.ModuleTypes, records.ROCInfo{})

		// Azimuthal replication of the rod around the layer, with
		// alternating inner/outer radius.
		e.bundle.Algorithms = append(e.bundle.Algorithms, records.AlgorithmCall{
			Name:   algoPhiAlt,
			Parent: qualified(ns, lname),
			Parameters: []records.AlgorithmParam{
				stringParam(paramChild, qualified(ns, rname)),
				numericParam(paramTilt, degrees(layer.Tilt+90)),
				numericParam(paramStartAngle, degrees(layer.StartAngle)),
				numericParam(paramRangeAngle, "360*deg"),
				numericParam(paramRadiusIn, millimeters(ext.radiusIn)),
				numericParam(paramRadiusOut, millimeters(ext.radiusOut)),
				numericParam(paramZPosition, "0.0*mm"),
				numericParam(paramNumber, formatInt(layer.NumRods)),
				numericParam(paramStartCopyNo, "1"),
				numericParam(paramIncrCopyNo, "1"),
			},
		})

		e.emitTiltedRings(lname, rinfoMinus, &rspec)
		e.emitTiltedRings(lname, rinfoPlus, &rspec)

		// Layer tube, hung from the external barrel volume.
		e.bundle.Shapes = append(e.bundle.Shapes, records.Shape{
			Name: lname,
			Kind: records.Tube,
			RMin: ext.rmin - 2*eps,
			RMax: ext.rmax + 2*eps,
			DZ:   ext.zmax + 2*eps,
		})
		e.bundle.Logic = append(e.bundle.Logic, records.LogicalVolume{
			Name:        lname,
			ShapeRef:    qualified(ns, lname),
			MaterialRef: MaterialAir,
		})
		e.bundle.Placements = append(e.bundle.Placements, records.Placement{
			Parent: BarrelParentRef,
			Child:  qualified(ns, lname),
			Copy:   1,
		})
		lspec.Selectors = append(lspec.Selectors, lname)
		lspec.ModuleTypes = append(lspec.ModuleTypes, records.ROCInfo{})
	}

	for _, spec := range []records.TopologySpec{lspec, rspec, sspec, mspec} {
		if len(spec.Selectors) > 0 {
			e.bundle.Topology = append(e.bundle.Topology, spec)
		}
	}
	return nil
}

// emitTiltedRings emits the envelope of every collected tilted ring on one
// z side: the boolean intersection of a cone section following the tilt
// with a tube bounding the radial span, plus the two replication
// algorithms interleaving the ring's backward and forward module halves.
func (e *Extractor) emitTiltedRings(lname string, rings map[int]*tiltedRingInfo, rspec *records.TopologySpec) {
	ns := e.opts.Namespace
	eps := e.opts.Clearance

	for _, ring := range sortedRingKeys(rings) {
		rinf := rings[ring]
		if rinf.modules <= 0 {
			continue
		}
		tanTilt := math.Tan(rinf.tiltAngle * math.Pi / 180)
		dz := (rinf.zmax-rinf.zmin)/2 + eps

		cone := records.Shape{
			Name: rinf.name + "Cone",
			Kind: records.Cone,
			DZ:   dz,
		}
		if rinf.isZPlus {
			cone.RMin1 = rinf.rminAtZMin - eps*tanTilt
			cone.RMax1 = rinf.rmaxAtZMax + 2*dz*tanTilt + eps*tanTilt
			cone.RMin2 = rinf.rminAtZMin - 2*dz*tanTilt - eps*tanTilt
			cone.RMax2 = rinf.rmaxAtZMax + eps*tanTilt
		} else {
			cone.RMin1 = rinf.rminAtZMin - 2*dz*tanTilt - eps*tanTilt
			cone.RMax1 = rinf.rmaxAtZMax + eps*tanTilt
			cone.RMin2 = rinf.rminAtZMin - eps*tanTilt
			cone.RMax2 = rinf.rmaxAtZMax + 2*dz*tanTilt + eps*tanTilt
		}
		e.bundle.Shapes = append(e.bundle.Shapes, cone)

		e.bundle.Shapes = append(e.bundle.Shapes, records.Shape{
			Name: rinf.name + "Tub",
			Kind: records.Tube,
			DZ:   dz,
			RMin: rinf.rmin - eps,
			RMax: rinf.rmax + eps,
		})

		// The layer tube's extrema rely on this intersection clipping
		// the cone to the ring's radial span.
		e.bundle.ShapeOperations = append(e.bundle.ShapeOperations, records.ShapeOperation{
			Name:   rinf.name,
			Kind:   records.Intersection,
			SolidA: rinf.name + "Cone",
			SolidB: rinf.name + "Tub",
		})

		e.bundle.Logic = append(e.bundle.Logic, records.LogicalVolume{
			Name:        rinf.name,
			ShapeRef:    qualified(ns, rinf.name),
			MaterialRef: MaterialAir,
		})
		e.bundle.Placements = append(e.bundle.Placements, records.Placement{
			Parent:      qualified(ns, lname),
			Child:       qualified(ns, rinf.name),
			Copy:        1,
			Translation: records.Translation{DZ: (rinf.z1 + rinf.z2) / 2},
		})
		rspec.Selectors = append(rspec.Selectors, rinf.name)

		// Backward half: odd copy numbers.
		e.bundle.Algorithms = append(e.bundle.Algorithms, records.AlgorithmCall{
			Name:   algoRing,
			Parent: qualified(ns, rinf.name),
			Parameters: []records.AlgorithmParam{
				stringParam(paramChild, qualified(ns, rinf.childName)),
				numericParam(paramNumber, formatInt(rinf.modules/2)),
				numericParam(paramStartCopyNo, "1"),
				numericParam(paramIncrCopyNo, "2"),
				numericParam(paramRangeAngle, "360*deg"),
				numericParam(paramStartAngle, degrees(90+360/float64(rinf.modules)*float64(rinf.phi-1))),
				numericParam(paramRadius, formatFloat(rinf.r1)),
				vectorParam(0, 0, (rinf.z1-rinf.z2)/2),
				numericParam(paramIsZPlus, boolInt(rinf.isZPlus)),
				numericParam(paramTiltAngle, degrees(rinf.tiltAngle)),
				numericParam(paramIsFlipped, boolInt(rinf.bwFlipped)),
			},
		})
		// Forward half: even copy numbers.
		e.bundle.Algorithms = append(e.bundle.Algorithms, records.AlgorithmCall{
			Name:   algoRing,
			Parent: qualified(ns, rinf.name),
			Parameters: []records.AlgorithmParam{
				stringParam(paramChild, qualified(ns, rinf.childName)),
				numericParam(paramNumber, formatInt(rinf.modules/2)),
				numericParam(paramStartCopyNo, "2"),
				numericParam(paramIncrCopyNo, "2"),
				numericParam(paramRangeAngle, "360*deg"),
				numericParam(paramStartAngle, degrees(90+360/float64(rinf.modules)*float64(rinf.phi))),
				numericParam(paramRadius, formatFloat(rinf.r2)),
				vectorParam(0, 0, (rinf.z2-rinf.z1)/2),
				numericParam(paramIsZPlus, boolInt(rinf.isZPlus)),
				numericParam(paramTiltAngle, degrees(rinf.tiltAngle)),
				numericParam(paramIsFlipped, boolInt(rinf.fwFlipped)),
			},
		})
	}
}

// findPartnerModule scans forward from the current module for its mirror
// on the negative-z side of the same ring position.
func findPartnerModule(mods []*model.Module, ring int) *model.Module {
	for _, m := range mods {
		if m.Ring == ring && m.Side < 0 {
			return m
		}
	}
	return nil
}
