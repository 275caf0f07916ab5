package extract

import (
	"fmt"
	"math"

	"github.com/tsawler/trackgeom/materials"
	"github.com/tsawler/trackgeom/model"
	"github.com/tsawler/trackgeom/records"
)

// zTolerance decides whether an envelope vertex sits on the module's
// z-extreme plane when collecting the restricted radial extrema.
const zTolerance = 0.001

// Sub-volume indices in emission order.
const (
	volFront = iota
	volBack
	volLeft
	volRight
	volBetween
	volSupportPlate
	numSubVolumes
)

var subVolumeSuffixes = [numSubVolumes]string{
	"FSide", "BSide", "LSide", "RSide", "Between", "SupportPlate",
}

// subVolume is one box of the decomposed module: its full extents, its
// center offset in the module frame, and the elemental masses assigned to
// it.
type subVolume struct {
	name       string
	dx, dy, dz float64
	x, y, z    float64
	masses     *materials.MassMap
	mass       float64
}

func (v *subVolume) volume() float64 {
	return v.dx * v.dy * v.dz
}

func (v *subVolume) add(tag string, grams float64) {
	v.masses.Add(tag, grams)
	v.mass += grams
}

// decomposer splits one module into its non-sensor sub-volumes (four
// hybrid carriers, the inter-sensor gap, the support plate), distributes
// the module's mass contributions across them, and computes the
// expanded-envelope extrema the enclosing rod, ring and layer volumes are
// sized from.
type decomposer struct {
	mod        *model.Module
	moduleName string
	namespace  string

	vols [numSubVolumes]*subVolume

	xmin, xmax float64
	ymin, ymax float64
	zmin, zmax float64
	rmin, rmax float64

	// Radial extrema restricted to the envelope's z-extreme planes.
	rminAtZMin float64
	rmaxAtZMax float64
}

func newDecomposer(mod *model.Module, moduleName, namespace string) *decomposer {
	return &decomposer{mod: mod, moduleName: moduleName, namespace: namespace}
}

// build lays out the sub-volume boxes, computes the envelope extrema and
// distributes the module's masses. It must be called before any of the
// emission or extrema accessors.
func (d *decomposer) build() error {
	d.layout()
	d.computeExtrema()
	return d.distribute()
}

// layout positions the six boxes in the module's local frame: service
// hybrids beyond the width edges, front-end hybrids beyond the length
// edges, the gap filler at the center, the support plate below the lower
// sensor.
func (d *decomposer) layout() {
	m := d.mod
	for i := range d.vols {
		d.vols[i] = &subVolume{
			name:   d.moduleName + subVolumeSuffixes[i],
			masses: materials.NewMassMap(),
		}
	}

	front := d.vols[volFront]
	front.dx, front.dy, front.dz = m.ServiceHybridWidth, m.Length, m.HybridThickness
	front.x = (m.Width + m.ServiceHybridWidth) / 2

	back := d.vols[volBack]
	back.dx, back.dy, back.dz = m.ServiceHybridWidth, m.Length, m.HybridThickness
	back.x = -(m.Width + m.ServiceHybridWidth) / 2

	left := d.vols[volLeft]
	left.dx = m.Width + 2*m.ServiceHybridWidth
	left.dy, left.dz = m.FrontEndHybridWidth, m.HybridThickness
	left.y = (m.Length + m.FrontEndHybridWidth) / 2

	right := d.vols[volRight]
	right.dx = m.Width + 2*m.ServiceHybridWidth
	right.dy, right.dz = m.FrontEndHybridWidth, m.HybridThickness
	right.y = -(m.Length + m.FrontEndHybridWidth) / 2

	between := d.vols[volBetween]
	between.dx, between.dy, between.dz = m.Width, m.Length, m.HybridThickness

	plate := d.vols[volSupportPlate]
	plate.dx = m.ExpandedWidth()
	plate.dy = m.ExpandedLength()
	plate.dz = m.SupportPlateThickness
	plate.z = -((m.SensorGap+m.SupportPlateThickness)/2 + m.SensorThickness)
}

// computeExtrema expands the module's base outline to the hybrid-grown
// envelope, extrudes it along the normal by half the expanded thickness in
// both directions, and takes the cartesian and radial extrema over the
// resulting vertices. Radii are measured in the xy plane. The edge
// midpoints refine only the radial extrema: on a tilted module the closest
// approach to the beam axis falls between corners.
func (d *decomposer) computeExtrema() {
	m := d.mod
	center := m.Center
	mx := model.Midpoint(m.BasePoly.Vertex(2), m.BasePoly.Vertex(3)).Sub(center)
	my := model.Midpoint(m.BasePoly.Vertex(1), m.BasePoly.Vertex(2)).Sub(center)
	sx := m.ExpandedWidth() / m.Width
	sy := m.ExpandedLength() / m.Length
	half := m.Normal.Scale(0.5 * m.ExpandedThickness())

	signs := [4][2]float64{{-1, -1}, {-1, 1}, {1, 1}, {1, -1}}
	var top, bottom [4]model.Vector3
	corners := make([]model.Vector3, 0, 8)
	for i, s := range signs {
		p := center.Add(mx.Scale(s[0] * sx)).Add(my.Scale(s[1] * sy))
		top[i] = p.Add(half)
		bottom[i] = p.Sub(half)
		corners = append(corners, top[i], bottom[i])
	}

	d.xmin, d.xmax = math.MaxFloat64, -math.MaxFloat64
	d.ymin, d.ymax = math.MaxFloat64, -math.MaxFloat64
	d.zmin, d.zmax = math.MaxFloat64, -math.MaxFloat64
	for _, p := range corners {
		d.xmin = math.Min(d.xmin, p.X)
		d.xmax = math.Max(d.xmax, p.X)
		d.ymin = math.Min(d.ymin, p.Y)
		d.ymax = math.Max(d.ymax, p.Y)
		d.zmin = math.Min(d.zmin, p.Z)
		d.zmax = math.Max(d.zmax, p.Z)
	}

	radial := make([]model.Vector3, 0, 16)
	radial = append(radial, corners...)
	for i := 0; i < 4; i++ {
		radial = append(radial,
			model.Midpoint(top[i], top[(i+1)%4]),
			model.Midpoint(bottom[i], bottom[(i+1)%4]))
	}

	d.rmin, d.rmax = math.MaxFloat64, -math.MaxFloat64
	d.rminAtZMin, d.rmaxAtZMax = math.MaxFloat64, -math.MaxFloat64
	for _, p := range radial {
		r := p.WithZ(0).Rho()
		d.rmin = math.Min(d.rmin, r)
		d.rmax = math.Max(d.rmax, r)
		if math.Abs(p.Z-d.zmin) < zTolerance {
			d.rminAtZMin = math.Min(d.rminAtZMin, r)
		}
		if math.Abs(p.Z-d.zmax) < zTolerance {
			d.rmaxAtZMax = math.Max(d.rmaxAtZMax, r)
		}
	}
}

// distribute assigns the module's mass contributions to the sub-volumes.
// Sensor-component masses are accounted for by the active surfaces and
// skipped here. A contribution targeting a sensor-reserved id or an
// unknown target aborts the run.
func (d *decomposer) distribute() error {
	for _, mc := range d.mod.Masses {
		if mc.IsSensorComponent() {
			continue
		}
		if mc.Target.IsSensor() {
			return fmt.Errorf("module %s: component %q assigns mass to reserved sensor target %s",
				d.moduleName, mc.Component, mc.Target)
		}
		switch mc.Target {
		case model.TargetFront:
			d.vols[volFront].add(mc.ElementTag, mc.Grams)
		case model.TargetBack:
			d.vols[volBack].add(mc.ElementTag, mc.Grams)
		case model.TargetLeft:
			d.vols[volLeft].add(mc.ElementTag, mc.Grams)
		case model.TargetRight:
			d.vols[volRight].add(mc.ElementTag, mc.Grams)
		case model.TargetBetween:
			d.vols[volBetween].add(mc.ElementTag, mc.Grams)
		case model.TargetSupportPlate:
			d.vols[volSupportPlate].add(mc.ElementTag, mc.Grams)
		case model.TargetFrontBack:
			if err := d.split(mc, volFront, volBack); err != nil {
				return err
			}
		case model.TargetLeftRight:
			if err := d.split(mc, volLeft, volRight); err != nil {
				return err
			}
		case model.TargetAllCarriers:
			if err := d.split(mc, volFront, volBack, volLeft, volRight); err != nil {
				return err
			}
		default:
			return fmt.Errorf("module %s: component %q has unsupported mass target %s",
				d.moduleName, mc.Component, mc.Target)
		}
	}
	return nil
}

// split distributes one contribution across a carrier group in proportion
// to the carriers' volumes.
func (d *decomposer) split(mc model.MassContribution, idx ...int) error {
	var total float64
	for _, i := range idx {
		total += d.vols[i].volume()
	}
	if total <= 0 {
		return fmt.Errorf("module %s: component %q targets %s but the carrier volumes are empty",
			d.moduleName, mc.Component, mc.Target)
	}
	for _, i := range idx {
		d.vols[i].add(mc.ElementTag, mc.Grams*d.vols[i].volume()/total)
	}
	return nil
}

// emit appends the shape, material, logical-volume and placement records
// of every massive sub-volume to the bundle. Massless sub-volumes are pure
// bookkeeping and produce no records.
func (d *decomposer) emit(b *records.Bundle) error {
	parent := qualified(d.namespace, d.moduleName)
	for _, v := range d.vols {
		if v.mass <= 0 {
			continue
		}
		density := materials.BoxDensity(v.dx, v.dy, v.dz, v.mass)
		compName := hybridCompositePrefix + v.name
		comp, err := materials.Synthesize(compName, v.masses, density, "")
		if err != nil {
			return fmt.Errorf("module %s: %w", d.moduleName, err)
		}
		b.Composites = append(b.Composites, comp)
		b.Shapes = append(b.Shapes, records.Shape{
			Name: v.name,
			Kind: records.Box,
			DX:   v.dx / 2,
			DY:   v.dy / 2,
			DZ:   v.dz / 2,
		})
		b.Logic = append(b.Logic, records.LogicalVolume{
			Name:        v.name,
			ShapeRef:    qualified(d.namespace, v.name),
			MaterialRef: qualified(d.namespace, compName),
		})
		b.Placements = append(b.Placements, records.Placement{
			Parent:      parent,
			Child:       qualified(d.namespace, v.name),
			Copy:        1,
			Translation: records.Translation{DX: v.x, DY: v.y, DZ: v.z},
		})
	}
	return nil
}
