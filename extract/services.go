package extract

import (
	"fmt"
	"math"

	"github.com/tsawler/trackgeom/materials"
	"github.com/tsawler/trackgeom/model"
	"github.com/tsawler/trackgeom/records"
)

// serviceName builds the shape name of a service volume from its rounded
// inner radius and mid-z position.
func serviceName(el *model.InactiveElement) string {
	midZ := math.Abs(el.ZOffset + el.ZLength/2)
	return fmt.Sprintf("%sR%dZ%d", serviceShapePrefix, int(el.InnerRadius), int(midZ))
}

// inactiveMasses folds an element's local mass list into an accumulator.
func inactiveMasses(el *model.InactiveElement) *materials.MassMap {
	mm := materials.NewMassMap()
	for _, m := range el.Masses {
		mm.Add(m.ElementTag, m.Grams)
	}
	return mm
}

// emitInactiveTube emits the shape, logical volume and mirrored placement
// pair of one inactive annular volume.
func (e *Extractor) emitInactiveTube(name, materialRef, parent string, el *model.InactiveElement) {
	ns := e.opts.Namespace
	dz := el.ZLength / 2
	e.bundle.Shapes = append(e.bundle.Shapes, records.Shape{
		Name: name,
		Kind: records.Tube,
		RMin: el.InnerRadius,
		RMax: el.InnerRadius + el.RWidth,
		DZ:   dz,
	})
	e.bundle.Logic = append(e.bundle.Logic, records.LogicalVolume{
		Name:        name,
		ShapeRef:    qualified(ns, name),
		MaterialRef: materialRef,
	})
	posZ := el.ZOffset + dz
	if el.Category == model.OuterSupport || el.Category == model.TopSupport {
		posZ = 0
	}
	e.bundle.Placements = append(e.bundle.Placements, records.Placement{
		Parent:      parent,
		Child:       qualified(ns, name),
		Copy:        1,
		Translation: records.Translation{DZ: posZ},
	})
	e.bundle.Placements = append(e.bundle.Placements, records.Placement{
		Parent:      parent,
		Child:       qualified(ns, name),
		Copy:        2,
		Translation: records.Translation{DZ: -posZ},
		RotationRef: qualified(ns, rotModuleFlip),
	})
}

// analyseBarrelServices emits one composite material and one annular
// volume per barrel service on the positive-z side; the negative side is
// the mirror copy. Services at the z origin repeat once per layer in the
// model, so consecutive entries at the same rounded radius are collapsed.
func (e *Extractor) analyseBarrelServices() error {
	previousInnerRadius := -1
	for _, el := range e.tracker.BarrelServices {
		if int(el.ZOffset) == 0 {
			if previousInnerRadius == int(el.InnerRadius) {
				continue
			}
			previousInnerRadius = int(el.InnerRadius)
		}
		if el.ZOffset+el.ZLength <= 0 {
			continue
		}
		name := serviceName(el)
		if len(el.Masses) == 0 {
			e.warnf(name, "not exported because it is empty")
			continue
		}
		midZ := math.Abs(el.ZOffset + el.ZLength/2)
		matName := fmt.Sprintf("%s%sR%dZ%d", serviceCompositePrefix, el.Category, int(el.InnerRadius), int(midZ))
		density := materials.AnnulusDensity(el.InnerRadius, el.RWidth, el.ZLength, el.TotalMass())
		comp, err := materials.Synthesize(matName, inactiveMasses(el), density, "")
		if err != nil {
			return fmt.Errorf("barrel service %s: %w", name, err)
		}
		e.bundle.Composites = append(e.bundle.Composites, comp)
		e.emitInactiveTube(name, qualified(e.opts.Namespace, matName), BarrelParentRef, el)
	}
	return nil
}

// analyseEndcapServices emits one composite material and one annular
// volume per endcap service on the positive-z side.
func (e *Extractor) analyseEndcapServices() error {
	for _, el := range e.tracker.EndcapServices {
		if el.ZOffset+el.ZLength <= 0 {
			continue
		}
		name := serviceName(el)
		if len(el.Masses) == 0 {
			e.warnf(name, "not exported because it is empty")
			continue
		}
		midZ := math.Abs(el.ZOffset + el.ZLength/2)
		matName := fmt.Sprintf("%s%sZ%d", serviceCompositePrefix, el.Category, int(midZ))
		density := materials.AnnulusDensity(el.InnerRadius, el.RWidth, el.ZLength, el.TotalMass())
		comp, err := materials.Synthesize(matName, inactiveMasses(el), density, "")
		if err != nil {
			return fmt.Errorf("endcap service %s: %w", name, err)
		}
		e.bundle.Composites = append(e.bundle.Composites, comp)
		e.emitInactiveTube(name, qualified(e.opts.Namespace, matName), EndcapParentRef, el)
	}
	return nil
}

// analyseSupports emits the support structures. All supports of one
// category share one composite material, synthesized from the first
// massive support encountered; every support still gets its own volume.
// Whole-tracker supports are centered at z=0, the rest mirrored in z.
func (e *Extractor) analyseSupports() error {
	composed := make(map[model.Category]bool)
	for _, el := range e.tracker.Supports {
		name := fmt.Sprintf("%sR%dZ%d", supportShapePrefix, int(el.InnerRadius), int(el.ZLength/2+el.ZOffset))
		matName := fmt.Sprintf("%s%s", supportCompositePrefix, el.Category)

		if !composed[el.Category] {
			if len(el.Masses) == 0 {
				e.warnf(name, "not exported because it is empty")
				continue
			}
			density := materials.AnnulusDensity(el.InnerRadius, el.RWidth, el.ZLength, el.TotalMass())
			comp, err := materials.Synthesize(matName, inactiveMasses(el), density, "")
			if err != nil {
				return fmt.Errorf("support %s: %w", name, err)
			}
			e.bundle.Composites = append(e.bundle.Composites, comp)
			composed[el.Category] = true
		}

		parent := TrackerParentRef
		switch el.Category {
		case model.BarrelSupport, model.TopSupport, model.UserSupport, model.OuterSupport:
			parent = BarrelParentRef
		case model.EndcapSupport:
			parent = EndcapParentRef
		}
		e.emitInactiveTube(name, qualified(e.opts.Namespace, matName), parent, el)
	}
	return nil
}
