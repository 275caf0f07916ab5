package materials

import (
	"fmt"
	"math"
	"sort"

	"github.com/tsawler/trackgeom/records"
)

// gramsPerMM3ToCM3 converts a mass/volume ratio in g/mm3 to g/cm3. All
// model lengths are millimeters while densities are conventionally quoted
// in g/cm3.
const gramsPerMM3ToCM3 = 1000.0

// MassMap accumulates elemental masses by tag. Accumulation order does not
// affect the result: fractions are emitted in tag order.
type MassMap struct {
	grams map[string]float64
}

// NewMassMap returns an empty mass accumulator.
func NewMassMap() *MassMap {
	return &MassMap{grams: make(map[string]float64)}
}

// Add accumulates grams of an element.
func (m *MassMap) Add(tag string, grams float64) {
	m.grams[tag] += grams
}

// Total returns the summed mass over all tags except the excluded one.
// Pass an empty exclude to include everything.
func (m *MassMap) Total(exclude string) float64 {
	var total float64
	for tag, g := range m.grams {
		if tag == exclude {
			continue
		}
		total += g
	}
	return total
}

// Len returns the number of distinct tags accumulated.
func (m *MassMap) Len() int {
	return len(m.grams)
}

// Tags returns the accumulated tags sorted lexicographically.
func (m *MassMap) Tags() []string {
	tags := make([]string, 0, len(m.grams))
	for tag := range m.grams {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Fractions normalizes the accumulated masses to mass fractions over the
// included elements, in tag order. Synthesis over a zero included mass is
// undefined and returned as an error; callers skip empty mass sets.
func (m *MassMap) Fractions(exclude string) ([]records.MassFraction, error) {
	total := m.Total(exclude)
	if total <= 0 {
		return nil, fmt.Errorf("no included mass to normalize")
	}
	fractions := make([]records.MassFraction, 0, len(m.grams))
	for _, tag := range m.Tags() {
		if tag == exclude {
			continue
		}
		fractions = append(fractions, records.MassFraction{
			ElementTag: tag,
			Fraction:   m.grams[tag] / total,
		})
	}
	return fractions, nil
}

// Synthesize builds a composite material record from accumulated masses,
// normalizing fractions over the included elements. The exclude tag (the
// sensor material, typically) is left out entirely; pass an empty string
// to include everything.
func Synthesize(name string, masses *MassMap, density float64, exclude string) (records.Composite, error) {
	fractions, err := masses.Fractions(exclude)
	if err != nil {
		return records.Composite{}, fmt.Errorf("composite %q: %w", name, err)
	}
	return records.Composite{Name: name, Density: density, Components: fractions}, nil
}

// ModuleDensity is the density of a module-level composite: the included
// mass spread over the module's nominal footprint volume.
func ModuleDensity(area, thickness, includedMass float64) float64 {
	return gramsPerMM3ToCM3 * includedMass / (area * thickness)
}

// AnnulusDensity is the density of an inactive annular volume of the given
// inner radius, radial width and z length.
func AnnulusDensity(innerRadius, rWidth, zLength, mass float64) float64 {
	outer := innerRadius + rWidth
	return gramsPerMM3ToCM3 * mass / (math.Pi * zLength * (outer*outer - innerRadius*innerRadius))
}

// BoxDensity is the density of a box sub-volume from its accumulated mass
// and full extents.
func BoxDensity(dx, dy, dz, mass float64) float64 {
	return gramsPerMM3ToCM3 * mass / (dx * dy * dz)
}
