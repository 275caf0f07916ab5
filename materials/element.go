package materials

import (
	"fmt"
	"math"

	"github.com/tsawler/trackgeom/records"
)

// atomicWeight derives an effective atomic weight from a material's
// interaction length. The 35 is the empirical nuclear interaction length
// scale (g/cm2) of the A^(1/3) law, inverted.
func atomicWeight(interactionLength float64) float64 {
	return math.Pow(interactionLength/35.0, 3)
}

// atomicNumber back-calculates an effective atomic number from the
// radiation length and atomic weight by inverting the approximate
// X0 ~ 181*A/Z^2-ish dependence; the quadratic discriminant goes negative
// for unphysical inputs.
func atomicNumber(radiationLength, weight float64) (int, error) {
	d := 4 - 4*(1.0-181.0*weight/radiationLength)
	if d <= 0 {
		return 0, fmt.Errorf("radiation length %v and weight %v yield no physical atomic number", radiationLength, weight)
	}
	return int(math.Floor((math.Sqrt(d)-2.0)/2.0 + 0.5)), nil
}

// Elements converts every entry of the material table into an elemental
// material record. An entry whose derived atomic number is unphysical is a
// fatal data defect; the returned error names the offending tag.
func Elements(t *Table) ([]records.Element, error) {
	elems := make([]records.Element, 0, t.Len())
	for _, tag := range t.Tags() {
		p, err := t.Get(tag)
		if err != nil {
			return nil, err
		}
		weight := atomicWeight(p.InteractionLength)
		number, err := atomicNumber(p.RadiationLength, weight)
		if err != nil {
			return nil, fmt.Errorf("element %q: %w", tag, err)
		}
		elems = append(elems, records.Element{
			Tag:          tag,
			Density:      p.Density,
			AtomicWeight: weight,
			AtomicNumber: number,
		})
	}
	return elems, nil
}
