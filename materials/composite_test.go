package materials

import (
	"math"
	"testing"
)

func TestMassMapFractions(t *testing.T) {
	mm := NewMassMap()
	mm.Add("PE", 1)
	mm.Add("Cu", 2)
	mm.Add("Cu", 1)

	fractions, err := mm.Fractions("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fractions) != 2 {
		t.Fatalf("got %d fractions, want 2", len(fractions))
	}
	// Tag order, not accumulation order.
	if fractions[0].ElementTag != "Cu" || fractions[1].ElementTag != "PE" {
		t.Errorf("tags = %q, %q; want Cu, PE", fractions[0].ElementTag, fractions[1].ElementTag)
	}
	if fractions[0].Fraction != 0.75 {
		t.Errorf("Cu fraction = %v, want 0.75", fractions[0].Fraction)
	}
	if fractions[1].Fraction != 0.25 {
		t.Errorf("PE fraction = %v, want 0.25", fractions[1].Fraction)
	}
}

func TestMassMapExclusion(t *testing.T) {
	mm := NewMassMap()
	mm.Add("Cu", 1)
	mm.Add("SenSi", 3)

	if got := mm.Total("SenSi"); got != 1 {
		t.Errorf("Total excluding SenSi = %v, want 1", got)
	}
	fractions, err := mm.Fractions("SenSi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fractions) != 1 || fractions[0].ElementTag != "Cu" || fractions[0].Fraction != 1 {
		t.Errorf("fractions = %v, want Cu at 1", fractions)
	}
}

func TestMassMapZeroMass(t *testing.T) {
	mm := NewMassMap()
	if _, err := mm.Fractions(""); err == nil {
		t.Error("expected error for empty mass set")
	}

	mm.Add("SenSi", 2)
	if _, err := mm.Fractions("SenSi"); err == nil {
		t.Error("expected error when the only mass is excluded")
	}
}

func TestSynthesize(t *testing.T) {
	mm := NewMassMap()
	mm.Add("Cu", 1)
	comp, err := Synthesize("mixture", mm, 2.5, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if comp.Name != "mixture" {
		t.Errorf("Name = %q, want mixture", comp.Name)
	}
	if comp.Density != 2.5 {
		t.Errorf("Density = %v, want 2.5", comp.Density)
	}
	if len(comp.Components) != 1 || comp.Components[0].Fraction != 1 {
		t.Errorf("Components = %v, want single Cu at 1", comp.Components)
	}

	if _, err := Synthesize("empty", NewMassMap(), 1, ""); err == nil {
		t.Error("expected error for empty mass map")
	}
}

func TestDensities(t *testing.T) {
	// 0.4 g over 100 mm2 x 2 mm = 200 mm3, so 2 g/cm3.
	if got := ModuleDensity(100, 2, 0.4); got != 2 {
		t.Errorf("ModuleDensity = %v, want 2", got)
	}

	// 0.2 g over a 10x10x2 mm box = 200 mm3, so 1 g/cm3.
	if got := BoxDensity(10, 10, 2, 0.2); got != 1 {
		t.Errorf("BoxDensity = %v, want 1", got)
	}

	// Annulus of inner radius 10, width 2, length 100.
	mass := math.Pi * 100 * (12*12 - 10*10) / 1000
	if got := AnnulusDensity(10, 2, 100, mass); math.Abs(got-1) > 1e-12 {
		t.Errorf("AnnulusDensity = %v, want 1", got)
	}
}
