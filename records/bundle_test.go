package records

import (
	"strings"
	"testing"
)

func TestRotationRegistryInsertOnce(t *testing.T) {
	reg := NewRotationRegistry()
	if !reg.Register(Rotation{Name: "A", ThetaX: 90}) {
		t.Error("first registration should insert")
	}
	if reg.Register(Rotation{Name: "A", ThetaX: 45}) {
		t.Error("second registration of the same name should be ignored")
	}
	rot, ok := reg.Get("A")
	if !ok {
		t.Fatal("registered rotation not found")
	}
	if rot.ThetaX != 90 {
		t.Errorf("ThetaX = %v, want the first registration's 90", rot.ThetaX)
	}
	if reg.Len() != 1 {
		t.Errorf("Len = %d, want 1", reg.Len())
	}
}

func TestRotationRegistryOrder(t *testing.T) {
	reg := NewRotationRegistry()
	reg.Register(Rotation{Name: "B"})
	reg.Register(Rotation{Name: "A"})
	reg.Register(Rotation{Name: "C"})

	names := reg.Names()
	want := []string{"B", "A", "C"}
	for i, w := range want {
		if names[i] != w {
			t.Errorf("Names[%d] = %q, want %q", i, names[i], w)
		}
	}
}

func TestSortedRotations(t *testing.T) {
	b := NewBundle()
	b.Rotations.Register(Rotation{Name: "Zeta"})
	b.Rotations.Register(Rotation{Name: "Alpha"})

	rots := b.SortedRotations()
	if len(rots) != 2 {
		t.Fatalf("got %d rotations, want 2", len(rots))
	}
	if rots[0].Name != "Alpha" || rots[1].Name != "Zeta" {
		t.Errorf("sorted order = %q, %q; want Alpha, Zeta", rots[0].Name, rots[1].Name)
	}
}

// validBundle builds a minimal bundle that passes Validate under the
// "tk" namespace.
func validBundle() *Bundle {
	b := NewBundle()
	b.Elements = append(b.Elements, Element{Tag: "Cu", Density: 8.96})
	b.Composites = append(b.Composites, Composite{
		Name:    "mix",
		Density: 1.0,
		Components: []MassFraction{
			{ElementTag: "Cu", Fraction: 0.75},
			{ElementTag: "PE", Fraction: 0.25},
		},
	})
	b.Shapes = append(b.Shapes, Shape{Name: "boxA", Kind: Box, DX: 1, DY: 1, DZ: 1})
	b.Shapes = append(b.Shapes, Shape{Name: "boxB", Kind: Box, DX: 2, DY: 2, DZ: 2})
	b.ShapeOperations = append(b.ShapeOperations, ShapeOperation{
		Name: "combined", Kind: Intersection, SolidA: "boxA", SolidB: "boxB",
	})
	b.Logic = append(b.Logic, LogicalVolume{Name: "vol", ShapeRef: "tk:combined", MaterialRef: "tk:mix"})
	b.Rotations.Register(Rotation{Name: "Flip"})
	b.Placements = append(b.Placements, Placement{
		Parent: "tk:vol", Child: "tk:vol", Copy: 1, RotationRef: "tk:Flip",
	})
	return b
}

func TestValidateAcceptsConsistentBundle(t *testing.T) {
	if err := validBundle().Validate("tk"); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestValidateSkipsExternalReferences(t *testing.T) {
	b := validBundle()
	b.Logic = append(b.Logic, LogicalVolume{
		Name:        "hanging",
		ShapeRef:    "tk:boxA",
		MaterialRef: "materials:Air",
	})
	b.Placements = append(b.Placements, Placement{
		Parent: "pixbar:Barrel", Child: "tk:hanging", Copy: 1,
	})
	if err := b.Validate("tk"); err != nil {
		t.Errorf("external references should not be checked: %v", err)
	}
}

func TestValidateDuplicateShapeName(t *testing.T) {
	b := validBundle()
	b.Shapes = append(b.Shapes, Shape{Name: "boxA", Kind: Tube})
	err := b.Validate("tk")
	if err == nil {
		t.Fatal("expected error for duplicate shape name")
	}
	if !strings.Contains(err.Error(), "boxA") {
		t.Errorf("error should name the duplicate: %v", err)
	}
}

func TestValidateDanglingReferences(t *testing.T) {
	b := validBundle()
	b.Logic = append(b.Logic, LogicalVolume{Name: "bad", ShapeRef: "tk:missing", MaterialRef: "tk:mix"})
	b.Placements = append(b.Placements, Placement{Parent: "tk:nowhere", Child: "tk:bad", Copy: 1})
	b.Placements = append(b.Placements, Placement{Parent: "tk:vol", Child: "tk:bad", Copy: 1, RotationRef: "tk:NoSuchRot"})

	err := b.Validate("tk")
	if err == nil {
		t.Fatal("expected errors for dangling references")
	}
	for _, want := range []string{"missing", "nowhere", "NoSuchRot"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %q: %v", want, err)
		}
	}
}

func TestValidateFractionSum(t *testing.T) {
	b := validBundle()
	b.Composites = append(b.Composites, Composite{
		Name:    "short",
		Density: 1,
		Components: []MassFraction{
			{ElementTag: "Cu", Fraction: 0.5},
		},
	})
	err := b.Validate("tk")
	if err == nil {
		t.Fatal("expected error for fraction sum below 1")
	}
	if !strings.Contains(err.Error(), "short") {
		t.Errorf("error should name the composite: %v", err)
	}
}

func TestShapeKindString(t *testing.T) {
	if got := Polycone.String(); got != "Polycone" {
		t.Errorf("String = %q, want Polycone", got)
	}
	if got := ShapeKind(99).String(); got != "UnknownShape" {
		t.Errorf("String = %q, want UnknownShape", got)
	}
}
