package extract

import (
	"strings"
	"testing"

	"github.com/tsawler/trackgeom/model"
)

func massiveService(cat model.Category, inner, zoffset, zlen float64) *model.InactiveElement {
	return &model.InactiveElement{
		Category:    cat,
		InnerRadius: inner,
		RWidth:      2,
		ZOffset:     zoffset,
		ZLength:     zlen,
		Masses: []model.LocalMass{
			{ElementTag: "Cu", Grams: 3},
			{ElementTag: "PE", Grams: 1},
		},
	}
}

func TestBarrelServiceEmission(t *testing.T) {
	tracker := &model.Tracker{
		BarrelServices: []*model.InactiveElement{
			massiveService(model.BarrelService, 100.4, 200, 100),
		},
	}
	bundle, warnings := runExtractor(t, tracker)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	// Names carry the rounded inner radius and mid-z position.
	shape := findShape(bundle, "serviceR100Z250")
	if shape == nil {
		t.Fatal("service shape not emitted")
	}
	if shape.RMin != 100.4 || shape.RMax != 102.4 || shape.DZ != 50 {
		t.Errorf("service tube = %+v, want 100.4/102.4 x 50", shape)
	}

	if len(bundle.Composites) != 1 {
		t.Fatalf("got %d composites, want 1", len(bundle.Composites))
	}
	comp := bundle.Composites[0]
	if comp.Name != "servicecompBarrelServiceR100Z250" {
		t.Errorf("composite = %q, want servicecompBarrelServiceR100Z250", comp.Name)
	}
	if comp.Components[0].Fraction != 0.75 || comp.Components[1].Fraction != 0.25 {
		t.Errorf("fractions = %v, want 0.75 Cu and 0.25 PE", comp.Components)
	}

	// Mirrored placement pair.
	p1 := findPlacement(bundle, "tracker:serviceR100Z250", 1)
	p2 := findPlacement(bundle, "tracker:serviceR100Z250", 2)
	if p1 == nil || p2 == nil {
		t.Fatal("service should be placed twice")
	}
	if p1.Parent != BarrelParentRef || p2.Parent != BarrelParentRef {
		t.Errorf("service parents = %q, %q; want %s", p1.Parent, p2.Parent, BarrelParentRef)
	}
	if p1.Translation.DZ != 250 || p2.Translation.DZ != -250 {
		t.Errorf("service z = %v, %v; want 250, -250", p1.Translation.DZ, p2.Translation.DZ)
	}
	if p1.RotationRef != "" {
		t.Errorf("copy 1 rotation = %q, want none", p1.RotationRef)
	}
	if p2.RotationRef != "tracker:"+rotModuleFlip {
		t.Errorf("copy 2 rotation = %q, want the flip", p2.RotationRef)
	}

	if err := bundle.Validate(DefaultNamespace); err != nil {
		t.Errorf("bundle should validate: %v", err)
	}
}

func TestBarrelServiceDeduplication(t *testing.T) {
	// Services at the z origin repeat once per layer; consecutive entries
	// at the same rounded radius collapse to one.
	tracker := &model.Tracker{
		BarrelServices: []*model.InactiveElement{
			massiveService(model.BarrelService, 50.2, 0, 100),
			massiveService(model.BarrelService, 50.7, 0, 100),
			massiveService(model.BarrelService, 60, 0, 100),
		},
	}
	bundle, _ := runExtractor(t, tracker)

	if findShape(bundle, "serviceR50Z50") == nil {
		t.Error("first service at the origin should be emitted")
	}
	if findShape(bundle, "serviceR60Z50") == nil {
		t.Error("service at a new radius should be emitted")
	}
	if len(bundle.Shapes) != 2 {
		t.Errorf("got %d shapes, want 2 after deduplication", len(bundle.Shapes))
	}
}

func TestServiceSkips(t *testing.T) {
	empty := &model.InactiveElement{
		Category: model.BarrelService, InnerRadius: 80, RWidth: 2,
		ZOffset: 100, ZLength: 50,
	}
	negative := massiveService(model.BarrelService, 90, -300, 100)
	tracker := &model.Tracker{BarrelServices: []*model.InactiveElement{empty, negative}}
	bundle, warnings := runExtractor(t, tracker)

	// The massless service warns; the fully negative one is the mirror of
	// a positive-side entry and vanishes silently.
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
	if warnings[0].Volume != "serviceR80Z125" || !strings.Contains(warnings[0].Message, "empty") {
		t.Errorf("warning = %v, want empty serviceR80Z125", warnings[0])
	}
	if len(bundle.Shapes) != 0 {
		t.Errorf("got %d shapes, want none", len(bundle.Shapes))
	}
}

func TestEndcapServiceEmission(t *testing.T) {
	tracker := &model.Tracker{
		EndcapServices: []*model.InactiveElement{
			massiveService(model.EndcapService, 150, 1200, 50),
		},
	}
	bundle, warnings := runExtractor(t, tracker)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	if findShape(bundle, "serviceR150Z1225") == nil {
		t.Fatal("endcap service shape not emitted")
	}
	// Endcap composites are keyed by z only.
	if bundle.Composites[0].Name != "servicecompEndcapServiceZ1225" {
		t.Errorf("composite = %q, want servicecompEndcapServiceZ1225", bundle.Composites[0].Name)
	}
	p := findPlacement(bundle, "tracker:serviceR150Z1225", 1)
	if p == nil || p.Parent != EndcapParentRef {
		t.Errorf("placement = %+v, want under %s", p, EndcapParentRef)
	}
}

func TestSupportsShareCategoryComposite(t *testing.T) {
	tracker := &model.Tracker{
		Supports: []*model.InactiveElement{
			massiveService(model.BarrelSupport, 40, 0, 400),
			massiveService(model.BarrelSupport, 45, 500, 100),
		},
	}
	bundle, warnings := runExtractor(t, tracker)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	// One composite for the category, one volume per support.
	if len(bundle.Composites) != 1 {
		t.Fatalf("got %d composites, want 1", len(bundle.Composites))
	}
	if bundle.Composites[0].Name != "supportcompBarrelSupport" {
		t.Errorf("composite = %q, want supportcompBarrelSupport", bundle.Composites[0].Name)
	}
	if len(bundle.Shapes) != 2 {
		t.Errorf("got %d shapes, want 2", len(bundle.Shapes))
	}
	for _, l := range bundle.Logic {
		if l.MaterialRef != "tracker:supportcompBarrelSupport" {
			t.Errorf("volume %q material = %q, want the shared composite", l.Name, l.MaterialRef)
		}
	}

	if err := bundle.Validate(DefaultNamespace); err != nil {
		t.Errorf("bundle should validate: %v", err)
	}
}

func TestSupportParents(t *testing.T) {
	tracker := &model.Tracker{
		Supports: []*model.InactiveElement{
			massiveService(model.EndcapSupport, 100, 1300, 20),
			massiveService(model.UserSupport, 30, 100, 20),
		},
	}
	bundle, _ := runExtractor(t, tracker)

	// supportR100Z1310 under the endcap, supportR30Z110 under the barrel.
	p := findPlacement(bundle, "tracker:supportR100Z1310", 1)
	if p == nil || p.Parent != EndcapParentRef {
		t.Errorf("endcap support placement = %+v, want under %s", p, EndcapParentRef)
	}
	p = findPlacement(bundle, "tracker:supportR30Z110", 1)
	if p == nil || p.Parent != BarrelParentRef {
		t.Errorf("user support placement = %+v, want under %s", p, BarrelParentRef)
	}
}

func TestOuterSupportCentered(t *testing.T) {
	tracker := &model.Tracker{
		Supports: []*model.InactiveElement{
			massiveService(model.OuterSupport, 200, 300, 100),
		},
	}
	bundle, _ := runExtractor(t, tracker)

	p1 := findPlacement(bundle, "tracker:supportR200Z350", 1)
	p2 := findPlacement(bundle, "tracker:supportR200Z350", 2)
	if p1 == nil || p2 == nil {
		t.Fatal("outer support should be placed twice")
	}
	if p1.Translation.DZ != 0 || p2.Translation.DZ != 0 {
		t.Errorf("outer support z = %v, %v; want both 0", p1.Translation.DZ, p2.Translation.DZ)
	}
}

func TestMasslessFirstSupport(t *testing.T) {
	empty := &model.InactiveElement{
		Category: model.TopSupport, InnerRadius: 20, RWidth: 1,
		ZOffset: 0, ZLength: 100,
	}
	tracker := &model.Tracker{
		Supports: []*model.InactiveElement{
			empty,
			massiveService(model.TopSupport, 25, 0, 100),
		},
	}
	bundle, warnings := runExtractor(t, tracker)

	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
	if !strings.Contains(warnings[0].Message, "empty") {
		t.Errorf("warning = %v, want an empty-volume skip", warnings[0])
	}
	// The composite comes from the later massive support; the massless
	// one emits no volume.
	if len(bundle.Composites) != 1 || len(bundle.Shapes) != 1 {
		t.Errorf("got %d composites and %d shapes, want 1 each",
			len(bundle.Composites), len(bundle.Shapes))
	}
}
