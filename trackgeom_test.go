package trackgeom

import (
	"strings"
	"testing"

	"github.com/tsawler/trackgeom/materials"
	"github.com/tsawler/trackgeom/model"
)

func testTable() *materials.Table {
	t := materials.NewTable()
	t.Add("Cu", materials.Properties{
		Density:           8.96,
		RadiationLength:   7.24,
		InteractionLength: 35,
	})
	return t
}

func TestRunEmptyModel(t *testing.T) {
	bundle, warnings, err := New(&model.Tracker{}).
		WithMaterials(testTable()).
		Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bundle == nil {
		t.Fatal("expected a bundle")
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(bundle.Elements) != 1 {
		t.Errorf("got %d elements, want 1", len(bundle.Elements))
	}
}

func TestNilTracker(t *testing.T) {
	_, _, err := New(nil).WithMaterials(testTable()).Run()
	if err == nil {
		t.Error("expected error for nil tracker")
	}
}

func TestMissingMaterials(t *testing.T) {
	_, _, err := New(&model.Tracker{}).Run()
	if err == nil {
		t.Fatal("expected error without a material table")
	}
	if !strings.Contains(err.Error(), "material table") {
		t.Errorf("error = %v, want mention of the material table", err)
	}
}

func TestLatchedConfigurationErrors(t *testing.T) {
	// The first configuration error wins; later calls chain through.
	_, _, err := New(&model.Tracker{}).
		WithMaterials(nil).
		WithClearance(0.1).
		Run()
	if err == nil || !strings.Contains(err.Error(), "nil material table") {
		t.Errorf("error = %v, want the latched nil-table error", err)
	}

	_, _, err = New(&model.Tracker{}).
		WithMaterials(testTable()).
		WithClearance(-1).
		Run()
	if err == nil || !strings.Contains(err.Error(), "clearance") {
		t.Errorf("error = %v, want the negative-clearance error", err)
	}

	_, _, err = New(&model.Tracker{}).
		WithMaterials(testTable()).
		WithNamespace("").
		Run()
	if err == nil || !strings.Contains(err.Error(), "namespace") {
		t.Errorf("error = %v, want the empty-namespace error", err)
	}
}

func TestOptionsForwarded(t *testing.T) {
	bundle, _, err := New(&model.Tracker{
		Supports: []*model.InactiveElement{{
			Category: model.BarrelSupport, InnerRadius: 50, RWidth: 2,
			ZOffset: 0, ZLength: 100,
			Masses: []model.LocalMass{{ElementTag: "Cu", Grams: 1}},
		}},
	}).
		WithMaterials(testTable()).
		WithNamespace("outertracker").
		Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, l := range bundle.Logic {
		if strings.HasPrefix(l.MaterialRef, "outertracker:") {
			found = true
		}
	}
	if !found {
		t.Error("emitted references should carry the configured namespace")
	}
}

func TestFormatWarnings(t *testing.T) {
	if got := FormatWarnings(nil); got != "" {
		t.Errorf("FormatWarnings(nil) = %q, want empty", got)
	}
	out := FormatWarnings([]Warning{
		{Volume: "Layer1", Message: "skipped"},
		{Message: "general note"},
	})
	if !strings.Contains(out, "2 warning(s)") {
		t.Errorf("missing count header: %q", out)
	}
	if !strings.Contains(out, "Layer1: skipped") || !strings.Contains(out, "general note") {
		t.Errorf("missing warning lines: %q", out)
	}
}

func TestMust(t *testing.T) {
	bundle := Must(New(&model.Tracker{}).WithMaterials(testTable()).Run())
	if bundle == nil {
		t.Fatal("expected a bundle")
	}

	defer func() {
		if recover() == nil {
			t.Error("Must should panic on error")
		}
	}()
	Must(New(nil).Run())
}
