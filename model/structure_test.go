package model

import "testing"

type recordingVisitor struct {
	visits []string
}

func (v *recordingVisitor) VisitBarrelLayer(l *Layer) {
	v.visits = append(v.visits, "layer")
}

func (v *recordingVisitor) VisitEndcapDisc(d *Disc) {
	v.visits = append(v.visits, "disc")
}

func TestAcceptOrder(t *testing.T) {
	tracker := &Tracker{
		Layers: []*Layer{{Index: 1}, {Index: 2}},
		Discs:  []*Disc{{Index: 1}},
	}
	v := &recordingVisitor{}
	tracker.Accept(v)

	want := []string{"layer", "layer", "disc"}
	if len(v.visits) != len(want) {
		t.Fatalf("got %d visits, want %d", len(v.visits), len(want))
	}
	for i, w := range want {
		if v.visits[i] != w {
			t.Errorf("visit %d = %q, want %q", i, v.visits[i], w)
		}
	}
}

func TestInactiveElementTotalMass(t *testing.T) {
	el := &InactiveElement{
		Masses: []LocalMass{
			{ElementTag: "Cu", Grams: 1.5},
			{ElementTag: "PE", Grams: 0.5},
		},
	}
	if got := el.TotalMass(); got != 2 {
		t.Errorf("TotalMass = %v, want 2", got)
	}
}

func TestCategoryString(t *testing.T) {
	if got := OuterSupport.String(); got != "OuterSupport" {
		t.Errorf("String = %q, want OuterSupport", got)
	}
	if got := Category(99).String(); got != "UnknownCategory" {
		t.Errorf("String = %q, want UnknownCategory", got)
	}
}
