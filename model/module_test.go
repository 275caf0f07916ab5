package model

import "testing"

func TestExpandedDimensions(t *testing.T) {
	m := &Module{
		Width:                 90,
		Length:                100,
		ServiceHybridWidth:    10,
		FrontEndHybridWidth:   5,
		SensorGap:             2,
		SensorThickness:       0.3,
		SupportPlateThickness: 1,
	}
	if got := m.ExpandedWidth(); got != 110 {
		t.Errorf("ExpandedWidth = %v, want 110", got)
	}
	if got := m.ExpandedLength(); got != 110 {
		t.Errorf("ExpandedLength = %v, want 110", got)
	}
	if got := m.ExpandedThickness(); got != 4.6 {
		t.Errorf("ExpandedThickness = %v, want 4.6", got)
	}
	if got := m.Area(); got != 9000 {
		t.Errorf("Area = %v, want 9000", got)
	}
}

func TestMassTargetString(t *testing.T) {
	if got := TargetAllCarriers.String(); got != "all-carriers" {
		t.Errorf("String = %q, want all-carriers", got)
	}
	if got := MassTarget(99).String(); got != "MassTarget(99)" {
		t.Errorf("String = %q, want MassTarget(99)", got)
	}
}

func TestMassTargetIsSensor(t *testing.T) {
	if !TargetInnerSensor.IsSensor() || !TargetOuterSensor.IsSensor() {
		t.Error("sensor targets should report IsSensor")
	}
	if TargetFront.IsSensor() {
		t.Error("front target should not report IsSensor")
	}
}

func TestIsSensorComponent(t *testing.T) {
	mc := MassContribution{Component: "PS Sensors"}
	if !mc.IsSensorComponent() {
		t.Error("PS Sensors should be a sensor component")
	}
	mc.Component = "Hybrid"
	if mc.IsSensorComponent() {
		t.Error("Hybrid should not be a sensor component")
	}
}
