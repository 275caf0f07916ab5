// Package modelfile loads tracker models and material tables from YAML
// files.
//
// The file format mirrors the [model] types closely: a materials list and
// a tracker section with layers, discs, services and supports. Angles are
// given in degrees and converted on load; lengths are millimeters, masses
// grams. A module's base outline may be given explicitly as four
// vertices, or derived from its center, normal and an optional width
// axis.
package modelfile

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/trackgeom/materials"
	"github.com/tsawler/trackgeom/model"
)

type document struct {
	Materials []materialEntry `yaml:"materials"`
	Tracker   trackerEntry    `yaml:"tracker"`
}

type materialEntry struct {
	Tag               string  `yaml:"tag"`
	Density           float64 `yaml:"density"`
	RadiationLength   float64 `yaml:"radiationLength"`
	InteractionLength float64 `yaml:"interactionLength"`
}

type vectorEntry struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v vectorEntry) vec() model.Vector3 {
	return model.Vector3{X: v.X, Y: v.Y, Z: v.Z}
}

type sensorEntry struct {
	ROCRows int `yaml:"rocRows"`
	ROCCols int `yaml:"rocCols"`
	ROCX    int `yaml:"rocX"`
	ROCY    int `yaml:"rocY"`
}

type massEntry struct {
	Element   string  `yaml:"element"`
	Component string  `yaml:"component"`
	Target    string  `yaml:"target"`
	Grams     float64 `yaml:"grams"`
}

type moduleEntry struct {
	Ring int `yaml:"ring"`
	Phi  int `yaml:"phi"`
	Side int `yaml:"side"`

	Center    vectorEntry   `yaml:"center"`
	Normal    vectorEntry   `yaml:"normal"`
	WidthAxis *vectorEntry  `yaml:"widthAxis"`
	Vertices  []vectorEntry `yaml:"vertices"`

	Width       float64 `yaml:"width"`
	Length      float64 `yaml:"length"`
	Thickness   float64 `yaml:"thickness"`
	MinWidth    float64 `yaml:"minWidth"`
	MaxWidth    float64 `yaml:"maxWidth"`
	Rectangular *bool   `yaml:"rectangular"`

	NumSensors      int         `yaml:"numSensors"`
	SensorThickness float64     `yaml:"sensorThickness"`
	SensorGap       float64     `yaml:"sensorGap"`
	InnerSensor     sensorEntry `yaml:"innerSensor"`
	OuterSensor     sensorEntry `yaml:"outerSensor"`

	FrontEndHybridWidth   float64 `yaml:"frontEndHybridWidth"`
	ServiceHybridWidth    float64 `yaml:"serviceHybridWidth"`
	HybridThickness       float64 `yaml:"hybridThickness"`
	SupportPlateThickness float64 `yaml:"supportPlateThickness"`

	Type           string  `yaml:"type"`
	Flipped        bool    `yaml:"flipped"`
	TiltAngle      float64 `yaml:"tiltAngle"`      // degrees
	StereoRotation float64 `yaml:"stereoRotation"` // degrees

	Masses            []massEntry `yaml:"masses"`
	RadiationLength   float64     `yaml:"radiationLength"`
	InteractionLength float64     `yaml:"interactionLength"`
}

type layerEntry struct {
	Tilted     bool          `yaml:"tilted"`
	Tilt       float64       `yaml:"tilt"`       // degrees
	StartAngle float64       `yaml:"startAngle"` // degrees
	NumRods    int           `yaml:"numRods"`
	Modules    []moduleEntry `yaml:"modules"`
}

type discEntry struct {
	MinZ        float64       `yaml:"minZ"`
	RingModules map[int]int   `yaml:"ringModules"`
	Modules     []moduleEntry `yaml:"modules"`
}

type localMassEntry struct {
	Element string  `yaml:"element"`
	Grams   float64 `yaml:"grams"`
}

type inactiveEntry struct {
	Category    string           `yaml:"category"`
	InnerRadius float64          `yaml:"innerRadius"`
	RWidth      float64          `yaml:"rWidth"`
	ZOffset     float64          `yaml:"zOffset"`
	ZLength     float64          `yaml:"zLength"`
	Masses      []localMassEntry `yaml:"masses"`
}

type trackerEntry struct {
	Layers         []layerEntry    `yaml:"layers"`
	Discs          []discEntry     `yaml:"discs"`
	BarrelServices []inactiveEntry `yaml:"barrelServices"`
	EndcapServices []inactiveEntry `yaml:"endcapServices"`
	Supports       []inactiveEntry `yaml:"supports"`
}

var massTargets = map[string]model.MassTarget{
	"all-carriers":  model.TargetAllCarriers,
	"inner-sensor":  model.TargetInnerSensor,
	"outer-sensor":  model.TargetOuterSensor,
	"front":         model.TargetFront,
	"back":          model.TargetBack,
	"left":          model.TargetLeft,
	"right":         model.TargetRight,
	"between":       model.TargetBetween,
	"support-plate": model.TargetSupportPlate,
	"front-back":    model.TargetFrontBack,
	"left-right":    model.TargetLeftRight,
}

var categories = map[string]model.Category{
	"barrel-service": model.BarrelService,
	"endcap-service": model.EndcapService,
	"barrel-support": model.BarrelSupport,
	"endcap-support": model.EndcapSupport,
	"outer-support":  model.OuterSupport,
	"top-support":    model.TopSupport,
	"user-support":   model.UserSupport,
}

// Load reads a YAML model file from disk.
func Load(path string) (*model.Tracker, *materials.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("modelfile: %w", err)
	}
	return Parse(data)
}

// Parse builds a tracker model and material table from YAML bytes.
func Parse(data []byte) (*model.Tracker, *materials.Table, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("modelfile: %w", err)
	}

	table := materials.NewTable()
	for _, m := range doc.Materials {
		if m.Tag == "" {
			return nil, nil, fmt.Errorf("modelfile: material with empty tag")
		}
		table.Add(m.Tag, materials.Properties{
			Density:           m.Density,
			RadiationLength:   m.RadiationLength,
			InteractionLength: m.InteractionLength,
		})
	}

	tracker := &model.Tracker{}
	for li, le := range doc.Tracker.Layers {
		layer := &model.Layer{
			Index:      li + 1,
			Tilted:     le.Tilted,
			Tilt:       le.Tilt,
			StartAngle: le.StartAngle,
			NumRods:    le.NumRods,
		}
		for mi, me := range le.Modules {
			mod, err := buildModule(me)
			if err != nil {
				return nil, nil, fmt.Errorf("modelfile: layer %d module %d: %w", li+1, mi+1, err)
			}
			layer.Modules = append(layer.Modules, mod)
		}
		tracker.Layers = append(tracker.Layers, layer)
	}
	for di, de := range doc.Tracker.Discs {
		disc := &model.Disc{
			Index:       di + 1,
			MinZ:        de.MinZ,
			RingModules: de.RingModules,
		}
		if disc.RingModules == nil {
			disc.RingModules = make(map[int]int)
		}
		for mi, me := range de.Modules {
			mod, err := buildModule(me)
			if err != nil {
				return nil, nil, fmt.Errorf("modelfile: disc %d module %d: %w", di+1, mi+1, err)
			}
			disc.Modules = append(disc.Modules, mod)
			if mod.Ring > disc.NumRings {
				disc.NumRings = mod.Ring
			}
		}
		for ring := range disc.RingModules {
			if ring > disc.NumRings {
				disc.NumRings = ring
			}
		}
		tracker.Discs = append(tracker.Discs, disc)
	}

	var err error
	if tracker.BarrelServices, err = buildInactives(doc.Tracker.BarrelServices); err != nil {
		return nil, nil, fmt.Errorf("modelfile: barrel services: %w", err)
	}
	if tracker.EndcapServices, err = buildInactives(doc.Tracker.EndcapServices); err != nil {
		return nil, nil, fmt.Errorf("modelfile: endcap services: %w", err)
	}
	if tracker.Supports, err = buildInactives(doc.Tracker.Supports); err != nil {
		return nil, nil, fmt.Errorf("modelfile: supports: %w", err)
	}
	return tracker, table, nil
}

func buildModule(me moduleEntry) (*model.Module, error) {
	if me.Width <= 0 || me.Length <= 0 {
		return nil, fmt.Errorf("module footprint %gx%g is not positive", me.Width, me.Length)
	}
	mod := &model.Module{
		Ring:                  me.Ring,
		Phi:                   me.Phi,
		Side:                  me.Side,
		Center:                me.Center.vec(),
		Normal:                me.Normal.vec().Unit(),
		Width:                 me.Width,
		Length:                me.Length,
		Thickness:             me.Thickness,
		MinWidth:              me.MinWidth,
		MaxWidth:              me.MaxWidth,
		NumSensors:            me.NumSensors,
		SensorThickness:       me.SensorThickness,
		SensorGap:             me.SensorGap,
		FrontEndHybridWidth:   me.FrontEndHybridWidth,
		ServiceHybridWidth:    me.ServiceHybridWidth,
		HybridThickness:       me.HybridThickness,
		SupportPlateThickness: me.SupportPlateThickness,
		Type:                  me.Type,
		Flipped:               me.Flipped,
		TiltAngle:             me.TiltAngle * math.Pi / 180,
		StereoRotation:        me.StereoRotation * math.Pi / 180,
		RadiationLength:       me.RadiationLength,
		InteractionLength:     me.InteractionLength,
	}
	if mod.MinWidth == 0 {
		mod.MinWidth = mod.Width
	}
	if mod.MaxWidth == 0 {
		mod.MaxWidth = mod.Width
	}
	if me.Rectangular != nil {
		mod.Rectangular = *me.Rectangular
	} else {
		mod.Rectangular = mod.MinWidth == mod.MaxWidth
	}
	if mod.NumSensors == 0 {
		mod.NumSensors = 1
	}
	mod.InnerSensor = model.Sensor(me.InnerSensor)
	mod.OuterSensor = model.Sensor(me.OuterSensor)
	if mod.NumSensors == 1 {
		mod.OuterSensor = mod.InnerSensor
	}

	switch len(me.Vertices) {
	case 4:
		for i, v := range me.Vertices {
			mod.BasePoly[i] = v.vec()
		}
	case 0:
		mod.BasePoly = derivePoly(mod, me.WidthAxis)
	default:
		return nil, fmt.Errorf("expected 4 vertices, got %d", len(me.Vertices))
	}

	for _, ms := range me.Masses {
		target, ok := massTargets[ms.Target]
		if !ok {
			return nil, fmt.Errorf("unknown mass target %q", ms.Target)
		}
		mod.Masses = append(mod.Masses, model.MassContribution{
			ElementTag: ms.Element,
			Component:  ms.Component,
			Target:     target,
			Grams:      ms.Grams,
		})
	}
	return mod, nil
}

// derivePoly constructs the rectangular base outline from the module's
// center and orientation. Without an explicit width axis the outline is
// oriented the conventional way: width tangential for a barrel module
// (normal near the xy plane), width along x for an endcap module (normal
// near the z axis).
func derivePoly(mod *model.Module, widthAxis *vectorEntry) model.Polygon {
	n := mod.Normal
	var w model.Vector3
	if widthAxis != nil {
		w = widthAxis.vec().Unit()
	} else if math.Abs(n.Z) > 0.9 {
		w = model.Vector3{X: 1}
	} else {
		w = model.Vector3{Z: 1}.Cross(n).Unit()
	}
	l := n.Cross(w).Unit()

	hw := w.Scale(mod.Width / 2)
	hl := l.Scale(mod.Length / 2)
	c := mod.Center
	return model.Polygon{
		c.Sub(hw).Sub(hl),
		c.Sub(hw).Add(hl),
		c.Add(hw).Add(hl),
		c.Add(hw).Sub(hl),
	}
}

func buildInactives(entries []inactiveEntry) ([]*model.InactiveElement, error) {
	var out []*model.InactiveElement
	for i, ie := range entries {
		cat, ok := categories[ie.Category]
		if !ok {
			return nil, fmt.Errorf("entry %d: unknown category %q", i+1, ie.Category)
		}
		el := &model.InactiveElement{
			Category:    cat,
			InnerRadius: ie.InnerRadius,
			RWidth:      ie.RWidth,
			ZOffset:     ie.ZOffset,
			ZLength:     ie.ZLength,
		}
		for _, m := range ie.Masses {
			el.Masses = append(el.Masses, model.LocalMass{ElementTag: m.Element, Grams: m.Grams})
		}
		out = append(out, el)
	}
	return out, nil
}
