package records

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/multierr"
)

// FractionTolerance is the permitted deviation of a composite's summed
// mass fractions from 1.
const FractionTolerance = 1e-9

// RotationRegistry owns the named rotations of one extraction run.
// Rotations are registered once per name; later registrations of the same
// name are ignored.
type RotationRegistry struct {
	byName map[string]Rotation
	order  []string
}

// NewRotationRegistry returns an empty registry.
func NewRotationRegistry() *RotationRegistry {
	return &RotationRegistry{byName: make(map[string]Rotation)}
}

// Register inserts the rotation if its name is not yet present and reports
// whether it was inserted.
func (r *RotationRegistry) Register(rot Rotation) bool {
	if _, ok := r.byName[rot.Name]; ok {
		return false
	}
	r.byName[rot.Name] = rot
	r.order = append(r.order, rot.Name)
	return true
}

// Get looks up a rotation by name.
func (r *RotationRegistry) Get(name string) (Rotation, bool) {
	rot, ok := r.byName[name]
	return rot, ok
}

// Names returns the registered names in registration order.
func (r *RotationRegistry) Names() []string {
	return append([]string(nil), r.order...)
}

// Len returns the number of registered rotations.
func (r *RotationRegistry) Len() int {
	return len(r.order)
}

// Bundle is the complete, ordered output of one extraction run. All
// collections are rebuilt from empty at run start and owned exclusively by
// the run; the downstream serializer resolves references purely by string
// key.
type Bundle struct {
	Elements        []Element
	Composites      []Composite
	Shapes          []Shape
	ShapeOperations []ShapeOperation
	Logic           []LogicalVolume
	Placements      []Placement
	Algorithms      []AlgorithmCall
	Rotations       *RotationRegistry
	Topology        []TopologySpec
	RadiationLength []RadiationLengthSummary
}

// NewBundle returns an empty bundle with an initialized rotation registry.
func NewBundle() *Bundle {
	return &Bundle{Rotations: NewRotationRegistry()}
}

// external reports whether a reference name lives outside the bundle's own
// namespace, e.g. "pixbar:Barrel". Such names resolve in a sibling
// description and are not checked here.
func external(ref, namespace string) bool {
	i := strings.IndexByte(ref, ':')
	return i >= 0 && ref[:i] != namespace
}

// localName strips the namespace qualifier from a reference.
func localName(ref string) string {
	if i := strings.IndexByte(ref, ':'); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

// Validate performs the local consistency checks the downstream serializer
// relies on: unique names per record kind, fraction sums within tolerance,
// and resolvable shape/material/volume/rotation references. The namespace
// argument names the bundle's own reference namespace; references
// qualified with any other namespace are assumed external and skipped.
// All violations are reported, combined into one error.
func (b *Bundle) Validate(namespace string) error {
	var err error

	shapeNames := make(map[string]bool, len(b.Shapes)+len(b.ShapeOperations))
	for _, s := range b.Shapes {
		if shapeNames[s.Name] {
			err = multierr.Append(err, fmt.Errorf("duplicate shape name %q", s.Name))
		}
		shapeNames[s.Name] = true
	}
	for _, op := range b.ShapeOperations {
		if shapeNames[op.Name] {
			err = multierr.Append(err, fmt.Errorf("duplicate shape name %q", op.Name))
		}
		if !shapeNames[op.SolidA] {
			err = multierr.Append(err, fmt.Errorf("shape operation %q: unknown operand %q", op.Name, op.SolidA))
		}
		if !shapeNames[op.SolidB] {
			err = multierr.Append(err, fmt.Errorf("shape operation %q: unknown operand %q", op.Name, op.SolidB))
		}
		shapeNames[op.Name] = true
	}

	materialNames := make(map[string]bool, len(b.Elements)+len(b.Composites))
	for _, e := range b.Elements {
		if materialNames[e.Tag] {
			err = multierr.Append(err, fmt.Errorf("duplicate element tag %q", e.Tag))
		}
		materialNames[e.Tag] = true
	}
	for _, c := range b.Composites {
		if materialNames[c.Name] {
			err = multierr.Append(err, fmt.Errorf("duplicate composite name %q", c.Name))
		}
		materialNames[c.Name] = true
		var sum float64
		for _, f := range c.Components {
			sum += f.Fraction
		}
		if math.Abs(sum-1.0) > FractionTolerance {
			err = multierr.Append(err, fmt.Errorf("composite %q: fractions sum to %v", c.Name, sum))
		}
	}

	volumeNames := make(map[string]bool, len(b.Logic))
	for _, l := range b.Logic {
		if volumeNames[l.Name] {
			err = multierr.Append(err, fmt.Errorf("duplicate logical volume %q", l.Name))
		}
		volumeNames[l.Name] = true
		if !external(l.ShapeRef, namespace) && !shapeNames[localName(l.ShapeRef)] {
			err = multierr.Append(err, fmt.Errorf("logical volume %q: unknown shape %q", l.Name, l.ShapeRef))
		}
		if !external(l.MaterialRef, namespace) && !materialNames[localName(l.MaterialRef)] {
			err = multierr.Append(err, fmt.Errorf("logical volume %q: unknown material %q", l.Name, l.MaterialRef))
		}
	}

	for _, p := range b.Placements {
		if !external(p.Parent, namespace) && !volumeNames[localName(p.Parent)] {
			err = multierr.Append(err, fmt.Errorf("placement of %q: unknown parent %q", p.Child, p.Parent))
		}
		if !external(p.Child, namespace) && !volumeNames[localName(p.Child)] {
			err = multierr.Append(err, fmt.Errorf("placement in %q: unknown child %q", p.Parent, p.Child))
		}
		if p.RotationRef != "" && !external(p.RotationRef, namespace) {
			if _, ok := b.Rotations.Get(localName(p.RotationRef)); !ok {
				err = multierr.Append(err, fmt.Errorf("placement of %q: unknown rotation %q", p.Child, p.RotationRef))
			}
		}
	}

	specNames := make(map[string]bool, len(b.Topology))
	for _, t := range b.Topology {
		if specNames[t.Name] {
			err = multierr.Append(err, fmt.Errorf("duplicate topology spec %q", t.Name))
		}
		specNames[t.Name] = true
	}

	return err
}

// SortedRotations returns the registered rotations ordered by name. The
// registry itself preserves registration order; this accessor serves
// serializers that want a name-sorted view.
func (b *Bundle) SortedRotations() []Rotation {
	names := b.Rotations.Names()
	sort.Strings(names)
	rots := make([]Rotation, 0, len(names))
	for _, n := range names {
		rot, _ := b.Rotations.Get(n)
		rots = append(rots, rot)
	}
	return rots
}
