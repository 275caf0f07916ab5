package materials

import "fmt"

// SensorSilicon is the element tag of the sensor material. Module-level
// composites exclude it; the active-surface volumes account for it
// instead.
const SensorSilicon = "SenSi"

// Properties are the measured bulk properties of one elementary material.
// Density is in g/cm3, the radiation and interaction lengths in the
// material table's standard units.
type Properties struct {
	Density           float64
	RadiationLength   float64
	InteractionLength float64
}

// Table is the material lookup table: element tag to properties. Entries
// keep insertion order so that derived records are reproducible.
type Table struct {
	order []string
	props map[string]Properties
}

// NewTable returns an empty material table.
func NewTable() *Table {
	return &Table{props: make(map[string]Properties)}
}

// Add inserts or replaces the properties for a tag. First insertion fixes
// the tag's position in iteration order.
func (t *Table) Add(tag string, p Properties) {
	if _, ok := t.props[tag]; !ok {
		t.order = append(t.order, tag)
	}
	t.props[tag] = p
}

// Get looks up the properties for a tag.
func (t *Table) Get(tag string) (Properties, error) {
	p, ok := t.props[tag]
	if !ok {
		return Properties{}, fmt.Errorf("material %q not in table", tag)
	}
	return p, nil
}

// Tags returns the known tags in insertion order.
func (t *Table) Tags() []string {
	return append([]string(nil), t.order...)
}

// Len returns the number of table entries.
func (t *Table) Len() int {
	return len(t.order)
}
