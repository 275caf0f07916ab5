// Package extract implements the geometry and material analysis that
// turns a [model.Tracker] into a flat [records.Bundle] of shapes,
// materials, volumes, placements and replication directives.
//
// # Analysis passes
//
// A run walks the structure in a fixed order: the barrel and endcap
// container outlines, the elementary materials, the barrel layers, the
// endcap discs, and finally the inactive services and supports. Within a
// layer or disc only the reference modules (positive z, first two
// azimuthal sectors) are analysed; full coverage is reconstructed
// downstream by mirror copies and the emitted replication algorithms.
//
// Each module is decomposed into its hybrid carriers, inter-sensor
// filler and support plate, with the module's mass contributions
// distributed across them and synthesized into per-box composite
// materials. The hybrid-grown, thickness-extruded envelope of the module
// supplies the extrema every enclosing rod, ring, layer and disc volume
// is sized from.
//
// # Determinism
//
// The same model and options always produce byte-identical bundles:
// collections are emitted in traversal order, ring maps are drained in
// ascending ring order, and composite fractions are listed in element-tag
// order.
package extract
