// Package materials provides the material lookup table and composite
// material synthesis used by extraction.
//
// The [Table] maps element tags to measured bulk properties; [Elements]
// derives the elemental material records from it, back-calculating atomic
// weight and number from the interaction and radiation lengths. Unphysical
// inputs are a fatal data defect, not a fallback.
//
// [MassMap] accumulates elemental masses and [Synthesize] normalizes them
// into a [records.Composite]. Fractions always sum to 1 over the included
// elements and are independent of accumulation order. Density formulas for
// the three volume classes (module footprint, annular tube, box
// sub-volume) live here so that both module decomposition and
// service/support aggregation share one mass/volume bookkeeping.
package materials
