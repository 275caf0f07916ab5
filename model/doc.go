// Package model provides the in-memory detector-structure representation
// consumed by the extraction core.
//
// This package defines the read-only input model: the traversable tracker
// hierarchy and the geometric primitives used throughout extraction. It
// performs no computation of derived geometry; that is the extract
// package's job.
//
// # Structure
//
// A [Tracker] holds ordered barrel [Layer] and endcap [Disc] collections
// plus the [InactiveElement] volumes (services, supports) around them.
// Layers contain rods of [Module] values, discs contain rings of them.
// The [Visitor] interface walks the structure in deterministic model order.
//
// # Modules
//
// A [Module] combines one or two sensors with readout electronics
// (hybrids) and a support plate. Its material list is a sequence of
// [MassContribution] entries, each tagged with the [MassTarget] sub-volume
// the mass belongs to. The sensor-reserved targets never appear in a valid
// mass list.
//
// # Geometry
//
// [Vector3] and [Polygon] are the geometric primitives. All positions are
// in the global tracker frame: z along the beam axis, radius in the xy
// plane.
package model
