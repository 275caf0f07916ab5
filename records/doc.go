// Package records defines the normalized geometry/material description
// records produced by an extraction run.
//
// These types are the user-facing output model. An extraction run fills a
// [Bundle] with ordered collections of every record kind; a downstream
// serializer turns the bundle into its textual form, resolving references
// purely by string key.
//
// # Record kinds
//
//   - [Element] - elementary materials with derived atomic properties
//   - [Composite] - material mixtures with normalized mass fractions
//   - [Shape] - geometric primitives ([ShapeKind])
//   - [ShapeOperation] - boolean combinations of named shapes
//   - [LogicalVolume] - (name, shape, material) bindings
//   - [Placement] - positioned volume copies
//   - [Rotation] - named six-angle orientations, held in a
//     [RotationRegistry]
//   - [AlgorithmCall] - procedural replication directives
//   - [TopologySpec] - structural-role groupings of volume selectors
//   - [RadiationLengthSummary] - per-layer/disc material averages
//
// # Naming contract
//
// Every emitted name is unique within its record kind for the run.
// References may carry a namespace qualifier ("tracker:Layer1"); names
// qualified with a foreign namespace resolve outside the bundle.
// [Bundle.Validate] checks the contract.
package records
