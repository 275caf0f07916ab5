package model

import "math"

// Vector3 represents a 3D point or displacement in the global tracker frame.
// The z axis is the beam axis; radius is measured in the xy plane.
type Vector3 struct {
	X, Y, Z float64
}

// Add returns the component-wise sum of two vectors.
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns the component-wise difference of two vectors.
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns the vector multiplied by a scalar.
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Rho returns the radial distance from the z axis (xy-plane radius).
func (v Vector3) Rho() float64 {
	return math.Hypot(v.X, v.Y)
}

// Phi returns the azimuthal angle in the xy plane, in radians.
func (v Vector3) Phi() float64 {
	return math.Atan2(v.Y, v.X)
}

// WithZ returns a copy of the vector with its z component replaced.
func (v Vector3) WithZ(z float64) Vector3 {
	return Vector3{v.X, v.Y, z}
}

// Cross returns the vector cross product v x other.
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Unit returns the vector scaled to unit length. The zero vector is
// returned unchanged.
func (v Vector3) Unit() Vector3 {
	n := math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}

// Distance calculates the Euclidean distance to another point.
func (v Vector3) Distance(other Vector3) float64 {
	d := v.Sub(other)
	return math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
}

// Midpoint returns the point halfway between two points.
func Midpoint(a, b Vector3) Vector3 {
	return a.Add(b).Scale(0.5)
}

// Polygon is the rectangular base outline of a module, given as four
// vertices in the global frame. Vertex order follows the module's local
// axes: v0 and v3 span the near edge, v1 and v2 the far edge, so that
// (v2+v3)/2 - center points along the local width axis and
// (v1+v2)/2 - center along the local length axis.
type Polygon [4]Vector3

// Vertex returns the i-th vertex. The index is taken modulo 4, which lets
// callers close the outline by asking for vertex 4.
func (p Polygon) Vertex(i int) Vector3 {
	return p[((i%4)+4)%4]
}
