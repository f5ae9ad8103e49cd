// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

// Sphere is a bounding sphere approximating an object's spatial extent.
// It is the currency of the light grid: lights are placed by their effective
// range sphere and drawables query by their bounds sphere.
type Sphere struct {
	// Center is the sphere's center point in world space.
	Center [3]float32
	// Radius is the sphere's radius. A zero radius describes a single point.
	// Negative radii are not validated; callers control sphere construction.
	Radius float32
}

// Contains reports whether the given world-space point lies inside or on the
// boundary of the sphere.
//
// Parameters:
//   - p: the point to test as (x, y, z)
//
// Returns:
//   - bool: true if the point is within the sphere
func (s Sphere) Contains(p [3]float32) bool {
	dx := p[0] - s.Center[0]
	dy := p[1] - s.Center[1]
	dz := p[2] - s.Center[2]
	return dx*dx+dy*dy+dz*dz <= s.Radius*s.Radius
}

// Intersects reports whether two spheres overlap. Boundary contact counts as
// an intersection.
//
// Parameters:
//   - o: the other sphere
//
// Returns:
//   - bool: true if the spheres intersect
func (s Sphere) Intersects(o Sphere) bool {
	dx := o.Center[0] - s.Center[0]
	dy := o.Center[1] - s.Center[1]
	dz := o.Center[2] - s.Center[2]
	sum := s.Radius + o.Radius
	return dx*dx+dy*dy+dz*dz <= sum*sum
}
