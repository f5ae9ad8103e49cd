package common

import "math"

// Normalize3 normalizes a 3-component vector. Returns a zero vector if the
// input has zero length.
//
// Parameters:
//   - x, y, z: vector components
//
// Returns:
//   - [3]float32: the normalized vector, or zeros for a zero-length input
func Normalize3(x, y, z float32) [3]float32 {
	length := float32(math.Sqrt(float64(x*x + y*y + z*z)))
	if length == 0 {
		return [3]float32{0, 0, 0}
	}
	inv := 1.0 / length
	return [3]float32{x * inv, y * inv, z * inv}
}

// Length3 returns the Euclidean length of a 3-component vector.
//
// Parameters:
//   - v: the vector as (x, y, z)
//
// Returns:
//   - float32: the vector length
func Length3(v [3]float32) float32 {
	return float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
}

// CosDeg converts an angle in degrees to the cosine of that angle in radians.
//
// Parameters:
//   - deg: the angle in degrees
//
// Returns:
//   - float32: cos(deg converted to radians)
func CosDeg(deg float32) float32 {
	return float32(math.Cos(float64(deg) * math.Pi / 180.0))
}

// FloorDiv divides v by size and rounds toward negative infinity. Used to map
// a world-space coordinate to its grid cell index: true floor (not truncation
// toward zero) ensures negative coordinates land in the correct cell.
//
// Parameters:
//   - v: the world-space coordinate
//   - size: the cell extent along this axis
//
// Returns:
//   - int: floor(v / size)
func FloorDiv(v, size float32) int {
	return int(math.Floor(float64(v) / float64(size)))
}

// CeilDiv divides v by size and rounds toward positive infinity. Used as the
// exclusive upper bound of a cell range so that enumerating [floor, ceil)
// visits every overlapped cell exactly once.
//
// Parameters:
//   - v: the world-space coordinate
//   - size: the cell extent along this axis
//
// Returns:
//   - int: ceil(v / size)
func CeilDiv(v, size float32) int {
	return int(math.Ceil(float64(v) / float64(size)))
}
