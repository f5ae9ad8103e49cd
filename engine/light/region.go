package light

import (
	"github.com/ember3d/ember-go/common"
)

// DefaultCellSize is the grid cell extent used by a Registry unless
// overridden via WithCellSize or SetCellSize. 250 world units per axis keeps
// typical point-light ranges within a handful of cells.
var DefaultCellSize = [3]float32{250, 250, 250}

// Cell identifies one cube of the uniform spatial grid by its integer
// (x, y, z) coordinate. Cell coordinates are integral from construction so
// they can serve as map keys without floating-point equality pitfalls.
type Cell struct {
	X, Y, Z int
}

// Region is the half-open range of grid cells [Min, Max) covered by a
// bounding volume: Min is inclusive, Max exclusive on every axis. A sphere
// entirely inside one cell yields Max = Min + (1,1,1).
type Region struct {
	Min Cell
	Max Cell
}

// MinCell computes the inclusive minimum cell coordinate overlapped by the
// given bounding sphere: floor((center - radius) / cellSize) component-wise.
// True floor is used, so negative coordinates round toward negative infinity
// and boundary points are never assigned to the wrong cell.
//
// Malformed spheres (negative radius) are not validated; the arithmetic
// result propagates as-is since callers control sphere construction.
//
// Parameters:
//   - s: the bounding sphere
//   - cellSize: the grid cell extents as (x, y, z)
//
// Returns:
//   - Cell: the minimum cell coordinate (inclusive)
func MinCell(s common.Sphere, cellSize [3]float32) Cell {
	return Cell{
		X: common.FloorDiv(s.Center[0]-s.Radius, cellSize[0]),
		Y: common.FloorDiv(s.Center[1]-s.Radius, cellSize[1]),
		Z: common.FloorDiv(s.Center[2]-s.Radius, cellSize[2]),
	}
}

// MaxCell computes the exclusive maximum cell coordinate overlapped by the
// given bounding sphere: ceil((center + radius) / cellSize) component-wise.
// The range to iterate is [MinCell, MaxCell) on each axis; pairing floor with
// an exclusive ceil bound guarantees every overlapped cell is visited exactly
// once, including spheres touching cell boundaries.
//
// Parameters:
//   - s: the bounding sphere
//   - cellSize: the grid cell extents as (x, y, z)
//
// Returns:
//   - Cell: the maximum cell coordinate (exclusive)
func MaxCell(s common.Sphere, cellSize [3]float32) Cell {
	return Cell{
		X: common.CeilDiv(s.Center[0]+s.Radius, cellSize[0]),
		Y: common.CeilDiv(s.Center[1]+s.Radius, cellSize[1]),
		Z: common.CeilDiv(s.Center[2]+s.Radius, cellSize[2]),
	}
}

// SphereRegion computes the full cell Region covered by a bounding sphere.
//
// Parameters:
//   - s: the bounding sphere
//   - cellSize: the grid cell extents as (x, y, z)
//
// Returns:
//   - Region: the half-open cell range [MinCell, MaxCell)
func SphereRegion(s common.Sphere, cellSize [3]float32) Region {
	return Region{Min: MinCell(s, cellSize), Max: MaxCell(s, cellSize)}
}

// Contains reports whether the given cell lies within the region's half-open
// range.
//
// Parameters:
//   - c: the cell to test
//
// Returns:
//   - bool: true if Min <= c < Max on every axis
func (r Region) Contains(c Cell) bool {
	return c.X >= r.Min.X && c.X < r.Max.X &&
		c.Y >= r.Min.Y && c.Y < r.Max.Y &&
		c.Z >= r.Min.Z && c.Z < r.Max.Z
}

// CellCount returns the number of cells in the region. Degenerate regions
// (Max <= Min on any axis) count zero cells.
//
// Returns:
//   - int: the cell count
func (r Region) CellCount() int {
	dx := r.Max.X - r.Min.X
	dy := r.Max.Y - r.Min.Y
	dz := r.Max.Z - r.Min.Z
	if dx <= 0 || dy <= 0 || dz <= 0 {
		return 0
	}
	return dx * dy * dz
}

// ForEach invokes fn for every cell in the region, in ascending x, then y,
// then z order. This is the canonical grid visit order: queries accumulate
// results in exactly this sequence.
//
// Parameters:
//   - fn: callback invoked once per cell
func (r Region) ForEach(fn func(Cell)) {
	for x := r.Min.X; x < r.Max.X; x++ {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for z := r.Min.Z; z < r.Max.Z; z++ {
				fn(Cell{X: x, Y: y, Z: z})
			}
		}
	}
}
