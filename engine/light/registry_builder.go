package light

// RegistryBuilderOption is a function that configures a Registry instance during construction.
type RegistryBuilderOption func(*registryImpl)

// WithCellSize is an option builder that sets the grid cell extents. Spatial
// placement uses these extents from the first Add onward, so configuring the
// size at construction avoids the full rebuild SetCellSize performs later.
//
// Parameters:
//   - x: cell extent along the x axis
//   - y: cell extent along the y axis
//   - z: cell extent along the z axis
//
// Returns:
//   - RegistryBuilderOption: a function that applies the cell size option to a registryImpl
func WithCellSize(x, y, z float32) RegistryBuilderOption {
	return func(r *registryImpl) {
		r.cellSize = [3]float32{x, y, z}
	}
}

// WithAmbientColor is an option builder that sets the scene's ambient light
// color.
//
// Parameters:
//   - r: the red color component
//   - g: the green color component
//   - b: the blue color component
//
// Returns:
//   - RegistryBuilderOption: a function that applies the ambient color option to a registryImpl
func WithAmbientColor(r, g, b float32) RegistryBuilderOption {
	return func(reg *registryImpl) {
		reg.ambientColor = [3]float32{r, g, b}
	}
}
