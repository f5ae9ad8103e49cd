package scene

import "github.com/ember3d/ember-go/engine/light"

// SceneBuilderOption is a function that configures a Scene during construction.
type SceneBuilderOption func(*scene)

// WithCellSize is an option builder that sets the light grid's cell extents
// for the scene's light registry.
//
// Parameters:
//   - x: cell extent along the x axis
//   - y: cell extent along the y axis
//   - z: cell extent along the z axis
//
// Returns:
//   - SceneBuilderOption: a function that applies the cell size option to a scene
func WithCellSize(x, y, z float32) SceneBuilderOption {
	return func(s *scene) {
		s.registryOpts = append(s.registryOpts, light.WithCellSize(x, y, z))
	}
}

// WithAmbientColor is an option builder that sets the scene's initial ambient
// light color.
//
// Parameters:
//   - r: the red color component
//   - g: the green color component
//   - b: the blue color component
//
// Returns:
//   - SceneBuilderOption: a function that applies the ambient color option to a scene
func WithAmbientColor(r, g, b float32) SceneBuilderOption {
	return func(s *scene) {
		s.registryOpts = append(s.registryOpts, light.WithAmbientColor(r, g, b))
	}
}

// WithUpdateWorkers is an option builder that overrides the number of worker
// goroutines used for the parallel animation phase of Update. The default is
// NumCPU - 1, minimum 1.
//
// Parameters:
//   - workers: the worker count (values < 1 are clamped to 1)
//
// Returns:
//   - SceneBuilderOption: a function that applies the worker count option to a scene
func WithUpdateWorkers(workers int) SceneBuilderOption {
	return func(s *scene) {
		s.updateWorkers = max(workers, 1)
	}
}
