package game_object

import "github.com/ember3d/ember-go/engine/light"

// GameObjectBuilderOption is a function that configures a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithPosition is an option builder that sets the object's initial world-space position.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the position option to a gameObject
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.position = [3]float32{x, y, z}
	}
}

// WithRotation is an option builder that sets the object's initial Euler rotation in radians.
//
// Parameters:
//   - rx, ry, rz: rotation angles
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the rotation option to a gameObject
func WithRotation(rx, ry, rz float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.rotation = [3]float32{rx, ry, rz}
	}
}

// WithScale is an option builder that sets the object's initial scale factors.
//
// Parameters:
//   - sx, sy, sz: scale components
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the scale option to a gameObject
func WithScale(sx, sy, sz float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.scale = [3]float32{sx, sy, sz}
	}
}

// WithBoundingRadius is an option builder that sets the object's local-space
// bounding sphere radius, used for light queries and culling.
//
// Parameters:
//   - radius: the bounding radius
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the bounding radius option to a gameObject
func WithBoundingRadius(radius float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.boundingRadius = radius
	}
}

// WithEphemeral is an option builder that marks the object as ephemeral, meaning
// it is not persisted in the scene's registry when added.
//
// Parameters:
//   - ephemeral: true if the object is ephemeral
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the ephemeral option to a gameObject
func WithEphemeral(ephemeral bool) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.ephemeral = ephemeral
	}
}

// WithLight is an option builder that attaches a light to the object. The
// scene registers attached lights automatically when the object is added.
//
// Parameters:
//   - l: the light to attach
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the light option to a gameObject
func WithLight(l light.Light) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.attachedLight = l
	}
}
