package game_object

import (
	"sync/atomic"

	"github.com/ember3d/ember-go/common"
	"github.com/ember3d/ember-go/engine/light"
)

type gameObject struct {
	id             uint64
	enabled        atomic.Bool
	ephemeral      bool
	position       [3]float32
	rotation       [3]float32
	scale          [3]float32
	boundingRadius float32
	attachedLight  light.Light

	// version increments on every transform mutation so the scene can detect
	// moved objects and sync their attached lights without per-field diffing.
	version uint64
}

// GameObject defines the interface for a scene entity: a transform, a
// bounding radius for spatial queries, and an optional attached light that
// the scene keeps registered and positioned on the object's behalf.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Enabled returns whether this object is enabled for rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Ephemeral returns whether this object is ephemeral.
	// Ephemeral objects are not persisted in the scene's registry when added.
	//
	// Returns:
	//   - bool: true if ephemeral
	Ephemeral() bool

	// Position returns the object's world-space position.
	//
	// Returns:
	//   - x, y, z: position components
	Position() (x, y, z float32)

	// Rotation returns the object's Euler rotation in radians.
	//
	// Returns:
	//   - rx, ry, rz: rotation angles
	Rotation() (rx, ry, rz float32)

	// Scale returns the object's per-axis scale factors.
	//
	// Returns:
	//   - sx, sy, sz: scale components
	Scale() (sx, sy, sz float32)

	// BoundingRadius returns the object's unscaled bounding sphere radius.
	//
	// Returns:
	//   - float32: the local-space bounding radius
	BoundingRadius() float32

	// BoundingSphere returns the object's world-space bounding sphere:
	// centered on the position, radius scaled by the largest scale component
	// so non-uniform scaling never shrinks the bounds.
	//
	// Returns:
	//   - common.Sphere: the world-space bounding sphere
	BoundingSphere() common.Sphere

	// Version returns the object's transform version: a monotonically
	// increasing counter bumped by every transform mutation.
	//
	// Returns:
	//   - uint64: the current transform version
	Version() uint64

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// SetEnabled sets whether the object is enabled for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetPosition updates the object's world-space position.
	//
	// Parameters:
	//   - x, y, z: new position components
	SetPosition(x, y, z float32)

	// SetRotation updates the object's Euler rotation.
	//
	// Parameters:
	//   - rx, ry, rz: new rotation angles in radians
	SetRotation(rx, ry, rz float32)

	// SetScale updates the object's scale factors.
	//
	// Parameters:
	//   - sx, sy, sz: new scale factors
	SetScale(sx, sy, sz float32)

	// SetBoundingRadius sets the local-space bounding sphere radius.
	//
	// Parameters:
	//   - radius: the bounding radius
	SetBoundingRadius(radius float32)

	// Light returns the Light attached to this object, or nil if none is set.
	//
	// Returns:
	//   - light.Light: the attached light or nil
	Light() light.Light

	// SetLight attaches a Light to this object. When the object is added to a
	// scene, the scene registers the light with its light registry and syncs
	// the light's position from the object's transform each frame. Pass nil
	// to detach.
	//
	// Parameters:
	//   - l: the Light to attach, or nil to detach
	SetLight(l light.Light)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the given options.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		scale: [3]float32{1, 1, 1},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	obj.version = 0
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Ephemeral() bool {
	return g.ephemeral
}

func (g *gameObject) Position() (x, y, z float32) {
	return g.position[0], g.position[1], g.position[2]
}

func (g *gameObject) Rotation() (rx, ry, rz float32) {
	return g.rotation[0], g.rotation[1], g.rotation[2]
}

func (g *gameObject) Scale() (sx, sy, sz float32) {
	return g.scale[0], g.scale[1], g.scale[2]
}

func (g *gameObject) BoundingRadius() float32 {
	return g.boundingRadius
}

func (g *gameObject) BoundingSphere() common.Sphere {
	return common.Sphere{
		Center: g.position,
		Radius: g.boundingRadius * max(g.scale[0], g.scale[1], g.scale[2]),
	}
}

func (g *gameObject) Version() uint64 {
	return g.version
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.position = [3]float32{x, y, z}
	g.version++
}

func (g *gameObject) SetRotation(rx, ry, rz float32) {
	g.rotation = [3]float32{rx, ry, rz}
	g.version++
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.scale = [3]float32{sx, sy, sz}
	g.version++
}

func (g *gameObject) SetBoundingRadius(radius float32) {
	g.boundingRadius = radius
	g.version++
}

func (g *gameObject) Light() light.Light {
	return g.attachedLight
}

func (g *gameObject) SetLight(l light.Light) {
	g.attachedLight = l
}
