package light

import (
	"github.com/ember3d/ember-go/common"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a light with no position, only direction.
	// Used for large distant sources like the sun or moon.
	LightTypeDirectional LightType = iota

	// LightTypePoint represents a light that emits in all directions from a
	// position, attenuating with distance up to a configurable range.
	LightTypePoint

	// LightTypeSpot represents a light that emits in a cone from a position
	// along a direction, attenuating with both distance and angle from the
	// cone axis.
	LightTypeSpot
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType    LightType
	position     [3]float32
	direction    [3]float32
	color        [3]float32
	intensity    float32
	lightRange   float32
	innerCone    float32 // stored as cos(angle in radians)
	outerCone    float32 // stored as cos(angle in radians)
	enabled      bool
	ephemeral    bool
	castsShadows bool

	// version increments on every parameter mutation so downstream consumers
	// (grid placement, GPU upload caches) can detect changes cheaply.
	version uint64

	// registry is the owning Registry back-reference. A light belongs to at
	// most one registry at a time; the relation is non-owning and is validated
	// by identity in Registry.Add/Remove.
	registry Registry
}

// Light defines the interface for a light source in the scene.
//
// Lights are scene-level entities registered with a Registry, which places
// them into its spatial grid by their bounding sphere (position + range) and
// serves them back to the renderer through range queries. All light types
// share this interface; type-specific properties (e.g. cone angles for spot
// lights) return zero values when not applicable.
//
// Only this package can implement Light: the ownership hooks that bind a
// light to its registry are unexported by design.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type (directional, point, or spot)
	Type() LightType

	// Position returns the world-space position of the light.
	// Meaningless for directional lights.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Direction returns the normalized direction of the light. For
	// directional lights this is the light direction; for spot lights the
	// cone axis. Meaningless for point lights.
	//
	// Returns:
	//   - [3]float32: normalized direction as (x, y, z)
	Direction() [3]float32

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	Color() [3]float32

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Range returns the maximum attenuation distance. Beyond this distance
	// the light contributes zero energy, so Range doubles as the radius of
	// the light's bounding sphere in the spatial grid.
	//
	// Returns:
	//   - float32: the range value
	Range() float32

	// InnerCone returns the cosine of the inner cone half-angle for spot
	// lights. Meaningless for directional and point lights.
	//
	// Returns:
	//   - float32: cos(inner half-angle)
	InnerCone() float32

	// OuterCone returns the cosine of the outer cone half-angle for spot
	// lights. Meaningless for directional and point lights.
	//
	// Returns:
	//   - float32: cos(outer half-angle)
	OuterCone() float32

	// Enabled returns whether this light is visible to queries. Disabled
	// lights keep their grid placement but are filtered from Registry.Query
	// results and skipped during GPU buffer marshaling.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// Ephemeral returns whether this light is a short-lived particle-emitted
	// light. Ephemeral lights are managed by their owning emitter rather than
	// persisted with a scene object.
	//
	// Returns:
	//   - bool: true if ephemeral
	Ephemeral() bool

	// CastsShadows returns whether this light is eligible for shadow map
	// generation by the host renderer.
	//
	// Returns:
	//   - bool: true if the light casts shadows
	CastsShadows() bool

	// BoundingSphere returns the light's effective range as a bounding
	// sphere: centered on the light's position with radius equal to Range.
	// This is the sphere the Registry uses for grid placement.
	//
	// Returns:
	//   - common.Sphere: the bounding sphere
	BoundingSphere() common.Sphere

	// Version returns the light's parameters version: a monotonically
	// increasing counter bumped by every Set* mutator. Consumers compare
	// versions to detect changes without diffing individual fields.
	//
	// Returns:
	//   - uint64: the current parameters version
	Version() uint64

	// SetPosition sets the world-space position of the light. The owning
	// collaborator must call Registry.UpdateTransform afterwards; the
	// registry does not observe transform changes on its own.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetDirection sets the direction of the light and normalizes it.
	//
	// Parameters:
	//   - x, y, z: direction components (will be normalized)
	SetDirection(x, y, z float32)

	// SetColor sets the RGB color of the light.
	//
	// Parameters:
	//   - r, g, b: color components
	SetColor(r, g, b float32)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetRange sets the maximum attenuation distance. Like SetPosition, this
	// changes the bounding sphere and requires a Registry.UpdateTransform
	// call to refresh grid placement.
	//
	// Parameters:
	//   - lightRange: the range value
	SetRange(lightRange float32)

	// SetSpotCone sets the inner and outer cone half-angles for spot lights.
	// Angles are specified in degrees and stored internally as cosines.
	//
	// Parameters:
	//   - innerDeg: inner cone half-angle in degrees
	//   - outerDeg: outer cone half-angle in degrees
	SetSpotCone(innerDeg, outerDeg float32)

	// SetEnabled sets whether the light is visible to queries.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetEphemeral marks the light as ephemeral (particle-emitted).
	//
	// Parameters:
	//   - ephemeral: true if ephemeral
	SetEphemeral(ephemeral bool)

	// SetCastsShadows sets whether the light is eligible for shadow mapping.
	//
	// Parameters:
	//   - castsShadows: true to enable shadow casting
	SetCastsShadows(castsShadows bool)

	// owner returns the registry this light currently belongs to, or nil.
	owner() Registry

	// setOwner sets or clears the owning-registry back-reference.
	setOwner(r Registry)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with sensible defaults
// and any provided options applied. The returned light has version 0; options
// configure initial state without counting as mutations.
//
// Parameters:
//   - lightType: the kind of light to create (directional, point, or spot)
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType:    lightType,
		position:     [3]float32{0, 0, 0},
		direction:    [3]float32{0, -1, 0},
		color:        [3]float32{1, 1, 1},
		intensity:    1.0,
		lightRange:   10.0,
		innerCone:    0.9063, // cos(25°)
		outerCone:    0.8192, // cos(35°)
		enabled:      true,
		ephemeral:    false,
		castsShadows: false,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.version = 0
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() [3]float32 {
	return l.position
}

func (l *lightImpl) Direction() [3]float32 {
	return l.direction
}

func (l *lightImpl) Color() [3]float32 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Range() float32 {
	return l.lightRange
}

func (l *lightImpl) InnerCone() float32 {
	return l.innerCone
}

func (l *lightImpl) OuterCone() float32 {
	return l.outerCone
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) Ephemeral() bool {
	return l.ephemeral
}

func (l *lightImpl) CastsShadows() bool {
	return l.castsShadows
}

func (l *lightImpl) BoundingSphere() common.Sphere {
	return common.Sphere{Center: l.position, Radius: l.lightRange}
}

func (l *lightImpl) Version() uint64 {
	return l.version
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.position = [3]float32{x, y, z}
	l.version++
}

func (l *lightImpl) SetDirection(x, y, z float32) {
	l.direction = common.Normalize3(x, y, z)
	l.version++
}

func (l *lightImpl) SetColor(r, g, b float32) {
	l.color = [3]float32{r, g, b}
	l.version++
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
	l.version++
}

func (l *lightImpl) SetRange(lightRange float32) {
	l.lightRange = lightRange
	l.version++
}

func (l *lightImpl) SetSpotCone(innerDeg, outerDeg float32) {
	l.innerCone = common.CosDeg(innerDeg)
	l.outerCone = common.CosDeg(outerDeg)
	l.version++
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
	l.version++
}

func (l *lightImpl) SetEphemeral(ephemeral bool) {
	l.ephemeral = ephemeral
	l.version++
}

func (l *lightImpl) SetCastsShadows(castsShadows bool) {
	l.castsShadows = castsShadows
	l.version++
}

func (l *lightImpl) owner() Registry {
	return l.registry
}

func (l *lightImpl) setOwner(r Registry) {
	l.registry = r
}
