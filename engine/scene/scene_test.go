package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"

	"github.com/ember3d/ember-go/common"
	"github.com/ember3d/ember-go/engine/game_object"
	"github.com/ember3d/ember-go/engine/light"
)

func newTestScene(t *testing.T, options ...SceneBuilderOption) Scene {
	t.Helper()
	return NewScene(t.Name(), append([]SceneBuilderOption{WithUpdateWorkers(2)}, options...)...)
}

func TestAddRegistersAttachedLight(t *testing.T) {
	s := newTestScene(t)
	l := light.NewLight(light.LightTypePoint, light.WithRange(50))
	obj := game_object.NewGameObject(
		game_object.WithPosition(300, 0, 0),
		game_object.WithLight(l),
	)

	id := s.Add(obj)
	assert.NotZero(t, id)
	assert.Same(t, obj, s.Get(id))

	// The light's position is synced from the object's transform on Add.
	assert.Equal(t, [3]float32{300, 0, 0}, l.Position())

	visible := s.VisibleLights(common.Sphere{Center: [3]float32{300, 0, 0}, Radius: 1})
	require.Len(t, visible, 1)
	assert.Same(t, l, visible[0])
}

func TestAddPanicsOnOwnedAttachedLight(t *testing.T) {
	s := newTestScene(t)
	other := newTestScene(t)
	l := light.NewLight(light.LightTypePoint)

	require.NoError(t, s.AddLight(l))
	obj := game_object.NewGameObject(game_object.WithLight(l))

	assert.Panics(t, func() { other.Add(obj) })
}

func TestAddLightDoubleRegistration(t *testing.T) {
	s := newTestScene(t)
	l := light.NewLight(light.LightTypePoint)

	require.NoError(t, s.AddLight(l))
	err := s.AddLight(l)
	require.ErrorIs(t, err, light.ErrInvalidState)
	assert.Len(t, s.Lights(), 1)
}

func TestRemoveDetachesLight(t *testing.T) {
	s := newTestScene(t)
	l := light.NewLight(light.LightTypePoint, light.WithRange(50))
	obj := game_object.NewGameObject(game_object.WithLight(l))

	id := s.Add(obj)
	s.Remove(id)

	assert.Nil(t, s.Get(id))
	assert.Empty(t, s.Lights())
	assert.Empty(t, s.VisibleLights(l.BoundingSphere()))
}

func TestUpdateSyncsMovedObject(t *testing.T) {
	s := newTestScene(t)
	l := light.NewLight(light.LightTypePoint, light.WithRange(10))
	obj := game_object.NewGameObject(game_object.WithLight(l))
	s.Add(obj)

	obj.SetPosition(5000, 0, 0)

	// Placement is stale until the next Update.
	assert.Equal(t, [3]float32{0, 0, 0}, l.Position())
	assert.NotEmpty(t, s.VisibleLights(common.Sphere{Center: [3]float32{0, 0, 0}, Radius: 10}))

	s.Update(0.016)

	assert.Equal(t, [3]float32{5000, 0, 0}, l.Position())
	assert.Empty(t, s.VisibleLights(common.Sphere{Center: [3]float32{0, 0, 0}, Radius: 10}))
	visible := s.VisibleLights(common.Sphere{Center: [3]float32{5000, 0, 0}, Radius: 10})
	require.Len(t, visible, 1)
	assert.Same(t, l, visible[0])
}

func TestUpdateReplacesDirectlyMutatedLight(t *testing.T) {
	s := newTestScene(t)
	l := light.NewLight(light.LightTypePoint, light.WithRange(10))
	require.NoError(t, s.AddLight(l))

	l.SetPosition(1500, 0, 0)
	s.Update(0.016)

	assert.Empty(t, s.VisibleLights(common.Sphere{Center: [3]float32{0, 0, 0}, Radius: 10}))
	assert.Len(t, s.VisibleLights(common.Sphere{Center: [3]float32{1500, 0, 0}, Radius: 10}), 1)
}

func TestUpdateSkipsUnchangedLights(t *testing.T) {
	s := newTestScene(t)
	l := light.NewLight(light.LightTypePoint, light.WithRange(10))
	require.NoError(t, s.AddLight(l))

	v := l.Version()
	s.Update(0.016)
	s.Update(0.016)
	assert.Equal(t, v, l.Version(), "idle frames leave an unchanged light untouched")
}

func TestAnimationDrivesReplacement(t *testing.T) {
	s := newTestScene(t)
	l := light.NewLight(light.LightTypePoint, light.WithPosition(0, 0, 0), light.WithRange(10))
	require.NoError(t, s.AddLight(l))

	// Before the fade the light cannot reach a probe 500 units out.
	probe := common.Sphere{Center: [3]float32{500, 0, 0}, Radius: 1}
	assert.Empty(t, s.VisibleLights(probe))

	s.Animate(light.NewRangeFade(l, 600, 1.0, ease.Linear))
	s.Update(1.0)

	assert.InDelta(t, 600, l.Range(), 1e-3)
	visible := s.VisibleLights(probe)
	require.Len(t, visible, 1)
	assert.Same(t, l, visible[0])
}

func TestFinishedAnimationsAreDropped(t *testing.T) {
	s := newTestScene(t)
	l := light.NewLight(light.LightTypePoint)
	require.NoError(t, s.AddLight(l))
	s.Animate(light.NewIntensityFade(l, 0, 0.5, ease.Linear))

	s.Update(1.0)
	assert.InDelta(t, 0, l.Intensity(), 1e-4)

	// A dropped fade no longer mutates the light on later frames.
	v := l.Version()
	s.Update(1.0)
	assert.Equal(t, v, l.Version())
}

func TestPulseAnimationPersists(t *testing.T) {
	s := newTestScene(t)
	l := light.NewLight(light.LightTypePoint)
	require.NoError(t, s.AddLight(l))
	s.Animate(light.NewPulse(l, 0, 1, 2.0, ease.Linear))

	s.Update(0.5)
	assert.InDelta(t, 0.5, l.Intensity(), 1e-3)
	s.Update(0.5)
	assert.InDelta(t, 1.0, l.Intensity(), 1e-3)
	s.Update(0.5)
	assert.InDelta(t, 0.5, l.Intensity(), 1e-3)
}

func TestLightBufferFor(t *testing.T) {
	s := newTestScene(t, WithAmbientColor(0.2, 0.2, 0.2))
	a := light.NewLight(light.LightTypePoint, light.WithPosition(0, 0, 0), light.WithRange(20))
	b := light.NewLight(light.LightTypePoint, light.WithPosition(5000, 0, 0), light.WithRange(20))
	require.NoError(t, s.AddLight(a))
	require.NoError(t, s.AddLight(b))

	buf := s.LightBufferFor(common.Sphere{Center: [3]float32{0, 0, 0}, Radius: 50})
	assert.Len(t, buf, 16+64, "only the nearby light is packed")
}

func TestLightsFor(t *testing.T) {
	s := newTestScene(t)
	l := light.NewLight(light.LightTypePoint, light.WithPosition(100, 0, 0), light.WithRange(80))
	require.NoError(t, s.AddLight(l))

	obj := game_object.NewGameObject(
		game_object.WithPosition(150, 0, 0),
		game_object.WithBoundingRadius(5),
	)
	s.Add(obj)

	lit := s.LightsFor(obj)
	require.Len(t, lit, 1)
	assert.Same(t, l, lit[0])
}

func TestEphemeralObjectNotInRegistry(t *testing.T) {
	s := newTestScene(t)
	l := light.NewLight(light.LightTypePoint, light.WithRange(30), light.WithEphemeral(true))
	obj := game_object.NewGameObject(
		game_object.WithEphemeral(true),
		game_object.WithPosition(10, 0, 0),
		game_object.WithLight(l),
	)

	id := s.Add(obj)
	assert.Nil(t, s.Get(id), "ephemeral objects are not persisted")
	assert.Equal(t, 0, s.Count())

	// Its light still participates in culling and frame sync.
	assert.Len(t, s.VisibleLights(common.Sphere{Center: [3]float32{10, 0, 0}, Radius: 1}), 1)
	obj.SetPosition(700, 0, 0)
	s.Update(0.016)
	assert.Len(t, s.VisibleLights(common.Sphere{Center: [3]float32{700, 0, 0}, Radius: 1}), 1)
}

func TestDetachLight(t *testing.T) {
	s := newTestScene(t)
	l := light.NewLight(light.LightTypePoint, light.WithRange(30))
	obj := game_object.NewGameObject(game_object.WithLight(l))
	id := s.Add(obj)

	s.DetachLight(obj)
	assert.Empty(t, s.Lights())
	assert.Same(t, obj, s.Get(id), "detaching the light keeps the object")
}

func TestClear(t *testing.T) {
	s := newTestScene(t)
	attached := light.NewLight(light.LightTypePoint)
	free := light.NewLight(light.LightTypePoint)
	s.Add(game_object.NewGameObject(game_object.WithLight(attached)))
	require.NoError(t, s.AddLight(free))
	s.Animate(light.NewPulse(attached, 0, 1, 2.0, ease.Linear))

	s.Clear()

	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.Lights())

	// Cleared lights are released for reuse elsewhere.
	other := newTestScene(t)
	require.NoError(t, other.AddLight(attached))
	require.NoError(t, other.AddLight(free))
}

func TestAmbientColorDelegation(t *testing.T) {
	s := newTestScene(t, WithAmbientColor(0.1, 0.2, 0.3))
	assert.Equal(t, [3]float32{0.1, 0.2, 0.3}, s.AmbientColor())

	s.SetAmbientColor([3]float32{0.5, 0.5, 0.5})
	assert.Equal(t, [3]float32{0.5, 0.5, 0.5}, s.AmbientColor())
	assert.Equal(t, [3]float32{0.5, 0.5, 0.5}, s.LightRegistry().AmbientColor())
}

func TestNameAndActive(t *testing.T) {
	s := NewScene("overworld")
	assert.Equal(t, "overworld", s.Name())
	assert.False(t, s.Active())

	s.SetName("dungeon")
	s.SetActive(true)
	assert.Equal(t, "dungeon", s.Name())
	assert.True(t, s.Active())
}
