package light

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember3d/ember-go/common"
)

// checkGridInvariant verifies that the cached per-light regions and the cell
// mapping never diverge: every registered light appears exactly once in each
// cell of its cached region and nowhere else, and no empty cell entries persist.
func checkGridInvariant(t *testing.T, reg Registry) {
	t.Helper()
	r := reg.(*registryImpl)

	require.Len(t, r.regions, len(r.lights), "every registered light has cached metadata")

	memberships := make(map[Light]int)
	for c, list := range r.cells {
		require.NotEmpty(t, list, "cell %+v has an empty list entry", c)
		for _, l := range list {
			region, ok := r.regions[l]
			require.True(t, ok, "cell %+v references an untracked light", c)
			require.True(t, region.Contains(c), "light found in cell %+v outside its cached region %+v", c, region)
			memberships[l]++
		}
	}
	for l, region := range r.regions {
		assert.Equal(t, region.CellCount(), memberships[l], "light occupies a different cell count than its cached region")
	}
}

func TestAddPlacesLight(t *testing.T) {
	reg := NewRegistry()
	l := NewLight(LightTypePoint, WithPosition(10, 20, 30), WithRange(50))

	require.NoError(t, reg.Add(l))
	assert.Equal(t, 1, reg.Count())

	// Round-trip: querying with the light's own bounding sphere returns it.
	result := reg.Query(l.BoundingSphere())
	require.Len(t, result, 1)
	assert.Same(t, l, result[0])

	checkGridInvariant(t, reg)
}

func TestAddRejectsOwnedLight(t *testing.T) {
	reg := NewRegistry()
	other := NewRegistry()
	l := NewLight(LightTypePoint, WithRange(25))

	require.NoError(t, reg.Add(l))

	// Same registry.
	err := reg.Add(l)
	require.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, 1, reg.Count(), "failed Add must not mutate")

	// Different registry.
	err = other.Add(l)
	require.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, 0, other.Count(), "failed Add must not mutate")
	assert.Empty(t, other.Query(l.BoundingSphere()))
}

func TestRemoveRejectsForeignLight(t *testing.T) {
	reg := NewRegistry()
	other := NewRegistry()
	owned := NewLight(LightTypePoint)
	unowned := NewLight(LightTypePoint)

	require.NoError(t, reg.Add(owned))

	require.ErrorIs(t, other.Remove(owned), ErrInvalidState)
	require.ErrorIs(t, reg.Remove(unowned), ErrInvalidState)

	// The owning registry is untouched by the failed foreign Remove.
	assert.Equal(t, 1, reg.Count())
	checkGridInvariant(t, reg)
}

func TestRemoveCompleteness(t *testing.T) {
	reg := NewRegistry()
	l := NewLight(LightTypePoint, WithPosition(100, 100, 100), WithRange(400))
	require.NoError(t, reg.Add(l))
	require.NoError(t, reg.Remove(l))

	assert.Equal(t, 0, reg.Count())
	assert.Empty(t, reg.Query(common.Sphere{Center: [3]float32{100, 100, 100}, Radius: 5000}))

	r := reg.(*registryImpl)
	assert.Empty(t, r.cells, "no cell may reference a removed light")
	assert.Empty(t, r.regions)

	// A removed light is free to join another registry.
	other := NewRegistry()
	require.NoError(t, other.Add(l))
}

func TestUpdateTransformIdempotent(t *testing.T) {
	reg := NewRegistry()
	l := NewLight(LightTypePoint, WithPosition(-40, 0, 300), WithRange(120))
	require.NoError(t, reg.Add(l))

	r := reg.(*registryImpl)
	reg.UpdateTransform(l)
	cellsAfterFirst := make(map[Cell][]Light, len(r.cells))
	for c, list := range r.cells {
		cellsAfterFirst[c] = append([]Light(nil), list...)
	}
	regionAfterFirst := r.regions[l]

	reg.UpdateTransform(l)
	assert.Equal(t, cellsAfterFirst, r.cells)
	assert.Equal(t, regionAfterFirst, r.regions[l])
	checkGridInvariant(t, reg)
}

func TestUpdateTransformMove(t *testing.T) {
	reg := NewRegistry()
	l := NewLight(LightTypePoint, WithPosition(0, 0, 0), WithRange(10))
	require.NoError(t, reg.Add(l))

	l.SetPosition(5000, 0, 0)
	reg.UpdateTransform(l)

	assert.Empty(t, reg.Query(common.Sphere{Center: [3]float32{0, 0, 0}, Radius: 10}),
		"old placement must be vacated")
	result := reg.Query(common.Sphere{Center: [3]float32{5000, 0, 0}, Radius: 10})
	require.Len(t, result, 1)
	assert.Same(t, l, result[0])

	checkGridInvariant(t, reg)
}

func TestQueryDeduplicatesMultiCellLight(t *testing.T) {
	reg := NewRegistry()
	// Radius 300 on a 250-unit grid spans at least 3 cells per axis.
	l := NewLight(LightTypePoint, WithPosition(125, 125, 125), WithRange(300))
	require.NoError(t, reg.Add(l))

	require.Greater(t, reg.(*registryImpl).regions[l].CellCount(), 1)

	result := reg.Query(common.Sphere{Center: [3]float32{125, 125, 125}, Radius: 600})
	assert.Len(t, result, 1, "a light stored in N cells appears once per query")
}

func TestQueryFiltersDisabledLights(t *testing.T) {
	reg := NewRegistry()
	l := NewLight(LightTypePoint, WithPosition(0, 0, 0), WithRange(50), WithEnabled(false))
	require.NoError(t, reg.Add(l))

	// Placed in the grid, but never returned while disabled.
	assert.NotEmpty(t, reg.(*registryImpl).cells)
	assert.Empty(t, reg.Query(l.BoundingSphere()))

	l.SetEnabled(true)
	result := reg.Query(l.BoundingSphere())
	require.Len(t, result, 1)
}

func TestQueryEmptyGridFastPath(t *testing.T) {
	reg := NewRegistry()
	result := reg.Query(common.Sphere{Center: [3]float32{1, 2, 3}, Radius: 1e6})
	assert.Empty(t, result)
}

func TestQueryNoOverlap(t *testing.T) {
	reg := NewRegistry()
	l := NewLight(LightTypePoint, WithPosition(0, 0, 0), WithRange(10))
	require.NoError(t, reg.Add(l))

	result := reg.Query(common.Sphere{Center: [3]float32{2000, 2000, 2000}, Radius: 1})
	assert.Empty(t, result)
}

func TestQuerySharedCellReturnsBothOnce(t *testing.T) {
	reg := NewRegistry()
	// Both ranges reach into cell (0,0,0) from opposite sides.
	a := NewLight(LightTypePoint, WithPosition(20, 125, 125), WithRange(40))
	b := NewLight(LightTypePoint, WithPosition(230, 125, 125), WithRange(40))
	require.NoError(t, reg.Add(a))
	require.NoError(t, reg.Add(b))

	result := reg.Query(common.Sphere{Center: [3]float32{125, 125, 125}, Radius: 30})
	require.Len(t, result, 2)
	assert.Same(t, a, result[0], "within a cell, insertion order is preserved")
	assert.Same(t, b, result[1])
}

func TestQueryOrderCellMajor(t *testing.T) {
	reg := NewRegistry()
	// Lights in distinct cells along x; registration order reversed so the
	// result order proves cells are visited ascending, not insertion-ordered.
	far := NewLight(LightTypePoint, WithPosition(625, 125, 125), WithRange(40))
	near := NewLight(LightTypePoint, WithPosition(125, 125, 125), WithRange(40))
	require.NoError(t, reg.Add(far))
	require.NoError(t, reg.Add(near))

	result := reg.Query(common.Sphere{Center: [3]float32{375, 125, 125}, Radius: 400})
	require.Len(t, result, 2)
	assert.Same(t, near, result[0])
	assert.Same(t, far, result[1])
}

func TestSetCellSizeRebuild(t *testing.T) {
	reg := NewRegistry()
	a := NewLight(LightTypePoint, WithPosition(0, 0, 0), WithRange(60))
	b := NewLight(LightTypePoint, WithPosition(900, -300, 450), WithRange(120))
	require.NoError(t, reg.Add(a))
	require.NoError(t, reg.Add(b))

	reg.SetCellSize([3]float32{100, 100, 100})
	assert.Equal(t, [3]float32{100, 100, 100}, reg.CellSize())
	checkGridInvariant(t, reg)

	// Queries behave identically after the rebuild.
	resA := reg.Query(a.BoundingSphere())
	require.Len(t, resA, 1)
	assert.Same(t, a, resA[0])
	resB := reg.Query(b.BoundingSphere())
	require.Len(t, resB, 1)
	assert.Same(t, b, resB[0])
}

func TestSetCellSizeSameSizeNoOp(t *testing.T) {
	reg := NewRegistry(WithCellSize(200, 200, 200))
	l := NewLight(LightTypePoint, WithRange(30))
	require.NoError(t, reg.Add(l))

	r := reg.(*registryImpl)
	before := r.cells
	reg.SetCellSize([3]float32{200, 200, 200})
	assert.Equal(t, before, r.cells)
	checkGridInvariant(t, reg)
}

func TestAmbientColor(t *testing.T) {
	reg := NewRegistry(WithAmbientColor(0.1, 0.2, 0.3))
	assert.Equal(t, [3]float32{0.1, 0.2, 0.3}, reg.AmbientColor())

	reg.SetAmbientColor([3]float32{1, 1, 1})
	assert.Equal(t, [3]float32{1, 1, 1}, reg.AmbientColor())
}

func TestLightsReturnsCopy(t *testing.T) {
	reg := NewRegistry()
	l := NewLight(LightTypePoint)
	require.NoError(t, reg.Add(l))

	lights := reg.Lights()
	require.Len(t, lights, 1)
	lights[0] = nil
	assert.Equal(t, 1, reg.Count())
	assert.NotNil(t, reg.Lights()[0])
}
