package light

import (
	"fmt"

	"github.com/ember3d/ember-go/common"
)

// Registry owns the set of active light sources for one scene and maintains a
// uniform spatial grid over them: each registered light occupies every grid
// cell overlapped by its bounding sphere, and cached per-light region
// metadata lets placement updates touch only the cells a light actually
// moved between. Range queries union the light lists of the cells overlapped
// by the query sphere, deduplicate, and filter by the enabled flag.
//
// A Registry is scene-scoped: created with a scene, discarded when the scene
// unloads, and holding no resources beyond its in-memory maps. It performs no
// internal locking — the design assumes a single-threaded game-loop caller,
// and concurrent use of one instance requires external synchronization (the
// scene layer provides it).
type Registry interface {
	// Add registers a light with this registry: sets the light's
	// owning-registry back-reference, appends it to the flat light list, and
	// places it into the grid cells covered by its bounding sphere.
	//
	// Returns an error wrapping ErrInvalidState if the light already belongs
	// to a registry (including this one). On error no state is mutated.
	//
	// Parameters:
	//   - l: the Light to register
	//
	// Returns:
	//   - error: nil on success, ErrInvalidState-wrapped on ownership violation
	Add(l Light) error

	// Remove unregisters a light: clears its owning-registry back-reference,
	// removes it from every grid cell in its cached region (deleting cells
	// that become empty), drops the cached region metadata, and removes it
	// from the flat light list.
	//
	// Returns an error wrapping ErrInvalidState if the light's owner is not
	// this registry. On error no state is mutated.
	//
	// Parameters:
	//   - l: the Light to unregister
	//
	// Returns:
	//   - error: nil on success, ErrInvalidState-wrapped on ownership violation
	Remove(l Light) error

	// UpdateTransform re-places a light in the grid after its position or
	// range changed: removes it from the previously cached cell region (a
	// no-op for a light with no metadata yet), recomputes the region from the
	// light's current bounding sphere, inserts it into every cell of the new
	// region, and overwrites the cached metadata. Idempotent — calling it
	// twice without an intervening change leaves identical grid state.
	//
	// The registry does not observe transform changes on its own; the owning
	// collaborator must call this whenever a registered light's position or
	// range changes, before the next Query that should see the new placement.
	//
	// Parameters:
	//   - l: the registered Light to re-place
	UpdateTransform(l Light)

	// Query returns the deduplicated, enabled lights whose grid placement
	// overlaps the given bounding sphere. Cells are visited in ascending x,
	// then y, then z order, each cell's lights in insertion order, duplicates
	// suppressed first-seen; callers must not rely on result order surviving
	// light removals or insertions. An empty grid returns nil immediately.
	//
	// Parameters:
	//   - bounds: the query bounding sphere
	//
	// Returns:
	//   - []Light: the matching lights, possibly empty
	Query(bounds common.Sphere) []Light

	// CellSize returns the current grid cell extents.
	//
	// Returns:
	//   - [3]float32: the cell size as (x, y, z)
	CellSize() [3]float32

	// SetCellSize reconfigures the grid cell extents. On change the entire
	// grid is cleared and every registered light re-placed — O(total lights),
	// acceptable for a configuration-time operation. Setting the current
	// size is a no-op.
	//
	// Parameters:
	//   - size: the new cell extents as (x, y, z)
	SetCellSize(size [3]float32)

	// AmbientColor returns the scene's ambient light color. Ambient light is
	// single scalar state stored alongside the grid, not grid-managed.
	//
	// Returns:
	//   - [3]float32: the ambient RGB color
	AmbientColor() [3]float32

	// SetAmbientColor sets the scene's ambient light color.
	//
	// Parameters:
	//   - color: the ambient RGB color
	SetAmbientColor(color [3]float32)

	// Lights returns a copy of the flat list of registered lights, in
	// registration order.
	//
	// Returns:
	//   - []Light: the registered lights
	Lights() []Light

	// Count returns the number of registered lights.
	//
	// Returns:
	//   - int: the light count
	Count() int
}

type registryImpl struct {
	lights []Light

	// cells maps a grid cell to the lights overlapping it, in insertion
	// order. Cells with no lights are deleted, never left empty.
	cells map[Cell][]Light

	// regions caches each registered light's last-placed cell region so
	// re-placement removes it from exactly the cells it occupied. Invariant:
	// for every registered light, the cells of regions[l] are exactly the
	// cells whose lists contain l.
	regions map[Light]Region

	cellSize     [3]float32
	ambientColor [3]float32
}

var _ Registry = &registryImpl{}

// NewRegistry creates a new light Registry with the default 250-unit cell
// size and any provided options applied.
//
// Parameters:
//   - opts: functional options to configure the registry
//
// Returns:
//   - Registry: the newly created registry
func NewRegistry(opts ...RegistryBuilderOption) Registry {
	r := &registryImpl{
		cells:    make(map[Cell][]Light),
		regions:  make(map[Light]Region),
		cellSize: DefaultCellSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *registryImpl) Add(l Light) error {
	if l.owner() != nil {
		return fmt.Errorf("%w: light already belongs to a registry", ErrInvalidState)
	}
	l.setOwner(r)
	r.lights = append(r.lights, l)
	r.UpdateTransform(l)
	return nil
}

func (r *registryImpl) Remove(l Light) error {
	if l.owner() != Registry(r) {
		return fmt.Errorf("%w: light does not belong to this registry", ErrInvalidState)
	}
	l.setOwner(nil)
	if region, ok := r.regions[l]; ok {
		r.removeFromCells(l, region)
		delete(r.regions, l)
	}
	for i, existing := range r.lights {
		if existing == l {
			r.lights = append(r.lights[:i], r.lights[i+1:]...)
			break
		}
	}
	return nil
}

func (r *registryImpl) UpdateTransform(l Light) {
	if old, ok := r.regions[l]; ok {
		r.removeFromCells(l, old)
	}
	region := SphereRegion(l.BoundingSphere(), r.cellSize)
	region.ForEach(func(c Cell) {
		r.cells[c] = append(r.cells[c], l)
	})
	r.regions[l] = region
}

func (r *registryImpl) Query(bounds common.Sphere) []Light {
	// Fast path: a grid with zero cells can't match anything.
	if len(r.cells) == 0 {
		return nil
	}

	var result []Light
	seen := make(map[Light]struct{})
	SphereRegion(bounds, r.cellSize).ForEach(func(c Cell) {
		list, ok := r.cells[c]
		if !ok {
			return
		}
		for _, l := range list {
			if !l.Enabled() {
				continue
			}
			if _, dup := seen[l]; dup {
				continue
			}
			seen[l] = struct{}{}
			result = append(result, l)
		}
	})
	return result
}

func (r *registryImpl) CellSize() [3]float32 {
	return r.cellSize
}

func (r *registryImpl) SetCellSize(size [3]float32) {
	if size == r.cellSize {
		return
	}
	r.cellSize = size

	// Full rebuild: drop the grid and cached regions, then re-place every
	// registered light at the new granularity.
	r.cells = make(map[Cell][]Light)
	clear(r.regions)
	for _, l := range r.lights {
		r.UpdateTransform(l)
	}
}

func (r *registryImpl) AmbientColor() [3]float32 {
	return r.ambientColor
}

func (r *registryImpl) SetAmbientColor(color [3]float32) {
	r.ambientColor = color
}

func (r *registryImpl) Lights() []Light {
	out := make([]Light, len(r.lights))
	copy(out, r.lights)
	return out
}

func (r *registryImpl) Count() int {
	return len(r.lights)
}

// removeFromCells splices the light out of every cell in the given region,
// deleting cells that become empty so no empty-cell entries persist.
func (r *registryImpl) removeFromCells(l Light, region Region) {
	region.ForEach(func(c Cell) {
		list, ok := r.cells[c]
		if !ok {
			return
		}
		for i, existing := range list {
			if existing == l {
				list = append(list[:i], list[i+1:]...)
				break
			}
		}
		if len(list) == 0 {
			delete(r.cells, c)
		} else {
			r.cells[c] = list
		}
	})
}
