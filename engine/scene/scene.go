package scene

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/ember3d/ember-go/common"
	"github.com/ember3d/ember-go/engine/game_object"
	"github.com/ember3d/ember-go/engine/light"
)

// Scene manages a registry of non-ephemeral GameObjects and the scene's light
// state: a spatial light registry for range queries, automatic registration
// and position sync for lights attached to objects, and tween-driven light
// animations advanced each frame. Scenes can be hot-swapped via the Active
// flag to switch between different views or levels.
//
// Thread-safe for concurrent access: the scene's lock guards the underlying
// light registry, which performs no locking of its own.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Count returns the number of persisted GameObjects in the scene's
	// registry. Does not include ephemeral objects.
	//
	// Returns:
	//   - int: count of non-ephemeral GameObjects in the registry
	Count() int

	// Add adds a GameObject to the scene and assigns it an ID. If the object
	// is not ephemeral it is persisted in the registry for later lookup or
	// removal by ID. If the object carries an attached light, the light's
	// position is synced from the object's transform and the light is
	// registered with the scene's light registry.
	//
	// Panics if the attached light already belongs to a registry — that is a
	// programming error in scene setup, not a recoverable condition.
	//
	// Parameters:
	//   - obj: the GameObject to add
	//
	// Returns:
	//   - uint64: the assigned object ID
	Add(obj game_object.GameObject) uint64

	// Get retrieves a non-ephemeral GameObject by its ID.
	// Returns nil if not found.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Remove removes a non-ephemeral GameObject from the registry by ID and
	// unregisters its attached light, if any.
	//
	// Parameters:
	//   - id: the object's unique ID
	Remove(id uint64)

	// Clear removes all objects, lights, and animations from the scene.
	Clear()

	// AddLight registers a standalone light (one not attached to an object)
	// with the scene's light registry.
	//
	// Parameters:
	//   - l: the Light to add
	//
	// Returns:
	//   - error: light.ErrInvalidState-wrapped if the light already belongs to a registry
	AddLight(l light.Light) error

	// RemoveLight unregisters a light from the scene's light registry.
	//
	// Parameters:
	//   - l: the Light to remove
	//
	// Returns:
	//   - error: light.ErrInvalidState-wrapped if the light does not belong to this scene's registry
	RemoveLight(l light.Light) error

	// DetachLight removes a game object's attached light from the scene's
	// tracking and the light registry. This is the cleanup counterpart for
	// objects whose lights were auto-registered during Add(). Non-ephemeral
	// objects are cleaned up automatically via Remove(), but ephemeral object
	// owners must call this explicitly when the object's lifetime ends.
	//
	// Parameters:
	//   - obj: the GameObject whose attached light should be detached
	DetachLight(obj game_object.GameObject)

	// Lights returns all lights currently registered in the scene.
	//
	// Returns:
	//   - []light.Light: the scene's light list
	Lights() []light.Light

	// LightRegistry returns the scene's spatial light registry. Callers that
	// reach past the scene's own lock must provide their own synchronization.
	//
	// Returns:
	//   - light.Registry: the owned registry
	LightRegistry() light.Registry

	// AmbientColor returns the scene's ambient light color.
	//
	// Returns:
	//   - [3]float32: the ambient RGB color
	AmbientColor() [3]float32

	// SetAmbientColor sets the scene's ambient light color.
	//
	// Parameters:
	//   - color: the ambient RGB color
	SetAmbientColor(color [3]float32)

	// Animate adds a light animation to the scene's update list. Finished
	// animations are dropped automatically during Update.
	//
	// Parameters:
	//   - a: the animation to drive each frame
	Animate(a light.Animation)

	// Update advances the scene by one frame: light animations run in
	// parallel on the worker pool, then lights whose parameters changed since
	// their last placement (animated lights, lights on moved objects, lights
	// mutated directly) are re-placed in the spatial grid. After Update
	// returns, queries see every change made before the call.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last frame in seconds
	Update(deltaTime float32)

	// VisibleLights returns the enabled lights whose grid placement overlaps
	// the given bounding sphere, deduplicated, in grid visit order.
	//
	// Parameters:
	//   - bounds: the query bounding sphere
	//
	// Returns:
	//   - []light.Light: the matching lights
	VisibleLights(bounds common.Sphere) []light.Light

	// LightsFor returns the lights affecting the given object, querying the
	// grid with the object's world-space bounding sphere. Called once per
	// drawable per frame by the renderer to decide which lights to bind.
	//
	// Parameters:
	//   - obj: the drawable object
	//
	// Returns:
	//   - []light.Light: the lights affecting the object
	LightsFor(obj game_object.GameObject) []light.Light

	// LightBufferFor packs the lights affecting the given bounds into an
	// upload-ready byte buffer: a 16-byte header (ambient color + count)
	// followed by one 64-byte block per light. The host renderer uploads the
	// bytes to its light storage buffer.
	//
	// Parameters:
	//   - bounds: the query bounding sphere
	//
	// Returns:
	//   - []byte: the packed light buffer
	LightBufferFor(bounds common.Sphere) []byte
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	registry map[uint64]game_object.GameObject // non-ephemeral objects by ID
	nextID   uint64

	// Lighting state.
	lightRegistry light.Registry
	lightObjects  []game_object.GameObject // objects with attached lights (ephemeral and non-ephemeral)
	animations    []light.Animation

	// Change-detection caches: the version each light was last placed at and
	// the version each light-carrying object's transform was last synced at.
	placedVersions map[light.Light]uint64
	syncedVersions map[game_object.GameObject]uint64

	// updatePool manages a bounded set of reusable goroutines for the
	// parallel animation phase of Update. Workers persist across frames,
	// avoiding per-frame goroutine spawn/teardown overhead.
	updatePool    worker.DynamicWorkerPool
	updateWorkers int

	// Construction-time registry options, applied by NewScene.
	registryOpts []light.RegistryBuilderOption
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene that owns a fresh light registry.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:             &sync.RWMutex{},
		name:           name,
		active:         false,
		registry:       make(map[uint64]game_object.GameObject),
		nextID:         1,
		placedVersions: make(map[light.Light]uint64),
		syncedVersions: make(map[game_object.GameObject]uint64),
		updateWorkers:  max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	s.lightRegistry = light.NewRegistry(s.registryOpts...)

	// Initialize the update pool after options so WithUpdateWorkers can
	// override the default. Queue size of 256 accommodates typical animation
	// counts with headroom.
	s.updatePool = worker.NewDynamicWorkerPool(s.updateWorkers, 256, 1*time.Second)

	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) Add(obj game_object.GameObject) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if obj.ID() == 0 {
		obj.SetID(atomic.AddUint64(&s.nextID, 1) - 1)
	}

	// Persist non-ephemeral objects in the registry
	if !obj.Ephemeral() {
		s.registry[obj.ID()] = obj
	}

	// If the object has an attached light, sync its position from the
	// object's transform, register it with the light registry, and track the
	// object for per-frame position sync.
	if l := obj.Light(); l != nil {
		x, y, z := obj.Position()
		l.SetPosition(x, y, z)
		if err := s.lightRegistry.Add(l); err != nil {
			panic(fmt.Sprintf("scene: failed to register attached light: %v", err))
		}
		s.lightObjects = append(s.lightObjects, obj)
		s.syncedVersions[obj] = obj.Version()
		s.placedVersions[l] = l.Version()
	}

	return obj.ID()
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, exists := s.registry[id]
	if !exists {
		return
	}

	delete(s.registry, id)
	s.detachLightLocked(obj)
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.lightRegistry.Lights() {
		_ = s.lightRegistry.Remove(l)
	}
	s.registry = make(map[uint64]game_object.GameObject)
	s.lightObjects = nil
	s.animations = nil
	s.placedVersions = make(map[light.Light]uint64)
	s.syncedVersions = make(map[game_object.GameObject]uint64)
}

func (s *scene) AddLight(l light.Light) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.lightRegistry.Add(l); err != nil {
		return err
	}
	s.placedVersions[l] = l.Version()
	return nil
}

func (s *scene) RemoveLight(l light.Light) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.lightRegistry.Remove(l); err != nil {
		return err
	}
	delete(s.placedVersions, l)
	return nil
}

func (s *scene) DetachLight(obj game_object.GameObject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detachLightLocked(obj)
}

// detachLightLocked unregisters the object's attached light and drops the
// scene's tracking state for it. Caller must hold s.mu write lock.
func (s *scene) detachLightLocked(obj game_object.GameObject) {
	l := obj.Light()
	if l == nil {
		return
	}
	// The light may already have been removed directly via RemoveLight;
	// ownership errors here are not actionable.
	_ = s.lightRegistry.Remove(l)
	delete(s.placedVersions, l)
	delete(s.syncedVersions, obj)
	for i, o := range s.lightObjects {
		if o == obj {
			s.lightObjects = append(s.lightObjects[:i], s.lightObjects[i+1:]...)
			break
		}
	}
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lightRegistry.Lights()
}

func (s *scene) LightRegistry() light.Registry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lightRegistry
}

func (s *scene) AmbientColor() [3]float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lightRegistry.AmbientColor()
}

func (s *scene) SetAmbientColor(color [3]float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lightRegistry.SetAmbientColor(color)
}

func (s *scene) Animate(a light.Animation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.animations = append(s.animations, a)
}

func (s *scene) Update(deltaTime float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Phase 1: parallel animation advance — fan the tween updates out across
	// the update pool. Each animation owns its light exclusively, so the
	// tasks never contend. A WaitGroup provides per-frame barrier sync since
	// pool.Wait() blocks until workers idle-exit, which is unsuitable for
	// frame-rate workloads.
	if len(s.animations) > 0 {
		finished := make([]bool, len(s.animations))
		var wg sync.WaitGroup
		for i, a := range s.animations {
			wg.Add(1)
			idx, anim := i, a // capture for closure
			s.updatePool.SubmitTask(worker.Task{
				ID: idx,
				Do: func() (any, error) {
					defer wg.Done()
					finished[idx] = anim.Update(deltaTime)
					return nil, nil
				},
			})
		}
		wg.Wait()

		// Compact the animation list, dropping finished entries.
		kept := s.animations[:0]
		for i, a := range s.animations {
			if !finished[i] {
				kept = append(kept, a)
			}
		}
		s.animations = kept
	}

	// Phase 2 (serial): sync attached-light positions from moved objects,
	// then re-place every light whose parameters version moved since its last
	// placement. The registry is single-threaded by contract, so all grid
	// mutation happens here under the write lock.
	for _, obj := range s.lightObjects {
		if obj.Version() == s.syncedVersions[obj] {
			continue
		}
		x, y, z := obj.Position()
		obj.Light().SetPosition(x, y, z)
		s.syncedVersions[obj] = obj.Version()
	}
	for _, l := range s.lightRegistry.Lights() {
		if v := l.Version(); v != s.placedVersions[l] {
			s.lightRegistry.UpdateTransform(l)
			s.placedVersions[l] = v
		}
	}
}

func (s *scene) VisibleLights(bounds common.Sphere) []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lightRegistry.Query(bounds)
}

func (s *scene) LightsFor(obj game_object.GameObject) []light.Light {
	return s.VisibleLights(obj.BoundingSphere())
}

func (s *scene) LightBufferFor(bounds common.Sphere) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return light.MarshalLights(s.lightRegistry.Query(bounds), s.lightRegistry.AmbientColor())
}
