package light

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Animation drives a time-based change to one light's parameters. Animations
// mutate the light through its Set* methods, so every step bumps the light's
// parameters version — the scene uses that to re-place and re-upload the
// light without the animation knowing about the grid.
//
// Animations are advanced from the scene's Update step and are safe to run
// concurrently with each other as long as no two animations share a light.
type Animation interface {
	// Update advances the animation by deltaTime seconds and applies the new
	// parameter value to the light.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last update in seconds
	//
	// Returns:
	//   - bool: true when the animation has finished and can be discarded
	Update(deltaTime float32) bool

	// Light returns the light this animation drives.
	//
	// Returns:
	//   - Light: the animated light
	Light() Light
}

// pulseImpl loops the light's intensity between a low and high value forever.
type pulseImpl struct {
	light  Light
	up     *gween.Tween
	down   *gween.Tween
	rising bool
}

var _ Animation = &pulseImpl{}

// NewPulse creates a looping intensity pulse: the light's intensity rises
// from low to high over half the period, falls back over the other half, and
// repeats. The pulse never finishes; drop it from the update list to stop it.
//
// Parameters:
//   - l: the light to animate
//   - low: intensity at the bottom of the pulse
//   - high: intensity at the top of the pulse
//   - period: full cycle duration in seconds
//   - easing: easing function for both halves (e.g. ease.InOutQuad)
//
// Returns:
//   - Animation: the pulse animation
func NewPulse(l Light, low, high, period float32, easing ease.TweenFunc) Animation {
	half := period / 2
	return &pulseImpl{
		light:  l,
		up:     gween.New(low, high, half, easing),
		down:   gween.New(high, low, half, easing),
		rising: true,
	}
}

func (p *pulseImpl) Update(deltaTime float32) bool {
	var value float32
	var done bool
	if p.rising {
		value, done = p.up.Update(deltaTime)
	} else {
		value, done = p.down.Update(deltaTime)
	}
	p.light.SetIntensity(value)
	if done {
		// Swap halves and rewind the one we're switching to.
		if p.rising {
			p.down.Reset()
		} else {
			p.up.Reset()
		}
		p.rising = !p.rising
	}
	return false
}

func (p *pulseImpl) Light() Light {
	return p.light
}

// rangeFadeImpl tweens the light's range to a target value once.
type rangeFadeImpl struct {
	light    Light
	tween    *gween.Tween
	finished bool
}

var _ Animation = &rangeFadeImpl{}

// NewRangeFade creates a one-shot fade of the light's range from its current
// value to the target. Because range is the radius of the light's bounding
// sphere, every step changes grid placement — the scene re-places the light
// each frame while the fade runs.
//
// Parameters:
//   - l: the light to animate
//   - target: the range to fade to
//   - duration: fade duration in seconds
//   - easing: easing function (e.g. ease.Linear)
//
// Returns:
//   - Animation: the fade animation
func NewRangeFade(l Light, target, duration float32, easing ease.TweenFunc) Animation {
	return &rangeFadeImpl{
		light: l,
		tween: gween.New(l.Range(), target, duration, easing),
	}
}

func (f *rangeFadeImpl) Update(deltaTime float32) bool {
	if f.finished {
		return true
	}
	value, done := f.tween.Update(deltaTime)
	f.light.SetRange(value)
	f.finished = done
	return done
}

func (f *rangeFadeImpl) Light() Light {
	return f.light
}

// intensityFadeImpl tweens the light's intensity to a target value once.
type intensityFadeImpl struct {
	light    Light
	tween    *gween.Tween
	finished bool
}

var _ Animation = &intensityFadeImpl{}

// NewIntensityFade creates a one-shot fade of the light's intensity from its
// current value to the target. Useful for fading ephemeral particle lights in
// and out.
//
// Parameters:
//   - l: the light to animate
//   - target: the intensity to fade to
//   - duration: fade duration in seconds
//   - easing: easing function (e.g. ease.Linear)
//
// Returns:
//   - Animation: the fade animation
func NewIntensityFade(l Light, target, duration float32, easing ease.TweenFunc) Animation {
	return &intensityFadeImpl{
		light: l,
		tween: gween.New(l.Intensity(), target, duration, easing),
	}
}

func (f *intensityFadeImpl) Update(deltaTime float32) bool {
	if f.finished {
		return true
	}
	value, done := f.tween.Update(deltaTime)
	f.light.SetIntensity(value)
	f.finished = done
	return done
}

func (f *intensityFadeImpl) Light() Light {
	return f.light
}
