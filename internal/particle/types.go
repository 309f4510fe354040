// Package particle implements the steam effect that rises from the coffee mug.
//
// A fixed pool of particles is allocated once and recycled in place every
// frame: nothing is created or destroyed after construction. The package has
// no rendering dependency; callers read the pool through Animator.Particles
// and map each entry onto their own sprites.
package particle

import "fmt"

// Params holds the per-particle values drawn once at creation.
// They never change for the lifetime of the pool.
type Params struct {
	BaseX       float64 // basePosition.x（水平偏移）
	BaseZ       float64 // basePosition.z
	RiseSpeed   float64 // 每帧上升高度
	PhaseOffset float64 // 正弦漂移相位，避免粒子同步摆动
}

// Particle is a single pool entry: the immutable Params plus the state
// rewritten on every Advance.
//
// Age is the particle's height above its base, so Y always equals Age.
type Particle struct {
	Params

	Age     float64
	X, Y, Z float64
	Scale   float64
	Opacity float64
}

// Config holds the construction-time constants of the effect.
// Use DefaultConfig for the values the desk scene ships with.
type Config struct {
	// Count is the pool size (0 yields an inert effect)
	Count int

	// Sampling ranges for Params
	BaseSpread Range // basePosition.x / basePosition.z
	RiseSpeed  Range
	Phase      Range

	// Lifetime is the age above which a particle is recycled
	Lifetime float64

	// Opacity model: max(0, base - age*FadeRate)
	ActiveOpacity   float64 // emitter on
	InactiveOpacity float64 // emitter off
	FadeRate        float64

	// Scale model: BaseScale + age*GrowthRate
	BaseScale  float64
	GrowthRate float64

	// Lateral drift: sin/cos(t*SwayFreq + phase) * DriftAmplitude * age * DriftGain
	DriftAmplitude float64
	DriftGain      float64
	SwayFreqX      float64
	SwayFreqZ      float64
}

// DefaultConfig returns the steam parameters used by the mug.
func DefaultConfig() Config {
	return Config{
		Count:           35,
		BaseSpread:      Range{Min: -0.015, Max: 0.015},
		RiseSpeed:       Range{Min: 0.004, Max: 0.007},
		Phase:           Range{Min: 0, Max: 100},
		Lifetime:        0.5,
		ActiveOpacity:   0.6,
		InactiveOpacity: 0.15,
		FadeRate:        1.2,
		BaseScale:       0.05,
		GrowthRate:      0.6,
		DriftAmplitude:  0.01,
		DriftGain:       3,
		SwayFreqX:       1.5,
		SwayFreqZ:       1.0,
	}
}

// MaxOpacity returns the brightest opacity any particle can reach.
func (c Config) MaxOpacity() float64 {
	if c.ActiveOpacity > c.InactiveOpacity {
		return c.ActiveOpacity
	}
	return c.InactiveOpacity
}

// Validate checks that the constants describe a usable effect.
func (c Config) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("particle count must be non-negative, got %d", c.Count)
	}
	for name, r := range map[string]Range{
		"baseSpread": c.BaseSpread,
		"riseSpeed":  c.RiseSpeed,
		"phase":      c.Phase,
	} {
		if r.Min > r.Max {
			return fmt.Errorf("%s range invalid: min(%g) > max(%g)", name, r.Min, r.Max)
		}
	}
	if c.RiseSpeed.Min < 0 {
		return fmt.Errorf("riseSpeed must be non-negative, got min %g", c.RiseSpeed.Min)
	}
	if c.Lifetime <= 0 {
		return fmt.Errorf("lifetime must be positive, got %g", c.Lifetime)
	}
	if c.FadeRate <= 0 {
		return fmt.Errorf("fadeRate must be positive, got %g", c.FadeRate)
	}
	if c.ActiveOpacity < 0 || c.ActiveOpacity > 1 || c.InactiveOpacity < 0 || c.InactiveOpacity > 1 {
		return fmt.Errorf("opacity must be within [0, 1], got active=%g inactive=%g", c.ActiveOpacity, c.InactiveOpacity)
	}
	if c.BaseScale < 0 || c.GrowthRate < 0 {
		return fmt.Errorf("scale must not shrink below zero, got base=%g growth=%g", c.BaseScale, c.GrowthRate)
	}
	return nil
}
